package vault

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/elimuhub/elimu/core"
)

type File struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Kind       string    `json:"kind"` // document, image, video, archive...
	Size       int64     `json:"size"`
	OwnerID    string    `json:"owner_id"`
	OwnerName  string    `json:"owner_name"`
	Shared     bool      `json:"shared"`
	UploadedAt time.Time `json:"uploaded_at"` // UTC
}

type NewFile struct {
	Name   string `json:"name" validate:"required"`
	Kind   string `json:"kind" validate:"required"`
	Size   int64  `json:"size" validate:"gte=0"`
	Shared bool   `json:"shared"`
}

func (nf *NewFile) Validate(validate *validator.Validate) error {
	nf.Name = core.CleanString(nf.Name)
	nf.Kind = core.CleanString(nf.Kind, true /* lower */)
	return validate.Struct(nf)
}
