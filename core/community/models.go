package community

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/elimuhub/elimu/core"
	"github.com/elimuhub/elimu/core/user"
)

type Post struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Body       string    `json:"body"`
	Likes      int       `json:"likes"`
	Flagged    bool      `json:"flagged"`
	PostedAt   time.Time `json:"posted_at"` // UTC
}

type Connection struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	PeerID   string    `json:"peer_id"`
	PeerName string    `json:"peer_name"`
	PeerRole user.Role `json:"peer_role"`
	Since    time.Time `json:"since"` // UTC
}

type NewPost struct {
	Body string `json:"body" validate:"required,max=2000"`
}

func (np *NewPost) Validate(validate *validator.Validate) error {
	np.Body = core.CleanString(np.Body)
	return validate.Struct(np)
}

type NewConnection struct {
	PeerID   string    `json:"peer_id" validate:"required"`
	PeerName string    `json:"peer_name" validate:"required"`
	PeerRole user.Role `json:"peer_role" validate:"required,role"`
}

func (nc *NewConnection) Validate(validate *validator.Validate) error {
	nc.PeerName = core.CleanString(nc.PeerName)
	return validate.Struct(nc)
}
