package vault

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/elimuhub/elimu/core/portal"
	"github.com/elimuhub/elimu/core/user"
)

var (
	// errors
	ErrNotFound = errors.New("file not found")
	ErrNotOwner = errors.New("not the file owner")
)

type (
	Repository interface {
		CreateFile(f File) (File, error)
		GetFileByID(id string) (File, error)
		QueryAllFiles() ([]File, error)
		QueryFilesByOwner(ownerID string) ([]File, error)
		QuerySharedFiles() ([]File, error)
		DeleteFilesByID(ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the files visible to the user for the resolved scope:
// leadership on the "students" scope sees the whole vault, staff on the
// "students" scope see shared material, and the "me" scope is always
// own files plus whatever was shared with everyone.
func (svc *Service) List(usr user.User, scope portal.Scope) ([]File, error) {
	scope = portal.ClampScope(portal.ModuleVault, usr.Role, scope)
	if scope == portal.ScopeStudents {
		if usr.IsAdmin() {
			return svc.repo.QueryAllFiles()
		}
		return svc.repo.QuerySharedFiles()
	}

	own, err := svc.repo.QueryFilesByOwner(usr.ID)
	if err != nil {
		return nil, err
	}
	shared, err := svc.repo.QuerySharedFiles()
	if err != nil {
		return nil, err
	}
	for _, f := range shared {
		if f.OwnerID != usr.ID {
			own = append(own, f)
		}
	}
	return own, nil
}

func (svc *Service) Add(usr user.User, nf NewFile) (File, error) {
	f := File{
		ID:         uuid.New().String(),
		Name:       nf.Name,
		Kind:       nf.Kind,
		Size:       nf.Size,
		OwnerID:    usr.ID,
		OwnerName:  usr.Name,
		Shared:     nf.Shared,
		UploadedAt: time.Now().UTC(),
	}
	return svc.repo.CreateFile(f)
}

// Delete removes a file record. Only the owner or leadership may delete.
func (svc *Service) Delete(usr user.User, id string) error {
	f, err := svc.repo.GetFileByID(id)
	if err != nil {
		return err
	}
	if f.OwnerID != usr.ID && !usr.IsAdmin() {
		return ErrNotOwner
	}
	return svc.repo.DeleteFilesByID(id)
}
