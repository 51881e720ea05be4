package community

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/elimuhub/elimu/core/user"
)

var (
	// errors
	ErrPostNotFound       = errors.New("post not found")
	ErrConnectionNotFound = errors.New("connection not found")
	ErrNotAuthor          = errors.New("not the post author")
)

type (
	Repository interface {
		CreatePost(p Post) (Post, error)
		GetPostByID(id string) (Post, error)
		QueryAllPosts() ([]Post, error)
		UpdatePost(p Post) (Post, error)
		DeletePostsByID(ids ...string) error

		CreateConnection(c Connection) (Connection, error)
		GetConnectionByID(id string) (Connection, error)
		QueryConnectionsByUser(userID string) ([]Connection, error)
		DeleteConnectionsByID(ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Feed

func (svc *Service) Feed() ([]Post, error) {
	return svc.repo.QueryAllPosts()
}

func (svc *Service) Publish(usr user.User, np NewPost) (Post, error) {
	p := Post{
		ID:         uuid.New().String(),
		AuthorID:   usr.ID,
		AuthorName: usr.Name,
		Body:       np.Body,
		PostedAt:   time.Now().UTC(),
	}
	return svc.repo.CreatePost(p)
}

func (svc *Service) Like(id string) (Post, error) {
	p, err := svc.repo.GetPostByID(id)
	if err != nil {
		return Post{}, err
	}
	p.Likes++
	return svc.repo.UpdatePost(p)
}

func (svc *Service) Flag(id string) (Post, error) {
	p, err := svc.repo.GetPostByID(id)
	if err != nil {
		return Post{}, err
	}
	p.Flagged = true
	return svc.repo.UpdatePost(p)
}

// DeletePost removes a post. Authors may delete their own; leadership may
// delete anything (the moderation sub-tab).
func (svc *Service) DeletePost(usr user.User, id string) error {
	p, err := svc.repo.GetPostByID(id)
	if err != nil {
		return err
	}
	if p.AuthorID != usr.ID && !usr.IsAdmin() {
		return ErrNotAuthor
	}
	return svc.repo.DeletePostsByID(id)
}

// Connections

func (svc *Service) Connections(usr user.User) ([]Connection, error) {
	return svc.repo.QueryConnectionsByUser(usr.ID)
}

func (svc *Service) Connect(usr user.User, nc NewConnection) (Connection, error) {
	c := Connection{
		ID:       uuid.New().String(),
		UserID:   usr.ID,
		PeerID:   nc.PeerID,
		PeerName: nc.PeerName,
		PeerRole: nc.PeerRole,
		Since:    time.Now().UTC(),
	}
	return svc.repo.CreateConnection(c)
}

func (svc *Service) Disconnect(usr user.User, id string) error {
	c, err := svc.repo.GetConnectionByID(id)
	if err != nil {
		return err
	}
	if c.UserID != usr.ID && !usr.IsAdmin() {
		return ErrConnectionNotFound
	}
	return svc.repo.DeleteConnectionsByID(id)
}
