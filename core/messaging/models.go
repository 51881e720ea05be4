package messaging

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/elimuhub/elimu/core"
)

// ThreadKind mirrors the messenger sub-tabs: direct chats, group chats and
// the leadership-only broadcast channel.
type ThreadKind string

const (
	ThreadChat      ThreadKind = "chat"
	ThreadGroup     ThreadKind = "group"
	ThreadClass     ThreadKind = "class"
	ThreadBroadcast ThreadKind = "broadcast"
)

type Thread struct {
	ID           string     `json:"id"`
	Kind         ThreadKind `json:"kind"`
	Subject      string     `json:"subject"`
	Participants []string   `json:"participants"` // user IDs
	CreatedAt    time.Time  `json:"created_at"`   // UTC
}

func (t *Thread) HasParticipant(userID string) bool {
	for _, id := range t.Participants {
		if id == userID {
			return true
		}
	}
	return false
}

type Message struct {
	ID         string    `json:"id"`
	ThreadID   string    `json:"thread_id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Body       string    `json:"body"`
	SentAt     time.Time `json:"sent_at"` // UTC
	Read       bool      `json:"read"`
}

type NewThread struct {
	Kind         ThreadKind `json:"kind" validate:"omitempty,oneof=chat group class broadcast"`
	Subject      string     `json:"subject" validate:"required"`
	Participants []string   `json:"participants" validate:"required,min=1"`
}

func (nt *NewThread) Validate(validate *validator.Validate) error {
	nt.Subject = core.CleanString(nt.Subject)
	if nt.Kind == "" {
		nt.Kind = ThreadChat
	}
	return validate.Struct(nt)
}

type NewMessage struct {
	ThreadID string `json:"thread_id" validate:"required"`
	Body     string `json:"body" validate:"required"`
}

func (nm *NewMessage) Validate(validate *validator.Validate) error {
	nm.Body = core.CleanString(nm.Body)
	return validate.Struct(nm)
}
