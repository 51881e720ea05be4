package messaging

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/elimuhub/elimu/core/user"
)

var (
	// errors
	ErrThreadNotFound  = errors.New("thread not found")
	ErrMessageNotFound = errors.New("message not found")
	ErrNotParticipant  = errors.New("not a participant of this thread")
)

type (
	Repository interface {
		CreateThread(t Thread) (Thread, error)
		GetThreadByID(id string) (Thread, error)
		QueryThreadsByParticipant(userID string) ([]Thread, error)
		QueryAllThreads() ([]Thread, error)
		CreateMessage(m Message) (Message, error)
		QueryMessagesByThread(threadID string) ([]Message, error)
		CountUnreadByParticipant(userID string) (int, error)
		MarkThreadRead(threadID, userID string) error
		DeleteMessagesByID(ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Threads lists the threads visible to the user. Leadership sees every thread
// (their messenger view includes the broadcast channel); everyone else sees
// only threads they participate in.
func (svc *Service) Threads(usr user.User) ([]Thread, error) {
	if usr.IsAdmin() {
		return svc.repo.QueryAllThreads()
	}
	return svc.repo.QueryThreadsByParticipant(usr.ID)
}

func (svc *Service) Messages(threadID string, usr user.User) ([]Message, error) {
	t, err := svc.repo.GetThreadByID(threadID)
	if err != nil {
		return nil, err
	}
	if !usr.IsAdmin() && !t.HasParticipant(usr.ID) {
		return nil, ErrNotParticipant
	}
	if err = svc.repo.MarkThreadRead(threadID, usr.ID); err != nil {
		return nil, errors.Wrap(err, "marking thread read")
	}
	return svc.repo.QueryMessagesByThread(threadID)
}

// StartThread opens a thread with the caller and the listed participants.
// The caller is always a participant, listed or not, and duplicates are
// collapsed.
func (svc *Service) StartThread(usr user.User, nt NewThread) (Thread, error) {
	participants := make([]string, 0, len(nt.Participants)+1)
	seen := make(map[string]bool, len(nt.Participants)+1)
	for _, id := range nt.Participants {
		if seen[id] {
			continue
		}
		seen[id] = true
		participants = append(participants, id)
	}
	if !seen[usr.ID] {
		participants = append(participants, usr.ID)
	}

	t := Thread{
		ID:           uuid.New().String(),
		Kind:         nt.Kind,
		Subject:      nt.Subject,
		Participants: participants,
		CreatedAt:    time.Now().UTC(),
	}
	return svc.repo.CreateThread(t)
}

// Send appends a message to a thread the user participates in.
func (svc *Service) Send(usr user.User, nm NewMessage) (Message, error) {
	t, err := svc.repo.GetThreadByID(nm.ThreadID)
	if err != nil {
		return Message{}, err
	}
	if !t.HasParticipant(usr.ID) && !usr.IsAdmin() {
		return Message{}, ErrNotParticipant
	}

	m := Message{
		ID:         uuid.New().String(),
		ThreadID:   t.ID,
		AuthorID:   usr.ID,
		AuthorName: usr.Name,
		Body:       nm.Body,
		SentAt:     time.Now().UTC(),
	}
	return svc.repo.CreateMessage(m)
}

func (svc *Service) Unread(usr user.User) (int, error) {
	return svc.repo.CountUnreadByParticipant(usr.ID)
}

func (svc *Service) DeleteMessages(ids ...string) error {
	return svc.repo.DeleteMessagesByID(ids...)
}
