package memdb

import (
	"sort"

	"github.com/elimuhub/elimu/core/messaging"
)

type messagingRepository struct {
	db *threadTable
}

var _ messaging.Repository = (*messagingRepository)(nil)

func NewMessagingRepository(db *DB) messaging.Repository {
	return &messagingRepository{db: db.messaging}
}

func (repo *messagingRepository) queryThreads() []messaging.Thread {
	threads := make([]messaging.Thread, 0, len(repo.db.threads))
	for _, t := range repo.db.threads {
		threads = append(threads, *t)
	}
	sort.Slice(threads, func(i, j int) bool {
		if threads[i].CreatedAt.Equal(threads[j].CreatedAt) {
			return threads[i].ID < threads[j].ID
		}
		return threads[i].CreatedAt.Before(threads[j].CreatedAt)
	})
	return threads
}

func (repo *messagingRepository) CreateThread(t messaging.Thread) (messaging.Thread, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.threads[t.ID] = &t
	return t, nil
}

func (repo *messagingRepository) GetThreadByID(id string) (messaging.Thread, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if t, ok := repo.db.threads[id]; ok {
		return *t, nil
	}
	return messaging.Thread{}, messaging.ErrThreadNotFound
}

func (repo *messagingRepository) QueryThreadsByParticipant(userID string) ([]messaging.Thread, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	threads := make([]messaging.Thread, 0)
	for _, t := range repo.queryThreads() {
		if t.HasParticipant(userID) {
			threads = append(threads, t)
		}
	}
	return threads, nil
}

func (repo *messagingRepository) QueryAllThreads() ([]messaging.Thread, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.queryThreads(), nil
}

func (repo *messagingRepository) CreateMessage(m messaging.Message) (messaging.Message, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.messages[m.ID] = &m
	// a new message makes the thread unread for everyone but the author
	if reads, ok := repo.db.reads[m.ThreadID]; ok {
		for userID := range reads {
			reads[userID] = userID == m.AuthorID
		}
	}
	return m, nil
}

func (repo *messagingRepository) QueryMessagesByThread(threadID string) ([]messaging.Message, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	messages := make([]messaging.Message, 0)
	for _, m := range repo.db.messages {
		if m.ThreadID == threadID {
			messages = append(messages, *m)
		}
	}
	sort.Slice(messages, func(i, j int) bool {
		if messages[i].SentAt.Equal(messages[j].SentAt) {
			return messages[i].ID < messages[j].ID
		}
		return messages[i].SentAt.Before(messages[j].SentAt)
	})
	return messages, nil
}

func (repo *messagingRepository) CountUnreadByParticipant(userID string) (int, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var count int
	for _, t := range repo.queryThreads() {
		if !t.HasParticipant(userID) {
			continue
		}
		if reads, ok := repo.db.reads[t.ID]; !ok || !reads[userID] {
			count++
		}
	}
	return count, nil
}

func (repo *messagingRepository) MarkThreadRead(threadID, userID string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.threads[threadID]; !ok {
		return messaging.ErrThreadNotFound
	}
	reads, ok := repo.db.reads[threadID]
	if !ok {
		reads = make(map[string]bool)
		repo.db.reads[threadID] = reads
	}
	reads[userID] = true
	return nil
}

func (repo *messagingRepository) DeleteMessagesByID(ids ...string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, id := range ids {
		if _, ok := repo.db.messages[id]; !ok {
			return messaging.ErrMessageNotFound
		}
		delete(repo.db.messages, id)
	}
	return nil
}
