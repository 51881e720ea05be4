package memdb

import (
	"sort"

	"github.com/elimuhub/elimu/core/community"
)

type communityRepository struct {
	db *communityTable
}

var _ community.Repository = (*communityRepository)(nil)

func NewCommunityRepository(db *DB) community.Repository {
	return &communityRepository{db: db.community}
}

// Posts

func (repo *communityRepository) CreatePost(p community.Post) (community.Post, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.posts[p.ID] = &p
	return p, nil
}

func (repo *communityRepository) GetPostByID(id string) (community.Post, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if p, ok := repo.db.posts[id]; ok {
		return *p, nil
	}
	return community.Post{}, community.ErrPostNotFound
}

// QueryAllPosts returns the feed newest-first.
func (repo *communityRepository) QueryAllPosts() ([]community.Post, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	posts := make([]community.Post, 0, len(repo.db.posts))
	for _, p := range repo.db.posts {
		posts = append(posts, *p)
	}
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].PostedAt.Equal(posts[j].PostedAt) {
			return posts[i].ID < posts[j].ID
		}
		return posts[i].PostedAt.After(posts[j].PostedAt)
	})
	return posts, nil
}

func (repo *communityRepository) UpdatePost(p community.Post) (community.Post, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.posts[p.ID]; !ok {
		return community.Post{}, community.ErrPostNotFound
	}
	repo.db.posts[p.ID] = &p
	return p, nil
}

func (repo *communityRepository) DeletePostsByID(ids ...string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, id := range ids {
		if _, ok := repo.db.posts[id]; !ok {
			return community.ErrPostNotFound
		}
		delete(repo.db.posts, id)
	}
	return nil
}

// Connections

func (repo *communityRepository) CreateConnection(c community.Connection) (community.Connection, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.connections[c.ID] = &c
	return c, nil
}

func (repo *communityRepository) GetConnectionByID(id string) (community.Connection, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if c, ok := repo.db.connections[id]; ok {
		return *c, nil
	}
	return community.Connection{}, community.ErrConnectionNotFound
}

func (repo *communityRepository) QueryConnectionsByUser(userID string) ([]community.Connection, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	connections := make([]community.Connection, 0)
	for _, c := range repo.db.connections {
		if c.UserID == userID {
			connections = append(connections, *c)
		}
	}
	sort.Slice(connections, func(i, j int) bool {
		if connections[i].Since.Equal(connections[j].Since) {
			return connections[i].ID < connections[j].ID
		}
		return connections[i].Since.Before(connections[j].Since)
	})
	return connections, nil
}

func (repo *communityRepository) DeleteConnectionsByID(ids ...string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, id := range ids {
		if _, ok := repo.db.connections[id]; !ok {
			return community.ErrConnectionNotFound
		}
		delete(repo.db.connections, id)
	}
	return nil
}
