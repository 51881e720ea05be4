package memdb

import (
	"sort"

	"github.com/elimuhub/elimu/core/vault"
)

type vaultRepository struct {
	db *fileTable
}

var _ vault.Repository = (*vaultRepository)(nil)

func NewVaultRepository(db *DB) vault.Repository {
	return &vaultRepository{db: db.vault}
}

func (repo *vaultRepository) query() []vault.File {
	files := make([]vault.File, 0, len(repo.db.table))
	for _, f := range repo.db.table {
		files = append(files, *f)
	}
	sort.Slice(files, func(i, j int) bool {
		if files[i].UploadedAt.Equal(files[j].UploadedAt) {
			return files[i].ID < files[j].ID
		}
		return files[i].UploadedAt.Before(files[j].UploadedAt)
	})
	return files
}

func (repo *vaultRepository) CreateFile(f vault.File) (vault.File, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.table[f.ID] = &f
	return f, nil
}

func (repo *vaultRepository) GetFileByID(id string) (vault.File, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if f, ok := repo.db.table[id]; ok {
		return *f, nil
	}
	return vault.File{}, vault.ErrNotFound
}

func (repo *vaultRepository) QueryAllFiles() ([]vault.File, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *vaultRepository) QueryFilesByOwner(ownerID string) ([]vault.File, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	files := make([]vault.File, 0)
	for _, f := range repo.query() {
		if f.OwnerID == ownerID {
			files = append(files, f)
		}
	}
	return files, nil
}

func (repo *vaultRepository) QuerySharedFiles() ([]vault.File, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	files := make([]vault.File, 0)
	for _, f := range repo.query() {
		if f.Shared {
			files = append(files, f)
		}
	}
	return files, nil
}

func (repo *vaultRepository) DeleteFilesByID(ids ...string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, id := range ids {
		if _, ok := repo.db.table[id]; !ok {
			return vault.ErrNotFound
		}
		delete(repo.db.table, id)
	}
	return nil
}
