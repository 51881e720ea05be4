package memdb

import (
	"sort"

	"github.com/elimuhub/elimu/core/attendance"
)

type attendanceRepository struct {
	db *attendanceTable
}

var _ attendance.Repository = (*attendanceRepository)(nil)

func NewAttendanceRepository(db *DB) attendance.Repository {
	return &attendanceRepository{db: db.attendance}
}

func (repo *attendanceRepository) query() []attendance.Record {
	records := make([]attendance.Record, 0, len(repo.db.table))
	for _, r := range repo.db.table {
		records = append(records, *r)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Date.Equal(records[j].Date) {
			return records[i].ID < records[j].ID
		}
		return records[i].Date.Before(records[j].Date)
	})
	return records
}

func (repo *attendanceRepository) CreateRecord(r attendance.Record) (attendance.Record, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.table[r.ID] = &r
	return r, nil
}

func (repo *attendanceRepository) GetRecordByID(id string) (attendance.Record, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if r, ok := repo.db.table[id]; ok {
		return *r, nil
	}
	return attendance.Record{}, attendance.ErrNotFound
}

func (repo *attendanceRepository) QueryAllRecords() ([]attendance.Record, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *attendanceRepository) QueryRecordsByStudent(studentID string) ([]attendance.Record, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	records := make([]attendance.Record, 0)
	for _, r := range repo.query() {
		if r.StudentID == studentID {
			records = append(records, r)
		}
	}
	return records, nil
}

func (repo *attendanceRepository) UpdateRecord(r attendance.Record) (attendance.Record, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[r.ID]; !ok {
		return attendance.Record{}, attendance.ErrNotFound
	}
	repo.db.table[r.ID] = &r
	return r, nil
}

func (repo *attendanceRepository) DeleteRecordsByID(ids ...string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, id := range ids {
		if _, ok := repo.db.table[id]; !ok {
			return attendance.ErrNotFound
		}
		delete(repo.db.table, id)
	}
	return nil
}
