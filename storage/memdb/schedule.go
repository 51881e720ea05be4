package memdb

import (
	"sort"

	"github.com/elimuhub/elimu/core/schedule"
)

type scheduleRepository struct {
	db *periodTable
}

var _ schedule.Repository = (*scheduleRepository)(nil)

func NewScheduleRepository(db *DB) schedule.Repository {
	return &scheduleRepository{db: db.schedule}
}

// query orders periods by weekday then start time, the timetable display order.
func (repo *scheduleRepository) query() []schedule.Period {
	periods := make([]schedule.Period, 0, len(repo.db.table))
	for _, p := range repo.db.table {
		periods = append(periods, *p)
	}
	sort.Slice(periods, func(i, j int) bool {
		if periods[i].Day != periods[j].Day {
			return periods[i].Day < periods[j].Day
		}
		if periods[i].Start != periods[j].Start {
			return periods[i].Start < periods[j].Start
		}
		return periods[i].ID < periods[j].ID
	})
	return periods
}

func (repo *scheduleRepository) CreatePeriod(p schedule.Period) (schedule.Period, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.table[p.ID] = &p
	return p, nil
}

func (repo *scheduleRepository) GetPeriodByID(id string) (schedule.Period, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if p, ok := repo.db.table[id]; ok {
		return *p, nil
	}
	return schedule.Period{}, schedule.ErrNotFound
}

func (repo *scheduleRepository) QueryAllPeriods() ([]schedule.Period, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *scheduleRepository) QueryPeriodsByTeacher(teacherID string) ([]schedule.Period, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	periods := make([]schedule.Period, 0)
	for _, p := range repo.query() {
		if p.TeacherID == teacherID {
			periods = append(periods, p)
		}
	}
	return periods, nil
}

func (repo *scheduleRepository) UpdatePeriod(p schedule.Period) (schedule.Period, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[p.ID]; !ok {
		return schedule.Period{}, schedule.ErrNotFound
	}
	repo.db.table[p.ID] = &p
	return p, nil
}

func (repo *scheduleRepository) DeletePeriodsByID(ids ...string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, id := range ids {
		if _, ok := repo.db.table[id]; !ok {
			return schedule.ErrNotFound
		}
		delete(repo.db.table, id)
	}
	return nil
}
