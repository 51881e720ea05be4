package attendance

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/elimuhub/elimu/core/portal"
	"github.com/elimuhub/elimu/core/user"
)

var (
	// errors
	ErrNotFound = errors.New("attendance record not found")
)

type (
	Repository interface {
		CreateRecord(r Record) (Record, error)
		GetRecordByID(id string) (Record, error)
		QueryAllRecords() ([]Record, error)
		QueryRecordsByStudent(studentID string) ([]Record, error)
		UpdateRecord(r Record) (Record, error)
		DeleteRecordsByID(ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the attendance rows for the resolved scope: "me" is the user's
// own record, "students" is the full register. The requested scope is clamped
// to what the role may see before the query runs.
func (svc *Service) List(usr user.User, scope portal.Scope) ([]Record, error) {
	scope = portal.ClampScope(portal.ModuleAttendance, usr.Role, scope)
	if scope == portal.ScopeStudents {
		return svc.repo.QueryAllRecords()
	}
	return svc.repo.QueryRecordsByStudent(usr.ID)
}

func (svc *Service) Mark(usr user.User, ma MarkAttendance) (Record, error) {
	r := Record{
		ID:          uuid.New().String(),
		StudentID:   ma.StudentID,
		StudentName: ma.StudentName,
		ClassName:   ma.ClassName,
		Date:        ma.Date,
		Status:      ma.Status,
		RecordedBy:  usr.ID,
		UpdatedAt:   time.Now().UTC(),
	}
	return svc.repo.CreateRecord(r)
}

func (svc *Service) SetStatus(id string, ss SetStatus) (Record, error) {
	r, err := svc.repo.GetRecordByID(id)
	if err != nil {
		return Record{}, err
	}
	r.Status = ss.Status
	r.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateRecord(r)
}

func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeleteRecordsByID(ids...)
}

func (svc *Service) Summary(usr user.User, scope portal.Scope) (Summary, error) {
	records, err := svc.List(usr, scope)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(records), nil
}
