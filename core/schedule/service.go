package schedule

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/elimuhub/elimu/core/portal"
	"github.com/elimuhub/elimu/core/user"
)

var (
	// errors
	ErrNotFound = errors.New("period not found")
)

type (
	Repository interface {
		CreatePeriod(p Period) (Period, error)
		GetPeriodByID(id string) (Period, error)
		QueryAllPeriods() ([]Period, error)
		QueryPeriodsByTeacher(teacherID string) ([]Period, error)
		UpdatePeriod(p Period) (Period, error)
		DeletePeriodsByID(ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the schedule for the resolved scope: "me" narrows staff to the
// periods they teach; everyone else gets the full timetable.
func (svc *Service) List(usr user.User, scope portal.Scope) ([]Period, error) {
	scope = portal.ClampScope(portal.ModuleSchedule, usr.Role, scope)
	if scope == portal.ScopeMe && usr.IsStaff() {
		return svc.repo.QueryPeriodsByTeacher(usr.ID)
	}
	return svc.repo.QueryAllPeriods()
}

func (svc *Service) Get(id string) (Period, error) {
	return svc.repo.GetPeriodByID(id)
}

func (svc *Service) Create(usr user.User, np NewPeriod) (Period, error) {
	now := time.Now().UTC()
	p := Period{
		ID:          uuid.New().String(),
		Day:         np.Day,
		Start:       np.Start,
		End:         np.End,
		Subject:     np.Subject,
		Room:        np.Room,
		ClassName:   np.ClassName,
		TeacherID:   usr.ID,
		TeacherName: usr.Name,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreatePeriod(p)
}

func (svc *Service) Update(id string, up UpdatePeriod) (Period, error) {
	p, err := svc.repo.GetPeriodByID(id)
	if err != nil {
		return Period{}, err
	}

	if up.Day != nil {
		p.Day = *up.Day
	}
	if up.Start != "" {
		p.Start = up.Start
	}
	if up.End != "" {
		p.End = up.End
	}
	if up.Subject != "" {
		p.Subject = up.Subject
	}
	if up.Room != "" {
		p.Room = up.Room
	}
	p.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdatePeriod(p)
}

func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeletePeriodsByID(ids...)
}

// Current finds the period in progress at t, if any.
func (svc *Service) Current(t time.Time) (Period, bool, error) {
	periods, err := svc.repo.QueryAllPeriods()
	if err != nil {
		return Period{}, false, err
	}
	for _, p := range periods {
		if p.Covers(t) {
			return p, true, nil
		}
	}
	return Period{}, false, nil
}
