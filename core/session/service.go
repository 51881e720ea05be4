package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/elimuhub/elimu/core/portal"
	"github.com/elimuhub/elimu/core/user"
)

var (
	// errors
	ErrNotFound = errors.New("session not found")
)

type (
	Repository interface {
		CreateSession(s Session) (Session, error)
		GetSessionByID(id string) (Session, error)
		UpdateSession(s Session) (Session, error)
		DeleteSessionsByID(ids ...string) error
	}

	ServiceInterface interface {
		Begin() (Session, error)
		Get(id string) (Session, error)
		NavigateTo(id string, view NavigationState) (Session, error)
		LoginSucceeded(id string, usr user.User) (Session, error)
		Logout(id string) (Session, error)
		RegistrationStarted(id, email string) (Session, error)
		SelectTab(id string, tab portal.ModuleID) (Session, error)
		End(ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Begin opens a fresh anonymous session on the Home view.
func (svc *Service) Begin() (Session, error) {
	now := time.Now().UTC()
	return svc.repo.CreateSession(Session{
		ID:        uuid.New().String(),
		View:      ViewHome,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// Get loads a session, applying the dashboard guard: a session found on the
// Dashboard view with no user present is redirected to Login rather than
// handed out in an inconsistent state.
func (svc *Service) Get(id string) (Session, error) {
	s, err := svc.repo.GetSessionByID(id)
	if err != nil {
		return Session{}, err
	}
	if s.View == ViewDashboard && !s.Authenticated() {
		s.View = ViewLogin
		s.Tab = ""
		return svc.save(s)
	}
	return s, nil
}

// NavigateTo unconditionally replaces the active view, except for the one
// guarded transition: Dashboard without a present user redirects to Login.
// Every call produces a valid new state.
func (svc *Service) NavigateTo(id string, view NavigationState) (Session, error) {
	s, err := svc.Get(id)
	if err != nil {
		return Session{}, err
	}

	if view == ViewDashboard && !s.Authenticated() {
		view = ViewLogin
	}
	s.View = view
	if view == ViewDashboard && s.Tab == "" {
		s.Tab = portal.DefaultTab
	}
	return svc.save(s)
}

// LoginSucceeded sets the session user and lands on the dashboard. The active
// tab always resets to the default, whatever a prior session left behind.
func (svc *Service) LoginSucceeded(id string, usr user.User) (Session, error) {
	s, err := svc.getOrBegin(id)
	if err != nil {
		return Session{}, err
	}

	s.User = &usr
	s.View = ViewDashboard
	s.Tab = portal.DefaultTab
	s.PendingEmail = ""
	return svc.save(s)
}

// Logout clears the session user and returns to the public Home view.
func (svc *Service) Logout(id string) (Session, error) {
	s, err := svc.Get(id)
	if err != nil {
		return Session{}, err
	}

	s.User = nil
	s.View = ViewHome
	s.Tab = ""
	s.PendingEmail = ""
	return svc.save(s)
}

// RegistrationStarted moves to the verify-email screen, carrying the address
// forward for display.
func (svc *Service) RegistrationStarted(id, email string) (Session, error) {
	s, err := svc.getOrBegin(id)
	if err != nil {
		return Session{}, err
	}

	s.View = ViewVerifyEmail
	s.PendingEmail = email
	return svc.save(s)
}

// SelectTab changes the active dashboard tab. A role not entitled to the
// requested tab falls back to the default tab instead of mounting a module it
// may not see; an anonymous session is redirected to Login.
func (svc *Service) SelectTab(id string, tab portal.ModuleID) (Session, error) {
	s, err := svc.Get(id)
	if err != nil {
		return Session{}, err
	}

	if !s.Authenticated() {
		s.View = ViewLogin
		s.Tab = ""
		return svc.save(s)
	}

	if !portal.Entitled(s.Role(), tab) {
		tab = portal.DefaultTab
	}
	s.View = ViewDashboard
	s.Tab = tab
	return svc.save(s)
}

func (svc *Service) End(ids ...string) error {
	return svc.repo.DeleteSessionsByID(ids...)
}

func (svc *Service) getOrBegin(id string) (Session, error) {
	if id == "" {
		return svc.Begin()
	}
	s, err := svc.Get(id)
	if err == ErrNotFound {
		return svc.Begin()
	}
	return s, err
}

func (svc *Service) save(s Session) (Session, error) {
	s.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateSession(s)
}
