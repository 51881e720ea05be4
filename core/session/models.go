package session

import (
	"time"

	"github.com/elimuhub/elimu/core/portal"
	"github.com/elimuhub/elimu/core/user"
)

// NavigationState is the single active top-level screen. Exactly one variant
// is active per session; transitions happen only through explicit operations.
type NavigationState string

const (
	ViewHome        NavigationState = "home"
	ViewAbout       NavigationState = "about"
	ViewAcademics   NavigationState = "academics"
	ViewStudents    NavigationState = "students"
	ViewContact     NavigationState = "contact"
	ViewLogin       NavigationState = "login"
	ViewRegister    NavigationState = "register"
	ViewVerifyEmail NavigationState = "verify_email"
	ViewDashboard   NavigationState = "dashboard"
)

var AllViews = []NavigationState{
	ViewHome, ViewAbout, ViewAcademics, ViewStudents, ViewContact,
	ViewLogin, ViewRegister, ViewVerifyEmail, ViewDashboard,
}

func (v NavigationState) IsValid() bool {
	for _, view := range AllViews {
		if view == v {
			return true
		}
	}
	return false
}

// Session is the server-side record of one portal session: the current user
// (absent until login), the active view and, while on the dashboard, the
// active tab. PendingEmail carries the address shown on the verify-email
// screen between registration and verification.
type Session struct {
	ID           string          `json:"id"`
	User         *user.User      `json:"user,omitempty"`
	View         NavigationState `json:"view"`
	Tab          portal.ModuleID `json:"tab,omitempty"`
	PendingEmail string          `json:"pending_email,omitempty"`
	CreatedAt    time.Time       `json:"created_at"` // UTC
	UpdatedAt    time.Time       `json:"updated_at"` // UTC
}

func (s *Session) Authenticated() bool { return s.User != nil }

// Role is the session user's role, or the empty Role while anonymous.
func (s *Session) Role() user.Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}
