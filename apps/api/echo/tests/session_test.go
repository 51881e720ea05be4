package tests

import (
	"net/http"
	"testing"

	"github.com/elimuhub/elimu/core/portal"
	"github.com/elimuhub/elimu/core/session"
)

func Test_sessionApi_retrieve(t *testing.T) {
	// no session header: a fresh anonymous session is begun
	rec := do(httpTest{method: http.MethodGet, path: "/v1/session"})
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	s := decodeSession(t, rec)
	if s.ID == "" {
		t.Error("expected a session ID")
	}
	if s.View != session.ViewHome {
		t.Errorf("view = %v; want %v", s.View, session.ViewHome)
	}
	if s.User != nil {
		t.Error("expected an anonymous session")
	}

	// the header round-trips
	rec = do(httpTest{method: http.MethodGet, path: "/v1/session", session: s.ID})
	if got := decodeSession(t, rec); got.ID != s.ID {
		t.Errorf("ID = %v; want %v", got.ID, s.ID)
	}

	// unknown session
	tt := httpTest{
		method: http.MethodGet, path: "/v1/session", session: "ses-nope",
		wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"}),
	}
	checkCodeAndData(t, tt, do(tt))
}

func Test_sessionApi_navigate(t *testing.T) {
	s := beginSession(t)

	tests := []httpTest{
		{
			name: "Session required", method: http.MethodPost, path: "/v1/session/navigate",
			body: []byte(`{"view":"about"}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "session required"}),
		},
		{
			name: "Unknown view", method: http.MethodPost, path: "/v1/session/navigate",
			body: []byte(`{"view":"lol"}`), session: s.ID, wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"view": "invalid view"}),
		},
		{
			name: "View required", method: http.MethodPost, path: "/v1/session/navigate",
			body: []byte(`{}`), session: s.ID, wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"view": "this field is required"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) { checkCodeAndData(t, tt, do(tt)) })
	}

	t.Run("Navigation replaces the view", func(t *testing.T) {
		rec := do(httpTest{
			method: http.MethodPost, path: "/v1/session/navigate",
			body: []byte(`{"view":"academics"}`), session: s.ID,
		})
		if got := decodeSession(t, rec); got.View != session.ViewAcademics {
			t.Errorf("view = %v; want %v", got.View, session.ViewAcademics)
		}
	})

	t.Run("Dashboard is guarded while anonymous", func(t *testing.T) {
		rec := do(httpTest{
			method: http.MethodPost, path: "/v1/session/navigate",
			body: []byte(`{"view":"dashboard"}`), session: s.ID,
		})
		if got := decodeSession(t, rec); got.View != session.ViewLogin {
			t.Errorf("view = %v; want %v", got.View, session.ViewLogin)
		}
	})
}

func Test_sessionApi_selectTab(t *testing.T) {
	t.Run("Anonymous selection lands on login", func(t *testing.T) {
		s := beginSession(t)
		rec := do(httpTest{
			method: http.MethodPost, path: "/v1/session/tab",
			body: []byte(`{"tab":"schedule"}`), session: s.ID,
		})
		got := decodeSession(t, rec)
		if got.View != session.ViewLogin {
			t.Errorf("view = %v; want %v", got.View, session.ViewLogin)
		}
		if got.Tab != "" {
			t.Errorf("tab = %v; want empty", got.Tab)
		}
	})

	t.Run("Unentitled tab falls back to the default", func(t *testing.T) {
		s := beginSession(t)
		if _, err := sessSvc.LoginSucceeded(s.ID, getUser(t, "amina@school.example")); err != nil {
			t.Fatalf("LoginSucceeded(): %v", err)
		}
		rec := do(httpTest{
			method: http.MethodPost, path: "/v1/session/tab",
			body: []byte(`{"tab":"users"}`), session: s.ID,
		})
		if got := decodeSession(t, rec); got.Tab != portal.DefaultTab {
			t.Errorf("tab = %v; want %v", got.Tab, portal.DefaultTab)
		}
	})

	t.Run("Unknown tab is rejected", func(t *testing.T) {
		s := beginSession(t)
		tt := httpTest{
			method: http.MethodPost, path: "/v1/session/tab",
			body: []byte(`{"tab":"lol"}`), session: s.ID, wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"tab": "invalid tab"}),
		}
		checkCodeAndData(t, tt, do(tt))
	})
}
