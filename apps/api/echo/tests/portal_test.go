package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/elimuhub/elimu/core/portal"
)

func Test_portalApi_tabs(t *testing.T) {
	student := getUser(t, "amina@school.example")
	principal := getUser(t, "chiku@school.example")

	tests := []httpTest{
		{name: "Auth required", method: http.MethodGet, path: "/v1/portal/tabs", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Student tabs", method: http.MethodGet, path: "/v1/portal/tabs",
			token: getToken(t, student), wantCode: http.StatusOK,
			wantData: marchallObj(t, portal.NavTabs("student")),
		},
		{
			name: "Principal tabs", method: http.MethodGet, path: "/v1/portal/tabs",
			token: getToken(t, principal), wantCode: http.StatusOK,
			wantData: marchallObj(t, portal.NavTabs("principal")),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) { checkCodeAndData(t, tt, do(tt)) })
	}
}

func Test_portalApi_config(t *testing.T) {
	student := getUser(t, "amina@school.example")
	teacher := getUser(t, "baraka@school.example")

	t.Run("Module defaults to overview", func(t *testing.T) {
		rec := do(httpTest{method: http.MethodGet, path: "/v1/portal/config", token: getToken(t, student)})
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
		}
		var cfg portal.ViewConfig
		if err := json.Unmarshal(rec.Body.Bytes(), &cfg); err != nil {
			t.Fatalf("unmarshalling ViewConfig: %v", err)
		}
		if cfg.Module != portal.ModuleOverview {
			t.Errorf("module = %v; want %v", cfg.Module, portal.ModuleOverview)
		}
	})

	t.Run("Capability drives the dataset", func(t *testing.T) {
		rec := do(httpTest{
			method: http.MethodGet, path: "/v1/portal/config?module=assignments",
			token: getToken(t, teacher),
		})
		var cfg portal.ViewConfig
		if err := json.Unmarshal(rec.Body.Bytes(), &cfg); err != nil {
			t.Fatalf("unmarshalling ViewConfig: %v", err)
		}
		if cfg.Dataset != "submissions" {
			t.Errorf("dataset = %v; want submissions", cfg.Dataset)
		}
	})

	t.Run("Scope is clamped per capability", func(t *testing.T) {
		// students cannot widen to the students scope
		rec := do(httpTest{
			method: http.MethodGet, path: "/v1/portal/config?module=attendance&scope=students",
			token: getToken(t, student),
		})
		var cfg portal.ViewConfig
		if err := json.Unmarshal(rec.Body.Bytes(), &cfg); err != nil {
			t.Fatalf("unmarshalling ViewConfig: %v", err)
		}
		if cfg.Scope != portal.ScopeMe {
			t.Errorf("scope = %v; want %v", cfg.Scope, portal.ScopeMe)
		}
	})

	t.Run("Unentitled module", func(t *testing.T) {
		tt := httpTest{
			method: http.MethodGet, path: "/v1/portal/config?module=users",
			token: getToken(t, student), wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermDenied),
		}
		checkCodeAndData(t, tt, do(tt))
	})
}
