package portal

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elimuhub/elimu/core/user"
)

// Resolve must be total: every (module, role, scope) combination, including
// roles outside the closed set, yields a well-formed configuration.
func TestResolve_total(t *testing.T) {
	roles := append([]user.Role{}, user.AllRoles...)
	roles = append(roles, user.Role("contractor"), user.Role(""))

	for _, role := range roles {
		for _, module := range AllModules {
			for _, scope := range []Scope{"", ScopeMe, ScopeStudents, Scope("bogus")} {
				t.Run(fmt.Sprintf("%s/%s/%s", role, module, scope), func(t *testing.T) {
					cfg := Resolve(module, role, scope)

					assert.Equal(t, module, cfg.Module)
					assert.NotEmpty(t, cfg.SubTabs)
					assert.NotEmpty(t, cfg.Cards)
					assert.NotEmpty(t, cfg.Dataset)

					if len(cfg.Scopes) > 0 {
						assert.Contains(t, cfg.Scopes, cfg.Scope, "resolved scope must be legal")
					} else {
						assert.Empty(t, cfg.Scope)
					}
				})
			}
		}
	}
}

func TestResolve_capabilityDatasets(t *testing.T) {
	tests := []struct {
		role        user.Role
		module      ModuleID
		wantDataset string
		wantSubTab  string
	}{
		{user.RoleStudent, ModuleAssignments, "assignments", "due"},
		{user.RoleTeacher, ModuleAssignments, "submissions", "grading"},
		{user.RoleAdmin, ModuleAssignments, "enrollment", "oversight"},
		{user.RoleStudent, ModuleMessenger, "messages", "chats"},
		{user.RolePrincipal, ModuleMessenger, "messages", "broadcasts"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s", tt.role, tt.module), func(t *testing.T) {
			cfg := Resolve(tt.module, tt.role, "")
			assert.Equal(t, tt.wantDataset, cfg.Dataset)
			assert.Contains(t, cfg.SubTabs, tt.wantSubTab)
		})
	}
}

func TestResolve_roleCardOverrides(t *testing.T) {
	principal := Resolve(ModuleOverview, user.RolePrincipal, "")
	bursar := Resolve(ModuleOverview, user.RoleBursar, "")
	admissions := Resolve(ModuleOverview, user.RoleAdmissions, "")
	admin := Resolve(ModuleOverview, user.RoleAdmin, "")

	cardLabels := func(cfg ViewConfig) []string {
		labels := make([]string, 0, len(cfg.Cards))
		for _, c := range cfg.Cards {
			labels = append(labels, c.Label)
		}
		return labels
	}

	assert.Contains(t, cardLabels(principal), "Staff on Duty")
	assert.Contains(t, cardLabels(bursar), "Fees Collected")
	assert.Contains(t, cardLabels(admissions), "Applications")

	// admin keeps the leadership baseline
	assert.Contains(t, cardLabels(admin), "Staff")
	assert.NotContains(t, cardLabels(admin), "Fees Collected")
}

func TestResolve_scopeClamping(t *testing.T) {
	// scoped module, role offered both toggles: requested scope sticks
	cfg := Resolve(ModuleAttendance, user.RoleTeacher, ScopeMe)
	assert.Equal(t, ScopeMe, cfg.Scope)
	assert.Equal(t, "attendance:me", cfg.Dataset)

	// default scope is the first legal one
	cfg = Resolve(ModuleAttendance, user.RoleTeacher, "")
	assert.Equal(t, ScopeStudents, cfg.Scope)
	assert.Equal(t, "attendance:students", cfg.Dataset)

	// student never gets the students toggle
	cfg = Resolve(ModuleAttendance, user.RoleStudent, ScopeStudents)
	assert.Equal(t, ScopeMe, cfg.Scope)
	assert.Equal(t, []Scope{ScopeMe}, cfg.Scopes)

	// unscoped module carries no toggle at all
	cfg = Resolve(ModuleFeed, user.RoleTeacher, ScopeStudents)
	assert.Empty(t, cfg.Scope)
	assert.Empty(t, cfg.Scopes)
}

func TestClampScope(t *testing.T) {
	tests := []struct {
		name   string
		module ModuleID
		role   user.Role
		scope  Scope
		want   Scope
	}{
		{name: "student cannot widen", module: ModuleAttendance, role: user.RoleStudent, scope: ScopeStudents, want: ScopeMe},
		{name: "vendor cannot widen", module: ModulePerformance, role: user.RoleVendor, scope: ScopeStudents, want: ScopeMe},
		{name: "staff keeps students", module: ModuleAttendance, role: user.RoleTeacher, scope: ScopeStudents, want: ScopeStudents},
		{name: "staff keeps me", module: ModulePerformance, role: user.RolePrincipal, scope: ScopeMe, want: ScopeMe},
		{name: "empty defaults to first legal", module: ModuleVault, role: user.RoleAdmin, scope: "", want: ScopeStudents},
		{name: "bogus clamps", module: ModuleSchedule, role: user.RoleStudent, scope: Scope("bogus"), want: ScopeMe},
		{name: "unscoped module narrows to me", module: ModuleFeed, role: user.RolePrincipal, scope: ScopeStudents, want: ScopeMe},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampScope(tt.module, tt.role, tt.scope))
		})
	}
}

func TestScopes(t *testing.T) {
	assert.Nil(t, Scopes(ModuleFeed, user.RoleTeacher))
	assert.Equal(t, []Scope{ScopeStudents, ScopeMe}, Scopes(ModuleVault, user.RoleTeacher))
	assert.Equal(t, []Scope{ScopeStudents, ScopeMe}, Scopes(ModuleVault, user.RolePrincipal))
	assert.Equal(t, []Scope{ScopeMe}, Scopes(ModuleVault, user.RoleStudent))
	assert.Equal(t, []Scope{ScopeMe}, Scopes(ModuleVault, user.RoleVendor))
}
