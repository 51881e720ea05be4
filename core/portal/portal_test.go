package portal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elimuhub/elimu/core/user"
)

func tabIDs(tabs []NavTab) []ModuleID {
	ids := make([]ModuleID, 0, len(tabs))
	for _, tab := range tabs {
		ids = append(ids, tab.ID)
	}
	return ids
}

func TestNavTabs(t *testing.T) {
	tests := []struct {
		name        string
		role        user.Role
		wantVisible []ModuleID
		wantHidden  []ModuleID
	}{
		{
			name:        "student sees assignments but not user management",
			role:        user.RoleStudent,
			wantVisible: []ModuleID{ModuleOverview, ModuleAssignments, ModulePerformance},
			wantHidden:  []ModuleID{ModuleUsers},
		},
		{
			name:        "teacher sees assignments but not user management",
			role:        user.RoleTeacher,
			wantVisible: []ModuleID{ModuleOverview, ModuleAssignments, ModuleAttendance},
			wantHidden:  []ModuleID{ModuleUsers},
		},
		{
			name:        "principal sees user management but not assignments",
			role:        user.RolePrincipal,
			wantVisible: []ModuleID{ModuleOverview, ModuleUsers, ModulePerformance},
			wantHidden:  []ModuleID{ModuleAssignments},
		},
		{
			name:        "admin sees everything",
			role:        user.RoleAdmin,
			wantVisible: AllModules,
		},
		{
			name:        "vendor gets the external subset",
			role:        user.RoleVendor,
			wantVisible: []ModuleID{ModuleOverview, ModuleMessenger, ModuleVault, ModuleSchedule},
			wantHidden:  []ModuleID{ModuleAttendance, ModulePerformance, ModuleAssignments, ModuleUsers},
		},
		{
			name:        "unknown role falls back to external",
			role:        user.Role("contractor"),
			wantVisible: []ModuleID{ModuleOverview, ModuleFeed},
			wantHidden:  []ModuleID{ModuleAttendance, ModulePerformance, ModuleUsers},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := tabIDs(NavTabs(tt.role))
			assert.NotEmpty(t, ids)
			assert.Equal(t, ModuleOverview, ids[0], "overview always leads")
			for _, m := range tt.wantVisible {
				assert.Contains(t, ids, m)
			}
			for _, m := range tt.wantHidden {
				assert.NotContains(t, ids, m)
			}
		})
	}
}

func TestNavTabs_displayOrder(t *testing.T) {
	for _, role := range user.AllRoles {
		ids := tabIDs(NavTabs(role))

		// visible tabs keep the AllModules display order
		pos := make(map[ModuleID]int, len(AllModules))
		for i, m := range AllModules {
			pos[m] = i
		}
		for i := 1; i < len(ids); i++ {
			assert.Less(t, pos[ids[i-1]], pos[ids[i]], "role %s: tabs out of order", role)
		}
	}
}

func TestEntitled(t *testing.T) {
	assert.True(t, Entitled(user.RoleStudent, ModuleOverview))
	assert.True(t, Entitled(user.RoleVendor, ModuleOverview), "overview is always allowed")
	assert.True(t, Entitled(user.Role("ghost"), ModuleOverview))

	assert.False(t, Entitled(user.RoleStudent, ModuleUsers))
	assert.False(t, Entitled(user.RolePrincipal, ModuleAssignments), "per-role removal wins over capability baseline")
	assert.True(t, Entitled(user.RoleAdmin, ModuleAssignments))
	assert.False(t, Entitled(user.RoleVendor, ModulePerformance))
}
