package portal

import (
	"github.com/elimuhub/elimu/core/user"
)

// Scope is the secondary view toggle some modules expose: a staff member can
// flip between their own records and their students'.
type Scope string

const (
	ScopeMe       Scope = "me"
	ScopeStudents Scope = "students"
)

// StatCard names one stat card a module displays; values are filled from the
// module's dataset at render time.
type StatCard struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// ViewConfig is the resolved presentation configuration for one
// (module, role, scope) combination.
type ViewConfig struct {
	Module  ModuleID   `json:"module"`
	SubTabs []string   `json:"sub_tabs"`
	Cards   []StatCard `json:"cards"`
	Dataset string     `json:"dataset"`
	Scope   Scope      `json:"scope,omitempty"`
	Scopes  []Scope    `json:"scopes,omitempty"`
}

// modules that expose the me/students toggle at all
var scopedModules = map[ModuleID]bool{
	ModuleVault:       true,
	ModuleSchedule:    true,
	ModuleAttendance:  true,
	ModulePerformance: true,
}

// base view configurations keyed by module then capability class
var moduleConfigs = map[ModuleID]map[user.Capability]ViewConfig{
	ModuleOverview: {
		user.CapabilityIndividual: {
			SubTabs: []string{"today", "announcements"},
			Cards: []StatCard{
				{ID: "classes_today", Label: "Classes Today"},
				{ID: "assignments_due", Label: "Assignments Due"},
				{ID: "attendance_rate", Label: "My Attendance"},
			},
			Dataset: "overview",
		},
		user.CapabilityInstructional: {
			SubTabs: []string{"today", "classes", "announcements"},
			Cards: []StatCard{
				{ID: "classes_today", Label: "Classes Today"},
				{ID: "pending_grading", Label: "Pending Grading"},
				{ID: "class_attendance", Label: "Class Attendance"},
			},
			Dataset: "overview",
		},
		user.CapabilityLeadership: {
			SubTabs: []string{"today", "school", "announcements"},
			Cards: []StatCard{
				{ID: "enrollment", Label: "Enrollment"},
				{ID: "staff_count", Label: "Staff"},
				{ID: "attendance_rate", Label: "School Attendance"},
			},
			Dataset: "overview",
		},
		user.CapabilityExternal: {
			SubTabs: []string{"today"},
			Cards: []StatCard{
				{ID: "notices", Label: "Notices"},
			},
			Dataset: "overview",
		},
	},
	ModuleMessenger: {
		user.CapabilityIndividual: {
			SubTabs: []string{"chats", "groups"},
			Cards:   []StatCard{{ID: "unread", Label: "Unread"}},
			Dataset: "messages",
		},
		user.CapabilityInstructional: {
			SubTabs: []string{"chats", "groups", "classes"},
			Cards:   []StatCard{{ID: "unread", Label: "Unread"}},
			Dataset: "messages",
		},
		user.CapabilityLeadership: {
			SubTabs: []string{"chats", "groups", "broadcasts"},
			Cards:   []StatCard{{ID: "unread", Label: "Unread"}},
			Dataset: "messages",
		},
		user.CapabilityExternal: {
			SubTabs: []string{"chats"},
			Cards:   []StatCard{{ID: "unread", Label: "Unread"}},
			Dataset: "messages",
		},
	},
	ModuleVault: {
		user.CapabilityIndividual: {
			SubTabs: []string{"my_files", "shared"},
			Cards:   []StatCard{{ID: "file_count", Label: "Files"}},
			Dataset: "files",
		},
		user.CapabilityInstructional: {
			SubTabs: []string{"my_files", "shared", "class_material"},
			Cards:   []StatCard{{ID: "file_count", Label: "Files"}},
			Dataset: "files",
		},
		user.CapabilityLeadership: {
			SubTabs: []string{"all_files", "shared", "archive"},
			Cards:   []StatCard{{ID: "file_count", Label: "Files"}, {ID: "storage", Label: "Storage Used"}},
			Dataset: "files",
		},
		user.CapabilityExternal: {
			SubTabs: []string{"shared"},
			Cards:   []StatCard{{ID: "file_count", Label: "Files"}},
			Dataset: "files",
		},
	},
	ModuleSchedule: {
		user.CapabilityIndividual: {
			SubTabs: []string{"week", "day"},
			Cards:   []StatCard{{ID: "current_period", Label: "Current Period"}},
			Dataset: "periods",
		},
		user.CapabilityInstructional: {
			SubTabs: []string{"week", "day", "classes"},
			Cards:   []StatCard{{ID: "current_period", Label: "Current Period"}, {ID: "load", Label: "Teaching Load"}},
			Dataset: "periods",
		},
		user.CapabilityLeadership: {
			SubTabs: []string{"week", "day", "rooms"},
			Cards:   []StatCard{{ID: "current_period", Label: "Current Period"}, {ID: "rooms_in_use", Label: "Rooms In Use"}},
			Dataset: "periods",
		},
		user.CapabilityExternal: {
			SubTabs: []string{"day"},
			Cards:   []StatCard{{ID: "current_period", Label: "Current Period"}},
			Dataset: "periods",
		},
	},
	ModuleAttendance: {
		user.CapabilityIndividual: {
			SubTabs: []string{"record"},
			Cards: []StatCard{
				{ID: "present", Label: "Present"},
				{ID: "absent", Label: "Absent"},
				{ID: "late", Label: "Late"},
			},
			Dataset: "attendance",
		},
		user.CapabilityInstructional: {
			SubTabs: []string{"record", "register"},
			Cards: []StatCard{
				{ID: "present", Label: "Present"},
				{ID: "absent", Label: "Absent"},
				{ID: "late", Label: "Late"},
			},
			Dataset: "attendance",
		},
		user.CapabilityLeadership: {
			SubTabs: []string{"record", "register", "reports"},
			Cards: []StatCard{
				{ID: "attendance_rate", Label: "Attendance Rate"},
				{ID: "absent", Label: "Absent Today"},
			},
			Dataset: "attendance",
		},
	},
	ModulePerformance: {
		user.CapabilityIndividual: {
			SubTabs: []string{"grades", "progress"},
			Cards: []StatCard{
				{ID: "average", Label: "Average"},
				{ID: "best_subject", Label: "Best Subject"},
			},
			Dataset: "grades",
		},
		user.CapabilityInstructional: {
			SubTabs: []string{"gradebook", "analysis"},
			Cards: []StatCard{
				{ID: "class_average", Label: "Class Average"},
				{ID: "graded", Label: "Graded"},
			},
			Dataset: "grades",
		},
		user.CapabilityLeadership: {
			SubTabs: []string{"reports", "analysis"},
			Cards: []StatCard{
				{ID: "school_average", Label: "School Average"},
				{ID: "top_class", Label: "Top Class"},
			},
			Dataset: "grades",
		},
	},
	ModuleAssignments: {
		user.CapabilityIndividual: {
			SubTabs: []string{"due", "submitted"},
			Cards: []StatCard{
				{ID: "due", Label: "Due"},
				{ID: "submitted", Label: "Submitted"},
			},
			Dataset: "assignments",
		},
		user.CapabilityInstructional: {
			SubTabs: []string{"submissions", "grading"},
			Cards: []StatCard{
				{ID: "submissions", Label: "Submissions"},
				{ID: "ungraded", Label: "Ungraded"},
			},
			Dataset: "submissions",
		},
		user.CapabilityLeadership: {
			SubTabs: []string{"enrollment", "oversight"},
			Cards: []StatCard{
				{ID: "registered", Label: "Registered"},
				{ID: "pending", Label: "Pending"},
			},
			Dataset: "enrollment",
		},
	},
	ModuleConnections: {
		user.CapabilityIndividual: {
			SubTabs: []string{"connected", "suggestions"},
			Cards:   []StatCard{{ID: "connections", Label: "Connections"}},
			Dataset: "connections",
		},
		user.CapabilityInstructional: {
			SubTabs: []string{"connected", "suggestions", "classes"},
			Cards:   []StatCard{{ID: "connections", Label: "Connections"}},
			Dataset: "connections",
		},
		user.CapabilityLeadership: {
			SubTabs: []string{"connected", "directory"},
			Cards:   []StatCard{{ID: "connections", Label: "Connections"}},
			Dataset: "connections",
		},
		user.CapabilityExternal: {
			SubTabs: []string{"connected"},
			Cards:   []StatCard{{ID: "connections", Label: "Connections"}},
			Dataset: "connections",
		},
	},
	ModuleFeed: {
		user.CapabilityIndividual: {
			SubTabs: []string{"feed", "events"},
			Cards:   []StatCard{{ID: "posts", Label: "Posts"}},
			Dataset: "posts",
		},
		user.CapabilityInstructional: {
			SubTabs: []string{"feed", "events", "compose"},
			Cards:   []StatCard{{ID: "posts", Label: "Posts"}},
			Dataset: "posts",
		},
		user.CapabilityLeadership: {
			SubTabs: []string{"feed", "events", "compose", "moderation"},
			Cards:   []StatCard{{ID: "posts", Label: "Posts"}, {ID: "flagged", Label: "Flagged"}},
			Dataset: "posts",
		},
		user.CapabilityExternal: {
			SubTabs: []string{"feed", "events"},
			Cards:   []StatCard{{ID: "posts", Label: "Posts"}},
			Dataset: "posts",
		},
	},
	ModuleUsers: {
		user.CapabilityLeadership: {
			SubTabs: []string{"all", "staff", "students"},
			Cards: []StatCard{
				{ID: "total", Label: "Total Users"},
				{ID: "active", Label: "Active"},
				{ID: "unverified", Label: "Unverified"},
			},
			Dataset: "users",
		},
	},
}

// per-role card overrides on top of the capability baseline
var roleCardOverrides = map[user.Role]map[ModuleID][]StatCard{
	user.RolePrincipal: {
		ModuleOverview: {
			{ID: "enrollment", Label: "Enrollment"},
			{ID: "staff_on_duty", Label: "Staff on Duty"},
			{ID: "attendance_rate", Label: "School Attendance"},
		},
	},
	user.RoleBursar: {
		ModuleOverview: {
			{ID: "fees_collected", Label: "Fees Collected"},
			{ID: "fees_outstanding", Label: "Outstanding"},
			{ID: "enrollment", Label: "Enrollment"},
		},
	},
	user.RoleAdmissions: {
		ModuleOverview: {
			{ID: "applications", Label: "Applications"},
			{ID: "enrollment", Label: "Enrollment"},
			{ID: "pending_review", Label: "Pending Review"},
		},
	},
}

// fallbackConfig is the mandatory default branch: no (module, role) pair may
// ever resolve to an empty configuration.
var fallbackConfig = ViewConfig{
	SubTabs: []string{"main"},
	Cards:   []StatCard{{ID: "info", Label: "Overview"}},
	Dataset: "general",
}

// Scopes computes which scope toggles are legal for a role in a module. A role
// with no meaningful "students" view is never offered that toggle.
func Scopes(module ModuleID, role user.Role) []Scope {
	if !scopedModules[module] {
		return nil
	}
	switch role.Capability() {
	case user.CapabilityInstructional, user.CapabilityLeadership:
		return []Scope{ScopeStudents, ScopeMe}
	default:
		return []Scope{ScopeMe}
	}
}

// Resolve maps (module, role, scope) to the view configuration to present.
// It is pure and total: every role in the closed set (and any unknown role,
// via the External fallback) yields a well-formed, non-empty configuration,
// and an illegal requested scope is clamped to the first legal one.
func Resolve(module ModuleID, role user.Role, scope Scope) ViewConfig {
	cfg, ok := moduleConfigs[module][role.Capability()]
	if !ok {
		cfg = fallbackConfig
	}
	cfg.Module = module

	if cards, ok := roleCardOverrides[role][module]; ok {
		cfg.Cards = cards
	}

	cfg.Scopes = Scopes(module, role)
	if len(cfg.Scopes) > 0 {
		cfg.Scope = clampScope(scope, cfg.Scopes)
		cfg.Dataset = cfg.Dataset + ":" + string(cfg.Scope)
	}
	return cfg
}

// ClampScope maps a requested scope to one legal for the role in the module.
// An illegal or empty scope falls back to the first legal one, and a module
// with no toggle always resolves to "me". Services querying scoped data run
// the caller-supplied scope through this before it reaches storage.
func ClampScope(module ModuleID, role user.Role, scope Scope) Scope {
	legal := Scopes(module, role)
	if len(legal) == 0 {
		return ScopeMe
	}
	return clampScope(scope, legal)
}

func clampScope(scope Scope, legal []Scope) Scope {
	for _, s := range legal {
		if s == scope {
			return s
		}
	}
	return legal[0]
}
