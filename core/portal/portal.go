// Package portal holds the role-resolution logic shared by every dashboard
// module: which side-nav tabs a role may open, and which view configuration a
// module presents for a given role. All of it is table-driven; adding a role or
// module means adding table entries, not editing conditionals across modules.
package portal

import (
	"github.com/elimuhub/elimu/core/user"
)

// ModuleID identifies a dashboard module. DashboardTab values are ModuleIDs;
// the shell mounts exactly one module per active tab.
type ModuleID string

const (
	ModuleOverview    ModuleID = "overview"
	ModuleMessenger   ModuleID = "messenger"
	ModuleVault       ModuleID = "vault"
	ModuleSchedule    ModuleID = "schedule"
	ModuleAttendance  ModuleID = "attendance"
	ModulePerformance ModuleID = "performance"
	ModuleAssignments ModuleID = "assignments"
	ModuleConnections ModuleID = "connections"
	ModuleFeed        ModuleID = "feed"
	ModuleUsers       ModuleID = "users"
)

// DefaultTab is the tab every fresh dashboard session starts on, and the tab
// the shell falls back to when a role is not entitled to the selected one.
const DefaultTab = ModuleOverview

// AllModules is the side-nav display order.
var AllModules = []ModuleID{
	ModuleOverview, ModuleMessenger, ModuleVault, ModuleSchedule, ModuleAttendance,
	ModulePerformance, ModuleAssignments, ModuleConnections, ModuleFeed, ModuleUsers,
}

var moduleLabels = map[ModuleID]string{
	ModuleOverview:    "Overview",
	ModuleMessenger:   "Messenger",
	ModuleVault:       "Vault",
	ModuleSchedule:    "Schedule",
	ModuleAttendance:  "Attendance",
	ModulePerformance: "Performance",
	ModuleAssignments: "Assignments",
	ModuleConnections: "Connections",
	ModuleFeed:        "Community Feed",
	ModuleUsers:       "User Management",
}

func (m ModuleID) IsValid() bool {
	_, ok := moduleLabels[m]
	return ok
}

func (m ModuleID) Label() string { return moduleLabels[m] }

// NavTab is one visible side-navigation entry.
type NavTab struct {
	ID    ModuleID `json:"id"`
	Label string   `json:"label"`
}

var (
	// baseline entitlement per capability class
	capabilityTabs = map[user.Capability][]ModuleID{
		user.CapabilityIndividual: {
			ModuleOverview, ModuleMessenger, ModuleVault, ModuleSchedule, ModuleAttendance,
			ModulePerformance, ModuleAssignments, ModuleConnections, ModuleFeed,
		},
		user.CapabilityInstructional: {
			ModuleOverview, ModuleMessenger, ModuleVault, ModuleSchedule, ModuleAttendance,
			ModulePerformance, ModuleAssignments, ModuleConnections, ModuleFeed,
		},
		user.CapabilityLeadership: {
			ModuleOverview, ModuleMessenger, ModuleVault, ModuleSchedule, ModuleAttendance,
			ModulePerformance, ModuleAssignments, ModuleConnections, ModuleFeed, ModuleUsers,
		},
		user.CapabilityExternal: {
			ModuleOverview, ModuleMessenger, ModuleVault, ModuleSchedule,
			ModuleConnections, ModuleFeed,
		},
	}

	// per-role exceptions to the capability baseline
	roleTabRemovals = map[user.Role][]ModuleID{
		user.RolePrincipal: {ModuleAssignments},
	}
)

// Entitled reports whether a role may open the given tab. ModuleOverview is
// always allowed.
func Entitled(role user.Role, tab ModuleID) bool {
	if tab == ModuleOverview {
		return true
	}
	for _, removed := range roleTabRemovals[role] {
		if removed == tab {
			return false
		}
	}
	for _, m := range capabilityTabs[role.Capability()] {
		if m == tab {
			return true
		}
	}
	return false
}

// NavTabs computes the visible side-navigation entries for a role, in display
// order. Pure function of the role.
func NavTabs(role user.Role) []NavTab {
	tabs := make([]NavTab, 0, len(AllModules))
	for _, m := range AllModules {
		if Entitled(role, m) {
			tabs = append(tabs, NavTab{ID: m, Label: m.Label()})
		}
	}
	return tabs
}
