// Package modules resolves the effective set of enabled feature modules for
// a property and, within it, for each employee.
package modules

import (
	"time"

	"github.com/frahmantamala/timetracker/internal/employee"
)

const (
	KeyEmployeeDashboard = "employee-dashboard"
	KeyTimekeeping       = "timekeeping"
	KeyTasks             = "tasks"
	KeyReports           = "reports"
	KeyTeam              = "team"
	KeySettings          = "settings"
)

// AllModuleKeys is every module the platform knows about, in display order.
var AllModuleKeys = []string{
	KeyEmployeeDashboard,
	KeyTimekeeping,
	KeyTasks,
	KeyReports,
	KeyTeam,
	KeySettings,
}

// BaseModuleKeys are always present regardless of configuration.
var BaseModuleKeys = []string{KeyEmployeeDashboard}

var known = func() map[string]struct{} {
	m := make(map[string]struct{}, len(AllModuleKeys))
	for _, k := range AllModuleKeys {
		m[k] = struct{}{}
	}
	return m
}()

func IsModuleKey(value string) bool {
	_, ok := known[value]
	return ok
}

// Normalize drops unknown keys and duplicates, preserving first-seen order.
func Normalize(values []string) []string {
	keys := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if !IsModuleKey(v) {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		keys = append(keys, v)
	}
	return keys
}

// EnsureBase unions the mandatory base modules into keys. Base keys come
// first so the result is stable.
func EnsureBase(keys []string) []string {
	merged := make([]string, 0, len(BaseModuleKeys)+len(keys))
	seen := make(map[string]struct{}, len(BaseModuleKeys)+len(keys))
	for _, k := range BaseModuleKeys {
		seen[k] = struct{}{}
		merged = append(merged, k)
	}
	for _, k := range keys {
		if !IsModuleKey(k) {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		merged = append(merged, k)
	}
	return merged
}

// PropertyModule grants a module key to a property.
type PropertyModule struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	PropertyID int64     `json:"property_id" gorm:"column:property_id;not null;uniqueIndex:idx_property_module"`
	ModuleKey  string    `json:"module_key" gorm:"column:module_key;not null;uniqueIndex:idx_property_module"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (PropertyModule) TableName() string {
	return "property_modules"
}

// EmployeeModule grants a module key to an individual employee, within the
// property's allowed set.
type EmployeeModule struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	EmployeeID int64     `json:"employee_id" gorm:"column:employee_id;not null;uniqueIndex:idx_employee_module"`
	ModuleKey  string    `json:"module_key" gorm:"column:module_key;not null;uniqueIndex:idx_employee_module"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (EmployeeModule) TableName() string {
	return "employee_modules"
}

// EmployeeDirectory scopes employee lookups to a property. Lookups return
// (nil, nil) when the employee does not exist under that property.
type EmployeeDirectory interface {
	GetForProperty(propertyID, employeeID int64) (*employee.Employee, error)
}

// Repository defines data access for module grants.
type Repository interface {
	ListPropertyModuleKeys(propertyID int64) ([]string, error)
	ListEmployeeModuleKeys(employeeID int64) ([]string, error)
	// ReplacePropertyModules swaps the property grant set and prunes employee
	// grants that fall outside it, all in one transaction.
	ReplacePropertyModules(propertyID int64, keys []string) error
	ReplaceEmployeeModules(employeeID int64, keys []string) error
	// EnsurePropertyModules inserts any missing grants without removing
	// existing ones; used by seeding and backfills.
	EnsurePropertyModules(propertyID int64, keys []string) error
	EnsureEmployeeModules(employeeID int64, keys []string) error
}
