// Package report aggregates clock logs into worked hours over arbitrary
// windows, and builds the admin hours report across a property's staff.
package report

import (
	"time"

	"github.com/frahmantamala/timetracker/internal/clock"
	"github.com/frahmantamala/timetracker/internal/employee"
)

// EmployeeHoursSummary is one row of the property hours report.
type EmployeeHoursSummary struct {
	EmployeeID int64                  `json:"employee_id"`
	FirstName  string                 `json:"first_name"`
	LastName   string                 `json:"last_name"`
	IsAdmin    bool                   `json:"is_admin"`
	Status     string                 `json:"status"`
	PayType    string                 `json:"pay_type"`
	PayAmount  *int64                 `json:"pay_amount_cents,omitempty"`
	Hours      float64                `json:"hours"`
	ClockedIn  bool                   `json:"clocked_in"`
	Entries    []*clock.ClockLog      `json:"clock_entries"`
	PayHistory []*employee.PayHistory `json:"pay_history,omitempty"`
	Modules    []string               `json:"modules"`
}

// HoursReport is the full report payload for a window.
type HoursReport struct {
	Start     time.Time               `json:"start"`
	End       time.Time               `json:"end"`
	Employees []*EmployeeHoursSummary `json:"employees"`
}

// ClockLogReader is the slice of clock storage the aggregator needs.
type ClockLogReader interface {
	LastLogBefore(employeeID int64, t time.Time) (*clock.ClockLog, error)
	ListInWindow(employeeID int64, start, end time.Time) ([]*clock.ClockLog, error)
	LastLog(employeeID int64) (*clock.ClockLog, error)
}

// EmployeeLister provides the property roster for report rows.
type EmployeeLister interface {
	ListByProperty(propertyID int64) ([]*employee.Employee, error)
	ListPayHistory(employeeID int64) ([]*employee.PayHistory, error)
}

// ModuleResolver reports the effective module keys per employee.
type ModuleResolver interface {
	ResolveForEmployee(propertyID, employeeID int64) ([]string, error)
}
