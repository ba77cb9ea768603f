// Package clock implements the per-employee IN/OUT state machine. Logs are
// append-only; the most recent entry defines current status.
package clock

import (
	"time"

	"github.com/frahmantamala/timetracker/internal/employee"
)

type ClockType string

const (
	TypeIn  ClockType = "IN"
	TypeOut ClockType = "OUT"
)

// ClockLog is a single clock event. Never updated or deleted.
type ClockLog struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	EmployeeID int64     `json:"employee_id" gorm:"column:employee_id;not null;index"`
	Type       ClockType `json:"type" gorm:"not null"`
	Timestamp  time.Time `json:"timestamp" gorm:"not null;index"`
}

func (ClockLog) TableName() string {
	return "clock_logs"
}

// ClockResult is returned by every successful clock operation: the appended
// log plus hours worked so far today, computed after the append.
type ClockResult struct {
	Success    bool      `json:"success"`
	Type       ClockType `json:"type"`
	Timestamp  time.Time `json:"timestamp"`
	HoursToday float64   `json:"hours_today"`
}

// StatusResult is the read-only view: current status and the next allowed
// action.
type StatusResult struct {
	Status     ClockType `json:"status"`
	NextAction ClockType `json:"next_action"`
	HoursToday float64   `json:"hours_today"`
}

// Repository defines data access for clock logs. Single-row lookups return
// (nil, nil) when no row matches.
type Repository interface {
	// LastLog returns the employee's most recent log by timestamp.
	LastLog(employeeID int64) (*ClockLog, error)
	Append(log *ClockLog) error
	// LastLogBefore is the carry-over lookup: the most recent log strictly
	// before t, by timestamp descending.
	LastLogBefore(employeeID int64, t time.Time) (*ClockLog, error)
	// ListInWindow returns logs with start <= timestamp <= end ascending.
	// Both bounds are inclusive.
	ListInWindow(employeeID int64, start, end time.Time) ([]*ClockLog, error)
}

// Authenticator resolves an employee from a device session token and a
// passcode.
type Authenticator interface {
	Identify(deviceToken, passcode string) (propertyID int64, emp *employee.Employee, err error)
}

// HoursCalculator reports worked hours for an employee over a window.
type HoursCalculator interface {
	HoursForWindow(employeeID int64, start, end time.Time) (float64, error)
}
