// Package auth implements the three-tier kiosk credential chain: a
// property-scoped magic link authenticates a device, the device session plus
// an employee passcode identifies a person, and admins get a short-lived
// elevated session on top.
package auth

import (
	"context"
	"time"

	"github.com/frahmantamala/timetracker/internal/core/events"
	"github.com/frahmantamala/timetracker/internal/employee"
	"github.com/frahmantamala/timetracker/internal/property"
)

// MagicLink is the ephemeral credential emailed to a property's contact
// address. It is mutated once (verified) and never deleted, so the latest
// link for a device can always be looked up.
type MagicLink struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	Token      string    `json:"-" gorm:"uniqueIndex;not null"`
	PropertyID int64     `json:"property_id" gorm:"column:property_id;not null"`
	DeviceID   string    `json:"device_id" gorm:"column:device_id;not null;index"`
	ExpiresAt  time.Time `json:"expires_at" gorm:"column:expires_at;not null"`
	Verified   bool      `json:"verified" gorm:"default:false"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (MagicLink) TableName() string {
	return "magic_links"
}

// DeviceSession scopes a kiosk device to one property for 30 days.
type DeviceSession struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	Token      string    `json:"-" gorm:"uniqueIndex;not null"`
	DeviceID   string    `json:"device_id" gorm:"column:device_id;not null;index"`
	PropertyID int64     `json:"property_id" gorm:"column:property_id;not null"`
	ExpiresAt  time.Time `json:"expires_at" gorm:"column:expires_at;not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (DeviceSession) TableName() string {
	return "device_sessions"
}

// AdminSession is the short-lived elevated credential minted when a passcode
// identification matches an admin employee.
type AdminSession struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	Token      string    `json:"-" gorm:"uniqueIndex;not null"`
	PropertyID int64     `json:"property_id" gorm:"column:property_id;not null"`
	EmployeeID int64     `json:"employee_id" gorm:"column:employee_id;not null"`
	ExpiresAt  time.Time `json:"expires_at" gorm:"column:expires_at;not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (AdminSession) TableName() string {
	return "admin_sessions"
}

// RequestResult is returned by magic link issuance. Delivery failures are
// never surfaced, so this is always success once the link is persisted.
type RequestResult struct {
	Success bool `json:"success"`
}

type VerificationResult struct {
	Verified bool `json:"verified"`
}

// PollResult carries the device session once the link has been clicked.
type PollResult struct {
	Verified  bool       `json:"verified"`
	Token     string     `json:"token,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Identity is the outcome of a passcode identification. AdminToken is only
// set when the matched employee is an admin.
type Identity struct {
	EmployeeID     int64      `json:"employee_id"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	IsAdmin        bool       `json:"is_admin"`
	AdminToken     string     `json:"admin_token,omitempty"`
	AdminExpiresAt *time.Time `json:"admin_expires_at,omitempty"`
}

// SessionRepository defines data access for the credential chain. Single-row
// lookups return (nil, nil) when no row matches.
type SessionRepository interface {
	CreateMagicLink(ml *MagicLink) error
	GetMagicLinkByToken(token string) (*MagicLink, error)
	MarkMagicLinkVerified(id int64) error
	// LatestMagicLinkForDevice orders by created_at descending and takes one.
	LatestMagicLinkForDevice(deviceID string) (*MagicLink, error)
	FindLiveDeviceSession(deviceID string, propertyID int64, now time.Time) (*DeviceSession, error)
	GetLiveDeviceSessionByToken(token string, now time.Time) (*DeviceSession, error)
	CreateDeviceSession(s *DeviceSession) error
	GetLiveAdminSessionByToken(token string, now time.Time) (*AdminSession, error)
	CreateAdminSession(s *AdminSession) error
	DeleteDeviceSessionByToken(token string) error
	DeleteAdminSessionByToken(token string) error
}

// PropertyRepository is the slice of property access the chain needs.
type PropertyRepository interface {
	GetByID(id int64) (*property.Property, error)
	GetByCode(code string) (*property.Property, error)
}

// EmployeeRepository is the slice of employee access the chain needs.
type EmployeeRepository interface {
	ListActiveByProperty(propertyID int64) ([]*employee.Employee, error)
	GetByID(id int64) (*employee.Employee, error)
	UpdatePasscodeHash(employeeID int64, hash string) error
}

// EventPublisher decouples the service from email delivery; the magic link
// email goes out through the event bus and is never awaited.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}
