package employee

import "time"

const (
	StatusActive   = "active"
	StatusInactive = "inactive"

	PayTypeHourly = "hourly"
	PayTypeSalary = "salary"
)

// Employee belongs to exactly one property. The passcode hash is opaque; see
// the passcode package for the encoding.
type Employee struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	PropertyID   int64     `json:"property_id" gorm:"column:property_id;not null;index"`
	FirstName    string    `json:"first_name" gorm:"column:first_name;not null"`
	LastName     string    `json:"last_name" gorm:"column:last_name;not null"`
	PasscodeHash string    `json:"-" gorm:"column:passcode_hash;not null"`
	IsAdmin      bool      `json:"is_admin" gorm:"column:is_admin;default:false"`
	Status       string    `json:"status" gorm:"default:active"`
	PayType      string    `json:"pay_type" gorm:"column:pay_type;default:hourly"`
	PayAmount    *int64    `json:"pay_amount_cents,omitempty" gorm:"column:pay_amount_cents"`
	Email        *string   `json:"email,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) Name() string {
	return e.FirstName + " " + e.LastName
}

// PayHistory is an append-only snapshot of pay type/amount, written whenever
// either actually changes.
type PayHistory struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	EmployeeID  int64     `json:"employee_id" gorm:"column:employee_id;not null;index"`
	PayType     string    `json:"pay_type" gorm:"column:pay_type;not null"`
	AmountCents *int64    `json:"amount_cents,omitempty" gorm:"column:amount_cents"`
	EffectiveAt time.Time `json:"effective_at" gorm:"column:effective_at;autoCreateTime"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (PayHistory) TableName() string {
	return "employee_pay_history"
}

// Repository defines data access for employees. Single-row lookups return
// (nil, nil) when no row matches.
type Repository interface {
	// ListByProperty returns all employees ordered by first name, last name.
	ListByProperty(propertyID int64) ([]*Employee, error)
	// ListActiveByProperty returns active employees in insertion order, the
	// order the passcode scan iterates in.
	ListActiveByProperty(propertyID int64) ([]*Employee, error)
	GetByID(id int64) (*Employee, error)
	GetForProperty(propertyID, employeeID int64) (*Employee, error)
	// CreateWithPayHistory writes the employee and its initial pay history
	// row in one transaction.
	CreateWithPayHistory(e *Employee, h *PayHistory) error
	// UpdateWithPayHistory saves the employee and, when h is non-nil, appends
	// a pay history row, in one transaction.
	UpdateWithPayHistory(e *Employee, h *PayHistory) error
	UpdatePasscodeHash(employeeID int64, hash string) error
	ListPayHistory(employeeID int64) ([]*PayHistory, error)
}
