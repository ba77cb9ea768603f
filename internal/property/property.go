package property

import "time"

// Property is the tenant root. Employees, sessions and magic links all hang
// off a property; administrative edits aside it is immutable once sessions
// reference it.
type Property struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	Code          string    `json:"code" gorm:"uniqueIndex;not null"`
	Name          string    `json:"name" gorm:"not null"`
	Email         string    `json:"email" gorm:"not null"`
	BillingEmail  *string   `json:"billing_email,omitempty" gorm:"column:billing_email"`
	Phone         *string   `json:"phone,omitempty"`
	AddressLine1  *string   `json:"address_line1,omitempty" gorm:"column:address_line1"`
	AddressLine2  *string   `json:"address_line2,omitempty" gorm:"column:address_line2"`
	City          *string   `json:"city,omitempty"`
	StateProvince *string   `json:"state_province,omitempty" gorm:"column:state_province"`
	PostalCode    *string   `json:"postal_code,omitempty" gorm:"column:postal_code"`
	Country       *string   `json:"country,omitempty"`
	Timezone      string    `json:"timezone" gorm:"default:UTC"`
	PropertyType  *string   `json:"property_type,omitempty" gorm:"column:property_type"`
	IsActive      bool      `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt     time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (Property) TableName() string {
	return "properties"
}

// Repository defines data access for properties. Lookups return (nil, nil)
// when no row matches.
type Repository interface {
	GetByID(id int64) (*Property, error)
	GetByCode(code string) (*Property, error)
	List() ([]*Property, error)
	Create(p *Property) error
}
