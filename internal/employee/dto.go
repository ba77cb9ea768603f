package employee

import (
	"github.com/frahmantamala/timetracker/internal"
	"github.com/frahmantamala/timetracker/internal/passcode"
)

// CreateEmployeeDTO is the transport shape for creating an employee.
type CreateEmployeeDTO struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Passcode  string  `json:"passcode"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	PayType   *string `json:"pay_type,omitempty"`
	PayAmount *int64  `json:"pay_amount_cents,omitempty"`
	Status    *string `json:"status,omitempty"`
}

func (d CreateEmployeeDTO) Validate() error {
	if d.FirstName == "" {
		return internal.NewValidationFieldError("first_name", "first_name is required", internal.ErrCodeValidationFailed)
	}
	if d.LastName == "" {
		return internal.NewValidationFieldError("last_name", "last_name is required", internal.ErrCodeValidationFailed)
	}
	if !passcode.ValidatePasscode(d.Passcode) {
		return internal.ErrPasscodeFormat
	}
	if d.PayAmount != nil && *d.PayAmount < 0 {
		return internal.NewValidationFieldError("pay_amount_cents", "pay amount cannot be negative", internal.ErrCodeInvalidAmount)
	}
	return nil
}

// UpdateEmployeeDTO carries a field-wise patch. Nil means "leave unchanged".
type UpdateEmployeeDTO struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Passcode  *string `json:"passcode,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	PayType   *string `json:"pay_type,omitempty"`
	PayAmount *int64  `json:"pay_amount_cents,omitempty"`
	Status    *string `json:"status,omitempty"`
	// set flags distinguish "absent" from "explicit null" for clearable fields
	ClearPayAmount bool `json:"clear_pay_amount,omitempty"`
}

func (d UpdateEmployeeDTO) Validate() error {
	if d.Passcode != nil {
		if *d.Passcode == "" {
			return internal.NewValidationFieldError("passcode", "passcode cannot be empty", internal.ErrCodeValidationFailed)
		}
		if !passcode.ValidatePasscode(*d.Passcode) {
			return internal.ErrPasscodeFormat
		}
	}
	if d.PayAmount != nil && *d.PayAmount < 0 {
		return internal.NewValidationFieldError("pay_amount_cents", "pay amount cannot be negative", internal.ErrCodeInvalidAmount)
	}
	return nil
}
