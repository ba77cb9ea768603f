package employee

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/timetracker/internal"
	"github.com/frahmantamala/timetracker/internal/passcode"
)

// Service handles employee business logic
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List returns all employees of the property ordered by name.
func (s *Service) List(propertyID int64) ([]*Employee, error) {
	employees, err := s.repo.ListByProperty(propertyID)
	if err != nil {
		s.logger.Error("failed to list employees", "error", err, "property_id", propertyID)
		return nil, err
	}
	return employees, nil
}

func (s *Service) Get(propertyID, employeeID int64) (*Employee, error) {
	emp, err := s.repo.GetForProperty(propertyID, employeeID)
	if err != nil {
		s.logger.Error("failed to get employee", "error", err, "employee_id", employeeID)
		return nil, err
	}
	if emp == nil {
		return nil, internal.ErrEmployeeNotFound
	}
	return emp, nil
}

func (s *Service) PayHistory(employeeID int64) ([]*PayHistory, error) {
	return s.repo.ListPayHistory(employeeID)
}

// Create validates the passcode, checks it does not collide with another
// active employee of the property, then writes the employee plus its initial
// pay history row in one transaction.
func (s *Service) Create(propertyID int64, dto CreateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("employee validation failed", "error", err, "property_id", propertyID)
		return nil, err
	}

	if err := s.ensureUniquePasscode(propertyID, dto.Passcode, 0); err != nil {
		return nil, err
	}

	hashed, err := passcode.Hash(dto.Passcode)
	if err != nil {
		s.logger.Error("failed to hash passcode", "error", err)
		return nil, internal.NewInternalError("failed to hash passcode", err)
	}

	payType := PayTypeHourly
	if dto.PayType != nil && *dto.PayType != "" {
		payType = *dto.PayType
	}
	status := StatusActive
	if dto.Status != nil && *dto.Status != "" {
		status = *dto.Status
	}

	emp := &Employee{
		PropertyID:   propertyID,
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		PasscodeHash: hashed,
		IsAdmin:      false,
		Status:       status,
		PayType:      payType,
		PayAmount:    dto.PayAmount,
		Email:        dto.Email,
		Phone:        dto.Phone,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	history := &PayHistory{
		PayType:     payType,
		AmountCents: dto.PayAmount,
		EffectiveAt: time.Now(),
	}

	if err := s.repo.CreateWithPayHistory(emp, history); err != nil {
		s.logger.Error("failed to create employee", "error", err, "property_id", propertyID)
		return nil, err
	}

	s.logger.Info("employee created",
		"employee_id", emp.ID,
		"property_id", propertyID,
		"pay_type", payType)

	return emp, nil
}

// Update applies a field-wise patch. A pay history row is appended only when
// pay type or pay amount actually changes; a passcode change revalidates
// format and uniqueness and re-hashes.
func (s *Service) Update(propertyID, employeeID int64, dto UpdateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("employee update validation failed", "error", err, "employee_id", employeeID)
		return nil, err
	}

	existing, err := s.repo.GetForProperty(propertyID, employeeID)
	if err != nil {
		s.logger.Error("failed to load employee for update", "error", err, "employee_id", employeeID)
		return nil, err
	}
	if existing == nil {
		return nil, internal.ErrEmployeeNotFound
	}

	if dto.FirstName != nil && *dto.FirstName != "" {
		existing.FirstName = *dto.FirstName
	}
	if dto.LastName != nil && *dto.LastName != "" {
		existing.LastName = *dto.LastName
	}
	if dto.Email != nil {
		if *dto.Email == "" {
			existing.Email = nil
		} else {
			existing.Email = dto.Email
		}
	}
	if dto.Phone != nil {
		if *dto.Phone == "" {
			existing.Phone = nil
		} else {
			existing.Phone = dto.Phone
		}
	}
	if dto.Status != nil && *dto.Status != "" {
		existing.Status = *dto.Status
	}

	if dto.Passcode != nil {
		if err := s.ensureUniquePasscode(propertyID, *dto.Passcode, employeeID); err != nil {
			return nil, err
		}
		hashed, err := passcode.Hash(*dto.Passcode)
		if err != nil {
			s.logger.Error("failed to hash passcode", "error", err)
			return nil, internal.NewInternalError("failed to hash passcode", err)
		}
		existing.PasscodeHash = hashed
	}

	payChanged := false
	if dto.PayType != nil && *dto.PayType != "" && *dto.PayType != existing.PayType {
		existing.PayType = *dto.PayType
		payChanged = true
	}
	if dto.ClearPayAmount {
		if existing.PayAmount != nil {
			existing.PayAmount = nil
			payChanged = true
		}
	} else if dto.PayAmount != nil {
		if existing.PayAmount == nil || *existing.PayAmount != *dto.PayAmount {
			existing.PayAmount = dto.PayAmount
			payChanged = true
		}
	}

	var history *PayHistory
	if payChanged {
		history = &PayHistory{
			EmployeeID:  existing.ID,
			PayType:     existing.PayType,
			AmountCents: existing.PayAmount,
			EffectiveAt: time.Now(),
		}
	}

	existing.UpdatedAt = time.Now()
	if err := s.repo.UpdateWithPayHistory(existing, history); err != nil {
		s.logger.Error("failed to update employee", "error", err, "employee_id", employeeID)
		return nil, err
	}

	s.logger.Info("employee updated",
		"employee_id", employeeID,
		"property_id", propertyID,
		"pay_changed", payChanged)

	return existing, nil
}

// ensureUniquePasscode scans the property's active employees and verifies the
// candidate passcode against each stored hash. The scan is deliberately
// linear: passcode hashes are salted and not equality-indexable.
func (s *Service) ensureUniquePasscode(propertyID int64, code string, excludeID int64) error {
	candidates, err := s.repo.ListActiveByProperty(propertyID)
	if err != nil {
		s.logger.Error("failed to scan for passcode collisions", "error", err, "property_id", propertyID)
		return err
	}

	for _, c := range candidates {
		if c.ID == excludeID {
			continue
		}
		if passcode.Verify(code, c.PasscodeHash) {
			s.logger.Warn("passcode collision rejected", "property_id", propertyID, "conflict_employee_id", c.ID)
			return internal.ErrDuplicatePasscode
		}
	}
	return nil
}
