package modules

import (
	"log/slog"

	"github.com/frahmantamala/timetracker/internal"
)

// Service computes effective module entitlements.
type Service struct {
	repo      Repository
	employees EmployeeDirectory
	logger    *slog.Logger
}

func NewService(repo Repository, employees EmployeeDirectory, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		employees: employees,
		logger:    logger,
	}
}

// requireEmployee verifies the employee belongs to the property before any
// per-employee grant is read or written. An id outside the property resolves
// exactly like a missing one.
func (s *Service) requireEmployee(propertyID, employeeID int64) error {
	emp, err := s.employees.GetForProperty(propertyID, employeeID)
	if err != nil {
		s.logger.Error("failed to resolve employee", "error", err, "employee_id", employeeID, "property_id", propertyID)
		return err
	}
	if emp == nil {
		return internal.ErrEmployeeNotFound
	}
	return nil
}

// ResolveForProperty returns the property's effective module set. A property
// with no explicit grants resolves to the full default set; the base modules
// are always present.
func (s *Service) ResolveForProperty(propertyID int64) ([]string, error) {
	keys, err := s.repo.ListPropertyModuleKeys(propertyID)
	if err != nil {
		s.logger.Error("failed to list property modules", "error", err, "property_id", propertyID)
		return nil, err
	}

	if len(keys) == 0 {
		return EnsureBase(AllModuleKeys), nil
	}
	return EnsureBase(Normalize(keys)), nil
}

// ResolveForEmployee intersects the employee's selected keys with the
// resolved property set. An employee can never hold a module the property has
// not enabled; the base modules are always included.
func (s *Service) ResolveForEmployee(propertyID, employeeID int64) ([]string, error) {
	if err := s.requireEmployee(propertyID, employeeID); err != nil {
		return nil, err
	}

	allowed, err := s.ResolveForProperty(propertyID)
	if err != nil {
		return nil, err
	}

	selected, err := s.repo.ListEmployeeModuleKeys(employeeID)
	if err != nil {
		s.logger.Error("failed to list employee modules", "error", err, "employee_id", employeeID)
		return nil, err
	}

	return EnsureBase(intersect(Normalize(selected), allowed)), nil
}

// UpdatePropertyModules replaces the property's grant set. Grants outside the
// new set are removed and employee grants that are no longer allowed are
// pruned, atomically. Returns the resolved set after the write.
func (s *Service) UpdatePropertyModules(propertyID int64, keys []string) ([]string, error) {
	next := EnsureBase(Normalize(keys))

	if err := s.repo.ReplacePropertyModules(propertyID, next); err != nil {
		s.logger.Error("failed to replace property modules", "error", err, "property_id", propertyID)
		return nil, err
	}

	s.logger.Info("property modules updated", "property_id", propertyID, "modules", next)
	return next, nil
}

// UpdateEmployeeModules replaces an employee's grants. Keys outside the
// property's resolved set are silently dropped, never granted.
func (s *Service) UpdateEmployeeModules(propertyID, employeeID int64, keys []string) ([]string, error) {
	if err := s.requireEmployee(propertyID, employeeID); err != nil {
		return nil, err
	}

	allowed, err := s.ResolveForProperty(propertyID)
	if err != nil {
		return nil, err
	}

	next := EnsureBase(intersect(Normalize(keys), allowed))

	if err := s.repo.ReplaceEmployeeModules(employeeID, next); err != nil {
		s.logger.Error("failed to replace employee modules", "error", err, "employee_id", employeeID)
		return nil, err
	}

	s.logger.Info("employee modules updated", "employee_id", employeeID, "modules", next)
	return next, nil
}

func intersect(keys, allowed []string) []string {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, k := range allowed {
		allowedSet[k] = struct{}{}
	}

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, ok := allowedSet[k]; ok {
			out = append(out, k)
		}
	}
	return out
}
