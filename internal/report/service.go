package report

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/timetracker/internal"
	"github.com/frahmantamala/timetracker/internal/clock"
)

// Service builds hours reports. It also implements clock.HoursCalculator so
// the clock package can report today's hours after each punch.
type Service struct {
	clocks    ClockLogReader
	employees EmployeeLister
	modules   ModuleResolver
	logger    *slog.Logger
}

func NewService(clocks ClockLogReader, employees EmployeeLister, modules ModuleResolver, logger *slog.Logger) *Service {
	return &Service{
		clocks:    clocks,
		employees: employees,
		modules:   modules,
		logger:    logger,
	}
}

// HoursForWindow returns worked hours for one employee over [start, end],
// rounded to two decimals.
func (s *Service) HoursForWindow(employeeID int64, start, end time.Time) (float64, error) {
	if !end.After(start) {
		return 0, nil
	}

	carryOver, err := s.clocks.LastLogBefore(employeeID, start)
	if err != nil {
		s.logger.Error("failed to load carry-over log", "error", err, "employee_id", employeeID)
		return 0, err
	}

	logs, err := s.clocks.ListInWindow(employeeID, start, end)
	if err != nil {
		s.logger.Error("failed to load clock logs", "error", err, "employee_id", employeeID)
		return 0, err
	}

	return RoundHours(ComputeWindow(carryOver, logs, start, end)), nil
}

// EmployeesWithHours builds the per-employee hours report for a property
// over [start, end].
func (s *Service) EmployeesWithHours(propertyID int64, start, end time.Time) (*HoursReport, error) {
	if start.IsZero() || end.IsZero() {
		return nil, internal.ErrMissingDateRange
	}
	if !end.After(start) {
		return nil, internal.ErrInvalidDateRange
	}

	staff, err := s.employees.ListByProperty(propertyID)
	if err != nil {
		s.logger.Error("failed to list employees", "error", err, "property_id", propertyID)
		return nil, err
	}

	report := &HoursReport{
		Start:     start,
		End:       end,
		Employees: make([]*EmployeeHoursSummary, 0, len(staff)),
	}

	for _, emp := range staff {
		carryOver, err := s.clocks.LastLogBefore(emp.ID, start)
		if err != nil {
			return nil, err
		}
		logs, err := s.clocks.ListInWindow(emp.ID, start, end)
		if err != nil {
			return nil, err
		}

		last, err := s.clocks.LastLog(emp.ID)
		if err != nil {
			return nil, err
		}

		history, err := s.employees.ListPayHistory(emp.ID)
		if err != nil {
			return nil, err
		}

		moduleKeys, err := s.modules.ResolveForEmployee(propertyID, emp.ID)
		if err != nil {
			return nil, err
		}

		report.Employees = append(report.Employees, &EmployeeHoursSummary{
			EmployeeID: emp.ID,
			FirstName:  emp.FirstName,
			LastName:   emp.LastName,
			IsAdmin:    emp.IsAdmin,
			Status:     emp.Status,
			PayType:    emp.PayType,
			PayAmount:  emp.PayAmount,
			Hours:      RoundHours(ComputeWindow(carryOver, logs, start, end)),
			ClockedIn:  last != nil && last.Type == clock.TypeIn,
			Entries:    logs,
			PayHistory: history,
			Modules:    moduleKeys,
		})
	}

	return report, nil
}
