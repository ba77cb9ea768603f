package clock

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/timetracker/internal"
)

// Service handles clock business logic
type Service struct {
	repo   Repository
	authn  Authenticator
	hours  HoursCalculator
	logger *slog.Logger
}

func NewService(repo Repository, authn Authenticator, hours HoursCalculator, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		authn:  authn,
		hours:  hours,
		logger: logger,
	}
}

// Clock toggles the employee's state: appends the opposite of the last log's
// type, defaulting to IN when there is no history.
func (s *Service) Clock(deviceToken, passcode string) (*ClockResult, error) {
	_, emp, err := s.authn.Identify(deviceToken, passcode)
	if err != nil {
		return nil, err
	}

	last, err := s.repo.LastLog(emp.ID)
	if err != nil {
		s.logger.Error("failed to load last clock log", "error", err, "employee_id", emp.ID)
		return nil, err
	}

	next := TypeIn
	if last != nil && last.Type == TypeIn {
		next = TypeOut
	}

	return s.append(emp.ID, next)
}

// ClockAction validates an explicit IN/OUT request against current state
// before appending. Requesting IN while already IN, or OUT while not IN,
// fails without appending anything.
func (s *Service) ClockAction(deviceToken, passcode, action string) (*ClockResult, error) {
	requested, err := parseAction(action)
	if err != nil {
		return nil, err
	}

	_, emp, err := s.authn.Identify(deviceToken, passcode)
	if err != nil {
		return nil, err
	}

	last, err := s.repo.LastLog(emp.ID)
	if err != nil {
		s.logger.Error("failed to load last clock log", "error", err, "employee_id", emp.ID)
		return nil, err
	}

	clockedIn := last != nil && last.Type == TypeIn
	if requested == TypeIn && clockedIn {
		return nil, internal.ErrInvalidTransition
	}
	if requested == TypeOut && !clockedIn {
		return nil, internal.ErrInvalidTransition
	}

	return s.append(emp.ID, requested)
}

// GetStatus is read-only: current status, next allowed action and today's
// hours. No log is appended.
func (s *Service) GetStatus(deviceToken, passcode string) (*StatusResult, error) {
	_, emp, err := s.authn.Identify(deviceToken, passcode)
	if err != nil {
		return nil, err
	}

	last, err := s.repo.LastLog(emp.ID)
	if err != nil {
		s.logger.Error("failed to load last clock log", "error", err, "employee_id", emp.ID)
		return nil, err
	}

	status := TypeOut
	nextAction := TypeIn
	if last != nil && last.Type == TypeIn {
		status = TypeIn
		nextAction = TypeOut
	}

	hours, err := s.hoursToday(emp.ID, time.Now())
	if err != nil {
		return nil, err
	}

	return &StatusResult{
		Status:     status,
		NextAction: nextAction,
		HoursToday: hours,
	}, nil
}

func (s *Service) append(employeeID int64, t ClockType) (*ClockResult, error) {
	log := &ClockLog{
		EmployeeID: employeeID,
		Type:       t,
		Timestamp:  time.Now(),
	}
	if err := s.repo.Append(log); err != nil {
		s.logger.Error("failed to append clock log", "error", err, "employee_id", employeeID)
		return nil, err
	}

	// today's hours are computed after the append so the new log counts
	hours, err := s.hoursToday(employeeID, log.Timestamp)
	if err != nil {
		return nil, err
	}

	s.logger.Info("clock log appended",
		"employee_id", employeeID,
		"type", t,
		"hours_today", hours)

	return &ClockResult{
		Success:    true,
		Type:       log.Type,
		Timestamp:  log.Timestamp,
		HoursToday: hours,
	}, nil
}

func (s *Service) hoursToday(employeeID int64, now time.Time) (float64, error) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	hours, err := s.hours.HoursForWindow(employeeID, startOfDay, now)
	if err != nil {
		s.logger.Error("failed to compute today's hours", "error", err, "employee_id", employeeID)
		return 0, err
	}
	return hours, nil
}

func parseAction(action string) (ClockType, error) {
	switch ClockType(action) {
	case TypeIn:
		return TypeIn, nil
	case TypeOut:
		return TypeOut, nil
	default:
		return "", internal.NewValidationFieldError("action", "action must be IN or OUT", internal.ErrCodeValidationFailed)
	}
}
