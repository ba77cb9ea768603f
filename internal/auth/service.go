package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/frahmantamala/timetracker/internal"
	"github.com/frahmantamala/timetracker/internal/core/events"
	"github.com/frahmantamala/timetracker/internal/employee"
	"github.com/frahmantamala/timetracker/internal/passcode"
)

// Service is the credential chain manager.
type Service struct {
	sessions   SessionRepository
	properties PropertyRepository
	employees  EmployeeRepository
	publisher  EventPublisher
	security   internal.SecurityConfig
	logger     *slog.Logger
}

func NewService(
	sessions SessionRepository,
	properties PropertyRepository,
	employees EmployeeRepository,
	publisher EventPublisher,
	security internal.SecurityConfig,
	logger *slog.Logger,
) *Service {
	return &Service{
		sessions:   sessions,
		properties: properties,
		employees:  employees,
		publisher:  publisher,
		security:   security,
		logger:     logger,
	}
}

// RequestMagicLink mints a link token bound to the property and device and
// hands delivery to the event bus. Delivery failures are logged by the email
// handler and never surface here; issuance reports success once the row is
// persisted.
func (s *Service) RequestMagicLink(dto RequestMagicLinkDTO) (*RequestResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	prop, err := s.properties.GetByCode(dto.PropertyCode)
	if err != nil {
		s.logger.Error("failed to resolve property", "error", err, "property_code", dto.PropertyCode)
		return nil, err
	}
	if prop == nil || !prop.IsActive {
		return nil, internal.ErrPropertyNotFound
	}

	link := &MagicLink{
		Token:      uuid.NewString(),
		PropertyID: prop.ID,
		DeviceID:   dto.DeviceID,
		ExpiresAt:  time.Now().Add(s.security.MagicLinkLifetime()),
		CreatedAt:  time.Now(),
	}

	if err := s.sessions.CreateMagicLink(link); err != nil {
		s.logger.Error("failed to persist magic link", "error", err, "property_id", prop.ID)
		return nil, err
	}

	event := events.NewMagicLinkRequestedEvent(prop.ID, prop.Name, prop.Code, prop.Email, link.Token)
	if err := s.publisher.Publish(context.Background(), event); err != nil {
		// fire-and-forget: issuance already succeeded
		s.logger.Error("failed to publish magic link event", "error", err, "property_id", prop.ID)
	}

	s.logger.Info("magic link issued",
		"property_id", prop.ID,
		"device_id", dto.DeviceID,
		"expires_at", link.ExpiresAt)

	return &RequestResult{Success: true}, nil
}

// VerifyToken consumes a click on the emailed link. Unknown or expired tokens
// report unverified; repeat calls on a live verified link keep reporting
// verified without further mutation.
func (s *Service) VerifyToken(token string) (*VerificationResult, error) {
	if token == "" {
		return &VerificationResult{Verified: false}, nil
	}

	link, err := s.sessions.GetMagicLinkByToken(token)
	if err != nil {
		s.logger.Error("failed to look up magic link", "error", err)
		return nil, err
	}
	if link == nil || time.Now().After(link.ExpiresAt) {
		return &VerificationResult{Verified: false}, nil
	}

	if !link.Verified {
		if err := s.sessions.MarkMagicLinkVerified(link.ID); err != nil {
			s.logger.Error("failed to mark magic link verified", "error", err, "magic_link_id", link.ID)
			return nil, err
		}
	}

	return &VerificationResult{Verified: true}, nil
}

// PollDevice reports whether the device's most recent magic link has been
// clicked and, if so, returns a live device session for the bound property.
// Sessions are reused while unexpired; a new one is created only when none is
// live for the (device, property) pair.
func (s *Service) PollDevice(deviceID string) (*PollResult, error) {
	if deviceID == "" {
		return nil, ValidationError{Msg: "device_id is required"}
	}

	latest, err := s.sessions.LatestMagicLinkForDevice(deviceID)
	if err != nil {
		s.logger.Error("failed to look up latest magic link", "error", err, "device_id", deviceID)
		return nil, err
	}
	if latest == nil || !latest.Verified {
		return &PollResult{Verified: false}, nil
	}

	now := time.Now()
	session, err := s.sessions.FindLiveDeviceSession(deviceID, latest.PropertyID, now)
	if err != nil {
		s.logger.Error("failed to look up device session", "error", err, "device_id", deviceID)
		return nil, err
	}

	if session == nil {
		session = &DeviceSession{
			Token:      uuid.NewString(),
			DeviceID:   deviceID,
			PropertyID: latest.PropertyID,
			ExpiresAt:  now.Add(s.security.DeviceSessionLifetime()),
			CreatedAt:  now,
		}
		if err := s.sessions.CreateDeviceSession(session); err != nil {
			s.logger.Error("failed to create device session", "error", err, "device_id", deviceID)
			return nil, err
		}
		s.logger.Info("device session created",
			"device_id", deviceID,
			"property_id", latest.PropertyID,
			"expires_at", session.ExpiresAt)
	}

	return &PollResult{
		Verified:  true,
		Token:     session.Token,
		ExpiresAt: &session.ExpiresAt,
	}, nil
}

// Identify resolves an employee from a device session and a passcode without
// minting anything. The scan walks the property's active employees in
// insertion order and verifies each candidate; the first match wins.
func (s *Service) Identify(deviceToken, code string) (int64, *employee.Employee, error) {
	if deviceToken == "" {
		return 0, nil, internal.ErrMissingSession
	}

	session, err := s.sessions.GetLiveDeviceSessionByToken(deviceToken, time.Now())
	if err != nil {
		s.logger.Error("failed to look up device session", "error", err)
		return 0, nil, err
	}
	if session == nil {
		return 0, nil, internal.ErrInvalidSession
	}

	candidates, err := s.employees.ListActiveByProperty(session.PropertyID)
	if err != nil {
		s.logger.Error("failed to list employees for identification", "error", err, "property_id", session.PropertyID)
		return 0, nil, err
	}

	for _, emp := range candidates {
		if !passcode.Verify(code, emp.PasscodeHash) {
			continue
		}
		s.upgradeLegacyPasscode(emp, code)
		return session.PropertyID, emp, nil
	}

	return 0, nil, internal.ErrInvalidPasscode
}

// IdentifyByPasscode is the admin escalation path: same resolution as
// Identify, plus an admin session when the matched employee is an admin.
func (s *Service) IdentifyByPasscode(deviceToken, code string) (*Identity, error) {
	propertyID, emp, err := s.Identify(deviceToken, code)
	if err != nil {
		return nil, err
	}

	identity := &Identity{
		EmployeeID: emp.ID,
		FirstName:  emp.FirstName,
		LastName:   emp.LastName,
		IsAdmin:    emp.IsAdmin,
	}

	if !emp.IsAdmin {
		return identity, nil
	}

	session := &AdminSession{
		Token:      uuid.NewString(),
		PropertyID: propertyID,
		EmployeeID: emp.ID,
		ExpiresAt:  time.Now().Add(s.security.AdminSessionLifetime()),
		CreatedAt:  time.Now(),
	}
	if err := s.sessions.CreateAdminSession(session); err != nil {
		s.logger.Error("failed to create admin session", "error", err, "employee_id", emp.ID)
		return nil, err
	}

	s.logger.Info("admin session created",
		"employee_id", emp.ID,
		"property_id", propertyID,
		"expires_at", session.ExpiresAt)

	identity.AdminToken = session.Token
	identity.AdminExpiresAt = &session.ExpiresAt
	return identity, nil
}

// RequireAdmin is the sole authorization gate for admin-only operations. Both
// tokens must resolve to live sessions, the sessions must agree on the
// property, and the employee behind the admin session must still be an admin.
func (s *Service) RequireAdmin(deviceToken, adminToken string) (*internal.AuthScope, error) {
	if deviceToken == "" || adminToken == "" {
		return nil, internal.ErrMissingSession
	}

	now := time.Now()
	device, err := s.sessions.GetLiveDeviceSessionByToken(deviceToken, now)
	if err != nil {
		s.logger.Error("failed to look up device session", "error", err)
		return nil, err
	}
	admin, err := s.sessions.GetLiveAdminSessionByToken(adminToken, now)
	if err != nil {
		s.logger.Error("failed to look up admin session", "error", err)
		return nil, err
	}
	if device == nil || admin == nil {
		return nil, internal.ErrInvalidSession
	}

	if device.PropertyID != admin.PropertyID {
		s.logger.Warn("cross-property session rejected",
			"device_property_id", device.PropertyID,
			"admin_property_id", admin.PropertyID)
		return nil, internal.ErrCrossPropertySession
	}

	emp, err := s.employees.GetByID(admin.EmployeeID)
	if err != nil {
		s.logger.Error("failed to load admin employee", "error", err, "employee_id", admin.EmployeeID)
		return nil, err
	}
	if emp == nil || !emp.IsAdmin {
		return nil, internal.ErrAdminRequired
	}

	return &internal.AuthScope{
		PropertyID: device.PropertyID,
		EmployeeID: emp.ID,
	}, nil
}

// Logout deletes the matching session rows by token. Idempotent; never fails.
func (s *Service) Logout(deviceToken, adminToken string) {
	if deviceToken != "" {
		if err := s.sessions.DeleteDeviceSessionByToken(deviceToken); err != nil {
			s.logger.Error("failed to delete device session", "error", err)
		}
	}
	if adminToken != "" {
		if err := s.sessions.DeleteAdminSessionByToken(adminToken); err != nil {
			s.logger.Error("failed to delete admin session", "error", err)
		}
	}
}

// upgradeLegacyPasscode re-hashes a plaintext record after a successful
// verification. Best effort: a failed write never affects the enclosing
// operation.
func (s *Service) upgradeLegacyPasscode(emp *employee.Employee, code string) {
	if !passcode.IsLegacy(emp.PasscodeHash) {
		return
	}

	hashed, err := passcode.Hash(code)
	if err != nil {
		s.logger.Error("failed to re-hash legacy passcode", "error", err, "employee_id", emp.ID)
		return
	}
	if err := s.employees.UpdatePasscodeHash(emp.ID, hashed); err != nil {
		s.logger.Error("failed to persist upgraded passcode", "error", err, "employee_id", emp.ID)
		return
	}

	emp.PasscodeHash = hashed
	s.logger.Info("legacy passcode upgraded", "employee_id", emp.ID)
}
