package postgres

import (
	"errors"
	"time"

	"github.com/frahmantamala/timetracker/internal/auth"
	"gorm.io/gorm"
)

// SessionRepository implements auth.SessionRepository using GORM
type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) auth.SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) CreateMagicLink(ml *auth.MagicLink) error {
	return r.db.Create(ml).Error
}

func (r *SessionRepository) GetMagicLinkByToken(token string) (*auth.MagicLink, error) {
	var link auth.MagicLink
	err := r.db.Where("token = ?", token).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

func (r *SessionRepository) MarkMagicLinkVerified(id int64) error {
	return r.db.Model(&auth.MagicLink{}).
		Where("id = ?", id).
		Update("verified", true).Error
}

func (r *SessionRepository) LatestMagicLinkForDevice(deviceID string) (*auth.MagicLink, error) {
	var link auth.MagicLink
	err := r.db.Where("device_id = ?", deviceID).
		Order("created_at DESC").
		First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

func (r *SessionRepository) FindLiveDeviceSession(deviceID string, propertyID int64, now time.Time) (*auth.DeviceSession, error) {
	var session auth.DeviceSession
	err := r.db.Where("device_id = ? AND property_id = ? AND expires_at > ?", deviceID, propertyID, now).
		Order("created_at DESC").
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) GetLiveDeviceSessionByToken(token string, now time.Time) (*auth.DeviceSession, error) {
	var session auth.DeviceSession
	err := r.db.Where("token = ? AND expires_at > ?", token, now).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) CreateDeviceSession(s *auth.DeviceSession) error {
	return r.db.Create(s).Error
}

func (r *SessionRepository) GetLiveAdminSessionByToken(token string, now time.Time) (*auth.AdminSession, error) {
	var session auth.AdminSession
	err := r.db.Where("token = ? AND expires_at > ?", token, now).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) CreateAdminSession(s *auth.AdminSession) error {
	return r.db.Create(s).Error
}

func (r *SessionRepository) DeleteDeviceSessionByToken(token string) error {
	return r.db.Where("token = ?", token).Delete(&auth.DeviceSession{}).Error
}

func (r *SessionRepository) DeleteAdminSessionByToken(token string) error {
	return r.db.Where("token = ?", token).Delete(&auth.AdminSession{}).Error
}
