package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/frahmantamala/timetracker/internal/clock"
)

type ClockRepository struct {
	db *gorm.DB
}

func NewClockRepository(db *gorm.DB) *ClockRepository {
	return &ClockRepository{db: db}
}

func (r *ClockRepository) LastLog(employeeID int64) (*clock.ClockLog, error) {
	var log clock.ClockLog
	err := r.db.Where("employee_id = ?", employeeID).
		Order("timestamp DESC").
		First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}

func (r *ClockRepository) Append(log *clock.ClockLog) error {
	return r.db.Create(log).Error
}

func (r *ClockRepository) LastLogBefore(employeeID int64, t time.Time) (*clock.ClockLog, error) {
	var log clock.ClockLog
	err := r.db.Where("employee_id = ? AND timestamp < ?", employeeID, t).
		Order("timestamp DESC").
		First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}

func (r *ClockRepository) ListInWindow(employeeID int64, start, end time.Time) ([]*clock.ClockLog, error) {
	var logs []*clock.ClockLog
	err := r.db.Where("employee_id = ? AND timestamp >= ? AND timestamp <= ?", employeeID, start, end).
		Order("timestamp ASC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
