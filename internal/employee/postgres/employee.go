package postgres

import (
	"errors"
	"time"

	"github.com/frahmantamala/timetracker/internal/employee"
	"gorm.io/gorm"
)

// EmployeeRepository implements employee.Repository using GORM
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.Repository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) ListByProperty(propertyID int64) ([]*employee.Employee, error) {
	var employees []*employee.Employee
	err := r.db.Where("property_id = ?", propertyID).
		Order("first_name ASC, last_name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) ListActiveByProperty(propertyID int64) ([]*employee.Employee, error) {
	var employees []*employee.Employee
	err := r.db.Where("property_id = ? AND status = ?", propertyID, employee.StatusActive).
		Order("id ASC").
		Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) GetByID(id int64) (*employee.Employee, error) {
	var emp employee.Employee
	err := r.db.Where("id = ?", id).First(&emp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) GetForProperty(propertyID, employeeID int64) (*employee.Employee, error) {
	var emp employee.Employee
	err := r.db.Where("id = ? AND property_id = ?", employeeID, propertyID).First(&emp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) CreateWithPayHistory(e *employee.Employee, h *employee.PayHistory) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(e).Error; err != nil {
			return err
		}
		if h != nil {
			h.EmployeeID = e.ID
			if err := tx.Create(h).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *EmployeeRepository) UpdateWithPayHistory(e *employee.Employee, h *employee.PayHistory) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		e.UpdatedAt = time.Now()
		if err := tx.Save(e).Error; err != nil {
			return err
		}
		if h != nil {
			h.EmployeeID = e.ID
			if err := tx.Create(h).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *EmployeeRepository) UpdatePasscodeHash(employeeID int64, hash string) error {
	return r.db.Model(&employee.Employee{}).
		Where("id = ?", employeeID).
		Updates(map[string]interface{}{
			"passcode_hash": hash,
			"updated_at":    time.Now(),
		}).Error
}

func (r *EmployeeRepository) ListPayHistory(employeeID int64) ([]*employee.PayHistory, error) {
	var history []*employee.PayHistory
	err := r.db.Where("employee_id = ?", employeeID).
		Order("effective_at DESC").
		Find(&history).Error
	return history, err
}
