package postgres

import (
	"github.com/frahmantamala/timetracker/internal/modules"
	"gorm.io/gorm"
)

// ModuleRepository implements modules.Repository using GORM
type ModuleRepository struct {
	db *gorm.DB
}

func NewModuleRepository(db *gorm.DB) modules.Repository {
	return &ModuleRepository{db: db}
}

func (r *ModuleRepository) ListPropertyModuleKeys(propertyID int64) ([]string, error) {
	var keys []string
	err := r.db.Model(&modules.PropertyModule{}).
		Where("property_id = ?", propertyID).
		Order("id ASC").
		Pluck("module_key", &keys).Error
	return keys, err
}

func (r *ModuleRepository) ListEmployeeModuleKeys(employeeID int64) ([]string, error) {
	var keys []string
	err := r.db.Model(&modules.EmployeeModule{}).
		Where("employee_id = ?", employeeID).
		Order("id ASC").
		Pluck("module_key", &keys).Error
	return keys, err
}

// ReplacePropertyModules removes grants outside the new set, inserts missing
// ones and prunes employee grants that are no longer allowed, as one
// transaction.
func (r *ModuleRepository) ReplacePropertyModules(propertyID int64, keys []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ? AND module_key NOT IN ?", propertyID, keys).
			Delete(&modules.PropertyModule{}).Error; err != nil {
			return err
		}

		var existing []string
		if err := tx.Model(&modules.PropertyModule{}).
			Where("property_id = ?", propertyID).
			Pluck("module_key", &existing).Error; err != nil {
			return err
		}
		existingSet := make(map[string]struct{}, len(existing))
		for _, k := range existing {
			existingSet[k] = struct{}{}
		}

		for _, k := range keys {
			if _, ok := existingSet[k]; ok {
				continue
			}
			if err := tx.Create(&modules.PropertyModule{PropertyID: propertyID, ModuleKey: k}).Error; err != nil {
				return err
			}
		}

		return tx.Exec(
			`DELETE FROM employee_modules
			 WHERE employee_id IN (SELECT id FROM employees WHERE property_id = ?)
			   AND module_key NOT IN ?`,
			propertyID, keys,
		).Error
	})
}

func (r *ModuleRepository) ReplaceEmployeeModules(employeeID int64, keys []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ? AND module_key NOT IN ?", employeeID, keys).
			Delete(&modules.EmployeeModule{}).Error; err != nil {
			return err
		}

		var existing []string
		if err := tx.Model(&modules.EmployeeModule{}).
			Where("employee_id = ?", employeeID).
			Pluck("module_key", &existing).Error; err != nil {
			return err
		}
		existingSet := make(map[string]struct{}, len(existing))
		for _, k := range existing {
			existingSet[k] = struct{}{}
		}

		for _, k := range keys {
			if _, ok := existingSet[k]; ok {
				continue
			}
			if err := tx.Create(&modules.EmployeeModule{EmployeeID: employeeID, ModuleKey: k}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ModuleRepository) EnsurePropertyModules(propertyID int64, keys []string) error {
	var existing []string
	if err := r.db.Model(&modules.PropertyModule{}).
		Where("property_id = ?", propertyID).
		Pluck("module_key", &existing).Error; err != nil {
		return err
	}
	existingSet := make(map[string]struct{}, len(existing))
	for _, k := range existing {
		existingSet[k] = struct{}{}
	}

	for _, k := range keys {
		if _, ok := existingSet[k]; ok {
			continue
		}
		if err := r.db.Create(&modules.PropertyModule{PropertyID: propertyID, ModuleKey: k}).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *ModuleRepository) EnsureEmployeeModules(employeeID int64, keys []string) error {
	var existing []string
	if err := r.db.Model(&modules.EmployeeModule{}).
		Where("employee_id = ?", employeeID).
		Pluck("module_key", &existing).Error; err != nil {
		return err
	}
	existingSet := make(map[string]struct{}, len(existing))
	for _, k := range existing {
		existingSet[k] = struct{}{}
	}

	for _, k := range keys {
		if _, ok := existingSet[k]; ok {
			continue
		}
		if err := r.db.Create(&modules.EmployeeModule{EmployeeID: employeeID, ModuleKey: k}).Error; err != nil {
			return err
		}
	}
	return nil
}
