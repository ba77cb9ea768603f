package postgres

import (
	"errors"

	"github.com/frahmantamala/timetracker/internal/property"
	"gorm.io/gorm"
)

// PropertyRepository implements property.Repository using GORM
type PropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) property.Repository {
	return &PropertyRepository{db: db}
}

func (r *PropertyRepository) GetByID(id int64) (*property.Property, error) {
	var p property.Property
	err := r.db.Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PropertyRepository) GetByCode(code string) (*property.Property, error) {
	var p property.Property
	err := r.db.Where("code = ?", code).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PropertyRepository) List() ([]*property.Property, error) {
	var properties []*property.Property
	err := r.db.Order("code ASC").Find(&properties).Error
	return properties, err
}

func (r *PropertyRepository) Create(p *property.Property) error {
	return r.db.Create(p).Error
}
