package templaterepo

import (
	"context"
	"errors"

	"procurement/internal/core/domain/model/checklist"
	"procurement/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormTemplateRepository implements TemplateRepository using GORM.
// Templates are authored out of band, so the repository is read only.
type GormTemplateRepository struct {
	db *gorm.DB
}

// NewGormTemplateRepository creates a new GORM template repository.
func NewGormTemplateRepository(db *gorm.DB) *GormTemplateRepository {
	return &GormTemplateRepository{db: db}
}

// GetActiveByType retrieves the active template for a system type. Returns
// nil without an error when no active template exists, in which case the
// system is provisioned without a checklist.
func (r *GormTemplateRepository) GetActiveByType(ctx context.Context, systemTypeID kernel.UUID) (*checklist.Template, error) {
	if err := systemTypeID.Validate(); err != nil {
		return nil, err
	}

	var dto ChecklistTemplateDTO
	err := r.db.WithContext(ctx).
		Preload("Steps").
		First(&dto, "system_type_id = ? AND active = ?", systemTypeID.Bytes(), true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toDomain(dto)
}
