package activityrepo

import (
	"context"

	"procurement/internal/core/domain/model/activity"

	"gorm.io/gorm"
)

// GormActivityRepository implements ActivityRepository using GORM. The log
// is append only; entries are never updated or deleted.
type GormActivityRepository struct {
	db *gorm.DB
}

// NewGormActivityRepository creates a new GORM activity repository.
func NewGormActivityRepository(db *gorm.DB) *GormActivityRepository {
	return &GormActivityRepository{db: db}
}

// Append persists a new activity entry.
func (r *GormActivityRepository) Append(ctx context.Context, entry *activity.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(entry)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}
