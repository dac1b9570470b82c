package activityrepo

import (
	"encoding/json"
	"time"

	"procurement/internal/core/domain/model/activity"

	"github.com/google/uuid"
)

// ActivityDTO is the GORM model for activity log entries.
type ActivityDTO struct {
	ID        uuid.UUID `gorm:"primaryKey"`
	OrderID   uuid.UUID `gorm:"index"`
	ActorID   uuid.UUID
	Action    string    `gorm:"size:50;not null"`
	Details   string    `gorm:"type:text;default:'{}'"`
	CreatedAt time.Time `gorm:"index;autoCreateTime:false"`
}

// TableName overrides the table name for GORM.
func (ActivityDTO) TableName() string {
	return "activity_logs"
}

func fromDomain(entry *activity.Entry) (ActivityDTO, error) {
	details, err := json.Marshal(entry.Details())
	if err != nil {
		return ActivityDTO{}, err
	}

	return ActivityDTO{
		ID:        entry.ID().Bytes(),
		OrderID:   entry.OrderID().Bytes(),
		ActorID:   entry.ActorID().Bytes(),
		Action:    entry.Action().String(),
		Details:   string(details),
		CreatedAt: entry.CreatedAt(),
	}, nil
}
