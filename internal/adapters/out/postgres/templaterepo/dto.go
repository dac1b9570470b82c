package templaterepo

import (
	"sort"

	"procurement/internal/core/domain/model/checklist"
	"procurement/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ChecklistTemplateDTO is the GORM model for checklist templates.
type ChecklistTemplateDTO struct {
	ID           uuid.UUID         `gorm:"primaryKey"`
	SystemTypeID uuid.UUID         `gorm:"index"`
	Name         string            `gorm:"size:255;not null"`
	Active       bool              `gorm:"index"`
	Steps        []TemplateStepDTO `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name for GORM.
func (ChecklistTemplateDTO) TableName() string {
	return "checklist_templates"
}

// TemplateStepDTO is the GORM model for template step definitions.
type TemplateStepDTO struct {
	TemplateID       uuid.UUID `gorm:"primaryKey"`
	ID               uuid.UUID `gorm:"primaryKey"`
	Name             string    `gorm:"size:255;not null"`
	OrderIndex       int       `gorm:"not null"`
	RequiresQA       bool
	EstimatedMinutes int
	Weight           int `gorm:"not null"`
}

// TableName overrides the table name for GORM.
func (TemplateStepDTO) TableName() string {
	return "template_steps"
}

func toDomain(dto ChecklistTemplateDTO) (*checklist.Template, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	systemTypeID, err := kernel.UUIDFromBytes(dto.SystemTypeID[:])
	if err != nil {
		return nil, err
	}

	sort.Slice(dto.Steps, func(i, j int) bool {
		return dto.Steps[i].OrderIndex < dto.Steps[j].OrderIndex
	})

	steps := make([]checklist.Step, 0, len(dto.Steps))
	for _, stepDTO := range dto.Steps {
		stepID, err := kernel.UUIDFromBytes(stepDTO.ID[:])
		if err != nil {
			return nil, err
		}

		step, err := checklist.NewStep(
			stepID,
			stepDTO.Name,
			stepDTO.OrderIndex,
			stepDTO.RequiresQA,
			stepDTO.EstimatedMinutes,
			stepDTO.Weight,
		)
		if err != nil {
			return nil, err
		}

		steps = append(steps, step)
	}

	return checklist.NewTemplate(id, systemTypeID, dto.Name, steps)
}
