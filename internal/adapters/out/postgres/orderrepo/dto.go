// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. The order aggregate spans four tables (orders, systems,
// checklists with their steps and completions) that are always written
// together as one consistency boundary.
package orderrepo

import (
	"encoding/json"
	"sort"
	"time"

	"procurement/internal/core/domain/model/checklist"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The unique index on ExternalRef backs intake idempotency: replaying an
// upstream event collides there instead of creating a second order.
//
// CreatedAt and UpdatedAt are owned by the domain, so GORM's automatic
// timestamping is disabled on them.
type OrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ExternalRef     string     `gorm:"type:varchar(64);not null;uniqueIndex"`
	CustomerName    string     `gorm:"type:varchar(255);not null"`
	Email           string     `gorm:"type:varchar(255);not null"`
	Department      string     `gorm:"type:varchar(255);not null;default:''"`
	OrderDate       time.Time  `gorm:"not null"`
	DeliveryMethod  string     `gorm:"type:varchar(16);not null"`
	DeliveryAddress string     `gorm:"type:text;not null;default:''"`
	Priority        int        `gorm:"type:int;not null"`
	AssignedTo      *uuid.UUID `gorm:"type:uuid;index"`
	Status          string     `gorm:"type:varchar(32);not null;index"`
	Notes           string     `gorm:"type:text;not null;default:''"`
	CreatedAt       time.Time  `gorm:"not null;autoCreateTime:false"`
	UpdatedAt       time.Time  `gorm:"not null;index;autoUpdateTime:false"`

	Systems []SystemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// SystemDTO represents one physical unit belonging to an order.
// ExternalAssetRefs is an opaque list serialized as JSON text.
type SystemDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID           uuid.UUID  `gorm:"type:uuid;not null;index"`
	SystemTypeID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	SerialNumber      string     `gorm:"type:varchar(255);not null;default:''"`
	AssetName         string     `gorm:"type:varchar(255);not null"`
	Status            string     `gorm:"type:varchar(32);not null"`
	AssignedTo        *uuid.UUID `gorm:"type:uuid"`
	QueuePosition     int        `gorm:"type:int;not null"`
	SkipQueue         bool       `gorm:"not null;default:false"`
	ExternalAssetRefs string     `gorm:"type:text;not null;default:'[]'"`

	Checklist *ChecklistDTO `gorm:"foreignKey:SystemID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for system entities.
func (SystemDTO) TableName() string {
	return "systems"
}

// ChecklistDTO represents the per-system checklist instance.
type ChecklistDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	SystemID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	TemplateID uuid.UUID `gorm:"type:uuid;not null"`

	Steps       []ChecklistStepDTO       `gorm:"foreignKey:ChecklistID;constraint:OnDelete:CASCADE"`
	Completions []ChecklistCompletionDTO `gorm:"foreignKey:ChecklistID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for checklist entities.
func (ChecklistDTO) TableName() string {
	return "checklists"
}

// ChecklistStepDTO is the step snapshot copied from the template at
// instantiation. Step ids repeat across checklists, so the key is composite.
type ChecklistStepDTO struct {
	ChecklistID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name             string    `gorm:"type:varchar(255);not null"`
	OrderIndex       int       `gorm:"type:int;not null"`
	RequiresQA       bool      `gorm:"not null"`
	EstimatedMinutes int       `gorm:"type:int;not null"`
	Weight           int       `gorm:"type:int;not null"`
}

// TableName specifies the database table name for checklist step entities.
func (ChecklistStepDTO) TableName() string {
	return "checklist_steps"
}

// ChecklistCompletionDTO records work on one step. The composite key enforces
// at most one completion per (checklist, step); re-completing a step replaces
// the row in place.
type ChecklistCompletionDTO struct {
	ChecklistID      uuid.UUID  `gorm:"type:uuid;primaryKey"`
	StepID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompletedBy      uuid.UUID  `gorm:"type:uuid;not null"`
	CompletedAt      time.Time  `gorm:"not null"`
	TimeSpentMinutes int        `gorm:"type:int;not null"`
	Notes            string     `gorm:"type:text;not null;default:''"`
	QACheckedBy      *uuid.UUID `gorm:"type:uuid"`
	QACheckedAt      *time.Time
}

// TableName specifies the database table name for completion entities.
func (ChecklistCompletionDTO) TableName() string {
	return "checklist_completions"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	systems := make([]SystemDTO, 0, len(aggregate.Systems()))
	for _, sys := range aggregate.Systems() {
		systems = append(systems, systemFromDomain(orderID, sys))
	}

	return OrderDTO{
		ID:              orderID,
		ExternalRef:     aggregate.ExternalRef(),
		CustomerName:    aggregate.CustomerName(),
		Email:           aggregate.Email(),
		Department:      aggregate.Department(),
		OrderDate:       aggregate.OrderDate(),
		DeliveryMethod:  aggregate.DeliveryMethod().String(),
		DeliveryAddress: aggregate.DeliveryAddress(),
		Priority:        aggregate.Priority(),
		AssignedTo:      uuidPtr(aggregate.AssignedTo()),
		Status:          aggregate.Status().String(),
		Notes:           aggregate.Notes(),
		CreatedAt:       aggregate.CreatedAt(),
		UpdatedAt:       aggregate.UpdatedAt(),
		Systems:         systems,
	}
}

func systemFromDomain(orderID uuid.UUID, sys *order.System) SystemDTO {
	refs, err := json.Marshal(sys.ExternalAssetRefs())
	if err != nil || sys.ExternalAssetRefs() == nil {
		refs = []byte("[]")
	}

	dto := SystemDTO{
		ID:                sys.ID().Bytes(),
		OrderID:           orderID,
		SystemTypeID:      sys.SystemTypeID().Bytes(),
		SerialNumber:      sys.SerialNumber(),
		AssetName:         sys.AssetName(),
		Status:            sys.Status().String(),
		AssignedTo:        uuidPtr(sys.AssignedTo()),
		QueuePosition:     sys.QueuePosition(),
		SkipQueue:         sys.SkipQueue(),
		ExternalAssetRefs: string(refs),
	}

	if cl := sys.Checklist(); cl != nil {
		clDTO := checklistFromDomain(cl)
		dto.Checklist = &clDTO
	}

	return dto
}

func checklistFromDomain(cl *checklist.Checklist) ChecklistDTO {
	checklistID := cl.ID().Bytes()

	steps := make([]ChecklistStepDTO, 0, len(cl.Steps()))
	for _, step := range cl.Steps() {
		steps = append(steps, ChecklistStepDTO{
			ChecklistID:      checklistID,
			ID:               step.ID().Bytes(),
			Name:             step.Name(),
			OrderIndex:       step.OrderIndex(),
			RequiresQA:       step.RequiresQA(),
			EstimatedMinutes: step.EstimatedMinutes(),
			Weight:           step.Weight(),
		})
	}

	completions := make([]ChecklistCompletionDTO, 0, len(cl.Completions()))
	for _, completion := range cl.Completions() {
		completions = append(completions, ChecklistCompletionDTO{
			ChecklistID:      checklistID,
			StepID:           completion.StepID().Bytes(),
			CompletedBy:      completion.CompletedBy().Bytes(),
			CompletedAt:      completion.CompletedAt(),
			TimeSpentMinutes: completion.TimeSpentMinutes(),
			Notes:            completion.Notes(),
			QACheckedBy:      uuidPtr(completion.QACheckedBy()),
			QACheckedAt:      completion.QACheckedAt(),
		})
	}

	return ChecklistDTO{
		ID:          checklistID,
		SystemID:    cl.SystemID().Bytes(),
		TemplateID:  cl.TemplateID().Bytes(),
		Steps:       steps,
		Completions: completions,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Children come back in key order, so systems and steps are re-sorted into
// their queue and index order before restoring.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	deliveryMethod, err := order.DeliveryMethodFromString(dto.DeliveryMethod)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	assignedTo, err := kernelPtr(dto.AssignedTo)
	if err != nil {
		return nil, err
	}

	sort.Slice(dto.Systems, func(i, j int) bool {
		return dto.Systems[i].QueuePosition < dto.Systems[j].QueuePosition
	})

	systems := make([]*order.System, 0, len(dto.Systems))
	for _, sysDTO := range dto.Systems {
		sys, sysErr := systemToDomain(sysDTO)
		if sysErr != nil {
			return nil, sysErr
		}
		systems = append(systems, sys)
	}

	return order.RestoreOrder(
		id,
		dto.ExternalRef,
		dto.CustomerName,
		dto.Email,
		dto.Department,
		dto.OrderDate,
		deliveryMethod,
		dto.DeliveryAddress,
		dto.Priority,
		assignedTo,
		status,
		dto.Notes,
		dto.CreatedAt,
		dto.UpdatedAt,
		systems,
	)
}

func systemToDomain(dto SystemDTO) (*order.System, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	systemTypeID, err := kernel.UUIDFromBytes(dto.SystemTypeID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.SystemStatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	assignedTo, err := kernelPtr(dto.AssignedTo)
	if err != nil {
		return nil, err
	}

	var refs []string
	if dto.ExternalAssetRefs != "" {
		if err = json.Unmarshal([]byte(dto.ExternalAssetRefs), &refs); err != nil {
			return nil, err
		}
	}

	var cl *checklist.Checklist
	if dto.Checklist != nil {
		cl, err = checklistToDomain(*dto.Checklist)
		if err != nil {
			return nil, err
		}
	}

	return order.RestoreSystem(
		id,
		systemTypeID,
		dto.SerialNumber,
		dto.AssetName,
		status,
		assignedTo,
		dto.QueuePosition,
		dto.SkipQueue,
		refs,
		cl,
	)
}

func checklistToDomain(dto ChecklistDTO) (*checklist.Checklist, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	systemID, err := kernel.UUIDFromBytes(dto.SystemID[:])
	if err != nil {
		return nil, err
	}

	templateID, err := kernel.UUIDFromBytes(dto.TemplateID[:])
	if err != nil {
		return nil, err
	}

	sort.Slice(dto.Steps, func(i, j int) bool {
		return dto.Steps[i].OrderIndex < dto.Steps[j].OrderIndex
	})

	steps := make([]checklist.Step, 0, len(dto.Steps))
	for _, stepDTO := range dto.Steps {
		stepID, stepErr := kernel.UUIDFromBytes(stepDTO.ID[:])
		if stepErr != nil {
			return nil, stepErr
		}

		step, stepErr := checklist.NewStep(
			stepID, stepDTO.Name, stepDTO.OrderIndex,
			stepDTO.RequiresQA, stepDTO.EstimatedMinutes, stepDTO.Weight,
		)
		if stepErr != nil {
			return nil, stepErr
		}
		steps = append(steps, step)
	}

	completions := make([]*checklist.Completion, 0, len(dto.Completions))
	for _, compDTO := range dto.Completions {
		completion, compErr := completionToDomain(compDTO)
		if compErr != nil {
			return nil, compErr
		}
		completions = append(completions, completion)
	}

	return checklist.RestoreChecklist(id, systemID, templateID, steps, completions)
}

func completionToDomain(dto ChecklistCompletionDTO) (*checklist.Completion, error) {
	stepID, err := kernel.UUIDFromBytes(dto.StepID[:])
	if err != nil {
		return nil, err
	}

	completedBy, err := kernel.UUIDFromBytes(dto.CompletedBy[:])
	if err != nil {
		return nil, err
	}

	qaCheckedBy, err := kernelPtr(dto.QACheckedBy)
	if err != nil {
		return nil, err
	}

	return checklist.RestoreCompletion(
		stepID,
		completedBy,
		dto.CompletedAt,
		dto.TimeSpentMinutes,
		dto.Notes,
		qaCheckedBy,
		dto.QACheckedAt,
	)
}

func uuidPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func kernelPtr(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	parsed, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
