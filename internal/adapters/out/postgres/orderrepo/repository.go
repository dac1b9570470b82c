package orderrepo

import (
	"context"
	"errors"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order aggregate with all its children. A collision on the
// external reference index surfaces as an ObjectAlreadyExistsError, which is
// how intake idempotency conflicts reach the caller. Requires the connection
// to run with TranslateError enabled.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsErrorWithCause(
				"external_ref", aggregate.ExternalRef(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order aggregate including its systems, checklists
// and completions.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	// Use Session with FullSaveAssociations to properly update nested associations
	result := r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID with its full object graph. The root row is
// locked for the duration of the surrounding transaction, so a concurrent
// handler loading the same order waits and then sees the committed state
// when it re-reads.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Systems").
		Preload("Systems.Checklist").
		Preload("Systems.Checklist.Steps").
		Preload("Systems.Checklist.Completions").
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByChecklist retrieves the order owning the given checklist. Step-level
// commands arrive addressed by checklist, so this is how they find their
// aggregate root.
func (r *GormOrderRepository) GetByChecklist(ctx context.Context, checklistID kernel.UUID) (*order.Order, error) {
	if err := checklistID.Validate(); err != nil {
		return nil, err
	}

	var ownerID uuid.UUID
	result := r.db.WithContext(ctx).Raw(`
		SELECT s.order_id
		FROM checklists c
		JOIN systems s ON s.id = c.system_id
		WHERE c.id = ?
	`, checklistID.Bytes()).Scan(&ownerID)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewObjectNotFoundError("checklist", checklistID.String())
	}

	id, err := kernel.UUIDFromBytes(ownerID[:])
	if err != nil {
		return nil, err
	}

	return r.Get(ctx, id)
}
