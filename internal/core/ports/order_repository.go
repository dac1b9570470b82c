// Package ports defines repository interfaces for the procurement domain.
// These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are stored with their systems, checklists and completions as one
// consistency boundary.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// Returns an ObjectAlreadyExistsError when the external reference is
	// already taken; callers use this for create idempotency conflicts.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate,
	// including its systems and checklist completions.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with systems and checklists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByChecklist retrieves the order owning the given checklist.
	// Checklist-level commands resolve their aggregate through this.
	GetByChecklist(ctx context.Context, checklistID kernel.UUID) (*order.Order, error)
}
