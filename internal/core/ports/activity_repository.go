package ports

import (
	"context"

	"procurement/internal/core/domain/model/activity"
)

// ActivityRepository defines the append-only persistence contract for the
// audit trail. Entries are written in the same transaction as the mutation
// they record and are never updated.
type ActivityRepository interface {
	// Append persists a new audit entry.
	Append(ctx context.Context, entry *activity.Entry) error
}
