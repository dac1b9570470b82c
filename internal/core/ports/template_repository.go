package ports

import (
	"context"

	"procurement/internal/core/domain/model/checklist"
	"procurement/internal/core/domain/model/kernel"
)

// TemplateRepository defines read access to checklist templates. Templates
// are static definitions managed outside the order lifecycle; the domain only
// ever reads them to snapshot steps into new checklists.
type TemplateRepository interface {
	// GetActiveByType retrieves the active checklist template for a system
	// type. Returns nil without error when the type has no active template.
	GetActiveByType(ctx context.Context, systemTypeID kernel.UUID) (*checklist.Template, error)
}
