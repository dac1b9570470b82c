package queries

import (
	"context"
	"strings"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler serves the board listing straight from the database.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for board listings.
// Requires a GORM database connection for query execution.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the listing. Rows are sorted by priority (highest first)
// and then by staleness, so the most pressing cards come up first. Urgency is
// computed row by row against the current clock.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) ([]ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			o.id,
			o.external_ref,
			o.customer_name,
			o.department,
			o.status,
			o.priority,
			o.assigned_to,
			o.delivery_method,
			o.order_date,
			o.updated_at,
			(SELECT COUNT(*) FROM systems s WHERE s.order_id = o.id) AS system_count
		FROM orders o
		WHERE 1 = 1
	`
	args := make([]any, 0, 4)

	if status := query.Status(); status != nil {
		sql += " AND o.status = ?"
		args = append(args, status.String())
	}
	if assigneeID := query.AssigneeID(); assigneeID != nil {
		sql += " AND o.assigned_to = ?"
		args = append(args, assigneeID.Bytes())
	}
	if query.Unassigned() {
		sql += " AND o.assigned_to IS NULL"
	}
	if search := query.Search(); search != "" {
		sql += ` AND (
			LOWER(o.external_ref) LIKE LOWER(?) ESCAPE '\' OR
			LOWER(o.customer_name) LIKE LOWER(?) ESCAPE '\' OR
			LOWER(o.department) LIKE LOWER(?) ESCAPE '\'
		)`
		pattern := "%" + escapeLike(search) + "%"
		args = append(args, pattern, pattern, pattern)
	}

	sql += " ORDER BY o.priority DESC, o.updated_at ASC"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	now := time.Now().UTC()
	responses := make([]ListOrdersQueryResponse, 0)

	for rows.Next() {
		var resp ListOrdersQueryResponse
		var id uuid.UUID
		var assignedTo uuid.NullUUID

		err = rows.Scan(
			&id,
			&resp.ExternalRef,
			&resp.CustomerName,
			&resp.Department,
			&resp.Status,
			&resp.Priority,
			&assignedTo,
			&resp.DeliveryMethod,
			&resp.OrderDate,
			&resp.UpdatedAt,
			&resp.SystemCount,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID

		if assignedTo.Valid {
			assigneeID, aErr := kernel.UUIDFromBytes(assignedTo.UUID[:])
			if aErr != nil {
				return nil, aErr
			}
			resp.AssignedTo = &assigneeID
		}

		resp.Urgent = isUrgent(resp.Status, resp.UpdatedAt, now)
		responses = append(responses, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}

// escapeLike neutralizes LIKE metacharacters in user search text so a search
// for "100%" matches the literal string rather than everything.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// isUrgent mirrors the aggregate's derivation for flat read models.
func isUrgent(status string, updatedAt, now time.Time) bool {
	if status == order.Complete.String() {
		return false
	}
	return now.Sub(updatedAt) > order.UrgentAfter
}
