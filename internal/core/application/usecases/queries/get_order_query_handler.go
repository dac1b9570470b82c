package queries

import (
	"context"
	"database/sql"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves a single order card from the database,
// aggregating checklist progress per system in SQL.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the read. Returns an ObjectNotFoundError when the order
// does not exist.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp, err := h.readOrder(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.Systems, err = h.readSystems(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

func (h GetOrderQueryHandler) readOrder(ctx context.Context, orderID kernel.UUID) (GetOrderQueryResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			external_ref,
			customer_name,
			email,
			department,
			status,
			priority,
			assigned_to,
			delivery_method,
			delivery_address,
			notes,
			order_date,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Row()

	var resp GetOrderQueryResponse
	var id uuid.UUID
	var assignedTo uuid.NullUUID

	err := row.Scan(
		&id,
		&resp.ExternalRef,
		&resp.CustomerName,
		&resp.Email,
		&resp.Department,
		&resp.Status,
		&resp.Priority,
		&assignedTo,
		&resp.DeliveryMethod,
		&resp.DeliveryAddress,
		&resp.Notes,
		&resp.OrderDate,
		&resp.CreatedAt,
		&resp.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", orderID.String())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.ID, err = kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if assignedTo.Valid {
		assigneeID, aErr := kernel.UUIDFromBytes(assignedTo.UUID[:])
		if aErr != nil {
			return GetOrderQueryResponse{}, aErr
		}
		resp.AssignedTo = &assigneeID
	}

	resp.Urgent = isUrgent(resp.Status, resp.UpdatedAt, time.Now().UTC())
	return resp, nil
}

func (h GetOrderQueryHandler) readSystems(ctx context.Context, orderID kernel.UUID) ([]OrderSystemSummary, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.system_type_id,
			s.asset_name,
			s.serial_number,
			s.status,
			s.queue_position,
			COUNT(st.id) AS steps_total,
			SUM(CASE
				WHEN comp.completed_at IS NOT NULL
					AND (st.requires_qa = FALSE OR comp.qa_checked_at IS NOT NULL)
				THEN 1 ELSE 0
			END) AS steps_done,
			SUM(st.weight) AS weight_total,
			SUM(CASE
				WHEN comp.completed_at IS NOT NULL
					AND (st.requires_qa = FALSE OR comp.qa_checked_at IS NOT NULL)
				THEN st.weight ELSE 0
			END) AS weight_done
		FROM systems s
		LEFT JOIN checklists c ON c.system_id = s.id
		LEFT JOIN checklist_steps st ON st.checklist_id = c.id
		LEFT JOIN checklist_completions comp
			ON comp.checklist_id = c.id AND comp.step_id = st.id
		WHERE s.order_id = ?
		GROUP BY s.id, s.system_type_id, s.asset_name, s.serial_number, s.status, s.queue_position
		ORDER BY s.queue_position
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	systems := make([]OrderSystemSummary, 0)
	for rows.Next() {
		var summary OrderSystemSummary
		var id, systemTypeID uuid.UUID
		var stepsDone sql.NullInt64
		var weightTotal, weightDone sql.NullFloat64

		err = rows.Scan(
			&id,
			&systemTypeID,
			&summary.AssetName,
			&summary.SerialNumber,
			&summary.Status,
			&summary.QueuePosition,
			&summary.StepsTotal,
			&stepsDone,
			&weightTotal,
			&weightDone,
		)
		if err != nil {
			return nil, err
		}

		summary.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		summary.SystemTypeID, err = kernel.UUIDFromBytes(systemTypeID[:])
		if err != nil {
			return nil, err
		}

		summary.StepsDone = int(stepsDone.Int64)
		if weightTotal.Valid && weightTotal.Float64 > 0 {
			summary.Progress = weightDone.Float64 / weightTotal.Float64
		} else {
			summary.Progress = 1
		}
		if summary.Progress >= 1 {
			summary.Status = order.SystemComplete.String()
		}

		systems = append(systems, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return systems, nil
}
