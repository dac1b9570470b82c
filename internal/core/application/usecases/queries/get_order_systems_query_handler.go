package queries

import (
	"context"
	"database/sql"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderSystemsQueryHandler retrieves systems with their full checklist
// state for the detail view.
type GetOrderSystemsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderSystemsQueryHandler creates a handler for system detail reads.
// Requires a GORM database connection for query execution.
func NewGetOrderSystemsQueryHandler(db *gorm.DB) GetOrderSystemsQueryHandler {
	return GetOrderSystemsQueryHandler{db: db}
}

// Handle executes the read. Returns an ObjectNotFoundError when the order
// does not exist; an existing order with no systems returns an empty slice.
func (h GetOrderSystemsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderSystemsQuery,
) ([]GetOrderSystemsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var count int64
	if err := h.db.WithContext(ctx).
		Raw(`SELECT COUNT(*) FROM orders WHERE id = ?`, query.OrderID().Bytes()).
		Scan(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	systems, err := h.readSystems(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	for i := range systems {
		if systems[i].ChecklistID == nil {
			continue
		}
		systems[i].Steps, err = h.readSteps(ctx, *systems[i].ChecklistID)
		if err != nil {
			return nil, err
		}
	}

	return systems, nil
}

func (h GetOrderSystemsQueryHandler) readSystems(
	ctx context.Context, orderID kernel.UUID,
) ([]GetOrderSystemsQueryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.system_type_id,
			s.asset_name,
			s.serial_number,
			s.status,
			s.queue_position,
			c.id AS checklist_id
		FROM systems s
		LEFT JOIN checklists c ON c.system_id = s.id
		WHERE s.order_id = ?
		ORDER BY s.queue_position
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	systems := make([]GetOrderSystemsQueryResponse, 0)
	for rows.Next() {
		var resp GetOrderSystemsQueryResponse
		var id, systemTypeID uuid.UUID
		var checklistID uuid.NullUUID

		err = rows.Scan(
			&id,
			&systemTypeID,
			&resp.AssetName,
			&resp.SerialNumber,
			&resp.Status,
			&resp.QueuePosition,
			&checklistID,
		)
		if err != nil {
			return nil, err
		}

		resp.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		resp.SystemTypeID, err = kernel.UUIDFromBytes(systemTypeID[:])
		if err != nil {
			return nil, err
		}

		if checklistID.Valid {
			clID, cErr := kernel.UUIDFromBytes(checklistID.UUID[:])
			if cErr != nil {
				return nil, cErr
			}
			resp.ChecklistID = &clID
		}

		resp.Steps = make([]SystemStepDetail, 0)
		systems = append(systems, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return systems, nil
}

func (h GetOrderSystemsQueryHandler) readSteps(
	ctx context.Context, checklistID kernel.UUID,
) ([]SystemStepDetail, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			st.id,
			st.name,
			st.order_index,
			st.requires_qa,
			st.estimated_minutes,
			comp.completed_at,
			comp.qa_checked_at
		FROM checklist_steps st
		LEFT JOIN checklist_completions comp
			ON comp.checklist_id = st.checklist_id AND comp.step_id = st.id
		WHERE st.checklist_id = ?
		ORDER BY st.order_index
	`, checklistID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	steps := make([]SystemStepDetail, 0)
	for rows.Next() {
		var detail SystemStepDetail
		var stepID uuid.UUID
		var completedAt, qaCheckedAt sql.NullTime

		err = rows.Scan(
			&stepID,
			&detail.Name,
			&detail.OrderIndex,
			&detail.RequiresQA,
			&detail.EstimatedMinutes,
			&completedAt,
			&qaCheckedAt,
		)
		if err != nil {
			return nil, err
		}

		detail.StepID, err = kernel.UUIDFromBytes(stepID[:])
		if err != nil {
			return nil, err
		}

		detail.Completed = completedAt.Valid
		if completedAt.Valid {
			at := completedAt.Time.UTC()
			detail.CompletedAt = &at
		}
		detail.QAChecked = qaCheckedAt.Valid
		detail.Done = detail.Completed && (!detail.RequiresQA || detail.QAChecked)

		steps = append(steps, detail)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return steps, nil
}
