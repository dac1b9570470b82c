package http

import (
	"time"

	"procurement/internal/core/application/usecases/queries"

	"github.com/google/uuid"
)

// CreateOrderRequest is the intake payload, typically forwarded from the
// upstream commerce system.
type CreateOrderRequest struct {
	ExternalRef     string              `json:"externalRef"`
	CustomerName    string              `json:"customerName"`
	Email           string              `json:"email"`
	Department      string              `json:"department"`
	OrderDate       time.Time           `json:"orderDate"`
	DeliveryMethod  string              `json:"deliveryMethod"`
	DeliveryAddress string              `json:"deliveryAddress"`
	Priority        int                 `json:"priority"`
	Notes           string              `json:"notes"`
	Systems         []CreateOrderSystem `json:"systems"`
}

// CreateOrderSystem describes one physical unit on the intake payload.
type CreateOrderSystem struct {
	SystemTypeID uuid.UUID `json:"systemTypeId"`
	AssetName    string    `json:"assetName"`
	SerialNumber string    `json:"serialNumber"`
}

// CreateOrderResponse returns the identifier of the created order.
type CreateOrderResponse struct {
	ID uuid.UUID `json:"id"`
}

// ChangeStatusRequest moves an order to a target column.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// AssignRequest sets or clears the order's assignee. A null assigneeId
// unassigns the order.
type AssignRequest struct {
	AssigneeID *uuid.UUID `json:"assigneeId"`
}

// SetPriorityRequest changes the order's priority.
type SetPriorityRequest struct {
	Priority int `json:"priority"`
}

// BulkAssignRequest assigns a batch of orders to one person. The batch is
// applied all or nothing.
type BulkAssignRequest struct {
	OrderIDs   []uuid.UUID `json:"orderIds"`
	AssigneeID uuid.UUID   `json:"assigneeId"`
}

// CompleteStepRequest records work done on a checklist step.
type CompleteStepRequest struct {
	TimeSpentMinutes int    `json:"timeSpentMinutes"`
	Notes            string `json:"notes"`
}

// OrderSummary is one board row.
type OrderSummary struct {
	ID             uuid.UUID  `json:"id"`
	ExternalRef    string     `json:"externalRef"`
	CustomerName   string     `json:"customerName"`
	Department     string     `json:"department"`
	Status         string     `json:"status"`
	Priority       int        `json:"priority"`
	AssignedTo     *uuid.UUID `json:"assignedTo"`
	DeliveryMethod string     `json:"deliveryMethod"`
	OrderDate      time.Time  `json:"orderDate"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	SystemCount    int        `json:"systemCount"`
	Urgent         bool       `json:"urgent"`
}

// OrderCard is the full single-order view.
type OrderCard struct {
	ID              uuid.UUID       `json:"id"`
	ExternalRef     string          `json:"externalRef"`
	CustomerName    string          `json:"customerName"`
	Email           string          `json:"email"`
	Department      string          `json:"department"`
	Status          string          `json:"status"`
	Priority        int             `json:"priority"`
	AssignedTo      *uuid.UUID      `json:"assignedTo"`
	DeliveryMethod  string          `json:"deliveryMethod"`
	DeliveryAddress string          `json:"deliveryAddress"`
	Notes           string          `json:"notes"`
	OrderDate       time.Time       `json:"orderDate"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	Urgent          bool            `json:"urgent"`
	Systems         []SystemSummary `json:"systems"`
}

// SystemSummary is one system on the card with aggregated progress.
type SystemSummary struct {
	ID            uuid.UUID `json:"id"`
	SystemTypeID  uuid.UUID `json:"systemTypeId"`
	AssetName     string    `json:"assetName"`
	SerialNumber  string    `json:"serialNumber"`
	Status        string    `json:"status"`
	QueuePosition int       `json:"queuePosition"`
	StepsTotal    int       `json:"stepsTotal"`
	StepsDone     int       `json:"stepsDone"`
	Progress      float64   `json:"progress"`
}

// SystemDetail is one system with its full checklist.
type SystemDetail struct {
	ID            uuid.UUID    `json:"id"`
	SystemTypeID  uuid.UUID    `json:"systemTypeId"`
	AssetName     string       `json:"assetName"`
	SerialNumber  string       `json:"serialNumber"`
	Status        string       `json:"status"`
	QueuePosition int          `json:"queuePosition"`
	ChecklistID   *uuid.UUID   `json:"checklistId"`
	Steps         []StepDetail `json:"steps"`
}

// StepDetail is one checklist step with its completion state.
type StepDetail struct {
	StepID           uuid.UUID  `json:"stepId"`
	Name             string     `json:"name"`
	OrderIndex       int        `json:"orderIndex"`
	RequiresQA       bool       `json:"requiresQa"`
	EstimatedMinutes int        `json:"estimatedMinutes"`
	Completed        bool       `json:"completed"`
	CompletedAt      *time.Time `json:"completedAt"`
	QAChecked        bool       `json:"qaChecked"`
	Done             bool       `json:"done"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func orderSummaryFrom(row queries.ListOrdersQueryResponse) OrderSummary {
	summary := OrderSummary{
		ID:             row.ID.Bytes(),
		ExternalRef:    row.ExternalRef,
		CustomerName:   row.CustomerName,
		Department:     row.Department,
		Status:         row.Status,
		Priority:       row.Priority,
		DeliveryMethod: row.DeliveryMethod,
		OrderDate:      row.OrderDate,
		UpdatedAt:      row.UpdatedAt,
		SystemCount:    row.SystemCount,
		Urgent:         row.Urgent,
	}
	if row.AssignedTo != nil {
		id := row.AssignedTo.Bytes()
		summary.AssignedTo = &id
	}
	return summary
}

func orderCardFrom(card queries.GetOrderQueryResponse) OrderCard {
	resp := OrderCard{
		ID:              card.ID.Bytes(),
		ExternalRef:     card.ExternalRef,
		CustomerName:    card.CustomerName,
		Email:           card.Email,
		Department:      card.Department,
		Status:          card.Status,
		Priority:        card.Priority,
		DeliveryMethod:  card.DeliveryMethod,
		DeliveryAddress: card.DeliveryAddress,
		Notes:           card.Notes,
		OrderDate:       card.OrderDate,
		CreatedAt:       card.CreatedAt,
		UpdatedAt:       card.UpdatedAt,
		Urgent:          card.Urgent,
		Systems:         make([]SystemSummary, 0, len(card.Systems)),
	}
	if card.AssignedTo != nil {
		id := card.AssignedTo.Bytes()
		resp.AssignedTo = &id
	}
	for _, sys := range card.Systems {
		resp.Systems = append(resp.Systems, SystemSummary{
			ID:            sys.ID.Bytes(),
			SystemTypeID:  sys.SystemTypeID.Bytes(),
			AssetName:     sys.AssetName,
			SerialNumber:  sys.SerialNumber,
			Status:        sys.Status,
			QueuePosition: sys.QueuePosition,
			StepsTotal:    sys.StepsTotal,
			StepsDone:     sys.StepsDone,
			Progress:      sys.Progress,
		})
	}
	return resp
}

func systemDetailFrom(sys queries.GetOrderSystemsQueryResponse) SystemDetail {
	detail := SystemDetail{
		ID:            sys.ID.Bytes(),
		SystemTypeID:  sys.SystemTypeID.Bytes(),
		AssetName:     sys.AssetName,
		SerialNumber:  sys.SerialNumber,
		Status:        sys.Status,
		QueuePosition: sys.QueuePosition,
		Steps:         make([]StepDetail, 0, len(sys.Steps)),
	}
	if sys.ChecklistID != nil {
		id := sys.ChecklistID.Bytes()
		detail.ChecklistID = &id
	}
	for _, step := range sys.Steps {
		detail.Steps = append(detail.Steps, StepDetail{
			StepID:           step.StepID.Bytes(),
			Name:             step.Name,
			OrderIndex:       step.OrderIndex,
			RequiresQA:       step.RequiresQA,
			EstimatedMinutes: step.EstimatedMinutes,
			Completed:        step.Completed,
			CompletedAt:      step.CompletedAt,
			QAChecked:        step.QAChecked,
			Done:             step.Done,
		})
	}
	return detail
}
