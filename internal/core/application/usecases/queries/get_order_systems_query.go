package queries

import (
	"errors"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/guard"
)

var ErrGetOrderSystemsQueryIsNotConstructed = errors.New(
	"GetOrderSystemsQuery must be created via NewGetOrderSystemsQuery constructor",
)

// GetOrderSystemsQuery retrieves an order's systems with every checklist step
// and its done state, for the system detail view.
type GetOrderSystemsQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderSystemsQuery creates a query for an order's system details.
func NewGetOrderSystemsQuery(orderID kernel.UUID) (GetOrderSystemsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderSystemsQuery{}, err
	}

	return GetOrderSystemsQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderSystemsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderSystemsQueryIsNotConstructed)
}

// OrderID returns the requested order.
func (q GetOrderSystemsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderSystemsQueryResponse is one system with its full checklist.
type GetOrderSystemsQueryResponse struct {
	ID            kernel.UUID
	SystemTypeID  kernel.UUID
	AssetName     string
	SerialNumber  string
	Status        string
	QueuePosition int
	ChecklistID   *kernel.UUID
	Steps         []SystemStepDetail
}

// SystemStepDetail is one checklist step with its completion state. Done
// folds in the QA rule: a QA-required step is done only after verification.
type SystemStepDetail struct {
	StepID           kernel.UUID
	Name             string
	OrderIndex       int
	RequiresQA       bool
	EstimatedMinutes int
	Completed        bool
	CompletedAt      *time.Time
	QAChecked        bool
	Done             bool
}
