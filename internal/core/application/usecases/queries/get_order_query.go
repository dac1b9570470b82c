package queries

import (
	"errors"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order card with its systems and checklist
// progress summary.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for a single order.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the full order card.
type GetOrderQueryResponse struct {
	ID              kernel.UUID
	ExternalRef     string
	CustomerName    string
	Email           string
	Department      string
	Status          string
	Priority        int
	AssignedTo      *kernel.UUID
	DeliveryMethod  string
	DeliveryAddress string
	Notes           string
	OrderDate       time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Urgent          bool
	Systems         []OrderSystemSummary
}

// OrderSystemSummary is one system on the card with its checklist progress.
// Progress is the completed fraction of the checklist's step weights; a
// system without a checklist reports 1.
type OrderSystemSummary struct {
	ID            kernel.UUID
	SystemTypeID  kernel.UUID
	AssetName     string
	SerialNumber  string
	Status        string
	QueuePosition int
	StepsTotal    int
	StepsDone     int
	Progress      float64
}
