// Package queries contains read-side operations in the CQRS architecture.
// Query handlers read the database directly and return flat read models;
// they never load aggregates or mutate state.
package queries

import (
	"errors"
	"strings"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery retrieves board rows with composable filters. All supplied
// filters combine with AND; a zero filter lists everything.
//
// Example:
//
//	inProgress := order.InProgress
//	query, _ := NewListOrdersQuery(ListOrdersFilter{Status: &inProgress, Search: "reyes"})
//	handler := NewListOrdersQueryHandler(db)
//	rows, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	status     *order.Status
	assigneeID *kernel.UUID
	unassigned bool
	search     string

	guard guard.ConstructorGuard
}

// ListOrdersFilter carries the optional filters for a board listing.
// Unassigned selects orders without an assignee and is mutually exclusive
// with AssigneeID. Search matches a case-insensitive substring of the
// external reference, customer name or department.
type ListOrdersFilter struct {
	Status     *order.Status
	AssigneeID *kernel.UUID
	Unassigned bool
	Search     string
}

// NewListOrdersQuery creates a query to list board rows matching the filter.
func NewListOrdersQuery(filter ListOrdersFilter) (ListOrdersQuery, error) {
	if filter.Status != nil {
		if err := filter.Status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	if filter.AssigneeID != nil {
		if err := filter.AssigneeID.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	if filter.AssigneeID != nil && filter.Unassigned {
		return ListOrdersQuery{}, errs.NewValueIsInvalidError(
			"assignee filter and unassigned filter are mutually exclusive")
	}

	return ListOrdersQuery{
		status:     filter.Status,
		assigneeID: filter.AssigneeID,
		unassigned: filter.Unassigned,
		search:     strings.TrimSpace(filter.Search),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Status returns the status filter, nil when absent.
func (q ListOrdersQuery) Status() *order.Status {
	return q.status
}

// AssigneeID returns the assignee filter, nil when absent.
func (q ListOrdersQuery) AssigneeID() *kernel.UUID {
	return q.assigneeID
}

// Unassigned reports whether only unassigned orders are requested.
func (q ListOrdersQuery) Unassigned() bool {
	return q.unassigned
}

// Search returns the trimmed substring filter, empty when absent.
func (q ListOrdersQuery) Search() string {
	return q.search
}

// ListOrdersQueryResponse is one board row. Urgent is derived against the
// clock at query time and is never stored.
type ListOrdersQueryResponse struct {
	ID             kernel.UUID
	ExternalRef    string
	CustomerName   string
	Department     string
	Status         string
	Priority       int
	AssignedTo     *kernel.UUID
	DeliveryMethod string
	OrderDate      time.Time
	UpdatedAt      time.Time
	SystemCount    int
	Urgent         bool
}
