package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"procurement/internal/core/domain/model/checklist"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

const (
	// PriorityMin and PriorityMax bound the order priority scale.
	PriorityMin = 0
	PriorityMax = 5

	// PriorityDefault is assigned when the upstream event carries no priority.
	PriorityDefault = 0

	// UrgentAfter is the idle threshold after which a non-complete order is
	// flagged urgent on the read side. The flag is derived at read time from
	// updated_at and is never stored.
	UrgentAfter = 48 * time.Hour
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrDuplicateSystem is returned when adding a system whose id already
	// exists on the order.
	ErrDuplicateSystem = errors.New("system already belongs to the order")
)

// Order is the aggregate root for one customer procurement request. It owns
// its systems and is the only entry point for lifecycle mutations, so the
// cross-entity invariants (terminal immutability, completion gating,
// updated_at freshness) cannot be bypassed.
type Order struct {
	// id is the internal identifier
	id kernel.UUID
	// externalRef is the unique, immutable id supplied by the commerce system
	externalRef string
	// customerName and email identify the requester
	customerName string
	email        string
	// department is optional; empty means not recorded
	department string
	// orderDate is when the purchase was placed upstream
	orderDate time.Time
	// deliveryMethod is how the finished order reaches the customer
	deliveryMethod DeliveryMethod
	// deliveryAddress is the destination for the chosen method
	deliveryAddress string
	// priority is an integer in [PriorityMin, PriorityMax]
	priority int
	// assignedTo is the responsible user (nil if unassigned)
	assignedTo *kernel.UUID
	// status is the current lifecycle state
	status Status
	// notes is operator free text
	notes string
	// createdAt and updatedAt track record freshness; updatedAt drives urgency
	createdAt time.Time
	updatedAt time.Time
	// systems are the physical units owned by the order
	systems []*System

	guard guard.ConstructorGuard
}

// NewOrder creates an Order from an upstream commerce event. The order starts
// in Ordered status with no assignee. Systems are added separately with
// AddSystem as they are provisioned from the event payload.
func NewOrder(
	id kernel.UUID,
	externalRef string,
	customerName string,
	email string,
	department string,
	orderDate time.Time,
	deliveryMethod DeliveryMethod,
	deliveryAddress string,
	priority int,
	notes string,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:    Ordered,
		guard:     guard.NewConstructorGuard(),
		createdAt: now,
		updatedAt: now,
	}

	if err := errors.Join(
		o.setID(id),
		o.setExternalRef(externalRef),
		o.setCustomerName(customerName),
		o.setEmail(email),
		o.setOrderDate(orderDate),
		o.setDeliveryMethod(deliveryMethod),
		o.setPriority(priority),
	); err != nil {
		return nil, err
	}

	o.department = department
	o.deliveryAddress = deliveryAddress
	o.notes = notes
	return o, nil
}

// RestoreOrder reconstructs an Order aggregate from persistence, including
// its systems and current lifecycle state.
func RestoreOrder(
	id kernel.UUID,
	externalRef string,
	customerName string,
	email string,
	department string,
	orderDate time.Time,
	deliveryMethod DeliveryMethod,
	deliveryAddress string,
	priority int,
	assignedTo *kernel.UUID,
	status Status,
	notes string,
	createdAt time.Time,
	updatedAt time.Time,
	systems []*System,
) (*Order, error) {
	o, err := NewOrder(id, externalRef, customerName, email, department,
		orderDate, deliveryMethod, deliveryAddress, priority, notes, createdAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	if assignedTo != nil {
		if err = assignedTo.Validate(); err != nil {
			return nil, err
		}
	}

	if err = o.setSystems(systems); err != nil {
		return nil, err
	}

	o.status = status
	o.assignedTo = assignedTo
	o.updatedAt = updatedAt
	return o, nil
}

// Validate ensures the order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the internal identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// ExternalRef returns the upstream commerce reference.
func (o *Order) ExternalRef() string {
	return o.externalRef
}

// CustomerName returns the requesting customer's name.
func (o *Order) CustomerName() string {
	return o.customerName
}

// Email returns the customer's email address.
func (o *Order) Email() string {
	return o.email
}

// Department returns the customer's department, empty if not recorded.
func (o *Order) Department() string {
	return o.department
}

// OrderDate returns when the purchase was placed upstream.
func (o *Order) OrderDate() time.Time {
	return o.orderDate
}

// DeliveryMethod returns how the order reaches the customer.
func (o *Order) DeliveryMethod() DeliveryMethod {
	return o.deliveryMethod
}

// DeliveryAddress returns the delivery destination.
func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

// Priority returns the order's priority in [PriorityMin, PriorityMax].
func (o *Order) Priority() int {
	return o.priority
}

// AssignedTo returns the responsible user, or nil if unassigned.
func (o *Order) AssignedTo() *kernel.UUID {
	return o.assignedTo
}

// Status returns the current lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// Notes returns the operator notes.
func (o *Order) Notes() string {
	return o.notes
}

// CreatedAt returns when the order record was created.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last mutation time.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Systems returns the physical units owned by the order.
func (o *Order) Systems() []*System {
	return o.systems
}

// SystemByID returns the owned system with the given id.
func (o *Order) SystemByID(systemID kernel.UUID) (*System, error) {
	for _, sys := range o.systems {
		if sys.ID().IsEqual(systemID) {
			return sys, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("system", systemID.String())
}

// ChecklistByID returns the owned checklist with the given id, searching
// across all systems.
func (o *Order) ChecklistByID(checklistID kernel.UUID) (*checklist.Checklist, error) {
	for _, sys := range o.systems {
		if cl := sys.Checklist(); cl != nil && cl.ID().IsEqual(checklistID) {
			return cl, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("checklist", checklistID.String())
}

// AddSystem attaches a new physical unit to the order.
func (o *Order) AddSystem(sys *System) error {
	if err := o.rejectIfTerminal("add system"); err != nil {
		return err
	}
	if err := sys.Validate(); err != nil {
		return err
	}
	for _, existing := range o.systems {
		if existing.ID().IsEqual(sys.ID()) {
			return ErrDuplicateSystem
		}
	}
	o.systems = append(o.systems, sys)
	return nil
}

// IncompleteSystemIDs returns the ids of owned systems whose derived status
// is not complete, in insertion order.
func (o *Order) IncompleteSystemIDs() []kernel.UUID {
	var ids []kernel.UUID
	for _, sys := range o.systems {
		if sys.EffectiveStatus() != SystemComplete {
			ids = append(ids, sys.ID())
		}
	}
	return ids
}

// ChangeStatus moves the order to the target status under the rules of the
// state machine. The transition to Complete additionally requires every owned
// system to be complete; the error names the blocking system ids so the
// caller can surface them.
func (o *Order) ChangeStatus(target Status, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	if target == Complete {
		if blocking := o.IncompleteSystemIDs(); len(blocking) > 0 {
			names := make([]string, len(blocking))
			for i, id := range blocking {
				names[i] = id.String()
			}
			return errs.NewPreconditionFailedErrorWithCause(
				"order completion",
				fmt.Errorf("systems not complete: %s", strings.Join(names, ", ")),
			)
		}
	}

	o.status = newStatus
	o.touch(now)
	return nil
}

// AssignTo sets the responsible user. Assignment never changes status, and is
// rejected once the order is complete.
func (o *Order) AssignTo(userID kernel.UUID, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := o.rejectIfTerminal("assign"); err != nil {
		return err
	}
	if err := userID.Validate(); err != nil {
		return err
	}

	o.assignedTo = &userID
	o.touch(now)
	return nil
}

// Unassign clears the responsible user.
func (o *Order) Unassign(now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := o.rejectIfTerminal("unassign"); err != nil {
		return err
	}

	o.assignedTo = nil
	o.touch(now)
	return nil
}

// SetPriority changes the order priority. Out-of-range values fail validation;
// completed orders reject the change.
func (o *Order) SetPriority(priority int, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := o.rejectIfTerminal("set priority"); err != nil {
		return err
	}
	if err := o.setPriority(priority); err != nil {
		return err
	}

	o.touch(now)
	return nil
}

// CompleteChecklistStep records work on a checklist step owned by this order.
// Routing through the aggregate keeps updated_at fresh, which drives the
// read-side urgency flag.
func (o *Order) CompleteChecklistStep(
	checklistID kernel.UUID,
	stepID kernel.UUID,
	workerID kernel.UUID,
	at time.Time,
	timeSpentMinutes int,
	notes string,
) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := o.rejectIfTerminal("complete checklist step"); err != nil {
		return err
	}

	cl, err := o.ChecklistByID(checklistID)
	if err != nil {
		return err
	}

	if err = cl.CompleteStep(stepID, workerID, at, timeSpentMinutes, notes); err != nil {
		return err
	}

	o.touch(at)
	return nil
}

// QACheckChecklistStep records QA verification of a completed step.
func (o *Order) QACheckChecklistStep(
	checklistID kernel.UUID,
	stepID kernel.UUID,
	checkerID kernel.UUID,
	at time.Time,
) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := o.rejectIfTerminal("qa check checklist step"); err != nil {
		return err
	}

	cl, err := o.ChecklistByID(checklistID)
	if err != nil {
		return err
	}

	if err = cl.QACheckStep(stepID, checkerID, at); err != nil {
		return err
	}

	o.touch(at)
	return nil
}

// IsUrgent derives the urgency flag: a non-complete order idle longer than
// UrgentAfter. Computed against the caller's clock on every read; never
// stored, so it cannot go stale.
func (o *Order) IsUrgent(now time.Time) bool {
	if o.status == Complete {
		return false
	}
	return now.Sub(o.updatedAt) > UrgentAfter
}

func (o *Order) rejectIfTerminal(operation string) error {
	if o.status.IsTerminal() {
		return errs.NewPreconditionFailedErrorWithCause(operation,
			fmt.Errorf("order is %s and cannot change", o.status))
	}
	return nil
}

func (o *Order) touch(now time.Time) {
	o.updatedAt = now
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setExternalRef(externalRef string) error {
	if strings.TrimSpace(externalRef) == "" {
		return errs.NewValueIsRequiredError("external reference")
	}
	o.externalRef = strings.TrimSpace(externalRef)
	return nil
}

func (o *Order) setCustomerName(customerName string) error {
	if customerName == "" {
		return errs.NewValueIsRequiredError("customer name")
	}
	o.customerName = customerName
	return nil
}

func (o *Order) setEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if !strings.Contains(email, "@") {
		return errs.NewValueIsInvalidErrorWithCause("email",
			fmt.Errorf("%q is not an email address", email))
	}
	o.email = email
	return nil
}

func (o *Order) setOrderDate(orderDate time.Time) error {
	if orderDate.IsZero() {
		return errs.NewValueIsRequiredError("order date")
	}
	o.orderDate = orderDate
	return nil
}

func (o *Order) setDeliveryMethod(deliveryMethod DeliveryMethod) error {
	if err := deliveryMethod.Validate(); err != nil {
		return err
	}
	o.deliveryMethod = deliveryMethod
	return nil
}

func (o *Order) setPriority(priority int) error {
	if priority < PriorityMin || priority > PriorityMax {
		return errs.NewValueIsOutOfRangeError("priority", priority, PriorityMin, PriorityMax)
	}
	o.priority = priority
	return nil
}

func (o *Order) setSystems(systems []*System) error {
	seen := make(map[string]struct{}, len(systems))
	for _, sys := range systems {
		if err := sys.Validate(); err != nil {
			return err
		}
		key := sys.ID().String()
		if _, dup := seen[key]; dup {
			return ErrDuplicateSystem
		}
		seen[key] = struct{}{}
	}
	o.systems = systems
	return nil
}
