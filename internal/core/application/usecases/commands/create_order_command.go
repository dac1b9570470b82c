package commands

import (
	"errors"
	"strings"
	"time"

	"procurement/internal/core/domain/model/actor"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/services"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents an order event received from the upstream
// commerce system. The external reference makes intake idempotent: replaying
// the same event fails with a duplicate conflict instead of creating a twin.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(
//	    "PO-2025-0042", "Dana Reyes", "dana@example.com", "Engineering",
//	    orderDate, order.Delivery, "Building 4", 2, "",
//	    []services.SystemSpec{{SystemTypeID: laptopType, AssetName: "WS-0451"}},
//	    requester,
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order event: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	orderID, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	externalRef     string
	customerName    string
	email           string
	department      string
	orderDate       time.Time
	deliveryMethod  order.DeliveryMethod
	deliveryAddress string
	priority        int
	notes           string
	systems         []services.SystemSpec
	actor           actor.Actor

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new procurement order.
// Field validation mirrors the aggregate's own rules so malformed events fail
// before a transaction is opened.
func NewCreateOrderCommand(
	externalRef string,
	customerName string,
	email string,
	department string,
	orderDate time.Time,
	deliveryMethod order.DeliveryMethod,
	deliveryAddress string,
	priority int,
	notes string,
	systems []services.SystemSpec,
	commandActor actor.Actor,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		department:      department,
		deliveryAddress: deliveryAddress,
		notes:           notes,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setExternalRef(externalRef),
		cmd.setCustomerName(customerName),
		cmd.setEmail(email),
		cmd.setOrderDate(orderDate),
		cmd.setDeliveryMethod(deliveryMethod),
		cmd.setPriority(priority),
		cmd.setSystems(systems),
		cmd.setActor(commandActor),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// ExternalRef returns the upstream commerce reference.
func (c CreateOrderCommand) ExternalRef() string {
	return c.externalRef
}

// CustomerName returns the requesting customer's name.
func (c CreateOrderCommand) CustomerName() string {
	return c.customerName
}

// Email returns the customer's email address.
func (c CreateOrderCommand) Email() string {
	return c.email
}

// Department returns the customer's department, empty if not supplied.
func (c CreateOrderCommand) Department() string {
	return c.department
}

// OrderDate returns when the purchase was placed upstream.
func (c CreateOrderCommand) OrderDate() time.Time {
	return c.orderDate
}

// DeliveryMethod returns how the order reaches the customer.
func (c CreateOrderCommand) DeliveryMethod() order.DeliveryMethod {
	return c.deliveryMethod
}

// DeliveryAddress returns the delivery destination.
func (c CreateOrderCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

// Priority returns the requested priority.
func (c CreateOrderCommand) Priority() int {
	return c.priority
}

// Notes returns the operator notes from the event.
func (c CreateOrderCommand) Notes() string {
	return c.notes
}

// Systems returns the physical units requested by the event.
func (c CreateOrderCommand) Systems() []services.SystemSpec {
	return c.systems
}

// Actor returns who submitted the event.
func (c CreateOrderCommand) Actor() actor.Actor {
	return c.actor
}

func (c *CreateOrderCommand) setExternalRef(externalRef string) error {
	if strings.TrimSpace(externalRef) == "" {
		return errs.NewValueIsRequiredError("external reference")
	}
	c.externalRef = strings.TrimSpace(externalRef)
	return nil
}

func (c *CreateOrderCommand) setCustomerName(customerName string) error {
	if customerName == "" {
		return errs.NewValueIsRequiredError("customer name")
	}
	c.customerName = customerName
	return nil
}

func (c *CreateOrderCommand) setEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	c.email = email
	return nil
}

func (c *CreateOrderCommand) setOrderDate(orderDate time.Time) error {
	if orderDate.IsZero() {
		return errs.NewValueIsRequiredError("order date")
	}
	c.orderDate = orderDate
	return nil
}

func (c *CreateOrderCommand) setDeliveryMethod(deliveryMethod order.DeliveryMethod) error {
	if err := deliveryMethod.Validate(); err != nil {
		return err
	}
	c.deliveryMethod = deliveryMethod
	return nil
}

func (c *CreateOrderCommand) setPriority(priority int) error {
	if priority < order.PriorityMin || priority > order.PriorityMax {
		return errs.NewValueIsOutOfRangeError("priority", priority, order.PriorityMin, order.PriorityMax)
	}
	c.priority = priority
	return nil
}

func (c *CreateOrderCommand) setSystems(systems []services.SystemSpec) error {
	for _, spec := range systems {
		if err := spec.SystemTypeID.Validate(); err != nil {
			return err
		}
		if spec.AssetName == "" {
			return errs.NewValueIsRequiredError("asset name")
		}
	}
	c.systems = systems
	return nil
}

func (c *CreateOrderCommand) setActor(commandActor actor.Actor) error {
	if err := commandActor.Validate(); err != nil {
		return err
	}
	c.actor = commandActor
	return nil
}
