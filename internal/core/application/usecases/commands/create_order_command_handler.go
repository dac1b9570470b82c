package commands

import (
	"context"
	"time"

	"procurement/internal/core/domain/model/activity"
	"procurement/internal/core/domain/model/checklist"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/services"
)

// CreateOrderCommandHandler handles order intake. It provisions the systems
// described by the event, snapshots each system type's active checklist
// template into a per-system checklist, and records the create audit entry,
// all in one transaction.
type CreateOrderCommandHandler struct {
	uowFactory  CreateOrderUoWFactory
	provisioner services.SystemProvisioner
}

// NewCreateOrderCommandHandler creates a handler for order intake.
func NewCreateOrderCommandHandler(uowFactory CreateOrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:  uowFactory,
		provisioner: services.NewSystemProvisioner(),
	}
}

// Handle processes the order creation command and returns the new order's id.
// A replayed event with an already-registered external reference fails with
// an ObjectAlreadyExistsError from the repository.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now().UTC()
	newOrder, err := order.NewOrder(
		kernel.NewUUID(),
		cmd.ExternalRef(),
		cmd.CustomerName(),
		cmd.Email(),
		cmd.Department(),
		cmd.OrderDate(),
		cmd.DeliveryMethod(),
		cmd.DeliveryAddress(),
		cmd.Priority(),
		cmd.Notes(),
		now,
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	templates, err := h.loadTemplates(ctx, uow, cmd.Systems())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = h.provisioner.Provision(newOrder, cmd.Systems(), templates); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return kernel.UUID{}, err
	}

	entry, err := activity.NewEntry(
		kernel.NewUUID(), newOrder.ID(), cmd.Actor().ID(),
		activity.ActionCreate,
		map[string]string{"external_ref": newOrder.ExternalRef()},
		now,
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.ActivityRepository().Append(ctx, entry); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return newOrder.ID(), nil
}

// loadTemplates fetches the active template for each distinct system type in
// the event. Types without an active template simply have no entry.
func (h *CreateOrderCommandHandler) loadTemplates(
	ctx context.Context,
	uow CreateOrderUoW,
	specs []services.SystemSpec,
) (map[kernel.UUID]*checklist.Template, error) {
	templates := make(map[kernel.UUID]*checklist.Template)
	seen := make(map[kernel.UUID]struct{})
	for _, spec := range specs {
		if _, ok := seen[spec.SystemTypeID]; ok {
			continue
		}
		seen[spec.SystemTypeID] = struct{}{}

		template, err := uow.TemplateRepository().GetActiveByType(ctx, spec.SystemTypeID)
		if err != nil {
			return nil, err
		}
		if template != nil {
			templates[spec.SystemTypeID] = template
		}
	}
	return templates, nil
}
