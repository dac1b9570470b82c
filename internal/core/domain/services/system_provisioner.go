package services

import (
	"procurement/internal/core/domain/model/checklist"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
)

// SystemSpec describes one physical unit requested by an upstream order event.
type SystemSpec struct {
	SystemTypeID kernel.UUID
	AssetName    string
	SerialNumber string
}

// SystemProvisioner is a domain service that turns the system specs of an
// incoming order event into System entities attached to the order, each
// carrying a checklist instantiated from the active template for its type.
//
// Business rules:
//   - Systems join the intake queue in the order they appear in the event.
//   - The checklist is a snapshot: template edits after provisioning never
//     reach already-created checklists.
//   - A system type without an active template yields a system with no
//     checklist, which counts as complete from the start.
type SystemProvisioner struct{}

// NewSystemProvisioner creates a new SystemProvisioner instance.
func NewSystemProvisioner() SystemProvisioner {
	return SystemProvisioner{}
}

// Provision creates the systems described by specs and attaches them to the
// order. templates maps system type ids to their active checklist template;
// a missing entry means the type has no checklist work defined.
func (p SystemProvisioner) Provision(
	o *order.Order,
	specs []SystemSpec,
	templates map[kernel.UUID]*checklist.Template,
) error {
	if err := o.Validate(); err != nil {
		return err
	}

	for position, spec := range specs {
		sys, err := order.NewSystem(kernel.NewUUID(), spec.SystemTypeID, spec.AssetName, position)
		if err != nil {
			return err
		}

		if spec.SerialNumber != "" {
			sys.SetSerialNumber(spec.SerialNumber)
		}

		if template, ok := templates[spec.SystemTypeID]; ok && template != nil {
			cl, instErr := template.Instantiate(kernel.NewUUID(), sys.ID())
			if instErr != nil {
				return instErr
			}
			if err = sys.AttachChecklist(cl); err != nil {
				return err
			}
		}

		if err = o.AddSystem(sys); err != nil {
			return err
		}
	}

	return nil
}
