// Package actor models the authenticated user performing a mutating
// operation. Identity and credentials are owned by the external identity
// provider; the domain receives an already-authenticated actor and only
// checks its role against operation requirements.
package actor

import (
	"errors"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/guard"
)

// ErrActorIsNotConstructed is returned when an Actor was not created through
// the NewActor constructor.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Actor is the acting user passed into every mutating operation. It is a
// value object: an identifier plus a role, nothing more.
type Actor struct {
	id   kernel.UUID
	role Role

	guard guard.ConstructorGuard
}

// NewActor creates an Actor with a validated id and role.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	a := Actor{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setRole(role),
	); err != nil {
		return Actor{}, err
	}

	return a, nil
}

// Validate ensures the actor was created through NewActor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// ID returns the actor's user identifier.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// CanManageOrders reports whether this actor may assign orders and change
// priorities.
func (a Actor) CanManageOrders() bool {
	return a.role.CanManageOrders()
}

// CanQACheck reports whether this actor may QA-check checklist steps.
func (a Actor) CanQACheck() bool {
	return a.role.CanQACheck()
}

func (a *Actor) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Actor) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	a.role = role
	return nil
}
