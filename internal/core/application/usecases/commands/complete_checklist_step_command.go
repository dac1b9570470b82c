package commands

import (
	"errors"

	"procurement/internal/core/domain/model/actor"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

var ErrCompleteChecklistStepCommandIsNotConstructed = errors.New(
	"CompleteChecklistStepCommand must be created via NewCompleteChecklistStepCommand constructor",
)

// CompleteChecklistStepCommand records that a technician finished a checklist
// step. Completing an already-completed step replaces the earlier record and
// clears any QA verification on it, so redone work gets re-verified.
type CompleteChecklistStepCommand struct { //nolint:recvcheck //using for validation
	checklistID      kernel.UUID
	stepID           kernel.UUID
	timeSpentMinutes int
	notes            string
	actor            actor.Actor

	guard guard.ConstructorGuard
}

// NewCompleteChecklistStepCommand creates a command to record step work.
func NewCompleteChecklistStepCommand(
	checklistID kernel.UUID,
	stepID kernel.UUID,
	timeSpentMinutes int,
	notes string,
	commandActor actor.Actor,
) (CompleteChecklistStepCommand, error) {
	cmd := CompleteChecklistStepCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setChecklistID(checklistID),
		cmd.setStepID(stepID),
		cmd.setTimeSpentMinutes(timeSpentMinutes),
		cmd.setActor(commandActor),
	); err != nil {
		return CompleteChecklistStepCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteChecklistStepCommand) Validate() error {
	return c.guard.Validate(ErrCompleteChecklistStepCommandIsNotConstructed)
}

// ChecklistID returns the checklist the step belongs to.
func (c CompleteChecklistStepCommand) ChecklistID() kernel.UUID {
	return c.checklistID
}

// StepID returns the step being completed.
func (c CompleteChecklistStepCommand) StepID() kernel.UUID {
	return c.stepID
}

// TimeSpentMinutes returns the recorded effort.
func (c CompleteChecklistStepCommand) TimeSpentMinutes() int {
	return c.timeSpentMinutes
}

// Notes returns the technician's notes.
func (c CompleteChecklistStepCommand) Notes() string {
	return c.notes
}

// Actor returns the technician doing the work.
func (c CompleteChecklistStepCommand) Actor() actor.Actor {
	return c.actor
}

func (c *CompleteChecklistStepCommand) setChecklistID(checklistID kernel.UUID) error {
	if err := checklistID.Validate(); err != nil {
		return err
	}
	c.checklistID = checklistID
	return nil
}

func (c *CompleteChecklistStepCommand) setStepID(stepID kernel.UUID) error {
	if err := stepID.Validate(); err != nil {
		return err
	}
	c.stepID = stepID
	return nil
}

func (c *CompleteChecklistStepCommand) setTimeSpentMinutes(timeSpentMinutes int) error {
	if timeSpentMinutes < 0 {
		return errs.NewValueIsInvalidError("time spent minutes")
	}
	c.timeSpentMinutes = timeSpentMinutes
	return nil
}

func (c *CompleteChecklistStepCommand) setActor(commandActor actor.Actor) error {
	if err := commandActor.Validate(); err != nil {
		return err
	}
	c.actor = commandActor
	return nil
}
