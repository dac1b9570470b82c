package commands

import (
	"errors"

	"procurement/internal/core/domain/model/actor"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/guard"
)

var ErrQACheckStepCommandIsNotConstructed = errors.New(
	"QACheckStepCommand must be created via NewQACheckStepCommand constructor",
)

// QACheckStepCommand records quality verification of a completed checklist
// step. The verifier must not be the technician who completed the step.
type QACheckStepCommand struct { //nolint:recvcheck //using for validation
	checklistID kernel.UUID
	stepID      kernel.UUID
	actor       actor.Actor

	guard guard.ConstructorGuard
}

// NewQACheckStepCommand creates a command to QA-verify a completed step.
func NewQACheckStepCommand(
	checklistID kernel.UUID,
	stepID kernel.UUID,
	commandActor actor.Actor,
) (QACheckStepCommand, error) {
	cmd := QACheckStepCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setChecklistID(checklistID),
		cmd.setStepID(stepID),
		cmd.setActor(commandActor),
	); err != nil {
		return QACheckStepCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c QACheckStepCommand) Validate() error {
	return c.guard.Validate(ErrQACheckStepCommandIsNotConstructed)
}

// ChecklistID returns the checklist the step belongs to.
func (c QACheckStepCommand) ChecklistID() kernel.UUID {
	return c.checklistID
}

// StepID returns the step being verified.
func (c QACheckStepCommand) StepID() kernel.UUID {
	return c.stepID
}

// Actor returns the verifier.
func (c QACheckStepCommand) Actor() actor.Actor {
	return c.actor
}

func (c *QACheckStepCommand) setChecklistID(checklistID kernel.UUID) error {
	if err := checklistID.Validate(); err != nil {
		return err
	}
	c.checklistID = checklistID
	return nil
}

func (c *QACheckStepCommand) setStepID(stepID kernel.UUID) error {
	if err := stepID.Validate(); err != nil {
		return err
	}
	c.stepID = stepID
	return nil
}

func (c *QACheckStepCommand) setActor(commandActor actor.Actor) error {
	if err := commandActor.Validate(); err != nil {
		return err
	}
	c.actor = commandActor
	return nil
}
