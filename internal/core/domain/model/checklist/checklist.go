package checklist

import (
	"errors"
	"fmt"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

var (
	// ErrChecklistIsNotConstructed is returned when a Checklist was not created
	// through NewChecklist or RestoreChecklist.
	ErrChecklistIsNotConstructed = errors.New(
		"Checklist must be created via NewChecklist or RestoreChecklist")

	// ErrSelfQACheck is returned when the QA checker is the same user who
	// performed the work. Verification requires a second person.
	ErrSelfQACheck = errors.New("QA check must be performed by a different user than the worker")
)

// Checklist is the instantiated, per-system record of required work. It keeps
// a snapshot of its template's steps and at most one completion per step.
//
// Invariants:
//   - every completion references a step present in the snapshot
//   - at most one completion exists per step
//   - a step is done only when completed and, if QA-required, QA-checked
type Checklist struct {
	id          kernel.UUID
	systemID    kernel.UUID
	templateID  kernel.UUID
	steps       []Step
	completions []*Completion

	guard guard.ConstructorGuard
}

// NewChecklist creates an empty checklist over a step snapshot. Normally
// reached through Template.Instantiate.
func NewChecklist(id, systemID, templateID kernel.UUID, steps []Step) (*Checklist, error) {
	c := &Checklist{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setSystemID(systemID),
		c.setTemplateID(templateID),
		c.setSteps(steps),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreChecklist reconstructs a checklist from persistence together with its
// recorded completions.
func RestoreChecklist(
	id, systemID, templateID kernel.UUID,
	steps []Step,
	completions []*Completion,
) (*Checklist, error) {
	c, err := NewChecklist(id, systemID, templateID, steps)
	if err != nil {
		return nil, err
	}

	if err = c.setCompletions(completions); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate ensures the checklist was created through a constructor.
func (c *Checklist) Validate() error {
	if c == nil {
		return ErrChecklistIsNotConstructed
	}
	return c.guard.Validate(ErrChecklistIsNotConstructed)
}

// ID returns the checklist identifier.
func (c *Checklist) ID() kernel.UUID {
	return c.id
}

// SystemID returns the system this checklist belongs to.
func (c *Checklist) SystemID() kernel.UUID {
	return c.systemID
}

// TemplateID returns the template this checklist was instantiated from.
func (c *Checklist) TemplateID() kernel.UUID {
	return c.templateID
}

// Steps returns the step snapshot ordered by index.
func (c *Checklist) Steps() []Step {
	return c.steps
}

// Completions returns all recorded completions.
func (c *Checklist) Completions() []*Completion {
	return c.completions
}

// StepByID returns the snapshot step with the given id.
func (c *Checklist) StepByID(stepID kernel.UUID) (Step, error) {
	for _, step := range c.steps {
		if step.ID().IsEqual(stepID) {
			return step, nil
		}
	}
	return Step{}, errs.NewObjectNotFoundError("step", stepID.String())
}

// CompletionForStep returns the completion recorded for a step, or nil.
func (c *Checklist) CompletionForStep(stepID kernel.UUID) *Completion {
	for _, completion := range c.completions {
		if completion.StepID().IsEqual(stepID) {
			return completion
		}
	}
	return nil
}

// CompleteStep records that a worker performed a step. The operation upserts
// the completion keyed by (checklist, step); recording work again replaces the
// previous record and clears any QA check, since redone work must be
// re-verified. QA fields are never set here, regardless of the worker's role.
func (c *Checklist) CompleteStep(
	stepID kernel.UUID,
	workerID kernel.UUID,
	at time.Time,
	timeSpentMinutes int,
	notes string,
) error {
	if err := c.Validate(); err != nil {
		return err
	}

	if _, err := c.StepByID(stepID); err != nil {
		return err
	}

	completion, err := NewCompletion(stepID, workerID, at, timeSpentMinutes, notes)
	if err != nil {
		return err
	}

	for i, existing := range c.completions {
		if existing.StepID().IsEqual(stepID) {
			c.completions[i] = completion
			return nil
		}
	}

	c.completions = append(c.completions, completion)
	return nil
}

// QACheckStep records the second-person verification of a completed step.
// The step must already have a completion, and the checker must not be the
// worker who performed it. Role authorization is checked by the caller; the
// checklist only enforces the structural rules it can see.
func (c *Checklist) QACheckStep(stepID kernel.UUID, checkerID kernel.UUID, at time.Time) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := checkerID.Validate(); err != nil {
		return err
	}
	if at.IsZero() {
		return errs.NewValueIsRequiredError("qa checked at")
	}

	if _, err := c.StepByID(stepID); err != nil {
		return err
	}

	completion := c.CompletionForStep(stepID)
	if completion == nil {
		return errs.NewPreconditionFailedErrorWithCause("qa check",
			fmt.Errorf("step %s has no completion to verify", stepID))
	}

	if completion.CompletedBy().IsEqual(checkerID) {
		return errs.NewForbiddenErrorWithCause("qa check step", ErrSelfQACheck)
	}

	completion.qaCheckedBy = &checkerID
	completion.qaCheckedAt = &at
	return nil
}

// StepIsDone reports whether a step counts as done: a completion exists and,
// for QA-required steps, it has been QA-checked.
func (c *Checklist) StepIsDone(step Step) bool {
	completion := c.CompletionForStep(step.ID())
	if completion == nil {
		return false
	}
	if step.RequiresQA() && !completion.IsQAChecked() {
		return false
	}
	return true
}

// IsComplete reports whether every step is done. A checklist with no steps is
// vacuously complete.
func (c *Checklist) IsComplete() bool {
	for _, step := range c.steps {
		if !c.StepIsDone(step) {
			return false
		}
	}
	return true
}

// IncompleteStepIDs returns the ids of steps not yet done, in index order.
func (c *Checklist) IncompleteStepIDs() []kernel.UUID {
	var ids []kernel.UUID
	for _, step := range c.steps {
		if !c.StepIsDone(step) {
			ids = append(ids, step.ID())
		}
	}
	return ids
}

// Progress returns the weight-based completed fraction in [0, 1].
func (c *Checklist) Progress() float64 {
	total := 0
	done := 0
	for _, step := range c.steps {
		total += step.Weight()
		if c.StepIsDone(step) {
			done += step.Weight()
		}
	}

	if total == 0 {
		return 1
	}
	return float64(done) / float64(total)
}

func (c *Checklist) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Checklist) setSystemID(systemID kernel.UUID) error {
	if err := systemID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("system", err)
	}
	c.systemID = systemID
	return nil
}

func (c *Checklist) setTemplateID(templateID kernel.UUID) error {
	if err := templateID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("template", err)
	}
	c.templateID = templateID
	return nil
}

func (c *Checklist) setSteps(steps []Step) error {
	for _, step := range steps {
		if err := step.Validate(); err != nil {
			return err
		}
	}
	c.steps = steps
	return nil
}

func (c *Checklist) setCompletions(completions []*Completion) error {
	seen := make(map[string]struct{}, len(completions))
	for _, completion := range completions {
		if err := completion.Validate(); err != nil {
			return err
		}
		if _, err := c.StepByID(completion.StepID()); err != nil {
			return err
		}
		key := completion.StepID().String()
		if _, dup := seen[key]; dup {
			return errs.NewValueIsInvalidErrorWithCause("completions",
				fmt.Errorf("duplicate completion for step %s", key))
		}
		seen[key] = struct{}{}
	}
	c.completions = completions
	return nil
}
