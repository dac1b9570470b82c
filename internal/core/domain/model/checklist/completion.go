package checklist

import (
	"errors"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

// ErrCompletionIsNotConstructed is returned when a Completion was not created
// through one of its constructors.
var ErrCompletionIsNotConstructed = errors.New(
	"Completion must be created via NewCompletion or RestoreCompletion")

// Completion records that a checklist step was performed: who did the work and
// when, and for QA-required steps who verified it and when. There is at most
// one completion per (checklist, step) pair.
type Completion struct {
	stepID           kernel.UUID
	completedBy      kernel.UUID
	completedAt      time.Time
	timeSpentMinutes int
	notes            string
	qaCheckedBy      *kernel.UUID
	qaCheckedAt      *time.Time

	guard guard.ConstructorGuard
}

// NewCompletion records fresh work on a step. QA fields start empty; they are
// only ever filled through Checklist.QACheckStep.
func NewCompletion(
	stepID kernel.UUID,
	completedBy kernel.UUID,
	completedAt time.Time,
	timeSpentMinutes int,
	notes string,
) (*Completion, error) {
	c := &Completion{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setStepID(stepID),
		c.setCompletedBy(completedBy),
		c.setCompletedAt(completedAt),
		c.setTimeSpentMinutes(timeSpentMinutes),
	); err != nil {
		return nil, err
	}

	c.notes = notes
	return c, nil
}

// RestoreCompletion reconstructs a completion from persistence, including any
// recorded QA check.
func RestoreCompletion(
	stepID kernel.UUID,
	completedBy kernel.UUID,
	completedAt time.Time,
	timeSpentMinutes int,
	notes string,
	qaCheckedBy *kernel.UUID,
	qaCheckedAt *time.Time,
) (*Completion, error) {
	c, err := NewCompletion(stepID, completedBy, completedAt, timeSpentMinutes, notes)
	if err != nil {
		return nil, err
	}

	// QA fields come in pairs: a checker without a timestamp (or the reverse)
	// is corrupt data, not a valid state.
	if (qaCheckedBy == nil) != (qaCheckedAt == nil) {
		return nil, errs.NewValueIsInvalidError("qa check fields")
	}

	if qaCheckedBy != nil {
		if err = qaCheckedBy.Validate(); err != nil {
			return nil, err
		}
		c.qaCheckedBy = qaCheckedBy
		c.qaCheckedAt = qaCheckedAt
	}

	return c, nil
}

// Validate ensures the completion was created through a constructor.
func (c *Completion) Validate() error {
	if c == nil {
		return ErrCompletionIsNotConstructed
	}
	return c.guard.Validate(ErrCompletionIsNotConstructed)
}

// StepID returns the step this completion belongs to.
func (c *Completion) StepID() kernel.UUID {
	return c.stepID
}

// CompletedBy returns the worker who performed the step.
func (c *Completion) CompletedBy() kernel.UUID {
	return c.completedBy
}

// CompletedAt returns when the work was recorded.
func (c *Completion) CompletedAt() time.Time {
	return c.completedAt
}

// TimeSpentMinutes returns the reported effort in minutes.
func (c *Completion) TimeSpentMinutes() int {
	return c.timeSpentMinutes
}

// Notes returns the worker's free-text notes.
func (c *Completion) Notes() string {
	return c.notes
}

// QACheckedBy returns the verifying user, or nil if not yet QA-checked.
func (c *Completion) QACheckedBy() *kernel.UUID {
	return c.qaCheckedBy
}

// QACheckedAt returns when the QA check was recorded, or nil.
func (c *Completion) QACheckedAt() *time.Time {
	return c.qaCheckedAt
}

// IsQAChecked reports whether a QA check has been recorded.
func (c *Completion) IsQAChecked() bool {
	return c.qaCheckedAt != nil
}

func (c *Completion) setStepID(stepID kernel.UUID) error {
	if err := stepID.Validate(); err != nil {
		return err
	}
	c.stepID = stepID
	return nil
}

func (c *Completion) setCompletedBy(completedBy kernel.UUID) error {
	if err := completedBy.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("completed by", err)
	}
	c.completedBy = completedBy
	return nil
}

func (c *Completion) setCompletedAt(completedAt time.Time) error {
	if completedAt.IsZero() {
		return errs.NewValueIsRequiredError("completed at")
	}
	c.completedAt = completedAt
	return nil
}

func (c *Completion) setTimeSpentMinutes(timeSpentMinutes int) error {
	if timeSpentMinutes < 0 {
		return errs.NewValueIsInvalidError("time spent minutes")
	}
	c.timeSpentMinutes = timeSpentMinutes
	return nil
}
