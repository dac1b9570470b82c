package checklist

import (
	"errors"
	"fmt"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

// ErrStepIsNotConstructed is returned when a Step was not created through the
// NewStep constructor.
var ErrStepIsNotConstructed = errors.New("Step must be created via NewStep constructor")

// Step is one unit of work within a template or an instantiated checklist.
// Inside a checklist it is a snapshot copied from the template at
// instantiation time and never changes afterwards.
type Step struct {
	// id identifies the step; checklist completions reference it
	id kernel.UUID
	// name is the human-readable work description
	name string
	// orderIndex orders steps within their checklist
	orderIndex int
	// requiresQA marks steps that need a second verification before counting as done
	requiresQA bool
	// estimatedMinutes is the planned duration, used for scheduling views
	estimatedMinutes int
	// weight is the step's relative share in progress metrics
	weight int

	guard guard.ConstructorGuard
}

// NewStep creates a validated Step definition.
// Weight must be positive so progress fractions are well defined; the
// estimated duration may be zero for trivial steps.
func NewStep(
	id kernel.UUID,
	name string,
	orderIndex int,
	requiresQA bool,
	estimatedMinutes int,
	weight int,
) (Step, error) {
	step := Step{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		step.setID(id),
		step.setName(name),
		step.setOrderIndex(orderIndex),
		step.setEstimatedMinutes(estimatedMinutes),
		step.setWeight(weight),
	); err != nil {
		return Step{}, err
	}

	step.requiresQA = requiresQA
	return step, nil
}

// Validate ensures the step was created through NewStep.
func (s Step) Validate() error {
	return s.guard.Validate(ErrStepIsNotConstructed)
}

// ID returns the step identifier.
func (s Step) ID() kernel.UUID {
	return s.id
}

// Name returns the work description.
func (s Step) Name() string {
	return s.name
}

// OrderIndex returns the step's position within its checklist.
func (s Step) OrderIndex() int {
	return s.orderIndex
}

// RequiresQA reports whether the step needs a QA-check to count as done.
func (s Step) RequiresQA() bool {
	return s.requiresQA
}

// EstimatedMinutes returns the planned duration in minutes.
func (s Step) EstimatedMinutes() int {
	return s.estimatedMinutes
}

// Weight returns the relative weight used for progress metrics.
func (s Step) Weight() int {
	return s.weight
}

func (s *Step) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Step) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("step name")
	}
	s.name = name
	return nil
}

func (s *Step) setOrderIndex(orderIndex int) error {
	if orderIndex < 0 {
		return errs.NewValueIsInvalidErrorWithCause("order index",
			fmt.Errorf("%d is negative", orderIndex))
	}
	s.orderIndex = orderIndex
	return nil
}

func (s *Step) setEstimatedMinutes(estimatedMinutes int) error {
	if estimatedMinutes < 0 {
		return errs.NewValueIsInvalidErrorWithCause("estimated minutes",
			fmt.Errorf("%d is negative", estimatedMinutes))
	}
	s.estimatedMinutes = estimatedMinutes
	return nil
}

func (s *Step) setWeight(weight int) error {
	if weight <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight",
			fmt.Errorf("%d is not greater than 0", weight))
	}
	s.weight = weight
	return nil
}
