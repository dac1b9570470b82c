package checklist

import (
	"errors"
	"fmt"
	"sort"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

// ErrTemplateIsNotConstructed is returned when a Template was not created
// through the NewTemplate constructor.
var ErrTemplateIsNotConstructed = errors.New("Template must be created via NewTemplate constructor")

// Template is the static, versionless definition of the work required for one
// system type. Templates exist only to be instantiated; a checklist created
// from a template keeps its own copy of the steps, so the template may be
// edited later without touching checklists already in progress.
type Template struct {
	id           kernel.UUID
	systemTypeID kernel.UUID
	name         string
	steps        []Step

	guard guard.ConstructorGuard
}

// NewTemplate creates a Template from validated steps. Step order indexes
// must be unique within the template; steps are kept sorted by index.
func NewTemplate(id kernel.UUID, systemTypeID kernel.UUID, name string, steps []Step) (*Template, error) {
	t := &Template{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setID(id),
		t.setSystemTypeID(systemTypeID),
		t.setName(name),
		t.setSteps(steps),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// Validate ensures the template was created through NewTemplate.
func (t *Template) Validate() error {
	if t == nil {
		return ErrTemplateIsNotConstructed
	}
	return t.guard.Validate(ErrTemplateIsNotConstructed)
}

// ID returns the template identifier.
func (t *Template) ID() kernel.UUID {
	return t.id
}

// SystemTypeID returns the system type this template describes.
func (t *Template) SystemTypeID() kernel.UUID {
	return t.systemTypeID
}

// Name returns the template name.
func (t *Template) Name() string {
	return t.name
}

// Steps returns the template's steps ordered by index.
func (t *Template) Steps() []Step {
	return t.steps
}

// Instantiate creates the per-system checklist for this template. The steps
// are copied into the checklist as a snapshot.
func (t *Template) Instantiate(checklistID kernel.UUID, systemID kernel.UUID) (*Checklist, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	steps := make([]Step, len(t.steps))
	copy(steps, t.steps)

	return NewChecklist(checklistID, systemID, t.id, steps)
}

func (t *Template) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Template) setSystemTypeID(systemTypeID kernel.UUID) error {
	if err := systemTypeID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("system type", err)
	}
	t.systemTypeID = systemTypeID
	return nil
}

func (t *Template) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("template name")
	}
	t.name = name
	return nil
}

func (t *Template) setSteps(steps []Step) error {
	seen := make(map[int]struct{}, len(steps))
	for _, step := range steps {
		if err := step.Validate(); err != nil {
			return err
		}
		if _, dup := seen[step.OrderIndex()]; dup {
			return errs.NewValueIsInvalidErrorWithCause("steps",
				fmt.Errorf("duplicate order index %d", step.OrderIndex()))
		}
		seen[step.OrderIndex()] = struct{}{}
	}

	sorted := make([]Step, len(steps))
	copy(sorted, steps)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].OrderIndex() < sorted[j].OrderIndex()
	})

	t.steps = sorted
	return nil
}
