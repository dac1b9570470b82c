package order

import (
	"errors"
	"fmt"

	"procurement/internal/core/domain/model/checklist"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

var (
	// ErrSystemIsNotConstructed is returned when a System was not created
	// through NewSystem or RestoreSystem.
	ErrSystemIsNotConstructed = errors.New("System must be created via NewSystem or RestoreSystem")

	// ErrChecklistAlreadyAttached is returned when attaching a checklist to a
	// system that already has one. A system owns at most one checklist.
	ErrChecklistAlreadyAttached = errors.New("system already has a checklist")

	// ErrChecklistSystemMismatch is returned when the checklist being attached
	// was instantiated for a different system.
	ErrChecklistSystemMismatch = errors.New("checklist belongs to a different system")
)

// SystemStatus is the small lifecycle of a single physical unit.
// Pending and InProgress are operator-set; Complete is derived from the
// system's checklist and can never be set directly.
type SystemStatus int

const (
	// UnknownSystemStatus catches uninitialized values.
	UnknownSystemStatus SystemStatus = iota

	// SystemPending means work on the unit has not started.
	SystemPending

	// SystemInProgress means the unit is being provisioned.
	SystemInProgress

	// SystemComplete means every checklist step is done. Derived only.
	SystemComplete
)

func getSystemStatusStrings() map[SystemStatus]string {
	return map[SystemStatus]string{
		UnknownSystemStatus: "unknown",
		SystemPending:       "pending",
		SystemInProgress:    "in_progress",
		SystemComplete:      "complete",
	}
}

// SystemStatusFromString parses the wire representation of a system status.
func SystemStatusFromString(s string) (SystemStatus, error) {
	switch s {
	case "pending":
		return SystemPending, nil
	case "in_progress":
		return SystemInProgress, nil
	case "complete":
		return SystemComplete, nil
	default:
		return UnknownSystemStatus, errs.NewValueIsInvalidErrorWithCause(
			"system status", fmt.Errorf("%q is not a valid system status", s))
	}
}

// Validate checks the value is one of the three system statuses.
func (s SystemStatus) Validate() error {
	if s != SystemPending && s != SystemInProgress && s != SystemComplete {
		return errs.NewValueIsInvalidErrorWithCause(
			"system status", fmt.Errorf("%d is not a valid system status", s))
	}
	return nil
}

// String returns the wire name of the system status.
func (s SystemStatus) String() string {
	if str, ok := getSystemStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// System is one physical unit within an order. It belongs to exactly one
// order and owns at most one checklist instantiated from the template for its
// system type.
type System struct {
	// id uniquely identifies the system
	id kernel.UUID
	// systemTypeID references the catalog type the unit was ordered as
	systemTypeID kernel.UUID
	// serialNumber is empty until the physical unit is received
	serialNumber string
	// assetName is the name the unit is provisioned under
	assetName string
	// status is the operator-set lifecycle state; see EffectiveStatus
	status SystemStatus
	// assignedTo is the technician working the unit (nil if unassigned)
	assignedTo *kernel.UUID
	// queuePosition orders units for work intake
	queuePosition int
	// skipQueue lets a unit jump the intake queue
	skipQueue bool
	// externalAssetRefs are opaque references into inventory/asset systems
	externalAssetRefs []string
	// checklist is the instantiated work record, nil if the type has no template
	checklist *checklist.Checklist

	guard guard.ConstructorGuard
}

// NewSystem creates a System in pending status with no checklist attached.
func NewSystem(id, systemTypeID kernel.UUID, assetName string, queuePosition int) (*System, error) {
	sys := &System{
		status: SystemPending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		sys.setID(id),
		sys.setSystemTypeID(systemTypeID),
		sys.setAssetName(assetName),
		sys.setQueuePosition(queuePosition),
	); err != nil {
		return nil, err
	}

	return sys, nil
}

// RestoreSystem reconstructs a System from persistence.
func RestoreSystem(
	id, systemTypeID kernel.UUID,
	serialNumber string,
	assetName string,
	status SystemStatus,
	assignedTo *kernel.UUID,
	queuePosition int,
	skipQueue bool,
	externalAssetRefs []string,
	cl *checklist.Checklist,
) (*System, error) {
	sys, err := NewSystem(id, systemTypeID, assetName, queuePosition)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	if assignedTo != nil {
		if err = assignedTo.Validate(); err != nil {
			return nil, err
		}
	}

	sys.serialNumber = serialNumber
	sys.status = status
	sys.assignedTo = assignedTo
	sys.skipQueue = skipQueue
	sys.externalAssetRefs = externalAssetRefs

	if cl != nil {
		if err = sys.AttachChecklist(cl); err != nil {
			return nil, err
		}
	}

	return sys, nil
}

// Validate ensures the system was created through a constructor.
func (s *System) Validate() error {
	if s == nil {
		return ErrSystemIsNotConstructed
	}
	return s.guard.Validate(ErrSystemIsNotConstructed)
}

// ID returns the system identifier.
func (s *System) ID() kernel.UUID {
	return s.id
}

// SystemTypeID returns the catalog type of the unit.
func (s *System) SystemTypeID() kernel.UUID {
	return s.systemTypeID
}

// SerialNumber returns the unit's serial number, empty until received.
func (s *System) SerialNumber() string {
	return s.serialNumber
}

// AssetName returns the provisioning name of the unit.
func (s *System) AssetName() string {
	return s.assetName
}

// Status returns the operator-set status. Use EffectiveStatus for the derived
// state that includes checklist completion.
func (s *System) Status() SystemStatus {
	return s.status
}

// AssignedTo returns the technician working the unit, or nil.
func (s *System) AssignedTo() *kernel.UUID {
	return s.assignedTo
}

// QueuePosition returns the work intake ordering hint.
func (s *System) QueuePosition() int {
	return s.queuePosition
}

// SkipQueue reports whether the unit jumps the intake queue.
func (s *System) SkipQueue() bool {
	return s.skipQueue
}

// ExternalAssetRefs returns opaque references into external asset systems.
func (s *System) ExternalAssetRefs() []string {
	return s.externalAssetRefs
}

// Checklist returns the instantiated checklist, or nil.
func (s *System) Checklist() *checklist.Checklist {
	return s.checklist
}

// EffectiveStatus derives the system's true lifecycle state. The system is
// complete if and only if its checklist has zero incomplete steps; a system
// without a checklist has no required work and is therefore complete. Any
// other state is whatever the operator set.
func (s *System) EffectiveStatus() SystemStatus {
	if s.checklist == nil || s.checklist.IsComplete() {
		return SystemComplete
	}
	return s.status
}

// SetSerialNumber records the serial once the physical unit is received.
func (s *System) SetSerialNumber(serialNumber string) {
	s.serialNumber = serialNumber
}

// SetStatus sets the operator-controlled status. Complete is derived from the
// checklist and is rejected here.
func (s *System) SetStatus(status SystemStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if status == SystemComplete {
		return errs.NewValueIsInvalidErrorWithCause("system status",
			errors.New("complete is derived from the checklist and cannot be set directly"))
	}
	s.status = status
	return nil
}

// AssignTo sets the technician working the unit.
func (s *System) AssignTo(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	s.assignedTo = &userID
	return nil
}

// SetQueuePosition moves the unit within the intake queue.
func (s *System) SetQueuePosition(queuePosition int) error {
	return s.setQueuePosition(queuePosition)
}

// SetSkipQueue toggles the queue-jump flag.
func (s *System) SetSkipQueue(skipQueue bool) {
	s.skipQueue = skipQueue
}

// AddExternalAssetRef appends an opaque external asset reference.
func (s *System) AddExternalAssetRef(ref string) error {
	if ref == "" {
		return errs.NewValueIsRequiredError("external asset reference")
	}
	s.externalAssetRefs = append(s.externalAssetRefs, ref)
	return nil
}

// AttachChecklist attaches the checklist instantiated for this system.
func (s *System) AttachChecklist(cl *checklist.Checklist) error {
	if err := cl.Validate(); err != nil {
		return err
	}
	if s.checklist != nil {
		return ErrChecklistAlreadyAttached
	}
	if !cl.SystemID().IsEqual(s.id) {
		return ErrChecklistSystemMismatch
	}
	s.checklist = cl
	return nil
}

func (s *System) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *System) setSystemTypeID(systemTypeID kernel.UUID) error {
	if err := systemTypeID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("system type", err)
	}
	s.systemTypeID = systemTypeID
	return nil
}

func (s *System) setAssetName(assetName string) error {
	if assetName == "" {
		return errs.NewValueIsRequiredError("asset name")
	}
	s.assetName = assetName
	return nil
}

func (s *System) setQueuePosition(queuePosition int) error {
	if queuePosition < 0 {
		return errs.NewValueIsInvalidErrorWithCause("queue position",
			fmt.Errorf("%d is negative", queuePosition))
	}
	s.queuePosition = queuePosition
	return nil
}
