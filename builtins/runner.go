package builtins

import (
	"errors"

	"github.com/reusee/hintvm/memories"
)

var (
	ErrMalformedAddress           = errors.New("malformed address")
	ErrMalformedKey               = errors.New("malformed public key")
	ErrMalformedSignature         = errors.New("malformed signature")
	ErrMissingSignature           = errors.New("missing signature")
	ErrSignatureMismatch          = errors.New("signature mismatch")
	ErrInvalidStopPointer         = errors.New("invalid stop pointer")
	ErrInsufficientAllocatedCells = errors.New("insufficient allocated cells")
	ErrFinalStack                 = errors.New("final stack error")
	ErrZeroRatio                  = errors.New("zero ratio")
	ErrUnknownBuiltin             = errors.New("unknown builtin")
)

// Runner is a builtin owning a dedicated segment.
// Each runner is also the validation rule of its segment.
type Runner interface {
	memories.ValidationRule

	Name() string
	Base() int
	Included() bool
	Ratio() int
	CellsPerInstance() int

	InitializeSegments(segments *memories.Segments)
	InitialStack() []memories.Value
	AddValidationRule(mem *memories.Memory)

	GetAllocatedMemoryUnits(currentStep int) (int, error)
	GetUsedCells(segments *memories.Segments) (int, error)
	GetUsedInstances(segments *memories.Segments) (int, error)
	GetUsedCellsAndAllocatedSize(segments *memories.Segments, currentStep int) (used int, size int, err error)
	GetMemorySegmentAddresses() SegmentAddresses
	FinalStack(segments *memories.Segments, pointer memories.Address) (memories.Address, int, error)
}

// SegmentAddresses describes the span a builtin used. StopPtr is nil before FinalStack.
type SegmentAddresses struct {
	Name    string
	Base    int
	StopPtr *int
}
