package hints

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/reusee/hintvm/memories"
)

var (
	ErrMissingIdentifier    = errors.New("missing identifier")
	ErrInvalidTrackingGroup = errors.New("invalid ap tracking group")
	ErrInvalidReference     = errors.New("invalid reference")
)

type Register uint8

const (
	RegisterNone Register = iota
	RegisterAP
	RegisterFP
)

func (r Register) String() string {
	switch r {
	case RegisterAP:
		return "ap"
	case RegisterFP:
		return "fp"
	}
	return "none"
}

// ApTracking locates an instruction within a flow of ap changes.
type ApTracking struct {
	Group  int `json:"group"`
	Offset int `json:"offset"`
}

// Reference describes how an identifier is reached from the registers:
// [reg + Offset1] + Offset2 when Inner, reg + Offset1 + Offset2 otherwise,
// read once more when Dereference.
type Reference struct {
	Register    Register
	Offset1     int
	Offset2     int
	Inner       bool
	Dereference bool
	ApTracking  *ApTracking
	Immediate   *big.Int
}

// Registers is the register view a reference is resolved against.
type Registers struct {
	AP memories.Address
	FP memories.Address
}

// ComputeAddress resolves ref to the address of the identifier.
func ComputeAddress(ref Reference, regs Registers, mem *memories.Memory, tracking ApTracking) (memories.Address, error) {
	var base memories.Address
	switch ref.Register {
	case RegisterFP:
		base = regs.FP
	case RegisterAP:
		if ref.ApTracking == nil {
			return memories.Address{}, fmt.Errorf("%w: ap reference without tracking", ErrInvalidReference)
		}
		if ref.ApTracking.Group != tracking.Group {
			return memories.Address{}, fmt.Errorf("%w: %d, expected %d", ErrInvalidTrackingGroup, ref.ApTracking.Group, tracking.Group)
		}
		diff := tracking.Offset - ref.ApTracking.Offset
		var err error
		base, err = offset(regs.AP, -diff)
		if err != nil {
			return memories.Address{}, err
		}
	default:
		return memories.Address{}, fmt.Errorf("%w: no register", ErrInvalidReference)
	}

	addr, err := offset(base, ref.Offset1)
	if err != nil {
		return memories.Address{}, err
	}
	if ref.Inner {
		addr, err = mem.GetAddress(addr)
		if err != nil {
			return memories.Address{}, fmt.Errorf("%w: %w", ErrInvalidReference, err)
		}
	}
	return offset(addr, ref.Offset2)
}

// GetValue returns the identifier's value: the immediate, the dereferenced cell or the address itself.
// A dereferenced cell that holds nothing yields nil.
func GetValue(ref Reference, regs Registers, mem *memories.Memory, tracking ApTracking) (memories.Value, error) {
	if ref.Immediate != nil {
		return memories.FeltFromBig(ref.Immediate), nil
	}
	addr, err := ComputeAddress(ref, regs, mem, tracking)
	if err != nil {
		return nil, err
	}
	if !ref.Dereference {
		return addr, nil
	}
	value, ok := mem.Get(addr)
	if !ok {
		return nil, nil
	}
	return value, nil
}

func offset(addr memories.Address, n int) (memories.Address, error) {
	if n >= 0 {
		return addr.Add(n), nil
	}
	return addr.Sub(-n)
}
