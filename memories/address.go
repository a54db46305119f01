package memories

import (
	"errors"
	"fmt"
)

var ErrOffsetUnderflow = errors.New("offset underflow")

// Address identifies a cell before relocation.
type Address struct {
	Segment int
	Offset  int
}

var _ Value = Address{}

func (Address) isValue() {}

func (a Address) String() string {
	return fmt.Sprintf("%d:%d", a.Segment, a.Offset)
}

func (a Address) Add(n int) Address {
	return Address{
		Segment: a.Segment,
		Offset:  a.Offset + n,
	}
}

func (a Address) Sub(n int) (Address, error) {
	if n > a.Offset {
		return Address{}, fmt.Errorf("%w: %v - %d", ErrOffsetUnderflow, a, n)
	}
	return Address{
		Segment: a.Segment,
		Offset:  a.Offset - n,
	}, nil
}

// Distance returns a - b for addresses in the same segment.
func (a Address) Distance(b Address) (int, error) {
	if a.Segment != b.Segment {
		return 0, fmt.Errorf("distance between different segments: %v and %v", a, b)
	}
	return a.Offset - b.Offset, nil
}
