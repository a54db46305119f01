package scripts

import (
	"fmt"

	"github.com/reusee/hintvm/memories"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Relocatable is an address as seen by hints.
type Relocatable struct {
	Address memories.Address
}

var (
	_ starlark.Value      = Relocatable{}
	_ starlark.HasBinary  = Relocatable{}
	_ starlark.Comparable = Relocatable{}
	_ starlark.HasAttrs   = Relocatable{}
)

func (r Relocatable) String() string {
	return r.Address.String()
}

func (r Relocatable) Type() string {
	return "relocatable"
}

func (r Relocatable) Freeze() {}

func (r Relocatable) Truth() starlark.Bool {
	return starlark.True
}

func (r Relocatable) Hash() (uint32, error) {
	return uint32(r.Address.Segment)*2654435761 ^ uint32(r.Address.Offset), nil
}

func (r Relocatable) Binary(op syntax.Token, y starlark.Value, side starlark.Side) (starlark.Value, error) {
	switch op {

	case syntax.PLUS:
		n, err := starlark.AsInt32(y)
		if err != nil {
			return nil, nil
		}
		return Relocatable{Address: r.Address.Add(n)}, nil

	case syntax.MINUS:
		if side == starlark.Right {
			return nil, nil
		}
		switch y := y.(type) {
		case starlark.Int:
			n, err := starlark.AsInt32(y)
			if err != nil {
				return nil, err
			}
			var addr memories.Address
			if n >= 0 {
				addr, err = r.Address.Sub(n)
			} else {
				addr = r.Address.Add(-n)
			}
			if err != nil {
				return nil, err
			}
			return Relocatable{Address: addr}, nil
		case Relocatable:
			d, err := r.Address.Distance(y.Address)
			if err != nil {
				return nil, err
			}
			return starlark.MakeInt(d), nil
		}

	}
	return nil, nil
}

func (r Relocatable) CompareSameType(op syntax.Token, y starlark.Value, depth int) (bool, error) {
	other := y.(Relocatable)
	a, b := r.Address, other.Address
	cmp := a.Segment - b.Segment
	if cmp == 0 {
		cmp = a.Offset - b.Offset
	}
	switch op {
	case syntax.EQL:
		return cmp == 0, nil
	case syntax.NEQ:
		return cmp != 0, nil
	case syntax.LT:
		return cmp < 0, nil
	case syntax.LE:
		return cmp <= 0, nil
	case syntax.GT:
		return cmp > 0, nil
	case syntax.GE:
		return cmp >= 0, nil
	}
	return false, fmt.Errorf("unsupported comparison %v", op)
}

func (r Relocatable) Attr(name string) (starlark.Value, error) {
	switch name {
	case "segment_index":
		return starlark.MakeInt(r.Address.Segment), nil
	case "offset":
		return starlark.MakeInt(r.Address.Offset), nil
	}
	return nil, nil
}

func (r Relocatable) AttrNames() []string {
	return []string{"offset", "segment_index"}
}

func makeRelocatable(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var segment, offset int
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "segment_index", &segment, "offset", &offset); err != nil {
		return nil, err
	}
	if offset < 0 {
		return nil, fmt.Errorf("%w: %d", memories.ErrOffsetUnderflow, offset)
	}
	return Relocatable{
		Address: memories.Address{
			Segment: segment,
			Offset:  offset,
		},
	}, nil
}
