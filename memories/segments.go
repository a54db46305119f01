package memories

import (
	"errors"
	"fmt"
	"math/big"
)

var ErrMissingSegmentUsedSizes = errors.New("missing segment used sizes")

type Segments struct {
	Memory    *Memory
	usedSizes []int
}

func NewSegments() *Segments {
	return &Segments{
		Memory: NewMemory(),
	}
}

// Add allocates a new segment and returns its base.
func (s *Segments) Add() Address {
	return Address{
		Segment: s.Memory.addSegment(),
	}
}

func (s *Segments) Num() int {
	return s.Memory.NumSegments()
}

// LoadData writes data contiguously from ptr and returns the address past the last cell.
func (s *Segments) LoadData(ptr Address, data []Value) (Address, error) {
	for i, value := range data {
		if err := s.Memory.Insert(ptr.Add(i), value); err != nil {
			return Address{}, err
		}
	}
	return ptr.Add(len(data)), nil
}

func (s *Segments) ComputeEffectiveSizes() []int {
	if s.usedSizes != nil {
		return s.usedSizes
	}
	sizes := make([]int, s.Num())
	for i := range sizes {
		sizes[i] = s.Memory.segmentLen(i)
	}
	s.usedSizes = sizes
	return sizes
}

func (s *Segments) UsedSize(index int) (int, error) {
	if s.usedSizes == nil {
		return 0, ErrMissingSegmentUsedSizes
	}
	if index < 0 || index >= len(s.usedSizes) {
		return 0, fmt.Errorf("%w: segment %d", ErrMissingSegmentUsedSizes, index)
	}
	return s.usedSizes[index], nil
}

// SetUsedSizes overrides the computed sizes.
func (s *Segments) SetUsedSizes(sizes []int) {
	s.usedSizes = sizes
}

// RelocationTable returns the linear base of each segment. The first base is 1.
func (s *Segments) RelocationTable() ([]int, error) {
	if s.usedSizes == nil {
		return nil, ErrMissingSegmentUsedSizes
	}
	table := make([]int, len(s.usedSizes))
	base := 1
	for i, size := range s.usedSizes {
		table[i] = base
		base += size
	}
	return table, nil
}

type RelocatedCell struct {
	Index int
	Value *big.Int
}

// Relocate flattens memory into linear cells ordered by index.
func (s *Segments) Relocate() ([]RelocatedCell, error) {
	table, err := s.RelocationTable()
	if err != nil {
		return nil, err
	}
	var cells []RelocatedCell
	for index := range table {
		for offset := range s.Memory.segmentLen(index) {
			value, ok := s.Memory.Get(Address{Segment: index, Offset: offset})
			if !ok {
				continue
			}
			var n *big.Int
			switch value := value.(type) {
			case Felt:
				n = value.Big()
			case Address:
				if value.Segment < 0 || value.Segment >= len(table) {
					return nil, fmt.Errorf("%w: relocating %v", ErrUnallocatedSegment, value)
				}
				n = big.NewInt(int64(table[value.Segment] + value.Offset))
			}
			cells = append(cells, RelocatedCell{
				Index: table[index] + offset,
				Value: n,
			})
		}
	}
	return cells, nil
}

// WriteArg writes a hint argument vector at ptr.
func (s *Segments) WriteArg(ptr Address, args []Value) (Address, error) {
	return s.LoadData(ptr, args)
}
