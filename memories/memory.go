package memories

import (
	"errors"
	"fmt"
)

var (
	ErrUnallocatedSegment = errors.New("unallocated segment")
	ErrInconsistentMemory = errors.New("inconsistent memory")
	ErrUnknownMemoryCell  = errors.New("unknown memory cell")
	ErrExpectedFelt       = errors.New("expected felt")
	ErrExpectedAddress    = errors.New("expected address")
	ErrMemoryValidation   = errors.New("memory validation failed")
)

// ValidationRule is consulted synchronously on every insert landing in the
// segment it is registered for. It returns the addresses it validated.
type ValidationRule interface {
	Validate(mem *Memory, addr Address) ([]Address, error)
}

// Memory is a write-once store of segmented cells.
type Memory struct {
	segments  [][]Value
	rules     map[int]ValidationRule
	validated map[Address]bool
}

func NewMemory() *Memory {
	return &Memory{
		rules:     make(map[int]ValidationRule),
		validated: make(map[Address]bool),
	}
}

func (m *Memory) NumSegments() int {
	return len(m.segments)
}

func (m *Memory) addSegment() int {
	m.segments = append(m.segments, nil)
	return len(m.segments) - 1
}

func (m *Memory) segment(addr Address) ([]Value, error) {
	if addr.Segment < 0 || addr.Segment >= len(m.segments) {
		return nil, fmt.Errorf("%w: %v", ErrUnallocatedSegment, addr)
	}
	return m.segments[addr.Segment], nil
}

func (m *Memory) Insert(addr Address, value Value) error {
	if value == nil {
		return fmt.Errorf("insert nil value at %v", addr)
	}
	seg, err := m.segment(addr)
	if err != nil {
		return err
	}
	if addr.Offset < 0 {
		return fmt.Errorf("%w: %v", ErrOffsetUnderflow, addr)
	}

	prevLen := len(seg)
	if addr.Offset < len(seg) {
		if prev := seg[addr.Offset]; prev != nil {
			if ValuesEqual(prev, value) {
				return m.validate(addr)
			}
			return fmt.Errorf("%w: %v holds %v, inserting %v", ErrInconsistentMemory, addr, prev, value)
		}
	} else {
		seg = append(seg, make([]Value, addr.Offset+1-len(seg))...)
		m.segments[addr.Segment] = seg
	}
	seg[addr.Offset] = value

	if err := m.validate(addr); err != nil {
		// rejected values never become part of memory
		seg[addr.Offset] = nil
		if len(seg) > prevLen {
			m.segments[addr.Segment] = seg[:prevLen]
		}
		return err
	}
	return nil
}

func (m *Memory) validate(addr Address) error {
	rule, ok := m.rules[addr.Segment]
	if !ok || m.validated[addr] {
		return nil
	}
	addrs, err := rule.Validate(m, addr)
	if err != nil {
		return fmt.Errorf("%w at %v: %w", ErrMemoryValidation, addr, err)
	}
	for _, a := range addrs {
		m.validated[a] = true
	}
	return nil
}

func (m *Memory) Get(addr Address) (Value, bool) {
	seg, err := m.segment(addr)
	if err != nil || addr.Offset < 0 || addr.Offset >= len(seg) {
		return nil, false
	}
	value := seg[addr.Offset]
	return value, value != nil
}

func (m *Memory) GetFelt(addr Address) (Felt, error) {
	value, ok := m.Get(addr)
	if !ok {
		return Felt{}, fmt.Errorf("%w: %v", ErrUnknownMemoryCell, addr)
	}
	felt, ok := value.(Felt)
	if !ok {
		return Felt{}, fmt.Errorf("%w at %v, got %v", ErrExpectedFelt, addr, value)
	}
	return felt, nil
}

func (m *Memory) GetAddress(addr Address) (Address, error) {
	value, ok := m.Get(addr)
	if !ok {
		return Address{}, fmt.Errorf("%w: %v", ErrUnknownMemoryCell, addr)
	}
	ret, ok := value.(Address)
	if !ok {
		return Address{}, fmt.Errorf("%w at %v, got %v", ErrExpectedAddress, addr, value)
	}
	return ret, nil
}

// AddValidationRule registers rule for segment, replacing any previous one.
func (m *Memory) AddValidationRule(segment int, rule ValidationRule) {
	m.rules[segment] = rule
}

func (m *Memory) IsValidated(addr Address) bool {
	return m.validated[addr]
}

// ValidateExisting runs the registered rules over cells written before the rules existed.
func (m *Memory) ValidateExisting() error {
	for index := range m.rules {
		if index < 0 || index >= len(m.segments) {
			continue
		}
		for offset, value := range m.segments[index] {
			if value == nil {
				continue
			}
			if err := m.validate(Address{Segment: index, Offset: offset}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *Memory) segmentLen(index int) int {
	return len(m.segments[index])
}
