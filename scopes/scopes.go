package scopes

import (
	"errors"
)

var ErrScopeUnderflow = errors.New("scope underflow")

// Frame holds the variables of one hint scope.
type Frame struct {
	Parent *Frame
	Vars   map[string]any
}

func (f *Frame) Get(name string) (any, bool) {
	if v, ok := f.Vars[name]; ok {
		return v, true
	}
	if f.Parent != nil {
		return f.Parent.Get(name)
	}
	return nil, false
}

func (f *Frame) Def(name string, value any) {
	if f.Vars == nil {
		f.Vars = make(map[string]any)
	}
	f.Vars[name] = value
}

// Scopes is a stack of frames rooted at the main frame.
type Scopes struct {
	top *Frame
}

func New() *Scopes {
	return &Scopes{
		top: &Frame{},
	}
}

// Enter pushes a frame seeded with a deep copy of bindings.
func (s *Scopes) Enter(bindings map[string]any) {
	s.top = &Frame{
		Parent: s.top,
		Vars:   CloneMap(bindings),
	}
}

func (s *Scopes) Exit() error {
	if s.top.Parent == nil {
		return ErrScopeUnderflow
	}
	s.top = s.top.Parent
	return nil
}

// Depth is the number of frames above main.
func (s *Scopes) Depth() int {
	n := 0
	for f := s.top; f.Parent != nil; f = f.Parent {
		n++
	}
	return n
}

// Locals returns a deep copy of the top frame's variables.
func (s *Scopes) Locals() map[string]any {
	ret := CloneMap(s.top.Vars)
	if ret == nil {
		ret = make(map[string]any)
	}
	return ret
}

// Get resolves name in the top frame only. Hints do not see parent frames.
func (s *Scopes) Get(name string) (any, bool) {
	v, ok := s.top.Vars[name]
	return v, ok
}

// Lookup resolves name through the frame chain.
func (s *Scopes) Lookup(name string) (any, bool) {
	return s.top.Get(name)
}

func (s *Scopes) AssignOrUpdate(name string, value any) {
	s.top.Def(name, value)
}

// Merge inserts or updates every entry of delta in the top frame.
func (s *Scopes) Merge(delta map[string]any) {
	for name, value := range delta {
		s.top.Def(name, value)
	}
}
