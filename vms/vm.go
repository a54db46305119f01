package vms

import (
	"github.com/reusee/hintvm/bridges"
	"github.com/reusee/hintvm/builtins"
	"github.com/reusee/hintvm/hints"
	"github.com/reusee/hintvm/memories"
)

type RunContext struct {
	PC memories.Address
	AP memories.Address
	FP memories.Address
}

// VM is the machine state a run mutates.
type VM struct {
	RunContext
	Segments    *memories.Segments
	Builtins    []builtins.Runner
	CurrentStep int
}

var _ bridges.Machine = new(VM)

func NewVM() *VM {
	return &VM{
		Segments: memories.NewSegments(),
	}
}

func (v *VM) MemorySegments() *memories.Segments {
	return v.Segments
}

func (v *VM) Registers() hints.Registers {
	return hints.Registers{
		AP: v.RunContext.AP,
		FP: v.RunContext.FP,
	}
}

func (v *VM) SignatureRegistry() bridges.SignatureRegistry {
	for _, runner := range v.Builtins {
		if sig, ok := runner.(*builtins.SignatureRunner); ok {
			return sig
		}
	}
	return nil
}

// Builtin returns the runner named name.
func (v *VM) Builtin(name string) (builtins.Runner, bool) {
	for _, runner := range v.Builtins {
		if runner.Name() == name {
			return runner, true
		}
	}
	return nil, false
}
