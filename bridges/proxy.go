package bridges

import (
	"math/big"
	"slices"

	"github.com/reusee/hintvm/memories"
	"github.com/reusee/hintvm/scopes"
)

// Env is what a hint worker sees. Nothing in it aliases machine state.
type Env struct {
	Memory     MemoryProxy
	Segments   SegmentsProxy
	IDs        IDsProxy
	Scope      ScopeProxy
	Signatures SignaturesProxy
	AP         memories.Address
	FP         memories.Address
	// Locals is a deep copy of the current scope frame.
	Locals map[string]any
}

type MemoryProxy struct {
	ch *channel
}

// Read returns nil for an absent cell.
func (m MemoryProxy) Read(addr memories.Address) (memories.Value, error) {
	result, err := expect[ReadValue](m.ch.request(ReadMemory{
		Addr: addr,
	}))
	return result.Value, err
}

func (m MemoryProxy) Write(addr memories.Address, value memories.Value) error {
	_, err := expect[Success](m.ch.request(WriteMemory{
		Addr:  addr,
		Value: value,
	}))
	return err
}

type SegmentsProxy struct {
	ch *channel
}

func (s SegmentsProxy) Add() (memories.Address, error) {
	result, err := expect[Segment](s.ch.request(AddSegment{}))
	return result.Base, err
}

func (s SegmentsProxy) WriteArg(ptr memories.Address, values []memories.Value) error {
	_, err := expect[Success](s.ch.request(WriteVectorArgument{
		Ptr:    ptr,
		Values: slices.Clone(values),
	}))
	return err
}

type IDsProxy struct {
	ch *channel
}

func (i IDsProxy) Read(name string) (memories.Value, error) {
	result, err := expect[ReadValue](i.ch.request(ReadIdentifier{
		Name: name,
	}))
	return result.Value, err
}

func (i IDsProxy) Write(name string, value memories.Value) error {
	_, err := expect[Success](i.ch.request(WriteIdentifier{
		Name:  name,
		Value: value,
	}))
	return err
}

type ScopeProxy struct {
	ch *channel
}

func (s ScopeProxy) Enter(bindings map[string]any) error {
	_, err := expect[Success](s.ch.request(EnterScope{
		Bindings: scopes.CloneMap(bindings),
	}))
	return err
}

func (s ScopeProxy) Exit() error {
	_, err := expect[Success](s.ch.request(ExitScope{}))
	return err
}

type SignaturesProxy struct {
	ch *channel
}

func (s SignaturesProxy) Add(addr memories.Address, r, sv *big.Int) error {
	_, err := expect[Success](s.ch.request(RegisterSignature{
		Addr: addr,
		R:    new(big.Int).Set(r),
		S:    new(big.Int).Set(sv),
	}))
	return err
}
