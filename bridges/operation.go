package bridges

import (
	"math/big"

	"github.com/reusee/hintvm/memories"
)

// Operation is a request sent by the hint worker.
type Operation interface {
	isOperation()
}

type AddSegment struct{}

type WriteMemory struct {
	Addr  memories.Address
	Value memories.Value
}

type ReadMemory struct {
	Addr memories.Address
}

type ReadIdentifier struct {
	Name string
}

type WriteIdentifier struct {
	Name  string
	Value memories.Value
}

type WriteVectorArgument struct {
	Ptr    memories.Address
	Values []memories.Value
}

type EnterScope struct {
	Bindings map[string]any
}

type ExitScope struct{}

type RegisterSignature struct {
	Addr memories.Address
	R    *big.Int
	S    *big.Int
}

// End terminates a session. It has no response.
type End struct{}

func (AddSegment) isOperation()          {}
func (WriteMemory) isOperation()         {}
func (ReadMemory) isOperation()          {}
func (ReadIdentifier) isOperation()      {}
func (WriteIdentifier) isOperation()     {}
func (WriteVectorArgument) isOperation() {}
func (EnterScope) isOperation()          {}
func (ExitScope) isOperation()           {}
func (RegisterSignature) isOperation()   {}
func (End) isOperation()                 {}

// OperationResult is the coordinator's reply to one Operation.
type OperationResult interface {
	isOperationResult()
}

// ReadValue carries a cell or identifier value. Value is nil for absent cells.
type ReadValue struct {
	Value memories.Value
}

type Segment struct {
	Base memories.Address
}

type Success struct{}

func (ReadValue) isOperationResult() {}
func (Segment) isOperationResult()   {}
func (Success) isOperationResult()   {}

// TraceEvent records one side of an exchange. Exactly one field is set.
type TraceEvent struct {
	Request  Operation
	Response OperationResult
}
