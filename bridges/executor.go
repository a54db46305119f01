package bridges

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/reusee/hintvm/hints"
	"github.com/reusee/hintvm/logs"
	"github.com/reusee/hintvm/memories"
	"github.com/reusee/hintvm/scopes"
)

var (
	ErrHintFailed               = errors.New("hint failed")
	ErrMultipleScopeTransitions = errors.New("multiple scope transitions in one hint")
	ErrSignaturesUnavailable    = errors.New("no signature builtin")
)

// Machine is the state a hint runs against.
type Machine interface {
	MemorySegments() *memories.Segments
	Registers() hints.Registers
	// SignatureRegistry returns nil when the program has no signature builtin.
	SignatureRegistry() SignatureRegistry
}

type SignatureRegistry interface {
	AddSignatureRS(addr memories.Address, r, s *big.Int) error
}

// Executor coordinates hint sessions. The coordinator is the only side touching machine state.
type Executor struct {
	Backend Backend
	Logger  logs.Logger
	NewSpan logs.NewSpan
	Timeout time.Duration
	// Trace, when set, observes every request and response in order.
	Trace func(TraceEvent)
}

type scopeTransition struct {
	enter    bool
	bindings map[string]any
}

type session struct {
	ctx        context.Context
	executor   *Executor
	machine    Machine
	hint       hints.HintData
	registers  hints.Registers
	ch         *channel
	transition *scopeTransition
}

func (e *Executor) ExecuteHint(ctx context.Context, machine Machine, hint hints.HintData, sc *scopes.Scopes) (err error) {
	if e.NewSpan != nil {
		ctx, _ = e.NewSpan(ctx, "")
	}
	defer func() {
		err = logs.WrapSpan(ctx, err)
	}()

	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch := newChannel()
	registers := machine.Registers()
	env := Env{
		Memory:     MemoryProxy{ch: ch},
		Segments:   SegmentsProxy{ch: ch},
		IDs:        IDsProxy{ch: ch},
		Scope:      ScopeProxy{ch: ch},
		Signatures: SignaturesProxy{ch: ch},
		AP:         registers.AP,
		FP:         registers.FP,
		Locals:     sc.Locals(),
	}

	var delta map[string]any
	var runErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() {
			if p := recover(); p != nil {
				runErr = fmt.Errorf("%w: panic: %v", ErrHintFailed, p)
				ch.end()
			}
		}()
		delta, runErr = e.Backend.Run(ctx, hint.Code, env)
		ch.end()
	}()

	s := &session{
		ctx:       ctx,
		executor:  e,
		machine:   machine,
		hint:      hint,
		registers: registers,
		ch:        ch,
	}
	if err := s.serve(); err != nil {
		close(ch.quit)
		cancel()
		<-done
		e.Logger.DebugContext(ctx, "hint aborted", "error", err)
		return wrap(err)
	}
	<-done

	if runErr != nil {
		return wrap(fmt.Errorf("%w: %w", ErrHintFailed, runErr))
	}

	sc.Merge(scopes.CloneMap(delta))
	if t := s.transition; t != nil {
		if t.enter {
			sc.Enter(t.bindings)
		} else if err := sc.Exit(); err != nil {
			return wrap(err)
		}
	}

	return nil
}

func (s *session) serve() error {
	for {
		var op Operation
		select {
		case op = <-s.ch.ops:
		case <-s.ctx.Done():
			return s.ctx.Err()
		}
		if _, ok := op.(End); ok {
			return nil
		}
		if s.executor.Trace != nil {
			s.executor.Trace(TraceEvent{Request: op})
		}
		s.executor.Logger.DebugContext(s.ctx, "hint operation", "op", fmt.Sprintf("%T", op))

		result, err := s.handle(op)
		if err != nil {
			return err
		}

		if s.executor.Trace != nil {
			s.executor.Trace(TraceEvent{Response: result})
		}
		if err := s.ch.reply(result); err != nil {
			return err
		}
	}
}

func (s *session) handle(op Operation) (OperationResult, error) {
	segments := s.machine.MemorySegments()
	mem := segments.Memory

	switch op := op.(type) {

	case AddSegment:
		return Segment{
			Base: segments.Add(),
		}, nil

	case ReadMemory:
		value, _ := mem.Get(op.Addr)
		return ReadValue{
			Value: value,
		}, nil

	case WriteMemory:
		if err := mem.Insert(op.Addr, op.Value); err != nil {
			return nil, err
		}
		return Success{}, nil

	case ReadIdentifier:
		ref, err := s.hint.Reference(op.Name)
		if err != nil {
			return nil, err
		}
		value, err := hints.GetValue(ref, s.registers, mem, s.hint.ApTracking)
		if err != nil {
			return nil, err
		}
		return ReadValue{
			Value: value,
		}, nil

	case WriteIdentifier:
		ref, err := s.hint.Reference(op.Name)
		if err != nil {
			return nil, err
		}
		addr, err := hints.ComputeAddress(ref, s.registers, mem, s.hint.ApTracking)
		if err != nil {
			return nil, err
		}
		if err := mem.Insert(addr, op.Value); err != nil {
			return nil, err
		}
		return Success{}, nil

	case WriteVectorArgument:
		if _, err := segments.WriteArg(op.Ptr, op.Values); err != nil {
			return nil, err
		}
		return Success{}, nil

	case EnterScope:
		if err := s.setTransition(&scopeTransition{
			enter:    true,
			bindings: op.Bindings,
		}); err != nil {
			return nil, err
		}
		return Success{}, nil

	case ExitScope:
		if err := s.setTransition(&scopeTransition{}); err != nil {
			return nil, err
		}
		return Success{}, nil

	case RegisterSignature:
		registry := s.machine.SignatureRegistry()
		if registry == nil {
			return nil, ErrSignaturesUnavailable
		}
		if err := registry.AddSignatureRS(op.Addr, op.R, op.S); err != nil {
			return nil, err
		}
		return Success{}, nil

	}

	return nil, fmt.Errorf("%w: unknown operation %T", ErrChannel, op)
}

func (s *session) setTransition(t *scopeTransition) error {
	if s.transition != nil {
		return ErrMultipleScopeTransitions
	}
	s.transition = t
	return nil
}
