package vms

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/reusee/hintvm/bridges"
	"github.com/reusee/hintvm/builtins"
	"github.com/reusee/hintvm/hints"
	"github.com/reusee/hintvm/logs"
	"github.com/reusee/hintvm/memories"
	"github.com/reusee/hintvm/procs"
	"github.com/reusee/hintvm/scopes"
)

var (
	ErrStepLimit    = errors.New("step limit exceeded")
	ErrRunNotEnded  = errors.New("run not ended")
	ErrNoEntrypoint = errors.New("no entrypoint")
)

// HintProcessor executes one hint against the machine.
type HintProcessor interface {
	ExecuteHint(ctx context.Context, machine bridges.Machine, hint hints.HintData, sc *scopes.Scopes) error
}

var _ HintProcessor = new(bridges.Executor)

// Runner drives one program through its phases.
type Runner struct {
	Program  *Program
	VM       *VM
	Scopes   *scopes.Scopes
	Hints    HintProcessor
	Step     StepFunc
	Logger   logs.Logger
	MaxSteps int
	// CheckUsedCells verifies builtin allocations when finalizing.
	CheckUsedCells bool

	ProgramBase   memories.Address
	ExecutionBase memories.Address
	EndPC         memories.Address
	ended         bool
}

// Run executes every phase from segment initialization to finalization.
func (r *Runner) Run(ctx context.Context) error {
	return procs.Exhaust[context.Context](ctx, r.Phases())
}

func (r *Runner) Phases() procs.Procs[context.Context] {
	return procs.Procs[context.Context]{
		procs.Once(r.initializeSegments),
		procs.Once(r.initializeMainEntrypoint),
		procs.Once(r.initializeVM),
		procs.Func[context.Context](r.runUntilEnd),
		procs.Once(r.endRun),
		procs.Once(r.finalize),
	}
}

func (r *Runner) initializeSegments(ctx context.Context) error {
	segments := r.VM.Segments
	r.ProgramBase = segments.Add()
	r.ExecutionBase = segments.Add()
	for _, runner := range r.VM.Builtins {
		runner.InitializeSegments(segments)
	}
	return nil
}

func (r *Runner) initializeMainEntrypoint(ctx context.Context) error {
	if r.Program.Main < 0 || r.Program.Main > len(r.Program.Data) {
		return wrap(fmt.Errorf("%w: main %d", ErrNoEntrypoint, r.Program.Main))
	}

	var stack []memories.Value
	for _, runner := range r.VM.Builtins {
		stack = append(stack, runner.InitialStack()...)
	}
	returnFP := r.VM.Segments.Add()
	r.EndPC = r.VM.Segments.Add()
	stack = append(stack, returnFP, r.EndPC)

	if _, err := r.VM.Segments.LoadData(r.ProgramBase, r.Program.Data); err != nil {
		return wrap(err)
	}
	if _, err := r.VM.Segments.LoadData(r.ExecutionBase, stack); err != nil {
		return wrap(err)
	}

	frame := r.ExecutionBase.Add(len(stack))
	r.VM.RunContext = RunContext{
		PC: r.ProgramBase.Add(r.Program.Main),
		AP: frame,
		FP: frame,
	}
	return nil
}

func (r *Runner) initializeVM(ctx context.Context) error {
	mem := r.VM.Segments.Memory
	for _, runner := range r.VM.Builtins {
		runner.AddValidationRule(mem)
	}
	if err := mem.ValidateExisting(); err != nil {
		return wrap(err)
	}
	return nil
}

// runUntilEnd steps once per call and continues until PC reaches the end.
func (r *Runner) runUntilEnd(ctx context.Context) (procs.Proc[context.Context], error) {
	if r.VM.RunContext.PC == r.EndPC {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.MaxSteps > 0 && r.VM.CurrentStep >= r.MaxSteps {
		return nil, wrap(fmt.Errorf("%w: %d", ErrStepLimit, r.MaxSteps))
	}

	pc := r.VM.RunContext.PC
	if pc.Segment == r.ProgramBase.Segment {
		for _, hint := range r.Program.Hints[pc.Offset] {
			if err := r.Hints.ExecuteHint(ctx, r.VM, hint, r.Scopes); err != nil {
				return nil, wrap(fmt.Errorf("hint at %v: %w", pc, err))
			}
		}
	}

	if err := r.Step(r.VM); err != nil {
		return nil, wrap(fmt.Errorf("step %d at %v: %w", r.VM.CurrentStep, pc, err))
	}
	r.VM.CurrentStep++

	return procs.Func[context.Context](r.runUntilEnd), nil
}

func (r *Runner) endRun(ctx context.Context) error {
	r.VM.Segments.ComputeEffectiveSizes()
	r.ended = true
	r.Logger.DebugContext(ctx, "run ended",
		"steps", r.VM.CurrentStep,
		"segments", r.VM.Segments.Num(),
	)
	return nil
}

// finalize walks the builtin stop pointers from AP downwards.
func (r *Runner) finalize(ctx context.Context) error {
	if !r.ended {
		return wrap(ErrRunNotEnded)
	}

	pointer := r.VM.RunContext.AP
	for _, runner := range slices.Backward(r.VM.Builtins) {
		next, stop, err := runner.FinalStack(r.VM.Segments, pointer)
		if err != nil {
			return wrap(err)
		}
		r.Logger.DebugContext(ctx, "builtin final stack",
			"builtin", runner.Name(),
			"stop", stop,
		)
		pointer = next
	}

	if r.CheckUsedCells {
		for _, runner := range r.VM.Builtins {
			used, size, err := runner.GetUsedCellsAndAllocatedSize(r.VM.Segments, r.VM.CurrentStep)
			if err != nil {
				return wrap(err)
			}
			if used > size {
				return wrap(fmt.Errorf("%w: %s used %d of %d", builtins.ErrInsufficientAllocatedCells, runner.Name(), used, size))
			}
		}
	}

	return nil
}

// SegmentAddresses reports the span of every builtin.
func (r *Runner) SegmentAddresses() []builtins.SegmentAddresses {
	ret := make([]builtins.SegmentAddresses, 0, len(r.VM.Builtins))
	for _, runner := range r.VM.Builtins {
		ret = append(ret, runner.GetMemorySegmentAddresses())
	}
	return ret
}

// Relocated returns the flattened memory of an ended run.
func (r *Runner) Relocated() ([]memories.RelocatedCell, error) {
	if !r.ended {
		return nil, wrap(ErrRunNotEnded)
	}
	cells, err := r.VM.Segments.Relocate()
	if err != nil {
		return nil, wrap(err)
	}
	return cells, nil
}

// Snapshot collects the state worth inspecting after a run, failed or not.
func (r *Runner) Snapshot(runErr error) map[string]any {
	ret := map[string]any{
		"steps":    r.VM.CurrentStep,
		"pc":       r.VM.PC,
		"ap":       r.VM.AP,
		"fp":       r.VM.FP,
		"ended":    r.ended,
		"scope":    r.Scopes.Locals(),
		"builtins": r.SegmentAddresses(),
		"error":    nil,
	}
	if runErr != nil {
		ret["error"] = runErr.Error()
	}
	return ret
}
