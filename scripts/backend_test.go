package scripts

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/hintvm/bridges"
	"github.com/reusee/hintvm/configs"
	"github.com/reusee/hintvm/hints"
	"github.com/reusee/hintvm/memories"
	"github.com/reusee/hintvm/modes"
	"github.com/reusee/hintvm/scopes"
	"github.com/reusee/hintvm/vmconfigs"
)

type testModule struct {
	dscope.Module
	Bridges bridges.Module
	Scripts Module
}

type testMachine struct {
	segments *memories.Segments
}

func (m *testMachine) MemorySegments() *memories.Segments {
	return m.segments
}

func (m *testMachine) Registers() hints.Registers {
	return hints.Registers{
		AP: memories.Address{Segment: 1, Offset: 3},
		FP: memories.Address{Segment: 1, Offset: 2},
	}
}

func (m *testMachine) SignatureRegistry() bridges.SignatureRegistry {
	return nil
}

func newTestMachine(t *testing.T) *testMachine {
	segments := memories.NewSegments()
	segments.Add()
	exec := segments.Add()
	if _, err := segments.LoadData(exec, []memories.Value{
		memories.NewFelt(3),
		memories.NewFelt(4),
	}); err != nil {
		t.Fatal(err)
	}
	return &testMachine{
		segments: segments,
	}
}

func runHint(t *testing.T, limit vmconfigs.HintStepLimit, machine *testMachine, hint hints.HintData, sc *scopes.Scopes) (err error) {
	dscope.New(
		modes.ForTest(t),
		new(testModule),
	).Fork(
		func() configs.Loader {
			return configs.NewLoader(nil, "")
		},
		func() vmconfigs.HintStepLimit {
			return limit
		},
	).Call(func(
		executor *bridges.Executor,
	) {
		err = executor.ExecuteHint(context.Background(), machine, hint, sc)
	})
	return
}

func TestMemoryAccess(t *testing.T) {
	machine := newTestMachine(t)
	sc := scopes.New()
	err := runHint(t, 0, machine, hints.HintData{
		Code: `
a = memory[fp - 2]
b = memory[fp + (-1)]
memory[fp] = a + b
missing = memory.get(fp + 100)
fallback = memory.get(fp + 100, 42)
base = segments.add()
segments.write_arg(base, [1, 2, fp])
memory[base + 3] = base
dist = (base + 3) - base
`,
	}, sc)
	if err != nil {
		t.Fatal(err)
	}

	felt, err := machine.segments.Memory.GetFelt(memories.Address{Segment: 1, Offset: 2})
	if err != nil {
		t.Fatal(err)
	}
	if felt.String() != "7" {
		t.Fatalf("got %v", felt)
	}

	base := memories.Address{Segment: 2}
	addr, err := machine.segments.Memory.GetAddress(base.Add(2))
	if err != nil {
		t.Fatal(err)
	}
	if addr.String() != "1:2" {
		t.Fatalf("got %v", addr)
	}
	if _, err := machine.segments.Memory.GetAddress(base.Add(3)); err != nil {
		t.Fatal(err)
	}

	locals := sc.Locals()
	if locals["missing"] != nil {
		t.Fatalf("got %v", locals["missing"])
	}
	if n := locals["fallback"].(*big.Int); n.Int64() != 42 {
		t.Fatalf("got %v", n)
	}
	if locals["base"] != base {
		t.Fatalf("got %v", locals["base"])
	}
	if n := locals["dist"].(*big.Int); n.Int64() != 3 {
		t.Fatalf("got %v", n)
	}
	if _, ok := locals["memory"]; ok {
		t.Fatal("proxy leaked into scope")
	}
}

func TestAbsentIndex(t *testing.T) {
	machine := newTestMachine(t)
	err := runHint(t, 0, machine, hints.HintData{
		Code: `x = memory[fp + 100]`,
	}, scopes.New())
	if !errors.Is(err, bridges.ErrHintFailed) {
		t.Fatalf("got %v", err)
	}
}

func TestIdentifiers(t *testing.T) {
	machine := newTestMachine(t)
	sc := scopes.New()
	err := runHint(t, 0, machine, hints.HintData{
		Code: `
ids.res = ids.a * 10
ptr = ids.res_ptr
`,
		IDs: map[string]hints.Reference{
			"a": {
				Register:    hints.RegisterFP,
				Offset1:     -1,
				Dereference: true,
			},
			"res": {
				Register:    hints.RegisterFP,
				Dereference: true,
			},
			"res_ptr": {
				Register: hints.RegisterFP,
			},
		},
	}, sc)
	if err != nil {
		t.Fatal(err)
	}
	felt, err := machine.segments.Memory.GetFelt(memories.Address{Segment: 1, Offset: 2})
	if err != nil {
		t.Fatal(err)
	}
	if felt.String() != "40" {
		t.Fatalf("got %v", felt)
	}
	if ptr := sc.Locals()["ptr"]; ptr != (memories.Address{Segment: 1, Offset: 2}) {
		t.Fatalf("got %v", ptr)
	}

	err = runHint(t, 0, machine, hints.HintData{
		Code: `x = ids.nope`,
	}, scopes.New())
	if !errors.Is(err, hints.ErrMissingIdentifier) {
		t.Fatalf("got %v", err)
	}
}

func TestScopes(t *testing.T) {
	machine := newTestMachine(t)
	sc := scopes.New()
	sc.AssignOrUpdate("n", big.NewInt(1))
	sc.AssignOrUpdate("untouched", big.NewInt(5))

	if err := runHint(t, 0, machine, hints.HintData{
		Code: `
n = n + 1
vm_enter_scope({"inner": [1, 2], "where": ap})
`,
	}, sc); err != nil {
		t.Fatal(err)
	}
	if sc.Depth() != 1 {
		t.Fatalf("got %v", sc.Depth())
	}
	inner := sc.Locals()["inner"].([]any)
	if len(inner) != 2 || inner[1].(*big.Int).Int64() != 2 {
		t.Fatalf("got %v", inner)
	}
	if where := sc.Locals()["where"]; where != (memories.Address{Segment: 1, Offset: 3}) {
		t.Fatalf("got %v", where)
	}

	if err := runHint(t, 0, machine, hints.HintData{
		Code: `
inner.append(3)
vm_exit_scope()
`,
	}, sc); err != nil {
		t.Fatal(err)
	}
	if sc.Depth() != 0 {
		t.Fatalf("got %v", sc.Depth())
	}
	if n := sc.Locals()["n"].(*big.Int); n.Int64() != 2 {
		t.Fatalf("got %v", n)
	}

	err := runHint(t, 0, machine, hints.HintData{
		Code: `vm_exit_scope()`,
	}, sc)
	if !errors.Is(err, scopes.ErrScopeUnderflow) {
		t.Fatalf("got %v", err)
	}
}

func TestFunctionsSurviveScope(t *testing.T) {
	machine := newTestMachine(t)
	sc := scopes.New()
	if err := runHint(t, 0, machine, hints.HintData{
		Code: `
def double(x):
    return x * 2
`,
	}, sc); err != nil {
		t.Fatal(err)
	}
	if err := runHint(t, 0, machine, hints.HintData{
		Code: `y = double(21)`,
	}, sc); err != nil {
		t.Fatal(err)
	}
	if y := sc.Locals()["y"].(*big.Int); y.Int64() != 42 {
		t.Fatalf("got %v", y)
	}
}

func TestStepLimit(t *testing.T) {
	machine := newTestMachine(t)
	err := runHint(t, 1000, machine, hints.HintData{
		Code: `
i = 0
while True:
    i += 1
`,
	}, scopes.New())
	if !errors.Is(err, bridges.ErrHintFailed) {
		t.Fatalf("got %v", err)
	}
}

func TestSyntaxError(t *testing.T) {
	machine := newTestMachine(t)
	err := runHint(t, 0, machine, hints.HintData{
		Code: `x = = 1`,
	}, scopes.New())
	if !errors.Is(err, bridges.ErrHintFailed) {
		t.Fatalf("got %v", err)
	}
}

func TestReservedNames(t *testing.T) {
	machine := newTestMachine(t)

	sc := scopes.New()
	sc.AssignOrUpdate("fp", big.NewInt(1))
	sc.AssignOrUpdate("memory", big.NewInt(2))
	err := runHint(t, 0, machine, hints.HintData{
		Code: `x = 1`,
	}, sc)
	if !errors.Is(err, ErrReservedName) {
		t.Fatalf("got %v", err)
	}
	if _, ok := sc.Get("x"); ok {
		t.Fatal()
	}

	sc = scopes.New()
	if err := runHint(t, 0, machine, hints.HintData{
		Code: `
ap = ap + 1
segments = None
x = 1
`,
	}, sc); err != nil {
		t.Fatal(err)
	}
	locals := sc.Locals()
	if _, ok := locals["ap"]; ok {
		t.Fatalf("got %v", locals)
	}
	if _, ok := locals["segments"]; ok {
		t.Fatalf("got %v", locals)
	}
	if x, ok := locals["x"].(*big.Int); !ok || x.Int64() != 1 {
		t.Fatalf("got %v", locals)
	}
}
