package cmds

import (
	"bytes"
	"strings"
	"testing"
)

func TestExecutor(t *testing.T) {
	executor := NewExecutor()

	var steps int
	executor.Define("-default-steps", Func(func() {
		steps = 42
	}))
	executor.Define("-steps", Func(func(i int) {
		steps = i
	}))

	if err := executor.Execute([]string{"-default-steps"}); err != nil {
		t.Fatal(err)
	}
	if steps != 42 {
		t.Fatalf("got %v", steps)
	}

	if err := executor.Execute([]string{"-steps", "7"}); err != nil {
		t.Fatal(err)
	}
	if steps != 7 {
		t.Fatalf("got %v", steps)
	}

	err := executor.Execute([]string{"foo"})
	if err == nil || !strings.Contains(err.Error(), "unknown command: foo") {
		t.Fatalf("got %v", err)
	}

	err = executor.Execute([]string{"-steps", "x"})
	if err == nil || !strings.Contains(err.Error(), "convert x to int") {
		t.Fatalf("got %v", err)
	}
}

func TestSubCommands(t *testing.T) {
	executor := NewExecutor()
	var dump, tap int
	executor.Define("debug", Sub(map[string]*Command{
		"dump": Func(func() {
			dump = 1
		}),
		"tap": Func(func(i int) {
			tap = i
		}),
	}))

	if err := executor.Execute([]string{
		"debug",
		"dump",
		"tap", "42",
	}); err != nil {
		t.Fatal(err)
	}
	if dump != 1 {
		t.Fatalf("got %v", dump)
	}
	if tap != 42 {
		t.Fatalf("got %v", tap)
	}
}

func TestDuplicatedSubCommand(t *testing.T) {
	executor := NewExecutor()
	executor.Define("foo", Sub(map[string]*Command{
		"a": nil,
	}))
	executor.Define("bar", Sub(map[string]*Command{
		"a": nil,
	}))
	err := executor.Execute([]string{"foo", "bar"})
	if err == nil || !strings.Contains(err.Error(), "duplicated sub command: bar a") {
		t.Fatalf("got %v", err)
	}
}

func TestOptionalArgument(t *testing.T) {
	executor := NewExecutor()
	var n int
	var s string
	executor.Define("foo", Func(func(arg *int, arg2 *string) {
		n = *arg
		s = *arg2
	}))

	if err := executor.Execute([]string{"foo", "42", "bar"}); err != nil {
		t.Fatal(err)
	}
	if n != 42 || s != "bar" {
		t.Fatalf("got %v %v", n, s)
	}

	if err := executor.Execute([]string{"foo"}); err != nil {
		t.Fatal(err)
	}
	if n != 0 || s != "" {
		t.Fatalf("got %v %v", n, s)
	}
}

func TestBadCommandFunc(t *testing.T) {
	defer func() {
		if p := recover(); p == nil {
			t.Fatal("should panic")
		}
	}()
	Func(func() int { return 1 })
}

func TestUsage(t *testing.T) {
	executor := NewExecutor()
	executor.Define("debug", Sub(map[string]*Command{
		"dump": Func(func() {}).Desc("DUMP"),
		"deep": Sub(map[string]*Command{
			"tap": Func(func() {}).Desc("TAP"),
		}).Desc("DEEP"),
	}).Desc("DEBUG"))
	buf := new(bytes.Buffer)
	executor.WriteUsage(buf)
	out := buf.String()
	for _, want := range []string{"debug\tDEBUG", "  dump\tDUMP", "    tap\tTAP", "(help, -help, --help)\tprint this usage"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %s", want, out)
		}
	}
}
