package cmds

import (
	"fmt"
	"testing"
)

func TestVar(t *testing.T) {
	steps := Var[int]("TestVarSteps")
	program := Var[string]("TestVarProgram")
	GlobalExecutor.MustExecute([]string{
		"TestVarSteps", "42",
		"TestVarProgram", "fib.cue",
	})
	if *steps != 42 {
		t.Fatalf("got %v", *steps)
	}
	if *program != "fib.cue" {
		t.Fatalf("got %v", *program)
	}
	GlobalExecutor.MustExecute([]string{"TestVarSteps."})
	if *steps != 0 {
		t.Fatalf("got %v", *steps)
	}
}

func TestSwitch(t *testing.T) {
	tap := Switch("TestSwitch")
	GlobalExecutor.MustExecute([]string{"TestSwitch"})
	if !*tap {
		t.Fatal()
	}
	GlobalExecutor.MustExecute([]string{"!TestSwitch"})
	if *tap {
		t.Fatal()
	}
}

func TestCollect(t *testing.T) {
	list := Collect[string]("TestCollect")
	GlobalExecutor.MustExecute([]string{
		"TestCollect", "a",
		"TestCollect", "b",
	})
	if str := fmt.Sprintf("%v", *list); str != "[a b]" {
		t.Fatalf("got %s", str)
	}
}

func TestTypedVar(t *testing.T) {
	type Addr string
	v := Var[Addr]("TestTypedVar")
	GlobalExecutor.MustExecute([]string{
		"TestTypedVar", "/tmp/ipc.sock",
	})
	if *v != "/tmp/ipc.sock" {
		t.Fatalf("got %v", *v)
	}
}
