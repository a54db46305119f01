package procs

import (
	"errors"
	"testing"
)

type counter struct {
	steps []string
}

func TestProcsOrder(t *testing.T) {
	repeat := 0
	var loop Proc[*counter]
	loop = Func[*counter](func(c *counter) (Proc[*counter], error) {
		c.steps = append(c.steps, "loop")
		repeat++
		if repeat < 3 {
			return loop, nil
		}
		return nil, nil
	})

	procs := Procs[*counter]{
		Once(func(c *counter) error {
			c.steps = append(c.steps, "init")
			return nil
		}),
		loop,
		Once(func(c *counter) error {
			c.steps = append(c.steps, "end")
			return nil
		}),
	}

	c := new(counter)
	if err := Exhaust[*counter](c, procs); err != nil {
		t.Fatal(err)
	}
	expected := []string{"init", "loop", "loop", "loop", "end"}
	if len(c.steps) != len(expected) {
		t.Fatalf("got %v", c.steps)
	}
	for i, step := range expected {
		if c.steps[i] != step {
			t.Fatalf("got %v", c.steps)
		}
	}
}

func TestProcsError(t *testing.T) {
	errFoo := errors.New("foo")
	ran := false
	procs := Procs[any]{
		Once(func(any) error {
			return errFoo
		}),
		Once(func(any) error {
			ran = true
			return nil
		}),
	}
	if err := Exhaust[any](nil, procs); !errors.Is(err, errFoo) {
		t.Fatalf("got %v", err)
	}
	if ran {
		t.Fatal()
	}
}
