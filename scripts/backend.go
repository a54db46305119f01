package scripts

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"

	"github.com/reusee/hintvm/bridges"
	"github.com/reusee/hintvm/logs"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// ErrReservedName is returned when a scope variable would be shadowed by a hint global.
var ErrReservedName = errors.New("reserved name in scope")

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
}

// Backend runs hints as Starlark programs.
type Backend struct {
	Logger logs.Logger
	// StepLimit bounds execution steps per hint. Zero means unlimited.
	StepLimit uint64
}

var _ bridges.Backend = new(Backend)

func (b *Backend) Run(ctx context.Context, source string, env bridges.Env) (map[string]any, error) {
	file, err := fileOptions.Parse("hint", source, 0)
	if err != nil {
		return nil, err
	}

	predeclared := proxies(env)
	var reserved []string
	for name := range env.Locals {
		if _, ok := predeclared[name]; ok {
			reserved = append(reserved, name)
		}
	}
	if len(reserved) > 0 {
		slices.Sort(reserved)
		return nil, fmt.Errorf("%w: %v", ErrReservedName, reserved)
	}

	globals := make(starlark.StringDict, len(env.Locals))
	initial := make(starlark.StringDict, len(env.Locals))
	for name, value := range env.Locals {
		v := ToStarlark(value)
		globals[name] = v
		initial[name] = v
	}
	for name, value := range predeclared {
		globals[name] = value
	}

	thread := &starlark.Thread{
		Name: "hint",
		Print: func(_ *starlark.Thread, msg string) {
			b.Logger.DebugContext(ctx, "hint print", "msg", msg)
		},
	}
	if b.StepLimit > 0 {
		thread.SetMaxExecutionSteps(b.StepLimit)
	}

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			thread.Cancel(context.Cause(ctx).Error())
		case <-stop:
		}
	}()

	if err := starlark.ExecREPLChunk(file, thread, globals); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, errors.Join(ctxErr, err)
		}
		return nil, err
	}

	delta := make(map[string]any)
	for name, value := range globals {
		if pre, ok := predeclared[name]; ok {
			if !sameValue(pre, value) {
				b.Logger.WarnContext(ctx, "hint reassigned a reserved name, not kept in scope",
					"name", name,
				)
			}
			continue
		}
		if unchanged(initial[name], value) {
			continue
		}
		delta[name] = FromStarlark(value)
	}
	return delta, nil
}

func sameValue(a, b starlark.Value) bool {
	t := reflect.TypeOf(a)
	if t != reflect.TypeOf(b) {
		return false
	}
	if t.Comparable() {
		return a == b
	}
	return a.String() == b.String()
}

// unchanged reports whether an immutable scope value survived the run untouched.
func unchanged(before, after starlark.Value) bool {
	if before == nil {
		return false
	}
	switch before.(type) {
	case starlark.Int, starlark.String, starlark.Bool, starlark.Float, starlark.NoneType, Relocatable:
	default:
		return false
	}
	if before.Type() != after.Type() {
		return false
	}
	eq, err := starlark.Equal(before, after)
	return err == nil && eq
}
