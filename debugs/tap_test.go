package debugs

import (
	"strings"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/hintvm/memories"
	"github.com/reusee/hintvm/modes"
	"go.starlark.net/starlark"
)

func TestTap(t *testing.T) {
	var printed []string
	dscope.New(
		modes.ForTest(t),
		new(Module),
	).Fork(
		func() TapInput {
			return strings.NewReader(`
print(n + 1)
print(addr.segment_index, addr.offset)
print(len(cells))
`)
		},
	).Call(func(
		tap Tap,
	) {
		tap(t.Context(), "test", map[string]any{
			"n":     41,
			"addr":  memories.Address{Segment: 2, Offset: 3},
			"cells": []int{1, 2, 3},
			"print": starlark.NewBuiltin("print", func(_ *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, _ []starlark.Tuple) (starlark.Value, error) {
				var parts []string
				for _, arg := range args {
					parts = append(parts, arg.String())
				}
				printed = append(printed, strings.Join(parts, " "))
				return starlark.None, nil
			}),
		})
	})
	if strings.Join(printed, ";") != "42;2 3;3" {
		t.Fatalf("got %v", printed)
	}
}
