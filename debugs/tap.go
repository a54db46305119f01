package debugs

import (
	"context"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/reusee/hintvm/logs"
	"github.com/reusee/hintvm/scripts"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Tap opens an interactive prompt over globals, e.g. the finished runner's memory and scopes.
type Tap func(ctx context.Context, what string, globals map[string]any)

// TapInput is where Tap reads commands from.
type TapInput io.Reader

func (Module) TapInput() TapInput {
	return os.Stdin
}

func (Module) Tap(
	logger logs.Logger,
	input TapInput,
) Tap {
	return func(ctx context.Context, what string, globals map[string]any) {
		names := slices.Sorted(maps.Keys(globals))
		logger.InfoContext(ctx, "tap: "+what,
			"globals", names,
		)
		defer func() {
			logger.InfoContext(ctx, "tap end: "+what)
		}()

		mappings := make(starlark.StringDict, len(globals))
		for _, name := range names {
			mappings[name] = scripts.ToStarlark(globals[name])
		}

		thread := &starlark.Thread{
			Name: "tap",
		}
		if input != os.Stdin {
			// non-interactive: run the input as one chunk
			src, err := io.ReadAll(input)
			if err != nil {
				logger.ErrorContext(ctx, "tap input", "error", err)
				return
			}
			f, err := (&syntax.FileOptions{
				Set:             true,
				While:           true,
				TopLevelControl: true,
				GlobalReassign:  true,
			}).Parse(what, src, 0)
			if err != nil {
				logger.ErrorContext(ctx, "tap parse", "error", err)
				return
			}
			if err := starlark.ExecREPLChunk(f, thread, mappings); err != nil {
				logger.ErrorContext(ctx, "tap exec", "error", err)
			}
			return
		}
		repl.REPLOptions(&syntax.FileOptions{
			Set:             true,
			While:           true,
			TopLevelControl: true,
		}, thread, mappings)
	}
}
