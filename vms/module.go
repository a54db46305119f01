package vms

import (
	"github.com/reusee/dscope"
	"github.com/reusee/hintvm/bridges"
	"github.com/reusee/hintvm/builtins"
	"github.com/reusee/hintvm/logs"
	"github.com/reusee/hintvm/scopes"
	"github.com/reusee/hintvm/scripts"
	"github.com/reusee/hintvm/vmconfigs"
)

type Module struct {
	dscope.Module
	Bridges  bridges.Module
	Builtins builtins.Module
	Scripts  scripts.Module
}

// NewRunner prepares a fresh machine for program.
type NewRunner func(program *Program) (*Runner, error)

func (Module) NewRunner(
	executor *bridges.Executor,
	newRunners builtins.NewRunners,
	logger logs.Logger,
	maxSteps vmconfigs.MaxSteps,
	checkUsedCells vmconfigs.CheckUsedCells,
) NewRunner {
	return func(program *Program) (*Runner, error) {
		runners, err := newRunners(program.Builtins)
		if err != nil {
			return nil, wrap(err)
		}
		vm := NewVM()
		vm.Builtins = runners
		return &Runner{
			Program:        program,
			VM:             vm,
			Scopes:         scopes.New(),
			Hints:          executor,
			Step:           AdvanceStep(len(program.Data)),
			Logger:         logger,
			MaxSteps:       int(maxSteps),
			CheckUsedCells: bool(checkUsedCells),
		}, nil
	}
}
