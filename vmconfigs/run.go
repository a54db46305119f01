package vmconfigs

import (
	"github.com/reusee/hintvm/cmds"
	"github.com/reusee/hintvm/configs"
)

// MaxSteps bounds the steps of a run. Zero means unlimited.
type MaxSteps int

var maxStepsFlag = cmds.Var[int]("-max-steps")

func (Module) MaxSteps(
	loader configs.Loader,
) MaxSteps {
	if *maxStepsFlag > 0 {
		return MaxSteps(*maxStepsFlag)
	}
	return MaxSteps(configs.First[int](loader, "max_steps"))
}

type CheckUsedCells bool

var checkUsedCellsFlag = cmds.Switch("-check-used-cells")

func (Module) CheckUsedCells(
	loader configs.Loader,
) CheckUsedCells {
	return CheckUsedCells(*checkUsedCellsFlag || configs.First[bool](loader, "check_used_cells"))
}
