package scripts

import (
	"github.com/reusee/dscope"
	"github.com/reusee/hintvm/bridges"
	"github.com/reusee/hintvm/logs"
	"github.com/reusee/hintvm/vmconfigs"
)

type Module struct {
	dscope.Module
	VMConfigs vmconfigs.Module
}

func (Module) Backend(
	logger logs.Logger,
	limit vmconfigs.HintStepLimit,
) bridges.Backend {
	return &Backend{
		Logger:    logger,
		StepLimit: uint64(limit),
	}
}
