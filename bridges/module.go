package bridges

import (
	"time"

	"github.com/reusee/dscope"
	"github.com/reusee/hintvm/logs"
	"github.com/reusee/hintvm/vmconfigs"
)

type Module struct {
	dscope.Module
	VMConfigs vmconfigs.Module
}

func (Module) Executor(
	backend Backend,
	logger logs.Logger,
	newSpan logs.NewSpan,
	timeout vmconfigs.HintTimeout,
) *Executor {
	return &Executor{
		Backend: backend,
		Logger:  logger,
		NewSpan: newSpan,
		Timeout: time.Duration(timeout),
	}
}
