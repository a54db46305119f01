package vmconfigs

import (
	"time"

	"github.com/reusee/hintvm/cmds"
	"github.com/reusee/hintvm/configs"
)

// HintStepLimit bounds the script steps of a single hint. Zero means unlimited.
type HintStepLimit uint64

var hintStepLimitFlag = cmds.Var[uint64]("-hint-step-limit")

func (Module) HintStepLimit(
	loader configs.Loader,
) HintStepLimit {
	if *hintStepLimitFlag > 0 {
		return HintStepLimit(*hintStepLimitFlag)
	}
	return HintStepLimit(configs.First[uint64](loader, "hint_step_limit"))
}

// HintTimeout bounds the wall clock time of a single hint. Zero means unlimited.
type HintTimeout time.Duration

var hintTimeoutFlag = cmds.Var[string]("-hint-timeout")

func (Module) HintTimeout(
	loader configs.Loader,
) HintTimeout {
	str := configs.FirstNonZero(
		*hintTimeoutFlag,
		configs.First[string](loader, "hint_timeout"),
	)
	if str == "" {
		return 0
	}
	d, err := time.ParseDuration(str)
	if err != nil {
		panic(err)
	}
	return HintTimeout(d)
}
