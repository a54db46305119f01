package builtins

import (
	"fmt"

	"github.com/reusee/dscope"
	"github.com/reusee/hintvm/vmconfigs"
)

type Module struct {
	dscope.Module
	VMConfigs vmconfigs.Module
}

// NewRunners builds a fresh set of builtin runners for one program run.
type NewRunners func(names []string) ([]Runner, error)

func (Module) NewRunners(
	layout vmconfigs.Layout,
) NewRunners {
	return func(names []string) (ret []Runner, err error) {
		for _, name := range names {
			switch name {
			case SignatureName:
				ret = append(ret, NewSignatureRunner(
					layout.Ratio,
					layout.InstancesPerComponent,
					layout.Included,
				))
			default:
				return nil, fmt.Errorf("%w: %s", ErrUnknownBuiltin, name)
			}
		}
		return
	}
}
