package nets

import (
	"github.com/reusee/dscope"
	"github.com/reusee/hintvm/vmconfigs"
)

type Module struct {
	dscope.Module
	VMConfigs vmconfigs.Module
}
