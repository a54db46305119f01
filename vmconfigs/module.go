package vmconfigs

import (
	"github.com/reusee/dscope"
	"github.com/reusee/hintvm/configs"
	"github.com/reusee/hintvm/logs"
)

type Module struct {
	dscope.Module
	Configs configs.Module
	Logs    logs.Module
}
