package vmconfigs

import (
	"github.com/reusee/hintvm/cmds"
	"github.com/reusee/hintvm/configs"
)

// DumpAddr is where the relocated memory is streamed after a run. Empty disables dumping.
type DumpAddr string

type DumpNetwork string

var (
	dumpAddrFlag    = cmds.Var[string]("-dump")
	dumpNetworkFlag = cmds.Var[string]("-dump-network")
)

func (Module) DumpAddr(
	loader configs.Loader,
) DumpAddr {
	return DumpAddr(configs.FirstNonZero(
		*dumpAddrFlag,
		configs.First[string](loader, "dump_addr"),
	))
}

func (Module) DumpNetwork(
	loader configs.Loader,
) DumpNetwork {
	return DumpNetwork(configs.FirstNonZero(
		*dumpNetworkFlag,
		configs.First[string](loader, "dump_network"),
		"unix",
	))
}
