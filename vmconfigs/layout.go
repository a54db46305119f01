package vmconfigs

import (
	"github.com/reusee/hintvm/cmds"
	"github.com/reusee/hintvm/configs"
)

// Layout carries the geometry of the signature builtin.
type Layout struct {
	Ratio                 int
	InstancesPerComponent int
	Included              bool
}

var DefaultLayout = Layout{
	Ratio:                 512,
	InstancesPerComponent: 1,
	Included:              true,
}

var ecdsaRatioFlag = cmds.Var[int]("-ecdsa-ratio")

type ecdsaConfig struct {
	Ratio                 *int  `json:"ratio"`
	InstancesPerComponent *int  `json:"instances_per_component"`
	Included              *bool `json:"included"`
}

func (Module) Layout(
	loader configs.Loader,
) Layout {
	layout := DefaultLayout

	config := configs.First[ecdsaConfig](loader, "ecdsa")
	if config.Ratio != nil {
		layout.Ratio = *config.Ratio
	}
	if config.InstancesPerComponent != nil {
		layout.InstancesPerComponent = *config.InstancesPerComponent
	}
	if config.Included != nil {
		layout.Included = *config.Included
	}

	if *ecdsaRatioFlag > 0 {
		layout.Ratio = *ecdsaRatioFlag
	}

	return layout
}
