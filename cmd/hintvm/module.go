package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/hintvm/debugs"
	"github.com/reusee/hintvm/dumps"
	"github.com/reusee/hintvm/vms"
)

type Module struct {
	dscope.Module
	VMs    vms.Module
	Dumps  dumps.Module
	Debugs debugs.Module
}
