package dumps

import (
	"github.com/reusee/dscope"
	"github.com/reusee/hintvm/nets"
)

type Module struct {
	dscope.Module
	Nets nets.Module
}
