package modes

import (
	"testing"

	"github.com/reusee/dscope"
)

// ModuleForDevelopment runs outside tests without production side effects, e.g. no proxy for the dump sink.
type ModuleForDevelopment struct {
	dscope.Module
}

func ForDevelopment() ModuleForDevelopment {
	return ModuleForDevelopment{}
}

func (ModuleForDevelopment) T() *testing.T {
	return nil
}

func (ModuleForDevelopment) Mode() Mode {
	return ModeDevelopment
}
