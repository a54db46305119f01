package hints

import (
	"fmt"
	"maps"
	"slices"
)

// HintData is everything a hint needs besides the machine: its source and the identifiers in scope.
type HintData struct {
	Code       string
	IDs        map[string]Reference
	ApTracking ApTracking
}

func (h HintData) Reference(name string) (Reference, error) {
	ref, ok := h.IDs[name]
	if !ok {
		return Reference{}, fmt.Errorf("%w: %s", ErrMissingIdentifier, name)
	}
	return ref, nil
}

// Names returns identifier names in order.
func (h HintData) Names() []string {
	return slices.Sorted(maps.Keys(h.IDs))
}
