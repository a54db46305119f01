package scopes

import (
	"bytes"
	"math/big"
)

// CloneValue copies the mutable parts of a scope value. Functions and opaque values are shared.
func CloneValue(v any) any {
	switch v := v.(type) {
	case *big.Int:
		if v == nil {
			return v
		}
		return new(big.Int).Set(v)
	case []byte:
		return bytes.Clone(v)
	case []any:
		if v == nil {
			return v
		}
		ret := make([]any, len(v))
		for i, e := range v {
			ret[i] = CloneValue(e)
		}
		return ret
	case map[string]any:
		return CloneMap(v)
	}
	return v
}

func CloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	ret := make(map[string]any, len(m))
	for k, v := range m {
		ret[k] = CloneValue(v)
	}
	return ret
}
