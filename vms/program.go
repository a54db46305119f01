package vms

import (
	_ "embed"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strconv"

	"github.com/reusee/hintvm/configs"
	"github.com/reusee/hintvm/hints"
	"github.com/reusee/hintvm/memories"
)

var ErrInvalidProgram = errors.New("invalid program")

//go:embed program.cue
var ProgramSchema string

type Program struct {
	Data     []memories.Value
	Main     int
	Builtins []string
	// Hints are keyed by program offset.
	Hints map[int][]hints.HintData
}

type referenceFile struct {
	Register    string            `json:"register"`
	Offset1     int               `json:"offset1"`
	Offset2     int               `json:"offset2"`
	Inner       bool              `json:"inner"`
	Dereference bool              `json:"dereference"`
	ApTracking  *hints.ApTracking `json:"ap_tracking"`
	Immediate   string            `json:"immediate"`
}

type hintFile struct {
	Code       string                   `json:"code"`
	IDs        map[string]referenceFile `json:"ids"`
	ApTracking hints.ApTracking         `json:"ap_tracking"`
}

// LoadProgram reads a program from a CUE or JSON file.
func LoadProgram(path string) (*Program, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, wrap(err)
	}
	return ParseProgram(path, content)
}

func ParseProgram(name string, content []byte) (*Program, error) {
	loader := configs.NewBytesLoader(name, content, ProgramSchema)

	var data []any
	if err := loader.AssignFirst("data", &data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProgram, err)
	}
	program := &Program{
		Main:     configs.First[int](loader, "main"),
		Builtins: configs.First[[]string](loader, "builtins"),
		Hints:    make(map[int][]hints.HintData),
	}
	for i, cell := range data {
		felt, err := parseFelt(cell)
		if err != nil {
			return nil, fmt.Errorf("%w: data[%d]: %w", ErrInvalidProgram, i, err)
		}
		program.Data = append(program.Data, felt)
	}
	if program.Main > len(program.Data) {
		return nil, fmt.Errorf("%w: main %d out of program", ErrInvalidProgram, program.Main)
	}

	for pc, list := range configs.First[map[string][]hintFile](loader, "hints") {
		offset, err := strconv.Atoi(pc)
		if err != nil {
			return nil, fmt.Errorf("%w: hint pc %q", ErrInvalidProgram, pc)
		}
		for _, h := range list {
			data, err := h.hintData()
			if err != nil {
				return nil, fmt.Errorf("%w: hint at %d: %w", ErrInvalidProgram, offset, err)
			}
			program.Hints[offset] = append(program.Hints[offset], data)
		}
	}

	return program, nil
}

func (h hintFile) hintData() (ret hints.HintData, err error) {
	ret.Code = h.Code
	ret.ApTracking = h.ApTracking
	ret.IDs = make(map[string]hints.Reference, len(h.IDs))
	for name, ref := range h.IDs {
		r := hints.Reference{
			Offset1:     ref.Offset1,
			Offset2:     ref.Offset2,
			Inner:       ref.Inner,
			Dereference: ref.Dereference,
			ApTracking:  ref.ApTracking,
		}
		switch ref.Register {
		case "ap":
			r.Register = hints.RegisterAP
		case "fp":
			r.Register = hints.RegisterFP
		}
		if ref.Immediate != "" {
			n, ok := new(big.Int).SetString(ref.Immediate, 0)
			if !ok {
				return ret, fmt.Errorf("bad immediate %q of %s", ref.Immediate, name)
			}
			r.Immediate = n
		}
		ret.IDs[name] = r
	}
	return
}

// parseFelt accepts integers and decimal or 0x-prefixed strings.
func parseFelt(v any) (memories.Felt, error) {
	switch v := v.(type) {
	case int:
		return memories.NewFelt(int64(v)), nil
	case int64:
		return memories.NewFelt(v), nil
	case *big.Int:
		return memories.FeltFromBig(v), nil
	case float64:
		if v != float64(int64(v)) {
			return memories.Felt{}, fmt.Errorf("not an integer: %v", v)
		}
		return memories.NewFelt(int64(v)), nil
	case string:
		n, ok := new(big.Int).SetString(v, 0)
		if !ok {
			return memories.Felt{}, fmt.Errorf("not an integer: %q", v)
		}
		return memories.FeltFromBig(n), nil
	}
	return memories.Felt{}, fmt.Errorf("unexpected cell %T", v)
}
