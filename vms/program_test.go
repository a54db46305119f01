package vms

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/reusee/hintvm/hints"
)

func TestParseProgramCue(t *testing.T) {
	program, err := ParseProgram("test.cue", []byte(`
data: [1, "0x10", "340282366920938463463374607431768211456"]
main: 1
builtins: ["ecdsa"]
hints: "1": [{
	code: "x = ids.a"
	ids: a: {
		register:    "ap"
		offset1:     -1
		dereference: true
		ap_tracking: {group: 2, offset: 1}
	}
	ap_tracking: {group: 2, offset: 3}
}]
`))
	if err != nil {
		t.Fatal(err)
	}
	if len(program.Data) != 3 {
		t.Fatalf("got %v", program.Data)
	}
	if program.Data[1].String() != "16" {
		t.Fatalf("got %v", program.Data[1])
	}
	if program.Data[2].String() != "340282366920938463463374607431768211456" {
		t.Fatalf("got %v", program.Data[2])
	}
	if program.Main != 1 {
		t.Fatalf("got %v", program.Main)
	}
	if len(program.Builtins) != 1 || program.Builtins[0] != "ecdsa" {
		t.Fatalf("got %v", program.Builtins)
	}
	list := program.Hints[1]
	if len(list) != 1 {
		t.Fatalf("got %v", program.Hints)
	}
	ref := list[0].IDs["a"]
	if ref.Register != hints.RegisterAP || ref.Offset1 != -1 || !ref.Dereference {
		t.Fatalf("got %+v", ref)
	}
	if ref.ApTracking == nil || ref.ApTracking.Group != 2 {
		t.Fatalf("got %+v", ref.ApTracking)
	}
	if list[0].ApTracking.Offset != 3 {
		t.Fatalf("got %+v", list[0].ApTracking)
	}
}

func TestLoadProgramJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "program.json")
	if err := os.WriteFile(path, []byte(`{
  "data": [0, 1],
  "hints": {
    "0": [{"code": "pass"}]
  }
}`), 0644); err != nil {
		t.Fatal(err)
	}
	program, err := LoadProgram(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(program.Data) != 2 || len(program.Hints[0]) != 1 {
		t.Fatalf("got %+v", program)
	}
}

func TestParseProgramInvalid(t *testing.T) {
	for _, src := range []string{
		`main: 0`,
		`data: ["foo"]`,
		`data: [1], builtins: ["pedersen"]`,
		`data: [1], main: 5`,
	} {
		_, err := ParseProgram("bad.cue", []byte(src))
		if !errors.Is(err, ErrInvalidProgram) {
			t.Fatalf("%s: got %v", src, err)
		}
	}
}
