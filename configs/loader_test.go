package configs

import (
	"errors"
	"fmt"
	"testing"
)

func TestLoaderAssignFirst(t *testing.T) {
	path := writeFile(t, "hintvm.cue", `
ratio: 512
builtins: ["ecdsa"]
`)
	loader := NewLoader([]string{path}, testSchema)

	var ratio int
	if err := loader.AssignFirst("ratio", &ratio); err != nil {
		t.Fatal(err)
	}
	if ratio != 512 {
		t.Fatalf("got %v", ratio)
	}

	var builtins []string
	if err := loader.AssignFirst("builtins", &builtins); err != nil {
		t.Fatal(err)
	}
	if str := fmt.Sprintf("%v", builtins); str != "[ecdsa]" {
		t.Fatalf("got %s", str)
	}

	err := loader.AssignFirst("dump_addr", &builtins)
	if !errors.Is(err, ErrValueNotFound) {
		t.Fatalf("got %v", err)
	}
}

func TestLoaderOrder(t *testing.T) {
	local := writeFile(t, "local.cue", `dump_addr: "local.sock"`)
	global := writeFile(t, "global.cue", `
dump_addr: "global.sock"
ratio: 8
`)
	loader := NewLoader([]string{local, global}, testSchema)

	if addr := First[string](loader, "dump_addr"); addr != "local.sock" {
		t.Fatalf("got %v", addr)
	}
	if ratio := First[int](loader, "ratio"); ratio != 8 {
		t.Fatalf("got %v", ratio)
	}

	var addrs []string
	for addr := range All[string](loader, "dump_addr") {
		addrs = append(addrs, addr)
	}
	if str := fmt.Sprintf("%v", addrs); str != "[local.sock global.sock]" {
		t.Fatalf("got %s", str)
	}
}

func TestUnknownField(t *testing.T) {
	path := writeFile(t, "bad.cue", `unknown_field: 1`)
	loader := NewLoader([]string{path}, testSchema)
	var n int
	if err := loader.AssignFirst("unknown_field", &n); err == nil {
		t.Fatal("should error")
	}
}

func TestBytesLoaderJSON(t *testing.T) {
	loader := NewBytesLoader("program.json", []byte(`{"ratio": 3}`), "")
	if ratio := First[int](loader, "ratio"); ratio != 3 {
		t.Fatalf("got %v", ratio)
	}
}

func TestFirstNonZero(t *testing.T) {
	if v := FirstNonZero("", "a", "b"); v != "a" {
		t.Fatalf("got %v", v)
	}
	if v := FirstNonZero(0, 0); v != 0 {
		t.Fatalf("got %v", v)
	}
}
