package configs

import (
	"os"
	"path/filepath"
	"testing"
)

var testSchema = `
ratio?: int
builtins?: [...string]
dump_addr?: string
`

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}
