package logs

import (
	"io"
	"os"
)

type Writer io.Writer

// LogFileEnvKey names a file that receives logs instead of stderr, keeping them apart from run output.
const LogFileEnvKey = "HINTVM_LOG_FILE"

func (Module) Writer() Writer {
	path := os.Getenv(LogFileEnvKey)
	if path == "" {
		return os.Stderr
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return os.Stderr
	}
	return f
}
