package modes

import (
	"fmt"
	"os"
	"strings"
)

// EnvKey selects the mode of a binary.
const EnvKey = "HINTVM_MODE"

func ParseMode(str string) (Mode, error) {
	switch strings.ToLower(str) {
	case "", "production", "prod":
		return ModeProduction, nil
	case "development", "dev":
		return ModeDevelopment, nil
	}
	return 0, fmt.Errorf("unknown mode: %q", str)
}

// ForEnv returns the mode module selected by EnvKey. Production is the default.
func ForEnv() (any, error) {
	mode, err := ParseMode(os.Getenv(EnvKey))
	if err != nil {
		return nil, err
	}
	if mode == ModeDevelopment {
		return ForDevelopment(), nil
	}
	return ForProduction(), nil
}
