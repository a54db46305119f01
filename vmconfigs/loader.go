package vmconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/hintvm/cmds"
	"github.com/reusee/hintvm/configs"
	"github.com/reusee/hintvm/logs"
)

//go:embed schema.cue
var Schema string

var configFlag = cmds.Var[string]("-config")

func (Module) ConfigsLoader(
	logger logs.Logger,
) configs.Loader {
	paths := configPaths()
	if *configFlag != "" {
		paths = append([]string{*configFlag}, paths...)
	}
	if len(paths) > 0 {
		logger.Info("config file", "paths", paths)
	}
	return configs.NewLoader(paths, Schema)
}

// configPaths lists config files from the most local to the most global.
func configPaths() (paths []string) {
	filenames := []string{
		"hintvm.cue",
		".hintvm.cue",
	}
	var dirs []string
	if dir, err := os.Getwd(); err == nil {
		dirs = append(dirs, dir)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, dir)
	}
	dirs = append(dirs, "/etc")
	for _, dir := range dirs {
		for _, filename := range filenames {
			path := filepath.Join(dir, filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}
	return
}
