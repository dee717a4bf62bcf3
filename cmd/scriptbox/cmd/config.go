package cmd

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// engineConfig holds the defaults a scriptbox.yaml config file can set for
// the script.Engine the run subcommand constructs, so a project can pin its
// own stack-depth guard and stdlib policy without repeating flags on every
// invocation.
type engineConfig struct {
	MaxStackDepth int  `yaml:"maxStackDepth"`
	Stdlib        bool `yaml:"stdlib"`
}

func defaultEngineConfig() engineConfig {
	return engineConfig{MaxStackDepth: 0, Stdlib: true}
}

var cfg = defaultEngineConfig()

var configPath string

// loadConfig reads configPath, if set or if the default scriptbox.yaml
// exists in the working directory, and merges it over the built-in
// defaults. A missing default file is not an error; an unreadable or
// malformed explicit --config path is.
func loadConfig() error {
	path := configPath
	explicit := path != ""
	if path == "" {
		path = "scriptbox.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	c := defaultEngineConfig()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg = c
	return nil
}
