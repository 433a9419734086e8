package language

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/locstat/core/pkg/domain"
)

// DefaultConfigPath is the config file looked up when no path is given.
const DefaultConfigPath = ".locstat.toml"

// Config is the optional TOML configuration overlay. It can define extra
// languages (or override built-ins by name) and default values for CLI
// options. CLI flags take precedence over file values.
type Config struct {
	// Sort is the default sort key (language | code | comment | blank | file | size).
	Sort string `toml:"sort"`
	// Output is the default output format (table | html | markdown).
	Output string `toml:"output"`
	// Workers is the default worker count; 0 means number of CPUs.
	Workers int `toml:"workers"`
	// Include and Exclude are default glob patterns applied during discovery.
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
	// Languages are user-defined specs layered over the built-in table.
	Languages []domain.LanguageSpec `toml:"languages"`
}

// LoadConfig reads the overlay from path. A missing file is not an error and
// yields an empty config, so callers can always point at DefaultConfigPath.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	for i, spec := range cfg.Languages {
		if spec.Name == "" {
			return nil, fmt.Errorf("config %s: languages[%d] has no name", path, i)
		}
		if len(spec.Extensions) == 0 {
			return nil, fmt.Errorf("config %s: language %q has no extensions", path, spec.Name)
		}
		for _, d := range spec.MultiLine {
			if d.Start == "" || d.End == "" {
				return nil, fmt.Errorf("config %s: language %q has an empty block delimiter", path, spec.Name)
			}
		}
	}

	return &cfg, nil
}

// Registry returns the default registry with the config's languages layered
// on top.
func (c *Config) Registry() *Registry {
	if len(c.Languages) == 0 {
		return Default()
	}
	return Default().Merge(c.Languages)
}
