package cfgprops

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the per-project configuration file.
const ConfigFileName = ".cfgprops.yaml"

// Config represents the .cfgprops.yaml configuration file.
type Config struct {
	// Catalogs lists metadata catalog files to load, in order.
	Catalogs []string `yaml:"catalogs,omitempty"`

	// TypeRegistries lists enum type registry files for introspection.
	TypeRegistries []string `yaml:"type_registries,omitempty"`

	// Completion holds the visibility/ordering flags. Unset fields keep
	// their defaults.
	Completion CompletionConfig `yaml:"completion,omitempty"`
}

// CompletionConfig mirrors Options with optional fields.
type CompletionConfig struct {
	ShowErrorDeprecated *bool `yaml:"show_error_deprecated,omitempty"`
	SortDeprecatedLast  *bool `yaml:"sort_deprecated_last,omitempty"`
}

// LoadConfig reads .cfgprops.yaml from dir, searching parent directories up
// to the filesystem root. Returns ErrConfigNotFound when no file exists.
func LoadConfig(dir string) (*Config, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, ConfigFileName)

		data, err := os.ReadFile(path)
		if err == nil {
			var cfg Config
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, err
			}

			// Relative paths in the config are relative to its directory.
			for i, p := range cfg.Catalogs {
				if !filepath.IsAbs(p) {
					cfg.Catalogs[i] = filepath.Join(dir, p)
				}
			}
			for i, p := range cfg.TypeRegistries {
				if !filepath.IsAbs(p) {
					cfg.TypeRegistries[i] = filepath.Join(dir, p)
				}
			}

			return &cfg, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, ErrConfigNotFound
		}
		dir = parent
	}
}

// Options converts the optional completion flags to engine Options,
// falling back to defaults for unset fields.
func (c *Config) Options() Options {
	opts := DefaultOptions()

	if c.Completion.ShowErrorDeprecated != nil {
		opts.ShowErrorDeprecated = *c.Completion.ShowErrorDeprecated
	}
	if c.Completion.SortDeprecatedLast != nil {
		opts.SortDeprecatedLast = *c.Completion.SortDeprecatedLast
	}

	return opts
}
