package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ziadkadry99/classview/internal/systems"
)

// EnvPrefix prefixes environment overrides. A double underscore descends
// into a section: CLASSVIEW_SERVE__PORT sets serve.port.
const EnvPrefix = "CLASSVIEW_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (CLASSVIEW_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.DefaultSystem != "" {
		if _, err := systems.Lookup(c.DefaultSystem); err != nil {
			return fmt.Errorf("default_system: %w", err)
		}
	}

	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log_level %q: must be one of debug, info, warn, error", c.LogLevel)
	}

	if c.LogFormat != LogFormatText && c.LogFormat != LogFormatJSON {
		return fmt.Errorf("invalid log_format %q: must be text or json", c.LogFormat)
	}

	if c.SearchDelayMS < 1 {
		return fmt.Errorf("search_delay_ms must be at least 1")
	}

	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		return fmt.Errorf("serve.port %d out of range", c.Serve.Port)
	}

	if c.Build.Concurrency < 0 {
		return fmt.Errorf("build.concurrency must be non-negative")
	}

	for i, t := range c.Targets {
		if t.Input == "" {
			return fmt.Errorf("targets[%d]: input is required", i)
		}
		if t.Output == "" {
			return fmt.Errorf("targets[%d]: output is required", i)
		}
		if _, err := systems.Lookup(t.System); err != nil {
			return fmt.Errorf("targets[%d]: %w", i, err)
		}
	}

	return nil
}

// SearchDelay returns the search debounce delay.
func (c *Config) SearchDelay() time.Duration {
	return time.Duration(c.SearchDelayMS) * time.Millisecond
}
