package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ziadkadry99/classview/internal/systems"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.DefaultSystem != "uniclass" {
		t.Errorf("expected default system %q, got %q", "uniclass", cfg.DefaultSystem)
	}
	if cfg.LogFormat != LogFormatText {
		t.Errorf("expected default log_format %q, got %q", LogFormatText, cfg.LogFormat)
	}
	if cfg.SearchDelay() != 200*time.Millisecond {
		t.Errorf("expected default search delay 200ms, got %s", cfg.SearchDelay())
	}
	if cfg.Serve.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Serve.Port)
	}
	if cfg.Build.Concurrency != 4 {
		t.Errorf("expected default concurrency 4, got %d", cfg.Build.Concurrency)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.classview.yml")

	original := DefaultConfig()
	original.DefaultSystem = "coclass"
	original.LogFormat = LogFormatJSON
	original.SearchDelayMS = 350
	original.Serve.Port = 9000
	original.Serve.AllowAllOrigins = true
	original.Browse.PrefsPath = "/tmp/prefs.db"
	original.Targets = []Target{
		{Input: "exports/*.json", System: "uniclass", Output: "site/uniclass"},
		{Input: "ccs.json", System: "ccs", Output: "site/ccs"},
	}

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Verify round-trip.
	if loaded.DefaultSystem != original.DefaultSystem {
		t.Errorf("default_system: got %q, want %q", loaded.DefaultSystem, original.DefaultSystem)
	}
	if loaded.LogFormat != original.LogFormat {
		t.Errorf("log_format: got %q, want %q", loaded.LogFormat, original.LogFormat)
	}
	if loaded.SearchDelayMS != original.SearchDelayMS {
		t.Errorf("search_delay_ms: got %d, want %d", loaded.SearchDelayMS, original.SearchDelayMS)
	}
	if loaded.Serve != original.Serve {
		t.Errorf("serve: got %+v, want %+v", loaded.Serve, original.Serve)
	}
	if loaded.Browse.PrefsPath != original.Browse.PrefsPath {
		t.Errorf("browse.prefs_path: got %q, want %q", loaded.Browse.PrefsPath, original.Browse.PrefsPath)
	}
	if len(loaded.Targets) != len(original.Targets) {
		t.Fatalf("targets length: got %d, want %d", len(loaded.Targets), len(original.Targets))
	}
	for i, v := range loaded.Targets {
		if v != original.Targets[i] {
			t.Errorf("targets[%d]: got %+v, want %+v", i, v, original.Targets[i])
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.DefaultSystem != "uniclass" {
		t.Errorf("expected default system, got %q", cfg.DefaultSystem)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	if err := os.WriteFile(path, []byte("serve: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("CLASSVIEW_DEFAULT_SYSTEM", "omniclass")
	t.Setenv("CLASSVIEW_SERVE__PORT", "9090")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.DefaultSystem != "omniclass" {
		t.Errorf("env override failed: got %q, want %q", loaded.DefaultSystem, "omniclass")
	}
	if loaded.Serve.Port != 9090 {
		t.Errorf("nested env override failed: got %d, want 9090", loaded.Serve.Port)
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown system", func(c *Config) { c.DefaultSystem = "foo" }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }},
		{"negative delay", func(c *Config) { c.SearchDelayMS = -1 }},
		{"zero delay", func(c *Config) { c.SearchDelayMS = 0 }},
		{"port out of range", func(c *Config) { c.Serve.Port = 70000 }},
		{"negative concurrency", func(c *Config) { c.Build.Concurrency = -1 }},
		{"target without input", func(c *Config) {
			c.Targets = []Target{{System: "ccs", Output: "out"}}
		}},
		{"target without output", func(c *Config) {
			c.Targets = []Target{{Input: "a.json", System: "ccs"}}
		}},
		{"target with unknown system", func(c *Config) {
			c.Targets = []Target{{Input: "a.json", System: "foo", Output: "out"}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidateUnknownTargetSystemWraps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Targets = []Target{{Input: "a.json", System: "foo", Output: "out"}}
	if err := cfg.Validate(); !errors.Is(err, systems.ErrUnknownSystem) {
		t.Errorf("expected ErrUnknownSystem, got %v", err)
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"exports/**/*.json", []string{"exports/**/*.json"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndTrim(%q) len = %d, want %d", tt.input, len(got), len(tt.want))
			continue
		}
		for i, v := range got {
			if v != tt.want[i] {
				t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
			}
		}
	}
}
