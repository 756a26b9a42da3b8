package config

// LogFormat selects the slog handler.
type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// Config is the top-level classview configuration, corresponding to .classview.yml.
type Config struct {
	DefaultSystem string       `yaml:"default_system" koanf:"default_system"`
	LogLevel      string       `yaml:"log_level" koanf:"log_level"`
	LogFormat     LogFormat    `yaml:"log_format" koanf:"log_format"`
	SearchDelayMS int          `yaml:"search_delay_ms" koanf:"search_delay_ms"`
	Serve         ServeConfig  `yaml:"serve" koanf:"serve"`
	Browse        BrowseConfig `yaml:"browse" koanf:"browse"`
	Build         BuildConfig  `yaml:"build" koanf:"build"`
	Targets       []Target     `yaml:"targets" koanf:"targets"`
}

// ServeConfig holds preview server settings.
type ServeConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	Open            bool `yaml:"open" koanf:"open"`
}

// BrowseConfig holds terminal viewer settings.
type BrowseConfig struct {
	PrefsPath string `yaml:"prefs_path" koanf:"prefs_path"`
}

// BuildConfig holds batch build settings.
type BuildConfig struct {
	Concurrency int `yaml:"concurrency" koanf:"concurrency"`
}

// Target is one batch build entry. Input may be a doublestar glob.
type Target struct {
	Input  string `yaml:"input" koanf:"input"`
	System string `yaml:"system" koanf:"system"`
	Output string `yaml:"output" koanf:"output"`
}
