package config

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = ".classview.yml"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DefaultSystem: "uniclass",
		LogLevel:      "info",
		LogFormat:     LogFormatText,
		SearchDelayMS: 200,
		Serve: ServeConfig{
			Port: 8080,
		},
		Build: BuildConfig{
			Concurrency: 4,
		},
	}
}
