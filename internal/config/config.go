// Package config handles fakebitmap configuration loading and management.
package config

// Config holds all settings.
type Config struct {
	Decoder   DecoderConfig  `yaml:"decoder"`
	Hints     []HintConfig   `yaml:"hints"`
	Resources map[int]string `yaml:"resources"`
	Logging   LoggingConfig  `yaml:"logging"`
}

// DecoderConfig holds engine defaults.
type DecoderConfig struct {
	DefaultWidth  int    `yaml:"default_width"`
	DefaultHeight int    `yaml:"default_height"`
	DefaultFormat string `yaml:"default_format"` // e.g. ARGB_8888
}

// HintConfig is a preloaded dimension hint. Exactly one of Key, File, URI
// or Resource identifies the image.
type HintConfig struct {
	Key      string `yaml:"key,omitempty"`
	File     string `yaml:"file,omitempty"`
	URI      string `yaml:"uri,omitempty"`
	Resource *int   `yaml:"resource,omitempty"`
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Decoder: DecoderConfig{
			DefaultWidth:  100,
			DefaultHeight: 100,
			DefaultFormat: "ARGB_8888",
		},
		Resources: map[int]string{},
		Logging: LoggingConfig{
			Level:   "warn",
			LogFile: "",
		},
	}
}
