package config

import "github.com/spf13/pflag"

var flags = pflag.NewFlagSet("fakebitmap", pflag.ExitOnError)

var (
	flagConfig        = flags.String("config", "", "Path to config file")
	flagDebug         = flags.Bool("debug", false, "Enable debug logging")
	flagLogFile       = flags.String("log-file", "", "Write logs to this file")
	flagDefaultWidth  = flags.Int("default-width", 0, "Width used when no hint or header is available")
	flagDefaultHeight = flags.Int("default-height", 0, "Height used when no hint or header is available")
	flagDefaultFormat = flags.String("default-format", "", "Pixel format used when none is requested")
)

// FlagSet returns the shared config flags so subcommands can add them to
// their own flag sets.
func FlagSet() *pflag.FlagSet {
	return flags
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagDefaultWidth > 0 {
		cfg.Decoder.DefaultWidth = *flagDefaultWidth
	}
	if *flagDefaultHeight > 0 {
		cfg.Decoder.DefaultHeight = *flagDefaultHeight
	}
	if *flagDefaultFormat != "" {
		cfg.Decoder.DefaultFormat = *flagDefaultFormat
	}
}
