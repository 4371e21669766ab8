// Package config handles pipeline tool configuration loading and
// management. All settings are explicit: the loaded Config is passed into
// the tools, there is no package-wide mutable state.
package config

import (
	"github.com/SiberianCrab/tes3-pipeline/internal/retex"
	"github.com/SiberianCrab/tes3-pipeline/pkg/records"
)

// Config holds the settings of all pipeline tools.
type Config struct {
	Mirror  MirrorConfig   `yaml:"mirror"`
	Convert ConvertConfig  `yaml:"convert"`
	Retex   retex.Settings `yaml:"retex"`
	Logging LoggingConfig  `yaml:"logging"`
}

// MirrorConfig holds the mesh-mirroring settings.
type MirrorConfig struct {
	Directory    string `yaml:"directory"`
	MirrorSuffix string `yaml:"mirror_suffix"` // appended to axis-mirrored files
	USuffix      string `yaml:"u_suffix"`      // appended to U-mirrored files
	VSuffix      string `yaml:"v_suffix"`      // appended to V-mirrored files
	Marker       string `yaml:"marker"`        // key substring tagging geometry blocks
	Workers      int    `yaml:"workers"`       // files processed in parallel
}

// ConvertConfig holds the record-conversion settings.
type ConvertConfig struct {
	Directory string           `yaml:"directory"`
	Records   records.Settings `yaml:"records"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the stock pipeline settings.
func Default() *Config {
	return &Config{
		Mirror: MirrorConfig{
			Directory:    ".",
			MirrorSuffix: "_m",
			USuffix:      "a",
			VSuffix:      "b",
			Marker:       "NiTriShapeData",
			Workers:      1,
		},
		Convert: ConvertConfig{
			Directory: ".",
			Records:   records.DefaultSettings(),
		},
		Retex: retex.Settings{
			Directory: ".",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Overrides are the CLI flag values that take priority over file settings.
// Zero values leave the config untouched.
type Overrides struct {
	Debug     bool
	Directory string
	Workers   int
	LogFile   string
}

// Apply merges flag overrides into the config.
func (c *Config) Apply(o Overrides) {
	if o.Debug {
		c.Logging.Level = "debug"
	}
	if o.Directory != "" {
		c.Mirror.Directory = o.Directory
		c.Convert.Directory = o.Directory
		c.Retex.Directory = o.Directory
	}
	if o.Workers > 0 {
		c.Mirror.Workers = o.Workers
	}
	if o.LogFile != "" {
		c.Logging.LogFile = o.LogFile
	}
}
