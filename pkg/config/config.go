// Package config loads the optional rimloc.yml workspace configuration.
//
// The core pipelines never read configuration or environment state; the CLI
// resolves the loaded config into explicit options.
package config

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/rimloc/rimloc/pkg/logger"
)

var configLog = logger.New("config:load")

// FileName is the workspace configuration file name.
const FileName = "rimloc.yml"

// Config holds workspace defaults for the CLI.
type Config struct {
	SourceLang  string `yaml:"source_lang"`
	TargetLang  string `yaml:"target_lang"`
	GameVersion string `yaml:"game_version"`
	ListLimit   int    `yaml:"list_limit"`
}

func loadFile(path string) (*Config, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		configLog.Printf("Ignoring malformed config %s: %v", path, err)
		return nil, false
	}
	configLog.Printf("Loaded config from %s", path)
	return &cfg, true
}

// merge fills empty fields of a from b; a wins per key.
func merge(a, b *Config) *Config {
	if a.SourceLang == "" {
		a.SourceLang = b.SourceLang
	}
	if a.TargetLang == "" {
		a.TargetLang = b.TargetLang
	}
	if a.GameVersion == "" {
		a.GameVersion = b.GameVersion
	}
	if a.ListLimit == 0 {
		a.ListLimit = b.ListLimit
	}
	return a
}

// Load reads rimloc.yml from the working directory and the user config
// directory. The working directory wins per key. A missing file is not an
// error; malformed files are ignored with a debug note.
func Load() *Config {
	merged := &Config{}
	if cwd, err := os.Getwd(); err == nil {
		if cfg, ok := loadFile(filepath.Join(cwd, FileName)); ok {
			merged = merge(merged, cfg)
		}
	}
	if base, err := os.UserConfigDir(); err == nil {
		if cfg, ok := loadFile(filepath.Join(base, "rimloc", FileName)); ok {
			merged = merge(merged, cfg)
		}
	}
	return merged
}
