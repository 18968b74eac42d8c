package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gnana997/thememig/pkg/batch"
	"github.com/gnana997/thememig/pkg/rules"
	"github.com/gnana997/thememig/pkg/util"
)

const defaultConfigPath = ".thememig.yaml"

// ProjectConfig holds the contents of .thememig.yaml.
type ProjectConfig struct {
	Root       string   `yaml:"root"`
	SourceRoot string   `yaml:"source_root"`
	Include    []string `yaml:"include"`
	Exclude    []string `yaml:"exclude"`
	SkipFiles  []string `yaml:"skip_files"`
	LogLevel   string   `yaml:"log_level"`
	LogFormat  string   `yaml:"log_format"`
}

// loadProjectConfig reads the YAML config at path.
// Returns nil (no error) if the file does not exist.
func loadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %q: %w", path, err)
	}
	return &cfg, nil
}

// driverConfig merges the optional project config with flag overrides into
// the explicit driver configuration. Flag values win; the skip list always
// includes the built-in defaults so the themed definition files can never
// be rewritten by misconfiguration.
func driverConfig(cfg *ProjectConfig, rootFlag string, dryRun bool) batch.Config {
	dc := batch.Config{DryRun: dryRun}

	if cfg != nil {
		dc.Root = cfg.Root
		dc.SourceRoot = cfg.SourceRoot
		dc.Include = cfg.Include
		dc.Exclude = cfg.Exclude
		dc.SkipFiles = append(dc.SkipFiles, cfg.SkipFiles...)
	}
	if rootFlag != "" {
		dc.Root = rootFlag
	}

	dc.SkipFiles = append(dc.SkipFiles, rules.DefaultSkipFiles()...)
	return dc
}

// newLogger builds the process logger from config values, falling back to
// the defaults for unset fields.
func newLogger(cfg *ProjectConfig) *util.LoggerConfig {
	lc := util.DefaultLoggerConfig()
	if cfg != nil {
		if cfg.LogLevel != "" {
			lc.Level = util.LogLevel(cfg.LogLevel)
		}
		if cfg.LogFormat != "" {
			lc.Format = util.LogFormat(cfg.LogFormat)
		}
	}
	return &lc
}
