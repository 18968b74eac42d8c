package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/thememig/pkg/util"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".thememig.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// --- loadProjectConfig ---

func TestLoadProjectConfig_MissingFileIsNil(t *testing.T) {
	cfg, err := loadProjectConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestLoadProjectConfig_ParsesFields(t *testing.T) {
	path := writeConfig(t, `
root: ./lib
source_root: ./lib
include:
  - "**/*.dart"
exclude:
  - "generated/**"
skip_files:
  - legacy_panel.dart
log_level: debug
log_format: json
`)

	cfg, err := loadProjectConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "./lib", cfg.Root)
	assert.Equal(t, []string{"**/*.dart"}, cfg.Include)
	assert.Equal(t, []string{"generated/**"}, cfg.Exclude)
	assert.Equal(t, []string{"legacy_panel.dart"}, cfg.SkipFiles)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadProjectConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "root: [unclosed\n")

	_, err := loadProjectConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

// --- driverConfig ---

func TestDriverConfig_FlagOverridesRoot(t *testing.T) {
	cfg := &ProjectConfig{Root: "./from-config"}

	dc := driverConfig(cfg, "./from-flag", true)

	assert.Equal(t, "./from-flag", dc.Root)
	assert.True(t, dc.DryRun)
}

func TestDriverConfig_DefaultSkipFilesAlwaysPresent(t *testing.T) {
	cfg := &ProjectConfig{SkipFiles: []string{"legacy_panel.dart"}}

	dc := driverConfig(cfg, "", false)

	assert.Contains(t, dc.SkipFiles, "legacy_panel.dart")
	assert.Contains(t, dc.SkipFiles, "themed_border.dart")
	assert.Contains(t, dc.SkipFiles, "themed_divider.dart")
}

func TestDriverConfig_NilConfig(t *testing.T) {
	dc := driverConfig(nil, "./root", false)

	assert.Equal(t, "./root", dc.Root)
	assert.Contains(t, dc.SkipFiles, "themed_input.dart")
}

// --- newLogger ---

func TestNewLogger_Defaults(t *testing.T) {
	lc := newLogger(nil)

	assert.Equal(t, util.LevelInfo, lc.Level)
	assert.Equal(t, util.FormatText, lc.Format)
}

func TestNewLogger_ConfigOverrides(t *testing.T) {
	lc := newLogger(&ProjectConfig{LogLevel: "debug", LogFormat: "json"})

	assert.Equal(t, util.LevelDebug, lc.Level)
	assert.Equal(t, util.FormatJSON, lc.Format)
}
