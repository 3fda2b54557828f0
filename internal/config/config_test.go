package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "./output", cfg.OutputDir)
	assert.Equal(t, "{name}_{uuid}", cfg.FileNameFormat)
	assert.Equal(t, "strict", cfg.Profile)
	assert.Equal(t, "  ", cfg.Indent)
	assert.False(t, cfg.OmitXMLDeclaration)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "no-such-config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadAppliesFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
output_dir: /tmp/saft
profile: relaxed
omit_xml_declaration: true
log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/saft", cfg.OutputDir)
	assert.Equal(t, "relaxed", cfg.Profile)
	assert.True(t, cfg.OmitXMLDeclaration)
	assert.Equal(t, "debug", cfg.LogLevel)

	// Options the file leaves out still get their defaults.
	assert.Equal(t, "{name}_{uuid}", cfg.FileNameFormat)
	assert.Equal(t, "  ", cfg.Indent)
}

func TestLoadRejectsUnknownProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profile: pedantic\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pedantic")
}

func TestLoadRejectsUnknownLogLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: noisy\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "noisy")
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_dir: [unclosed\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
