package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Explicit(t *testing.T) {
	path := writeConfig(t, `
shell: /bin/bash
carriage_return: clear
tab_width: 4
timeout_sec: 5
log_dir: /tmp/mdsh-logs
logging: false
markdown: true
cols: 120
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/bin/bash", cfg.Shell)
	assert.Equal(t, "clear", cfg.CarriageReturn)
	assert.Equal(t, 4, cfg.TabWidth)
	assert.Equal(t, 5, cfg.TimeoutSec)
	assert.Equal(t, "/tmp/mdsh-logs", cfg.LogDir)
	assert.False(t, cfg.Logging)
	assert.True(t, cfg.Markdown)
	assert.Equal(t, 120, cfg.Cols)
	assert.Equal(t, 24, cfg.Rows, "unset keys keep defaults")
}

func TestLoad_MissingDefaultUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_DefaultLocation(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "mdsh"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mdsh", "config.yaml"), []byte("tab_width: 2\n"), 0644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.TabWidth)
}

func TestLoad_MissingExplicitFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad yaml", "tab_width: [", "parse config"},
		{"bad carriage return", "carriage_return: erase", "carriage_return"},
		{"zero tab width", "tab_width: 0", "tab_width"},
		{"negative timeout", "timeout_sec: -1", "timeout_sec"},
		{"zero cols", "cols: 0", "cols/rows"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestShellOrDefault(t *testing.T) {
	t.Setenv("SHELL", "/bin/zsh")
	assert.Equal(t, "/bin/fish", Config{Shell: "/bin/fish"}.ShellOrDefault())
	assert.Equal(t, "/bin/zsh", Config{}.ShellOrDefault())

	t.Setenv("SHELL", "")
	assert.Equal(t, "/bin/sh", Config{}.ShellOrDefault())
}
