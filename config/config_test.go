package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), Filename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
extensions: [hx, .hxe, .txt]
watch:
  interval: 500ms
log:
  verbosity: 2
  file: /tmp/hxparse.log
lsp:
  hover: false
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{".hx", ".hxe", ".txt"}, cfg.Extensions)
	assert.Equal(t, 500*time.Millisecond, cfg.Watch.Interval)
	assert.Equal(t, 2, cfg.Log.Verbosity)
	assert.Equal(t, "/tmp/hxparse.log", cfg.Log.File)
	assert.False(t, cfg.LSP.Hover)
}

func TestLoadKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "log:\n  verbosity: 1\n"))
	require.NoError(t, err)
	assert.Equal(t, Default().Extensions, cfg.Extensions)
	assert.Equal(t, Default().Watch.Interval, cfg.Watch.Interval)
	assert.True(t, cfg.LSP.Hover)
	assert.Equal(t, 1, cfg.Log.Verbosity)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "watch: [", "parse config"},
		{"interval", "watch:\n  interval: 0s\n", "watch.interval must be positive"},
		{"verbosity", "log:\n  verbosity: -1\n", "log.verbosity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestMatches(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.Matches("src/Main.hx"))
	assert.True(t, cfg.Matches("expr.hxe"))
	assert.False(t, cfg.Matches("Main.java"))
}
