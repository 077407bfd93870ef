package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultAddress(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", "")

	cfg := LoadConfig()
	assert.Equal(t, ":5555", cfg.Server.Address)
}

func TestLoadConfigAddressFromEnv(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", "127.0.0.1:9999")

	cfg := LoadConfig()
	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Address)
}

func TestLoadViewerConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("interval_seconds: 5\n"), 0o644))

	cfg, err := LoadViewerConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.IntervalSeconds)
	assert.Equal(t, 5*time.Second, cfg.Interval())
}

func TestLoadViewerConfigAppliesDefaults(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "empty file", yaml: ""},
		{name: "zero interval", yaml: "interval_seconds: 0\n"},
		{name: "negative interval", yaml: "interval_seconds: -3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "viewer.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			cfg, err := LoadViewerConfig(path)
			require.NoError(t, err)
			assert.Equal(t, DefaultIntervalSeconds, cfg.IntervalSeconds)
		})
	}
}

func TestLoadViewerConfigMissingFile(t *testing.T) {
	_, err := LoadViewerConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadViewerConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("interval_seconds: [broken\n"), 0o644))

	_, err := LoadViewerConfig(path)
	assert.Error(t, err)
}

func TestDefaultViewerConfig(t *testing.T) {
	cfg := DefaultViewerConfig()
	assert.Equal(t, DefaultIntervalSeconds, cfg.IntervalSeconds)
	assert.Equal(t, 2*time.Second, cfg.Interval())
}
