package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dqv/pkg/suite"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, suite.DefaultDatasetPath, cfg.Dataset)
	assert.Equal(t, "continue", cfg.Policy)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.NoColor)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("DQV_DATASET", "/tmp/other.csv")
	t.Setenv("DQV_POLICY", "fail")
	t.Setenv("DQV_WORKERS", "4")
	t.Setenv("DQV_NO_COLOR", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/other.csv", cfg.Dataset)
	assert.Equal(t, "fail", cfg.Policy)
	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.NoColor)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dqv.yaml")
	content := "dataset: ./data/in/deaths.csv\nlog_level: debug\nworkers: 2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "./data/in/deaths.csv", cfg.Dataset)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dqv.yaml")
	require.NoError(t, os.WriteFile(path, []byte("policy: continue\n"), 0o644))
	t.Setenv("DQV_POLICY", "fail")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "fail", cfg.Policy)
}

func TestLoad_DefersValidationToCaller(t *testing.T) {
	t.Setenv("DQV_WORKERS", "0")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Error(t, cfg.Validate())

	cfg.Workers = 4
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Workers: 1, LogLevel: "info"}, false},
		{"uppercase level", Config{Workers: 1, LogLevel: "WARN"}, false},
		{"zero workers", Config{Workers: 0, LogLevel: "info"}, true},
		{"bad level", Config{Workers: 1, LogLevel: "trace"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, (&Config{LogLevel: "info"}).SlogLevel())
	assert.Equal(t, slog.LevelWarn, (&Config{LogLevel: "warn"}).SlogLevel())
	assert.Equal(t, slog.LevelError, (&Config{LogLevel: "error"}).SlogLevel())
	assert.Equal(t, slog.LevelInfo, (&Config{LogLevel: "bogus"}).SlogLevel())
}
