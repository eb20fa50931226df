package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndquang/vietproof/internal/corrector"
)

func TestLoad_Defaults(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{name: "empty path", path: ""},
		{name: "missing file", path: "/nonexistent/config.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(tt.path)
			require.NoError(t, err)

			assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
			assert.Equal(t, corrector.DefaultModel, cfg.Model)
			assert.Equal(t, DefaultDownloadFilename, cfg.DownloadFilename)
			assert.Equal(t, "tokyo-night", cfg.TUI.Theme)
		})
	}
}

func TestLoad_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
api:
  base_url: https://corrector.example.com
  timeout_seconds: 30
model: qwen
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://corrector.example.com", cfg.API.BaseURL)
	assert.Equal(t, 30, cfg.API.TimeoutSeconds)
	assert.Equal(t, "qwen", cfg.Model)
	// Unset keys keep their defaults.
	assert.Equal(t, DefaultDownloadFilename, cfg.DownloadFilename)
	assert.Equal(t, "tokyo-night", cfg.TUI.Theme)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:   "custom model passes through",
			mutate: func(c *Config) { c.Model = "my-finetuned-model" },
		},
		{
			name:    "bad scheme",
			mutate:  func(c *Config) { c.API.BaseURL = "ftp://host" },
			wantErr: "unsupported scheme",
		},
		{
			name:    "missing host",
			mutate:  func(c *Config) { c.API.BaseURL = "http://" },
			wantErr: "missing host",
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.API.TimeoutSeconds = -1 },
			wantErr: "must not be negative",
		},
		{
			name:    "unknown theme",
			mutate:  func(c *Config) { c.TUI.Theme = "solarized-disco" },
			wantErr: "unknown theme",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
