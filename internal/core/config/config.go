// Package config handles configuration loading and validation for vietproof.
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"

	"github.com/ndquang/vietproof/internal/core/styles"
	"github.com/ndquang/vietproof/internal/corrector"
)

// DefaultBaseURL is the API origin used when none is configured. The
// correction service runs locally by default.
const DefaultBaseURL = "http://localhost:5000"

// DefaultDownloadFilename is the target filename for exported documents.
const DefaultDownloadFilename = "van_ban_da_sua.docx"

// Config holds the application configuration.
type Config struct {
	API   APIConfig `yaml:"api"`
	Model string    `yaml:"model"`
	TUI   TUIConfig `yaml:"tui"`

	// DownloadFilename is the filename requested from the export endpoint
	// and used for the local save.
	DownloadFilename string `yaml:"download_filename"`
}

// APIConfig describes how to reach the correction API.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	// TimeoutSeconds bounds every request. Zero means the client default.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// Timeout returns the configured request timeout as a duration.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// TUIConfig holds TUI-specific configuration.
type TUIConfig struct {
	Theme string `yaml:"theme"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
		},
		Model:            corrector.DefaultModel,
		DownloadFilename: DefaultDownloadFilename,
		TUI: TUIConfig{
			Theme: styles.DefaultTheme,
		},
	}
}

// Load reads configuration from the given path. If the path is empty or the
// file doesn't exist, defaults are returned.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills zero values left by a partial config file.
func (c *Config) applyDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.Model == "" {
		c.Model = corrector.DefaultModel
	}
	if c.DownloadFilename == "" {
		c.DownloadFilename = DefaultDownloadFilename
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = styles.DefaultTheme
	}
}

// Validate checks the configuration for errors. The model identifier is
// deliberately not validated: unknown identifiers are passed through to the
// API verbatim.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("api.base_url", c.API.BaseURL, validBaseURL),
		criterio.Run("api.timeout_seconds", c.API.TimeoutSeconds, nonNegative),
		criterio.Run("tui.theme", c.TUI.Theme, knownTheme),
	)
}

func validBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

func nonNegative(seconds int) error {
	if seconds < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func knownTheme(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %v)", name, styles.ThemeNames())
	}
	return nil
}
