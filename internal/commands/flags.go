package commands

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/ndquang/vietproof/internal/core/config"
	"github.com/ndquang/vietproof/internal/corrector"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	BaseURL    string

	ProfilerPort int

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// Client talks to the correction API
	Client *corrector.Client
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "vietproof", "config.yaml")
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/vietproof/vietproof.log
// On Linux: $XDG_STATE_HOME/vietproof/vietproof.log (defaults to ~/.local/state/vietproof/vietproof.log)
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "vietproof", "vietproof.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "vietproof", "vietproof.log")
	}

	return filepath.Join(home, ".local", "state", "vietproof", "vietproof.log")
}
