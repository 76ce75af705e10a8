// Package config loads and saves adapter defaults from a small JSON file
// under the user's home directory, in the shape the rest of the module
// expects to find them in: a GDB path, MI3 launch arguments, timeouts, the
// transcript ring buffer capacity, and bridge defaults.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// BridgeConfig holds defaults for the optional front-end bridge.
type BridgeConfig struct {
	Host        string `json:"host,omitempty"`
	Port        int    `json:"port,omitempty"`
	MDNSService string `json:"mdns_service,omitempty"` // e.g. "_gdbmi._tcp"
	Advertise   bool   `json:"advertise,omitempty"`
}

// GlobalConfig holds user-level adapter defaults stored in ~/.gdbmi/config.json.
type GlobalConfig struct {
	GDBPath            string       `json:"gdb_path,omitempty"`
	InterpreterArgs    []string     `json:"interpreter_args,omitempty"`
	StartupTimeoutMS   int          `json:"startup_timeout_ms,omitempty"`
	TranscriptCapacity int          `json:"transcript_capacity,omitempty"`
	Bridge             BridgeConfig `json:"bridge,omitempty"`
}

// StartupTimeout returns the configured startup timeout as a duration,
// falling back to the default when unset or non-positive.
func (c *GlobalConfig) StartupTimeout() time.Duration {
	if c == nil || c.StartupTimeoutMS <= 0 {
		return DefaultConfig().StartupTimeout()
	}
	return time.Duration(c.StartupTimeoutMS) * time.Millisecond
}

// DefaultConfig returns the built-in defaults used when no config file
// exists or a field is left unset.
func DefaultConfig() *GlobalConfig {
	return &GlobalConfig{
		GDBPath:            "gdb",
		InterpreterArgs:    []string{"--interpreter=mi3"},
		StartupTimeoutMS:   5000,
		TranscriptCapacity: 1000,
		Bridge: BridgeConfig{
			Host:        "127.0.0.1",
			Port:        7890,
			MDNSService: "_gdbmi._tcp",
			Advertise:   false,
		},
	}
}

// Dir returns the global gdbmi config directory (~/.gdbmi), creating it if needed.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	dir := filepath.Join(home, ".gdbmi")
	os.MkdirAll(dir, 0755)
	return dir
}

// configPath returns the full path to ~/.gdbmi/config.json.
func configPath() string {
	return filepath.Join(Dir(), "config.json")
}

// Load reads ~/.gdbmi/config.json, returning built-in defaults if the file
// is absent. The file is decoded over the built-in defaults, so fields absent
// from it keep their default values, while fields present with a zero value
// override them; callers needing effective values should read through the
// accessor methods (e.g. StartupTimeout).
func Load() (*GlobalConfig, error) {
	data, err := os.ReadFile(configPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the global config to ~/.gdbmi/config.json.
func Save(cfg *GlobalConfig) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(configPath(), data, 0644)
}
