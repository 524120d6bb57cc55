package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	configDir  = ".config/refile"
	configFile = "config.json"
)

// rawConfig is the JSON-unmarshaling intermediary.
type rawConfig struct {
	Vault      rawVaultConfig      `json:"vault"`
	Send       rawSendConfig       `json:"send"`
	Formatting rawFormattingConfig `json:"formatting"`
	Keymap     KeymapConfig        `json:"keymap"`
	UI         rawUIConfig         `json:"ui"`
}

type rawVaultConfig struct {
	Root           string `json:"root"`
	DefaultTarget  string `json:"defaultTarget"`
	DefaultHeading string `json:"defaultHeading"`
}

type rawSendConfig struct {
	Mode string `json:"mode"`
}

type rawFormattingConfig struct {
	Enabled   *bool        `json:"enabled"`
	Templates rawTemplates `json:"templates"`
}

type rawTemplates struct {
	Document string `json:"document"`
	Page     string `json:"page"`
	Web      string `json:"web"`
}

type rawUIConfig struct {
	ShowFooter    *bool  `json:"showFooter"`
	ShowBar       *bool  `json:"showBar"`
	MouseEnabled  *bool  `json:"mouseEnabled"`
	ToastDuration string `json:"toastDuration"`
}

// Load loads configuration from the default location.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from a specific path.
// If path is empty, uses ~/.config/refile/config.json
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = ConfigPath()
		if path == "" {
			return cfg, nil // Return defaults if home dir is unknown
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	// Merge raw config into defaults
	mergeConfig(cfg, &raw)

	// Expand paths
	cfg.Vault.Root = ExpandPath(cfg.Vault.Root)
	if _, err := os.Stat(cfg.Vault.Root); os.IsNotExist(err) {
		slog.Warn("vault root not found", "path", cfg.Vault.Root)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeConfig merges raw config values into the config.
func mergeConfig(cfg *Config, raw *rawConfig) {
	// Vault
	if raw.Vault.Root != "" {
		cfg.Vault.Root = raw.Vault.Root
	}
	if raw.Vault.DefaultTarget != "" {
		cfg.Vault.DefaultTarget = raw.Vault.DefaultTarget
	}
	if raw.Vault.DefaultHeading != "" {
		cfg.Vault.DefaultHeading = raw.Vault.DefaultHeading
	}

	// Send
	if raw.Send.Mode != "" {
		cfg.Send.Mode = raw.Send.Mode
	}

	// Formatting
	if raw.Formatting.Enabled != nil {
		cfg.Formatting.Enabled = *raw.Formatting.Enabled
	}
	if raw.Formatting.Templates.Document != "" {
		cfg.Formatting.Templates.Document = raw.Formatting.Templates.Document
	}
	if raw.Formatting.Templates.Page != "" {
		cfg.Formatting.Templates.Page = raw.Formatting.Templates.Page
	}
	if raw.Formatting.Templates.Web != "" {
		cfg.Formatting.Templates.Web = raw.Formatting.Templates.Web
	}

	// Keymap
	if raw.Keymap.Overrides != nil {
		for k, v := range raw.Keymap.Overrides {
			cfg.Keymap.Overrides[k] = v
		}
	}

	// UI
	if raw.UI.ShowFooter != nil {
		cfg.UI.ShowFooter = *raw.UI.ShowFooter
	}
	if raw.UI.ShowBar != nil {
		cfg.UI.ShowBar = *raw.UI.ShowBar
	}
	if raw.UI.MouseEnabled != nil {
		cfg.UI.MouseEnabled = *raw.UI.MouseEnabled
	}
	if raw.UI.ToastDuration != "" {
		if d, err := time.ParseDuration(raw.UI.ToastDuration); err == nil {
			cfg.UI.ToastDuration = d
		}
	}
}

// ExpandPath expands ~ to home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	if testConfigPath != "" {
		return testConfigPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir, configFile)
}
