package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// testConfigPath overrides the config location in tests.
var testConfigPath string

// SetTestConfigPath points Save and Load at a specific file. Tests only.
func SetTestConfigPath(path string) { testConfigPath = path }

// ResetTestConfigPath restores the default config location. Tests only.
func ResetTestConfigPath() { testConfigPath = "" }

// saveConfig is the JSON-marshaling intermediary that uses string durations.
type saveConfig struct {
	Vault      VaultConfig          `json:"vault"`
	Send       SendConfig           `json:"send"`
	Formatting saveFormattingConfig `json:"formatting"`
	Keymap     KeymapConfig         `json:"keymap"`
	UI         saveUIConfig         `json:"ui"`
}

type saveFormattingConfig struct {
	Enabled   *bool        `json:"enabled,omitempty"`
	Templates rawTemplates `json:"templates,omitempty"`
}

type saveUIConfig struct {
	ShowFooter    *bool  `json:"showFooter,omitempty"`
	ShowBar       *bool  `json:"showBar,omitempty"`
	MouseEnabled  *bool  `json:"mouseEnabled,omitempty"`
	ToastDuration string `json:"toastDuration,omitempty"`
}

// toSaveConfig converts Config to the JSON-serializable format.
func toSaveConfig(cfg *Config) saveConfig {
	return saveConfig{
		Vault: cfg.Vault,
		Send:  cfg.Send,
		Formatting: saveFormattingConfig{
			Enabled: &cfg.Formatting.Enabled,
			Templates: rawTemplates{
				Document: cfg.Formatting.Templates.Document,
				Page:     cfg.Formatting.Templates.Page,
				Web:      cfg.Formatting.Templates.Web,
			},
		},
		Keymap: cfg.Keymap,
		UI: saveUIConfig{
			ShowFooter:    &cfg.UI.ShowFooter,
			ShowBar:       &cfg.UI.ShowBar,
			MouseEnabled:  &cfg.UI.MouseEnabled,
			ToastDuration: cfg.UI.ToastDuration.String(),
		},
	}
}

// Save writes the config to ~/.config/refile/config.json.
// Keys in the file that Save does not manage are preserved.
func Save(cfg *Config) error {
	path := ConfigPath()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// Start from whatever is already in the file so unknown keys survive.
	merged := make(map[string]json.RawMessage)
	if existing, err := os.ReadFile(path); err == nil {
		// Ignore parse errors; a corrupt file gets replaced wholesale.
		_ = json.Unmarshal(existing, &merged)
	}

	sc := toSaveConfig(cfg)
	managed, err := json.Marshal(sc)
	if err != nil {
		return err
	}
	var managedKeys map[string]json.RawMessage
	if err := json.Unmarshal(managed, &managedKeys); err != nil {
		return err
	}
	for k, v := range managedKeys {
		merged[k] = v
	}

	data, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SaveSendMode updates only the send mode in config and saves.
func SaveSendMode(mode string) error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	cfg.Send.Mode = mode
	return Save(cfg)
}

// SaveFormattingEnabled updates only the formatting toggle in config and saves.
func SaveFormattingEnabled(enabled bool) error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	cfg.Formatting.Enabled = enabled
	return Save(cfg)
}
