package models

import "os"

// Config holds application configuration
type Config struct {
	AutoStart     bool   `json:"auto_start"`
	DisplayName   string `json:"display_name"`   // prefilled in the registration form
	RelayURL      string `json:"relay_url"`      // ws:// or wss:// replication relay endpoint
	BoardKey      string `json:"board_key"`      // shared namespace for the event collection
	APIKey        string `json:"api_key"`        // Gemini key override, env used when empty
	Model         string `json:"model"`          // generation model name
	ChimeEnabled  bool   `json:"chime_enabled"`  // chime on remote changes
	HotkeyEnabled bool   `json:"hotkey_enabled"` // global shortcut to raise the planner
}

// DefaultModel is the generation model used when none is configured
const DefaultModel = "gemini-2.5-flash"

// NeedsConfiguration returns true if the config needs initial setup
func (c *Config) NeedsConfiguration() bool {
	return c.RelayURL == "" || c.BoardKey == ""
}

// ResolveAPIKey returns the configured key, falling back to the
// GEMINI_API_KEY environment variable. An empty result means the idea
// oracle runs in local fallback mode.
func (c *Config) ResolveAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	return os.Getenv("GEMINI_API_KEY")
}

// ResolveModel returns the configured model name or the default
func (c *Config) ResolveModel() string {
	if c.Model != "" {
		return c.Model
	}
	return DefaultModel
}
