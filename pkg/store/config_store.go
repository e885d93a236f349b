package store

import (
	"fyne.io/fyne/v2"

	"github.com/dormakabaservicesfr-a11y/Daycousu2/pkg/models"
)

// ConfigStore handles configuration persistence using Fyne preferences
type ConfigStore struct {
	app fyne.App
}

// NewConfigStore creates a new ConfigStore instance
func NewConfigStore(app fyne.App) *ConfigStore {
	return &ConfigStore{app: app}
}

// Load loads configuration from preferences
func (cs *ConfigStore) Load() *models.Config {
	prefs := cs.app.Preferences()

	return &models.Config{
		AutoStart:     prefs.BoolWithFallback("auto_start", false),
		DisplayName:   prefs.String("display_name"),
		RelayURL:      prefs.String("relay_url"),
		BoardKey:      prefs.StringWithFallback("board_key", "day-events"),
		APIKey:        prefs.String("api_key"),
		Model:         prefs.StringWithFallback("model", models.DefaultModel),
		ChimeEnabled:  prefs.BoolWithFallback("chime_enabled", true),
		HotkeyEnabled: prefs.BoolWithFallback("hotkey_enabled", false),
	}
}

// Save saves configuration to preferences
func (cs *ConfigStore) Save(config *models.Config) {
	prefs := cs.app.Preferences()

	prefs.SetBool("auto_start", config.AutoStart)
	prefs.SetString("display_name", config.DisplayName)
	prefs.SetString("relay_url", config.RelayURL)
	prefs.SetString("board_key", config.BoardKey)
	prefs.SetString("api_key", config.APIKey)
	prefs.SetString("model", config.Model)
	prefs.SetBool("chime_enabled", config.ChimeEnabled)
	prefs.SetBool("hotkey_enabled", config.HotkeyEnabled)
}
