package store

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"github.com/dormakabaservicesfr-a11y/Daycousu2/pkg/models"
)

func TestConfigStoreDefaults(t *testing.T) {
	cs := NewConfigStore(test.NewApp())

	config := cs.Load()

	assert.False(t, config.AutoStart)
	assert.Empty(t, config.RelayURL)
	assert.Equal(t, "day-events", config.BoardKey)
	assert.Equal(t, models.DefaultModel, config.Model)
	assert.True(t, config.ChimeEnabled)
	assert.False(t, config.HotkeyEnabled)

	// A fresh install still needs the relay endpoint
	assert.True(t, config.NeedsConfiguration())
}

func TestConfigStoreRoundTrip(t *testing.T) {
	cs := NewConfigStore(test.NewApp())

	saved := &models.Config{
		AutoStart:     true,
		DisplayName:   "Alice",
		RelayURL:      "wss://relay.example.com/sync",
		BoardKey:      "famille",
		APIKey:        "secret",
		Model:         "gemini-2.5-pro",
		ChimeEnabled:  false,
		HotkeyEnabled: true,
	}
	cs.Save(saved)

	loaded := cs.Load()
	assert.Equal(t, saved, loaded)
	assert.False(t, loaded.NeedsConfiguration())
}
