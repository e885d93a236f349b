package main

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/google/uuid"

	"github.com/dormakabaservicesfr-a11y/Daycousu2/pkg/audio"
	"github.com/dormakabaservicesfr-a11y/Daycousu2/pkg/models"
	"github.com/dormakabaservicesfr-a11y/Daycousu2/pkg/oracle"
	"github.com/dormakabaservicesfr-a11y/Daycousu2/pkg/platform"
	"github.com/dormakabaservicesfr-a11y/Daycousu2/pkg/relay"
	"github.com/dormakabaservicesfr-a11y/Daycousu2/pkg/store"
)

// ownWriteWindow is how long a key published by this client still
// suppresses the remote-change chime when its echo comes back
const ownWriteWindow = 30 * time.Second

type DayApp struct {
	app         fyne.App
	configStore *store.ConfigStore
	events      *store.EventStore

	// Guarded by stateMu: swapped by the settings save callback and the
	// tray "Synchroniser" action while worker goroutines read them
	stateMu    sync.Mutex
	config     *models.Config
	relay      *relay.Client
	oracle     *oracle.Client
	replayDone bool
	lastChime  *audio.Player

	plannerWindow *PlannerWindow
	configWindow  *ConfigWindow
	eventWindows  map[string]*EventWindow

	// Keys this client wrote recently, so the relay echo of our own
	// writes does not ring the chime
	recentWrites map[string]time.Time
	recentMu     sync.Mutex

	windowsMu sync.Mutex
}

func main() {
	da := &DayApp{
		app:          app.NewWithID("com.dormakaba.day"),
		events:       store.NewEventStore(),
		eventWindows: make(map[string]*EventWindow),
		recentWrites: make(map[string]time.Time),
	}

	if err := da.initialize(); err != nil {
		log.Fatal(err)
	}

	da.run()
}

func (da *DayApp) initialize() error {
	da.configStore = store.NewConfigStore(da.app)
	da.config = da.configStore.Load()

	// Sync autostart state with config on startup
	if err := setupAutostart(da.config.AutoStart); err != nil {
		log.Printf("Warning: failed to setup autostart: %v", err)
	}

	da.configStore.Save(da.config)

	da.oracle = oracle.NewClient(da.config.ResolveAPIKey(), da.config.ResolveModel())

	da.events.SetOnChange(da.handleStoreChange)

	da.setupSystemTray()
	da.plannerWindow = NewPlannerWindow(da)

	if !da.config.NeedsConfiguration() {
		da.connectRelay()
	}

	if da.config.HotkeyEnabled {
		da.registerGlobalHotkey()
	}

	da.plannerWindow.Show()

	if da.config.NeedsConfiguration() {
		da.showConfigWindow()
	}

	return nil
}

func (da *DayApp) run() {
	da.app.Run()
}

func (da *DayApp) currentConfig() *models.Config {
	da.stateMu.Lock()
	defer da.stateMu.Unlock()
	return da.config
}

func (da *DayApp) relayClient() *relay.Client {
	da.stateMu.Lock()
	defer da.stateMu.Unlock()
	return da.relay
}

func (da *DayApp) oracleClient() *oracle.Client {
	da.stateMu.Lock()
	defer da.stateMu.Unlock()
	return da.oracle
}

// raisePlanner brings the planner window to the front, activating the
// app first on macOS. Must be called on the UI thread.
func (da *DayApp) raisePlanner() {
	platform.ActivateApp()
	if da.plannerWindow != nil {
		da.plannerWindow.Show()
		da.plannerWindow.window.RequestFocus()
	}
}

// connectRelay establishes the sync connection for the configured
// board, replacing any previous connection
func (da *DayApp) connectRelay() {
	config := da.currentConfig()

	client := relay.NewClient(config.RelayURL, config.BoardKey)
	client.SetStatusHandler(func(connected bool) {
		if connected {
			// Every (re)connect begins with a full-state replay; the
			// chime stays quiet until it completes
			da.stateMu.Lock()
			da.replayDone = false
			da.stateMu.Unlock()
		}
		fyne.Do(func() {
			if da.plannerWindow != nil {
				da.plannerWindow.SetConnectionStatus(connected)
			}
			da.updateSystemTrayMenu()
		})
	})
	client.SetSnapshotHandler(func() {
		da.stateMu.Lock()
		da.replayDone = true
		da.stateMu.Unlock()
	})
	client.Subscribe(func(key string, value json.RawMessage) {
		da.events.Apply(key, value)
	})

	da.stateMu.Lock()
	old := da.relay
	da.relay = client
	da.replayDone = false
	da.stateMu.Unlock()

	if old != nil {
		old.Close()
	}
	client.Start()
}

// handleStoreChange runs whenever the event store applies a change,
// local or remote
func (da *DayApp) handleStoreChange(id string) {
	remote := !da.isOwnWrite(id)

	fyne.Do(func() {
		if da.plannerWindow != nil {
			da.plannerWindow.Refresh()
		}
		da.updateSystemTrayMenu()

		da.windowsMu.Lock()
		ew := da.eventWindows[id]
		da.windowsMu.Unlock()
		if ew != nil {
			if _, ok := da.events.Get(id); !ok {
				ew.CloseRemoved()
			} else {
				ew.Refresh()
			}
		}
	})

	if remote {
		da.notifyRemoteChange()
	}
}

// markOwnWrite records a key we are about to publish
func (da *DayApp) markOwnWrite(id string) {
	da.recentMu.Lock()
	defer da.recentMu.Unlock()

	now := time.Now()
	da.recentWrites[id] = now
	for key, at := range da.recentWrites {
		if now.Sub(at) > ownWriteWindow {
			delete(da.recentWrites, key)
		}
	}
}

func (da *DayApp) isOwnWrite(id string) bool {
	da.recentMu.Lock()
	defer da.recentMu.Unlock()

	at, ok := da.recentWrites[id]
	return ok && time.Since(at) <= ownWriteWindow
}

// createEvent asks the oracle for an idea and publishes the new event.
// Runs synchronously, callers wrap it in a goroutine.
func (da *DayApp) createEvent(month string, eventType models.EventType, userProvidedName string) {
	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()

	oc := da.oracleClient()
	idea := oc.GenerateEventIdeas(ctx, month, eventType, userProvidedName, da.events.UsedIcons())
	location := oc.SuggestLocation(ctx, idea.Title, month)

	event := &models.Event{
		ID:              uuid.NewString(),
		Title:           idea.Title,
		Date:            idea.Date,
		Description:     idea.Description,
		Icon:            idea.Icon,
		Type:            eventType,
		Month:           month,
		Attendees:       []string{},
		MaxParticipants: idea.MaxParticipants,
		Location:        &location,
		AIGenerated:     idea.AIGenerated,
	}

	da.publishEvent(event)
	log.Printf("Created event %q in %s (%s)", event.Title, event.Month, event.Type)
}

// publishEvent pushes an event to the board. The relay client applies
// it locally first, so the UI updates even while offline.
func (da *DayApp) publishEvent(event *models.Event) {
	da.markOwnWrite(event.ID)

	client := da.relayClient()
	if client == nil {
		// No board configured yet, apply locally only
		data, err := models.EncodeEvent(event)
		if err != nil {
			log.Printf("Failed to encode event %s: %v", event.ID, err)
			return
		}
		da.events.Apply(event.ID, data)
		return
	}

	if err := client.Put(event.ID, event); err != nil {
		log.Printf("Failed to publish event %s: %v", event.ID, err)
	}
}

// deleteEvent publishes a tombstone for the event
func (da *DayApp) deleteEvent(id string) {
	da.markOwnWrite(id)

	client := da.relayClient()
	if client == nil {
		da.events.Apply(id, []byte("null"))
		return
	}

	if err := client.PutNull(id); err != nil {
		log.Printf("Failed to delete event %s: %v", id, err)
	}
}

func (da *DayApp) showConfigWindow() {
	if da.configWindow != nil && da.configWindow.window != nil {
		da.configWindow.window.RequestFocus()
		da.configWindow.window.Show()
		return
	}

	da.configWindow = NewConfigWindow(da.app, da.currentConfig(), func(newConfig *models.Config) {
		previous := da.currentConfig()
		relayChanged := newConfig.RelayURL != previous.RelayURL || newConfig.BoardKey != previous.BoardKey
		hotkeyChanged := newConfig.HotkeyEnabled != previous.HotkeyEnabled

		da.stateMu.Lock()
		da.config = newConfig
		da.oracle = oracle.NewClient(newConfig.ResolveAPIKey(), newConfig.ResolveModel())
		da.stateMu.Unlock()

		da.configStore.Save(newConfig)

		if relayChanged && !newConfig.NeedsConfiguration() {
			da.connectRelay()
		}
		if hotkeyChanged {
			if newConfig.HotkeyEnabled {
				da.registerGlobalHotkey()
			} else {
				da.unregisterGlobalHotkey()
			}
		}
	})

	da.configWindow.window.SetOnClosed(func() {
		da.configWindow = nil
	})

	da.configWindow.Show()
}

func (da *DayApp) showEventWindow(event *models.Event) {
	da.windowsMu.Lock()
	existing := da.eventWindows[event.ID]
	da.windowsMu.Unlock()

	if existing != nil {
		existing.window.RequestFocus()
		existing.window.Show()
		return
	}

	ew := NewEventWindow(da, event)
	da.windowsMu.Lock()
	da.eventWindows[event.ID] = ew
	da.windowsMu.Unlock()

	ew.window.SetOnClosed(func() {
		da.windowsMu.Lock()
		delete(da.eventWindows, event.ID)
		da.windowsMu.Unlock()
	})

	ew.Show()
}

func (da *DayApp) syncNow() {
	if da.currentConfig().NeedsConfiguration() {
		log.Println("No board configured")
		return
	}
	da.connectRelay()
}

func (da *DayApp) quit() {
	da.unregisterGlobalHotkey()
	if client := da.relayClient(); client != nil {
		client.Close()
	}
	da.app.Quit()
}
