package main

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"github.com/dormakabaservicesfr-a11y/Daycousu2/pkg/models"
	"github.com/dormakabaservicesfr-a11y/Daycousu2/pkg/store"
)

// newTestDayApp builds a DayApp on the test driver with no relay
// connection, so publishEvent applies straight to the local store
func newTestDayApp(config *models.Config) *DayApp {
	return &DayApp{
		app:          test.NewApp(),
		events:       store.NewEventStore(),
		eventWindows: make(map[string]*EventWindow),
		recentWrites: make(map[string]time.Time),
		config:       config,
	}
}

func TestRaisePlannerShowsWindow(t *testing.T) {
	da := newTestDayApp(&models.Config{DisplayName: "Alice"})

	// Before the planner exists the shortcut path is a no-op
	da.raisePlanner()

	da.plannerWindow = NewPlannerWindow(da)
	da.raisePlanner()
	assert.Equal(t, "Day", da.plannerWindow.window.Title())
}

func TestPublishWhileResyncing(t *testing.T) {
	da := newTestDayApp(&models.Config{
		RelayURL: "ws://127.0.0.1:1/never",
		BoardKey: "day-events",
	})

	// The tray "Synchroniser" action swaps the relay client while other
	// goroutines publish; every write must still land in the store
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			da.publishEvent(&models.Event{
				ID:              fmt.Sprintf("e%d", i),
				Title:           "Soirée",
				Month:           "Juin",
				MaxParticipants: 4,
			})
		}(i)
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			da.syncNow()
		}()
	}
	wg.Wait()

	if client := da.relayClient(); client != nil {
		client.Close()
	}
	assert.Equal(t, 8, da.events.Len())
}
