package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dormakabaservicesfr-a11y/Daycousu2/pkg/models"
)

func TestMonthSummaryCountsPerMonth(t *testing.T) {
	da := newTestDayApp(&models.Config{})

	// Inserted out of calendar order on purpose
	da.publishEvent(&models.Event{ID: "e3", Title: "Rentrée", Type: models.TypeJournee, Month: "Septembre", MaxParticipants: 4})
	da.publishEvent(&models.Event{ID: "e1", Title: "Pique-nique", Type: models.TypeJournee, Month: "Juin", MaxParticipants: 4})
	da.publishEvent(&models.Event{ID: "e2", Title: "Soirée jeux", Type: models.TypeSoiree, Month: "Juin", MaxParticipants: 4})

	assert.Equal(t, []string{"  Juin : 2", "  Septembre : 1"}, da.monthSummary())
}

func TestMonthSummaryEmptyBoard(t *testing.T) {
	da := newTestDayApp(&models.Config{})
	assert.Empty(t, da.monthSummary())
}

func TestConnectionLabel(t *testing.T) {
	da := newTestDayApp(&models.Config{})
	assert.Equal(t, "Non configuré", da.connectionLabel())

	da = newTestDayApp(&models.Config{RelayURL: "wss://relay.example/ws", BoardKey: "day-events"})
	assert.Equal(t, "Hors ligne", da.connectionLabel())
}
