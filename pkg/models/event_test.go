package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapacityStates(t *testing.T) {
	event := &Event{MaxParticipants: 2}

	assert.Equal(t, CapacityOpen, event.Capacity())

	event.Attendees = []string{"Alice"}
	assert.Equal(t, CapacityOpen, event.Capacity())

	event.Attendees = []string{"Alice", "Bob"}
	assert.Equal(t, CapacityReached, event.Capacity())

	// Registration past the cap is allowed, the state is advisory
	event.Attendees = []string{"Alice", "Bob", "Chloé"}
	assert.Equal(t, CapacityExceeded, event.Capacity())
}

func TestIsKnownMonth(t *testing.T) {
	assert.True(t, IsKnownMonth("Janvier"))
	assert.True(t, IsKnownMonth("Décembre"))
	assert.False(t, IsKnownMonth("January"))
	assert.False(t, IsKnownMonth("janvier"))
	assert.False(t, IsKnownMonth(""))
}

func TestCloneIsIndependent(t *testing.T) {
	original := &Event{
		ID:        "e1",
		Title:     "Pique-nique",
		Attendees: []string{"Alice"},
		Location:  &EventLocation{Name: "Parc"},
	}

	clone := original.Clone()
	clone.Attendees[0] = "Bob"
	clone.Location.Name = "Plage"

	assert.Equal(t, "Alice", original.Attendees[0])
	assert.Equal(t, "Parc", original.Location.Name)
}

func TestEqual(t *testing.T) {
	a := &Event{
		ID:              "e1",
		Title:           "Soirée jeux",
		Attendees:       []string{"Alice", "Bob"},
		MaxParticipants: 4,
		Location:        &EventLocation{Name: "Chez Max"},
	}
	b := &Event{
		ID:              "e1",
		Title:           "Soirée jeux",
		Attendees:       []string{"Alice", "Bob"},
		MaxParticipants: 4,
		Location:        &EventLocation{Name: "Chez Max"},
	}

	assert.True(t, a.Equal(b))

	b.Attendees = []string{"Alice"}
	assert.False(t, a.Equal(b))

	b.Attendees = []string{"Alice", "Bob"}
	b.Location = nil
	assert.False(t, a.Equal(b))

	b.Location = &EventLocation{Name: "Chez Max"}
	b.AIGenerated = true
	assert.False(t, a.Equal(b))
}

func TestMapsSearchURL(t *testing.T) {
	url := MapsSearchURL("Parc de la Tête d'Or")

	assert.Contains(t, url, "https://www.google.com/maps/search/?api=1&query=")
	// Spaces are percent-encoded, not plus-encoded
	assert.NotContains(t, url, "+")
	assert.Contains(t, url, "%20")
}
