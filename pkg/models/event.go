package models

import (
	"net/url"
	"strings"
)

// EventType is one of the six fixed event categories
type EventType string

const (
	TypeJournee      EventType = "Journée"
	TypeSoiree       EventType = "Soirée"
	TypeWeekend      EventType = "Week-end"
	TypeVacances     EventType = "Vacances"
	TypeActivite     EventType = "Activité"
	TypeAnniversaire EventType = "Anniversaire"
)

// EventTypes lists all categories in display order
var EventTypes = []EventType{
	TypeActivite,
	TypeAnniversaire,
	TypeJournee,
	TypeSoiree,
	TypeVacances,
	TypeWeekend,
}

// Months lists the twelve recognized month names used as grouping keys.
// A record whose month is not in this list is never rendered.
var Months = []string{
	"Janvier", "Février", "Mars", "Avril", "Mai", "Juin",
	"Juillet", "Août", "Septembre", "Octobre", "Novembre", "Décembre",
}

// TypeIcons maps each category to its neutral fallback icon
var TypeIcons = map[EventType]string{
	TypeJournee:      "☀️",
	TypeSoiree:       "🌙",
	TypeWeekend:      "📅",
	TypeVacances:     "🏖️",
	TypeActivite:     "🏃",
	TypeAnniversaire: "🎂",
}

// IconPools holds curated per-type icons used to avoid icon collisions
// when the idea oracle is unreachable
var IconPools = map[EventType][]string{
	TypeJournee:      {"☀️", "🌞", "🌻", "🧺"},
	TypeSoiree:       {"🌙", "🎶", "🥂", "🕯️"},
	TypeWeekend:      {"📅", "🚗", "⛺", "🗺️"},
	TypeVacances:     {"🏖️", "✈️", "🏔️", "🧳"},
	TypeActivite:     {"🏃", "🚴", "🧗", "🎨"},
	TypeAnniversaire: {"🎂", "🎉", "🎈", "🎁"},
}

// EventLocation is an optional physical location for an event
type EventLocation struct {
	Name    string `json:"name"`
	MapsURI string `json:"mapsUri,omitempty"`
}

// Event is one persisted event record, identified by an opaque key
type Event struct {
	ID              string
	Title           string
	Date            string // free text, e.g. "Le 15 Mars", not a structured date
	Description     string
	Icon            string
	Type            EventType
	Month           string
	Attendees       []string // insertion order = registration order, duplicates allowed
	MaxParticipants int
	Location        *EventLocation
	AIGenerated     bool
}

// CapacityState describes the advisory relation between attendee count and cap
type CapacityState int

const (
	CapacityOpen CapacityState = iota
	CapacityReached
	CapacityExceeded
)

// DefaultMaxParticipants is applied when a record carries no usable cap
const DefaultMaxParticipants = 4

// IsKnownMonth reports whether m is one of the twelve recognized month names
func IsKnownMonth(m string) bool {
	for _, month := range Months {
		if month == m {
			return true
		}
	}
	return false
}

// Capacity returns the advisory capacity state. Registration is never
// blocked; the state only drives visual treatment.
func (e *Event) Capacity() CapacityState {
	switch {
	case len(e.Attendees) > e.MaxParticipants:
		return CapacityExceeded
	case len(e.Attendees) == e.MaxParticipants:
		return CapacityReached
	default:
		return CapacityOpen
	}
}

// Clone returns a deep copy so callers can mutate without aliasing the store
func (e *Event) Clone() Event {
	clone := *e
	if e.Attendees != nil {
		clone.Attendees = append([]string(nil), e.Attendees...)
	}
	if e.Location != nil {
		loc := *e.Location
		clone.Location = &loc
	}
	return clone
}

// Equal reports field-for-field equality, used to discard echoed
// notifications that carry no actual change
func (e *Event) Equal(other *Event) bool {
	if e.ID != other.ID ||
		e.Title != other.Title ||
		e.Date != other.Date ||
		e.Description != other.Description ||
		e.Icon != other.Icon ||
		e.Type != other.Type ||
		e.Month != other.Month ||
		e.MaxParticipants != other.MaxParticipants ||
		e.AIGenerated != other.AIGenerated {
		return false
	}
	if len(e.Attendees) != len(other.Attendees) {
		return false
	}
	for i := range e.Attendees {
		if e.Attendees[i] != other.Attendees[i] {
			return false
		}
	}
	if (e.Location == nil) != (other.Location == nil) {
		return false
	}
	if e.Location != nil && *e.Location != *other.Location {
		return false
	}
	return true
}

// MapsSearchURL builds a web map search link for a location name.
// The name is percent-encoded the way browsers encode query components.
func MapsSearchURL(name string) string {
	query := strings.ReplaceAll(url.QueryEscape(name), "+", "%20")
	return "https://www.google.com/maps/search/?api=1&query=" + query
}
