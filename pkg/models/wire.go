package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// wireEvent is the flat record shape carried by the replication relay.
// The relay does not preserve nested composite values reliably, so the
// attendee list and the location are serialized to JSON text before a
// write and decoded symmetrically on read. Legacy producers wrote the
// structured forms directly (and the boolean as "true"/"false" text),
// so the decoder tolerates both encodings.
type wireEvent struct {
	Title           string          `json:"title"`
	Date            string          `json:"date"`
	Description     string          `json:"description"`
	Icon            string          `json:"icon"`
	Type            string          `json:"type"`
	Month           string          `json:"month"`
	Attendees       json.RawMessage `json:"attendees,omitempty"`
	MaxParticipants int             `json:"max_participants"`
	Location        json.RawMessage `json:"location,omitempty"`
	AIGenerated     json.RawMessage `json:"ai_generated,omitempty"`
}

// EncodeEvent marshals an event into its canonical flat wire form
func EncodeEvent(e *Event) ([]byte, error) {
	attendees := e.Attendees
	if attendees == nil {
		attendees = []string{}
	}
	attendeesJSON, err := json.Marshal(attendees)
	if err != nil {
		return nil, fmt.Errorf("failed to encode attendees: %w", err)
	}
	// Serialized as a string on the wire
	attendeesText, err := json.Marshal(string(attendeesJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to encode attendees: %w", err)
	}

	w := wireEvent{
		Title:           e.Title,
		Date:            e.Date,
		Description:     e.Description,
		Icon:            e.Icon,
		Type:            string(e.Type),
		Month:           e.Month,
		Attendees:       attendeesText,
		MaxParticipants: e.MaxParticipants,
		AIGenerated:     json.RawMessage(fmt.Sprintf("%t", e.AIGenerated)),
	}

	if e.Location != nil {
		locJSON, err := json.Marshal(e.Location)
		if err != nil {
			return nil, fmt.Errorf("failed to encode location: %w", err)
		}
		locText, err := json.Marshal(string(locJSON))
		if err != nil {
			return nil, fmt.Errorf("failed to encode location: %w", err)
		}
		w.Location = locText
	}

	return json.Marshal(w)
}

// DecodeEvent unmarshals a wire record for key id into an event,
// accepting both the canonical text-serialized nested fields and the
// legacy raw-structured forms
func DecodeEvent(id string, data []byte) (*Event, error) {
	var w wireEvent
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("malformed event record: %w", err)
	}

	e := &Event{
		ID:              id,
		Title:           w.Title,
		Date:            w.Date,
		Description:     w.Description,
		Icon:            w.Icon,
		Type:            EventType(w.Type),
		Month:           w.Month,
		MaxParticipants: w.MaxParticipants,
		Attendees:       []string{},
	}

	if e.MaxParticipants <= 0 {
		e.MaxParticipants = DefaultMaxParticipants
	}

	if len(w.Attendees) > 0 {
		attendees, err := decodeStringList(w.Attendees)
		if err != nil {
			return nil, fmt.Errorf("malformed attendees field: %w", err)
		}
		e.Attendees = attendees
	}

	if len(w.Location) > 0 && !bytes.Equal(w.Location, []byte("null")) {
		loc, err := decodeLocation(w.Location)
		if err != nil {
			return nil, fmt.Errorf("malformed location field: %w", err)
		}
		e.Location = loc
	}

	if len(w.AIGenerated) > 0 {
		e.AIGenerated = decodeLooseBool(w.AIGenerated)
	}

	return e, nil
}

// decodeStringList accepts either a JSON array or a JSON string
// containing a serialized array
func decodeStringList(raw json.RawMessage) ([]string, error) {
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return nil, fmt.Errorf("neither array nor serialized text: %s", raw)
	}
	if text == "" {
		return []string{}, nil
	}
	if err := json.Unmarshal([]byte(text), &list); err != nil {
		return nil, err
	}
	return list, nil
}

// decodeLocation accepts either a JSON object or a JSON string
// containing a serialized object
func decodeLocation(raw json.RawMessage) (*EventLocation, error) {
	loc := &EventLocation{}
	if err := json.Unmarshal(raw, loc); err == nil {
		return loc, nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return nil, fmt.Errorf("neither object nor serialized text: %s", raw)
	}
	if text == "" || text == "null" {
		return nil, nil
	}
	if err := json.Unmarshal([]byte(text), loc); err != nil {
		return nil, err
	}
	return loc, nil
}

// decodeLooseBool accepts true/false as well as the "true"/"false" text
// some producers wrote. Anything unrecognized reads as false.
func decodeLooseBool(raw json.RawMessage) bool {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text == "true"
	}
	return false
}
