package entry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// MarshalPayload serializes the event's payload to JSON TEXT for storage.
// HTML escaping is disabled so stored payloads round-trip byte-identically.
func MarshalPayload(ev Event) (string, error) {
	var payload any
	switch ev.Type {
	case TypeCreated:
		if ev.Created == nil {
			return "", fmt.Errorf("marshal payload: %s event missing payload", ev.Type)
		}
		payload = ev.Created
	case TypeUpdated:
		if ev.Updated == nil {
			return "", fmt.Errorf("marshal payload: %s event missing payload", ev.Type)
		}
		payload = ev.Updated
	case TypeDeleted:
		if ev.Deleted == nil {
			return "", fmt.Errorf("marshal payload: %s event missing payload", ev.Type)
		}
		payload = ev.Deleted
	default:
		return "", fmt.Errorf("marshal payload: unknown event type %q", ev.Type)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}
	// Encoder adds a trailing newline, remove it
	return strings.TrimSpace(buf.String()), nil
}

// DecodePayload parses a stored payload back into the typed variant for t.
// Unknown or extra fields are rejected, not silently dropped: a payload that
// doesn't match the variant's schema exactly is a decode error.
//
// An event type outside the known vocabulary is not an error: the event is
// returned with no payload so replay can carry it past the materializer,
// which skips it. A log written by a newer version must still replay.
func DecodePayload(t Type, entryID string, data string) (Event, error) {
	ev := Event{Type: t, EntryID: entryID}

	switch t {
	case TypeCreated:
		var p CreatedPayload
		if err := decodeStrict(data, &p); err != nil {
			return Event{}, fmt.Errorf("decode %s payload: %w", t, err)
		}
		ev.Created = &p
	case TypeUpdated:
		var p UpdatedPayload
		if err := decodeStrict(data, &p); err != nil {
			return Event{}, fmt.Errorf("decode %s payload: %w", t, err)
		}
		ev.Updated = &p
	case TypeDeleted:
		var p DeletedPayload
		if err := decodeStrict(data, &p); err != nil {
			return Event{}, fmt.Errorf("decode %s payload: %w", t, err)
		}
		ev.Deleted = &p
	default:
		// Unknown variant: keep the envelope, drop the payload.
	}

	return ev, nil
}

// decodeStrict decodes JSON rejecting unknown fields.
func decodeStrict(data string, v any) error {
	dec := json.NewDecoder(strings.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	// Trailing garbage after the value is also a schema violation.
	if dec.More() {
		return fmt.Errorf("trailing data after payload")
	}
	return nil
}
