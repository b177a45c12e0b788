// Package envelopes defines the JSON envelope that wraps saved weather results.
package envelopes

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"
)

// Envelope format constants.
const (
	// Type is the discriminator written to every saved file.
	Type = "weather-data"

	// Version is the schema version tag.
	Version = "1.0"

	// ContentType is the media type of an encoded envelope.
	ContentType = "application/json"

	// FileExtension is the extension used for saved envelopes.
	FileExtension = ".json"
)

// ErrInvalidUTF8 is returned when content is not valid UTF-8 and so cannot
// be written to JSON unchanged.
var ErrInvalidUTF8 = errors.New("content is not valid UTF-8")

// timestampLayout matches the millisecond ISO-8601 form browsers produce.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Envelope wraps result text with creation metadata.
type Envelope struct {
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
	Version   string `json:"version"`
}

// New creates an envelope for content stamped with createdAt.
func New(content string, createdAt time.Time) Envelope {
	return Envelope{
		Content:   content,
		Timestamp: FormatTimestamp(createdAt),
		Type:      Type,
		Version:   Version,
	}
}

// FormatTimestamp renders t as a UTC ISO-8601 timestamp with milliseconds.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// Encode serializes the envelope as JSON indented with two spaces.
func (e Envelope) Encode() ([]byte, error) {
	if !utf8.ValidString(e.Content) {
		return nil, ErrInvalidUTF8
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(e); err != nil {
		return nil, fmt.Errorf("failed to encode envelope; %w", err)
	}
	return buf.Bytes(), nil
}

// Decode reads the envelope fields from a JSON object. Keys match exactly.
// A type or content that is not a JSON string is left empty, so the envelope
// is not Recognized. A numeric timestamp is taken as Unix milliseconds; any
// other non-string timestamp or version keeps its raw JSON text. Decode fails
// only when data is not a JSON object.
func Decode(data []byte) (Envelope, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return Envelope{}, fmt.Errorf("failed to decode envelope; %w", err)
	}
	if fields == nil {
		return Envelope{}, errors.New("failed to decode envelope; not a JSON object")
	}

	e := Envelope{
		Content: stringField(fields["content"]),
		Type:    stringField(fields["type"]),
		Version: looseField(fields["version"]),
	}

	raw := fields["timestamp"]
	if ms, ok := asMillis(raw); ok {
		e.Timestamp = FormatTimestamp(time.UnixMilli(ms))
	} else {
		e.Timestamp = looseField(raw)
	}

	return e, nil
}

func asString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// maxMillis bounds epoch timestamps to the range of a JavaScript Date.
const maxMillis = 8.64e15

// asMillis reads raw as a number of Unix milliseconds.
func asMillis(raw json.RawMessage) (int64, bool) {
	if len(raw) == 0 || (raw[0] != '-' && (raw[0] < '0' || raw[0] > '9')) {
		return 0, false
	}
	var ms float64
	if err := json.Unmarshal(raw, &ms); err != nil || ms > maxMillis || ms < -maxMillis {
		return 0, false
	}
	return int64(ms), true
}

// stringField returns raw as a string, or "" when it is not a JSON string.
func stringField(raw json.RawMessage) string {
	s, _ := asString(raw)
	return s
}

// looseField returns raw as a string, falling back to its JSON text.
func looseField(raw json.RawMessage) string {
	if s, ok := asString(raw); ok {
		return s
	}
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	return string(raw)
}

// Recognized reports whether the envelope carries the weather-data tag and
// non-empty content.
func (e Envelope) Recognized() bool {
	return e.Type == Type && e.Content != ""
}

// CurrentVersion reports whether the envelope was written with this schema version.
func (e Envelope) CurrentVersion() bool {
	return e.Version == Version
}

// CreatedAt parses the envelope timestamp.
func (e Envelope) CreatedAt() (time.Time, bool) {
	t, err := time.Parse(time.RFC3339Nano, e.Timestamp)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
