package ingest

import (
	"encoding/json"

	"github.com/leefowlercu/weatherfile/internal/export/envelopes"
	"github.com/leefowlercu/weatherfile/internal/presenter"
)

// Kind is the outcome of classifying imported text.
type Kind string

const (
	// KindEnvelope is a recognized weather-data envelope.
	KindEnvelope Kind = "envelope"

	// KindJSON is valid JSON that is not a recognized envelope.
	KindJSON Kind = "json"

	// KindText is content that is not valid JSON.
	KindText Kind = "text"
)

// humanLayout renders envelope timestamps in notifications.
const humanLayout = "2006-01-02 15:04:05"

// Classification is the decoded form of imported text.
type Classification struct {
	Kind Kind

	// Text is the new result text: the envelope content for KindEnvelope,
	// otherwise the raw input.
	Text string

	// Envelope is set only for KindEnvelope.
	Envelope *envelopes.Envelope
}

// Classify decodes text as an envelope, falling back to raw text. It never fails.
func Classify(text string) Classification {
	data := []byte(text)
	if !json.Valid(data) {
		return Classification{Kind: KindText, Text: text}
	}

	env, err := envelopes.Decode(data)
	if err != nil || !env.Recognized() {
		return Classification{Kind: KindJSON, Text: text}
	}

	return Classification{Kind: KindEnvelope, Text: env.Content, Envelope: &env}
}

// NotificationKind returns the severity used to announce the classification.
func (c Classification) NotificationKind() presenter.Kind {
	if c.Kind == KindText {
		return presenter.KindInfo
	}
	return presenter.KindSuccess
}

// Message returns the user-facing notification for the classification.
func (c Classification) Message() string {
	switch c.Kind {
	case KindEnvelope:
		return "File loaded (created: " + HumanTimestamp(c.Envelope.Timestamp) + ")"
	case KindJSON:
		return "File loaded"
	default:
		return "File loaded as plain text"
	}
}

// HumanTimestamp renders an ISO-8601 timestamp in local time. Timestamps that
// do not parse are returned unchanged.
func HumanTimestamp(ts string) string {
	if ts == "" {
		return "unknown"
	}
	t, ok := envelopes.Envelope{Timestamp: ts}.CreatedAt()
	if !ok {
		return ts
	}
	return t.Local().Format(humanLayout)
}
