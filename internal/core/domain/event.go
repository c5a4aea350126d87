package domain

import "time"

// Event types fired by the application core.
const (
	// EventSessionCreated fires after a clinical session is persisted.
	EventSessionCreated = "session.created"

	// EventInsightGenerated fires after the AI analysis collaborator
	// produces a result for a session summary.
	EventInsightGenerated = "ai.insight.generated"

	// EventFollowupSent fires after a follow-up email is handed to the
	// mail collaborator.
	EventFollowupSent = "followup.sent"
)

// Event is an immutable domain fact handed to the webhook dispatcher.
// It carries no identity beyond its content; the dispatcher does not
// deduplicate events.
type Event struct {
	// Type is one of the Event* constants.
	Type string

	// Payload is an arbitrary JSON-serialisable mapping describing
	// the fact.
	Payload map[string]any
}

// Envelope is the wire payload delivered to webhook subscribers.
// The signature is computed over exactly this structure in its
// canonical JSON form, so receivers can recompute it byte-for-byte.
type Envelope struct {
	Event     string         `json:"event"`
	Timestamp int64          `json:"timestamp"`
	Data      map[string]any `json:"data"`
}

// NewEnvelope wraps an event with the current unix timestamp.
func NewEnvelope(event Event, now time.Time) Envelope {
	return Envelope{
		Event:     event.Type,
		Timestamp: now.Unix(),
		Data:      event.Payload,
	}
}

// Subscriber is a registered webhook endpoint. Subscribers are owned
// and persisted by the storage collaborator; the dispatcher only ever
// reads active subscribers matching an event's type.
type Subscriber struct {
	ID        string
	EventType string
	TargetURL string
	Secret    string
	Active    bool
	CreatedAt time.Time
}
