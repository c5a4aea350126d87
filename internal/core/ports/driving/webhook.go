package driving

import "context"

// EventDispatcher fans a fired domain event out to registered webhook
// subscribers. Dispatch is fire-and-forget: the caller's flow never
// fails because a delivery did.
type EventDispatcher interface {
	// Dispatch signs and delivers a notification to every active
	// subscriber of the event type, independently and best-effort.
	Dispatch(ctx context.Context, eventType string, payload map[string]any)
}
