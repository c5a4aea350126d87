package driven

import (
	"context"

	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/core/domain"
)

// SubscriberStore is the webhook subscriber registry.
//
// The dispatcher only ever calls ActiveSubscribers; it never creates,
// mutates, or deactivates a registration. Save and List exist for the
// registry admin commands.
type SubscriberStore interface {
	// ActiveSubscribers returns the active subscribers registered for
	// the given event type.
	ActiveSubscribers(ctx context.Context, eventType string) ([]domain.Subscriber, error)

	// Save persists a subscriber registration.
	Save(ctx context.Context, sub domain.Subscriber) error

	// List returns all subscriber registrations.
	List(ctx context.Context) ([]domain.Subscriber, error)
}
