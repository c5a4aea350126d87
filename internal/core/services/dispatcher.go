package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/core/domain"
	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/core/ports/driven"
	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/core/ports/driving"
	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/logger"
)

// Ensure DispatchService implements the interface.
var _ driving.EventDispatcher = (*DispatchService)(nil)

// DispatchService fans domain events out to registered webhook
// subscribers. Deliveries are sequential, independent and best-effort:
// one subscriber's failure never blocks another's delivery, and no
// failure ever propagates back into the flow that fired the event.
type DispatchService struct {
	subscribers driven.SubscriberStore
	sender      driven.WebhookSender
	now         func() time.Time
}

// NewDispatchService creates a new event dispatcher.
func NewDispatchService(
	subscribers driven.SubscriberStore,
	sender driven.WebhookSender,
) *DispatchService {
	return &DispatchService{
		subscribers: subscribers,
		sender:      sender,
		now:         time.Now,
	}
}

// SetClock overrides the timestamp source. Intended for tests.
func (s *DispatchService) SetClock(now func() time.Time) {
	s.now = now
}

// Dispatch signs and delivers a notification to every active
// subscriber of the event type. Failures are logged and swallowed.
func (s *DispatchService) Dispatch(ctx context.Context, eventType string, payload map[string]any) {
	logger.Section("Webhook Dispatch")
	logger.Debug("Event: %s", eventType)

	subs, err := s.subscribers.ActiveSubscribers(ctx, eventType)
	if err != nil {
		logger.Error("Load subscribers for %s: %v", eventType, err)
		return
	}
	if len(subs) == 0 {
		logger.Debug("No active subscribers for %s", eventType)
		return
	}

	env := domain.NewEnvelope(domain.Event{Type: eventType, Payload: payload}, s.now())

	for _, sub := range subs {
		attemptID := uuid.NewString()
		if err := s.sender.Deliver(ctx, sub, env); err != nil {
			logger.Error("Delivery %s to %s failed: %v", attemptID, sub.TargetURL, err)
			continue
		}
		logger.Debug("Delivery %s to %s succeeded", attemptID, sub.TargetURL)
	}
}
