package driven

import (
	"context"

	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/core/domain"
)

// WebhookSender delivers one signed envelope to one subscriber.
//
// Delivery is best-effort with a short bounded timeout. A non-2xx
// response or network error is returned as an error; the dispatcher
// logs it and moves on to the next subscriber.
type WebhookSender interface {
	// Deliver signs the envelope with the subscriber's secret and
	// POSTs it to the subscriber's target URL.
	Deliver(ctx context.Context, sub domain.Subscriber, env domain.Envelope) error
}
