// Package webhook provides the outbound HTTP delivery adapter for
// signed subscriber notifications.
package webhook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/core/domain"
	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/core/ports/driven"
	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/logger"
)

// Ensure Sender implements the interface.
var _ driven.WebhookSender = (*Sender)(nil)

// Default configuration values.
const (
	// DefaultTimeout bounds one delivery attempt.
	DefaultTimeout = 5 * time.Second

	// DefaultRate is the proactive outbound throttle (deliveries/sec)
	// shared across all subscribers, protecting slow receivers from
	// event bursts.
	DefaultRate = 10
)

// Config holds configuration for the webhook sender.
type Config struct {
	// Timeout bounds one delivery attempt (default: 5s).
	Timeout time.Duration

	// Rate is the outbound deliveries-per-second throttle (default: 10).
	Rate float64
}

// Sender delivers signed envelopes over HTTP POST.
type Sender struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewSender creates a new webhook sender.
func NewSender(cfg Config) *Sender {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Rate == 0 {
		cfg.Rate = DefaultRate
	}

	return &Sender{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.Rate), 1),
	}
}

// Deliver signs the envelope with the subscriber's secret and POSTs
// it to the subscriber's target URL. The request body is the exact
// canonical form the signature was computed over, so receivers verify
// against the raw bytes they read.
func (s *Sender) Deliver(ctx context.Context, sub domain.Subscriber, env domain.Envelope) error {
	body, err := domain.CanonicalJSON(env)
	if err != nil {
		return fmt.Errorf("canonicalise envelope: %w", err)
	}
	signature := domain.SignBytes(sub.Secret, body)

	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("throttle wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sub.TargetURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(domain.SignatureHeader, signature)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", sub.TargetURL, err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	io.Copy(io.Discard, resp.Body) //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("post %s: status %d", sub.TargetURL, resp.StatusCode)
	}

	logger.Debug("Webhook delivered to %s: status %d", sub.TargetURL, resp.StatusCode)
	return nil
}
