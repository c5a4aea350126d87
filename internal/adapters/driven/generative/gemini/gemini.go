// Package gemini provides a generative service adapter for the Google
// generative language API (generateContent).
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/core/domain"
	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/core/ports/driven"
)

// Ensure Service implements the interface.
var _ driven.GenerativeService = (*Service)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-3-flash-preview"
	DefaultTimeout = 45 * time.Second
)

// Config holds configuration for the Gemini service.
type Config struct {
	// APIKey is the generative language API key (required).
	APIKey string

	// BaseURL is the API base URL (default: the public endpoint).
	BaseURL string

	// Model is the generative model to use (default: gemini-3-flash-preview).
	Model string

	// Timeout is the request timeout (default: 45s).
	Timeout time.Duration
}

// Service phrases answers through the generateContent endpoint.
type Service struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// generateRequest is the generateContent request format.
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// generateResponse is the generateContent response format. Only the
// candidate text path is parsed; no structured schema is enforced on
// this endpoint.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text *string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// NewService creates a new Gemini generative service.
func NewService(cfg Config) (*Service, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Service{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}, nil
}

// Answer sends one text prompt and returns the single candidate text.
//
// Failure classes map onto domain sentinels so the query engine can
// degrade per class: timeouts to ErrGenerativeTimeout, an empty
// candidate list to ErrNoAnswer, a changed content shape to
// ErrMalformedResponse.
func (s *Service) Answer(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		s.baseURL, s.model, url.QueryEscape(s.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", fmt.Errorf("gemini: %v: %w", err, domain.ErrGenerativeTimeout)
		}
		return "", fmt.Errorf("gemini: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return "", fmt.Errorf("gemini error (status %d): failed to read response", resp.StatusCode)
		}
		return "", fmt.Errorf("gemini error (status %d): %s", resp.StatusCode, string(body))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("gemini: decode response: %w", err)
	}

	if len(genResp.Candidates) == 0 {
		return "", fmt.Errorf("gemini: %w", domain.ErrNoAnswer)
	}

	parts := genResp.Candidates[0].Content.Parts
	if len(parts) == 0 || parts[0].Text == nil {
		return "", fmt.Errorf("gemini: candidate without text part: %w", domain.ErrMalformedResponse)
	}

	return *parts[0].Text, nil
}

// ModelName returns the name of the generative model being used.
func (s *Service) ModelName() string {
	return s.model
}

// Close releases resources.
func (s *Service) Close() error {
	return nil
}

// isTimeout reports whether the transport error was a timeout, either
// from the client deadline or the context.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
