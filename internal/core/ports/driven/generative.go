package driven

import "context"

// GenerativeService phrases the final natural-language answer from an
// assembled prompt. This collaborator is never trusted: adapters map
// failures onto the domain sentinels so the query engine can translate
// them into distinct degraded answers.
//
// Error contract:
//   - domain.ErrNoAnswer: the service returned an empty candidate list
//   - domain.ErrMalformedResponse: the response shape changed
//   - domain.ErrGenerativeTimeout: the request timed out
//   - anything else: generic service failure
type GenerativeService interface {
	// Answer sends one text prompt and returns the single generated
	// candidate text.
	Answer(ctx context.Context, prompt string) (string, error)

	// ModelName returns the name of the generative model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}
