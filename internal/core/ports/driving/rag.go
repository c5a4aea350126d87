package driving

import (
	"context"

	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/core/domain"
)

// IndexService rebuilds the retrieval index from the current clinical
// records. Rebuilds are full: the previous generation is replaced
// wholesale, or kept untouched when nothing is indexable.
type IndexService interface {
	// Rebuild flattens the record store into tagged documents, embeds
	// them in one batch and atomically publishes a new generation.
	// An empty corpus is a deliberate no-op reported in the result.
	Rebuild(ctx context.Context) (domain.RebuildResult, error)
}

// QueryService answers free-text operator questions grounded in the
// retrieval index plus a live record snapshot.
type QueryService interface {
	// Answer embeds the question, retrieves the nearest documents,
	// assembles a bounded context and delegates phrasing to the
	// generative collaborator. Failures come back as typed degraded
	// answers, never as errors that crash the caller.
	Answer(ctx context.Context, question string) domain.Answer
}
