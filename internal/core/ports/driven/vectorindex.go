package driven

import (
	"context"

	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/core/domain"
)

// VectorIndex provides exact nearest-neighbour search over one
// generation of embedded documents. Positions are dense array indices
// into the document list the generation was built with.
type VectorIndex interface {
	// Search finds the k nearest vectors to the query by ascending L2
	// distance. k is clamped to Len(); searching with a query whose
	// dimension differs from Dimensions() returns
	// domain.ErrDimensionMismatch.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Len returns the number of indexed vectors.
	Len() int

	// Dimensions returns the embedding dimension fixed at build time.
	Dimensions() int
}

// VectorHit is a nearest-neighbour search result.
type VectorHit struct {
	// Position is the document's dense array index in the generation.
	Position int

	// Distance is the L2 distance to the query, ascending in results.
	Distance float64
}

// IndexStore persists and loads the paired index artifacts: the vector
// structure and the positionally aligned document list. The pair is
// always published together, never independently.
type IndexStore interface {
	// Save atomically replaces the current generation with a new one
	// built from the given vectors and documents. Both artifacts are
	// written to temporary paths and renamed into place so a
	// concurrent Load never observes a half-written generation.
	Save(ctx context.Context, vectors [][]float32, docs []domain.Document) error

	// Load reads the current generation. Returns
	// domain.ErrIndexUnavailable (wrapped) when no generation exists
	// or the artifacts are unreadable, and domain.ErrIndexSkew when
	// the pair disagrees on document count.
	Load(ctx context.Context) (VectorIndex, []domain.Document, error)
}
