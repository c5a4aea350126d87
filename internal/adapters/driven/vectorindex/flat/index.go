// Package flat provides an exact brute-force L2 vector index with
// file-based persistence of the paired index artifacts.
//
// The corpus is rebuilt per mutation at small-to-moderate volumes, so
// exact search over a dense float32 matrix beats the bookkeeping cost
// of an approximate structure.
package flat

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/core/domain"
	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index is an immutable generation of embedded documents. Vectors are
// stored row-major; the row number is the document position.
type Index struct {
	dims    int
	vectors [][]float32
}

// NewIndex builds an index over the given vectors. All vectors must
// share one dimension.
func NewIndex(vectors [][]float32) (*Index, error) {
	if len(vectors) == 0 {
		return nil, fmt.Errorf("new index: %w", domain.ErrEmptyCorpus)
	}

	dims := len(vectors[0])
	if dims == 0 {
		return nil, fmt.Errorf("new index: zero-dimension vector: %w", domain.ErrInvalidInput)
	}
	for i, v := range vectors {
		if len(v) != dims {
			return nil, fmt.Errorf("new index: vector %d has %d dims, want %d: %w",
				i, len(v), dims, domain.ErrDimensionMismatch)
		}
	}

	return &Index{dims: dims, vectors: vectors}, nil
}

// Search finds the k nearest vectors by ascending L2 distance.
// k is clamped to the number of indexed vectors.
func (ix *Index) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	if len(query) != ix.dims {
		return nil, fmt.Errorf("search: query has %d dims, index has %d: %w",
			len(query), ix.dims, domain.ErrDimensionMismatch)
	}
	if k <= 0 {
		return []driven.VectorHit{}, nil
	}
	if k > len(ix.vectors) {
		k = len(ix.vectors)
	}

	hits := make([]driven.VectorHit, len(ix.vectors))
	for i, v := range ix.vectors {
		hits[i] = driven.VectorHit{Position: i, Distance: l2(query, v)}
	}

	sort.Slice(hits, func(a, b int) bool {
		if hits[a].Distance != hits[b].Distance {
			return hits[a].Distance < hits[b].Distance
		}
		// Stable order for equal distances.
		return hits[a].Position < hits[b].Position
	})

	return hits[:k], nil
}

// Len returns the number of indexed vectors.
func (ix *Index) Len() int {
	return len(ix.vectors)
}

// Dimensions returns the embedding dimension fixed at build time.
func (ix *Index) Dimensions() int {
	return ix.dims
}

// l2 computes the Euclidean distance between two equal-length vectors.
func l2(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
