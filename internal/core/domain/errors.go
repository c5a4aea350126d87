package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIndexUnavailable indicates the persisted index artifacts are
	// missing or unreadable. Queries degrade instead of crashing.
	ErrIndexUnavailable = errors.New("index unavailable")

	// ErrEmptyCorpus indicates a rebuild found no indexable documents.
	// The rebuild is a no-op and the previous generation is kept.
	ErrEmptyCorpus = errors.New("empty corpus")

	// ErrDimensionMismatch indicates a query embedding does not match
	// the dimension the index was built with. Such an index must never
	// be searched.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrIndexSkew indicates the paired index artifacts disagree on
	// document count. They were written independently, which the
	// atomic publish discipline forbids.
	ErrIndexSkew = errors.New("index artifacts out of sync")

	// Generative collaborator errors.

	// ErrNoAnswer indicates the collaborator returned no candidates.
	ErrNoAnswer = errors.New("no answer returned")

	// ErrMalformedResponse indicates the collaborator response shape
	// does not match the expected candidate/content/parts structure.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrGenerativeTimeout indicates the collaborator call timed out.
	ErrGenerativeTimeout = errors.New("generative request timed out")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured or unreachable.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrDecryptFailed indicates an encrypted field could not be
	// decrypted. During a rebuild the affected document is skipped,
	// never the whole build aborted.
	ErrDecryptFailed = errors.New("decryption failed")
)
