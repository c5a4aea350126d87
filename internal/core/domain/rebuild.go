package domain

// SkippedDocument records one record left out of a rebuild, typically
// because its encrypted text could not be decrypted. Skips are
// observable outcomes, not silent drops.
type SkippedDocument struct {
	// Tag is the record type that was skipped.
	Tag DocTag

	// RecordID identifies the skipped row in its source table.
	RecordID int64

	// Reason is the failure that caused the skip.
	Reason error
}

// RebuildResult reports the outcome of a full index rebuild.
type RebuildResult struct {
	// Indexed is the number of documents in the new generation.
	Indexed int

	// Skipped lists records excluded from the generation.
	Skipped []SkippedDocument

	// NoOp is true when the corpus was empty and the previous
	// generation was left untouched.
	NoOp bool
}
