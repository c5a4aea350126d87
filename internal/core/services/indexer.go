package services

import (
	"context"
	"fmt"

	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/core/domain"
	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/core/ports/driven"
	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/core/ports/driving"
	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/logger"
)

// Ensure IndexerService implements the interface.
var _ driving.IndexService = (*IndexerService)(nil)

// IndexerService performs full rebuilds of the retrieval index from the
// clinical record store.
type IndexerService struct {
	records    driven.ClinicalStore
	cipher     driven.TextCipher
	embedder   driven.EmbeddingService
	indexStore driven.IndexStore
}

// NewIndexerService creates a new indexer service.
func NewIndexerService(
	records driven.ClinicalStore,
	cipher driven.TextCipher,
	embedder driven.EmbeddingService,
	indexStore driven.IndexStore,
) *IndexerService {
	return &IndexerService{
		records:    records,
		cipher:     cipher,
		embedder:   embedder,
		indexStore: indexStore,
	}
}

// Rebuild flattens the record store into tagged documents, embeds them
// in one batch and atomically publishes a new index generation.
//
// A session whose summary cannot be decrypted is skipped and reported
// in the result; the rebuild itself never aborts over one bad row. An
// empty corpus is a no-op: the previous generation stays untouched.
func (s *IndexerService) Rebuild(ctx context.Context) (domain.RebuildResult, error) {
	logger.Section("Index Rebuild")

	docs, skipped, err := s.collectDocuments(ctx)
	if err != nil {
		return domain.RebuildResult{}, err
	}

	if len(docs) == 0 {
		logger.Info("No indexable records found, keeping previous index generation")
		return domain.RebuildResult{Skipped: skipped, NoOp: true}, nil
	}

	logger.Info("Embedding %d documents with %s", len(docs), s.embedder.ModelName())
	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Text
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return domain.RebuildResult{}, fmt.Errorf("embed corpus: %w", err)
	}
	if len(vectors) != len(docs) {
		return domain.RebuildResult{}, fmt.Errorf(
			"embedding count mismatch: %d vectors for %d documents", len(vectors), len(docs))
	}

	if err := s.indexStore.Save(ctx, vectors, docs); err != nil {
		return domain.RebuildResult{}, fmt.Errorf("publish index generation: %w", err)
	}

	logger.Info("Published index generation: %d documents, %d skipped", len(docs), len(skipped))
	return domain.RebuildResult{Indexed: len(docs), Skipped: skipped}, nil
}

// collectDocuments renders every indexable record into its tagged
// document form, in stable table order: sessions, patients, doctors,
// risk logs.
func (s *IndexerService) collectDocuments(
	ctx context.Context,
) ([]domain.Document, []domain.SkippedDocument, error) {
	var docs []domain.Document
	var skipped []domain.SkippedDocument

	sessions, err := s.records.Sessions(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load sessions: %w", err)
	}
	for _, sess := range sessions {
		summary, err := s.cipher.Decrypt(sess.Summary)
		if err != nil {
			logger.Debug("Skipping session %d: %v", sess.ID, err)
			skipped = append(skipped, domain.SkippedDocument{
				Tag:      domain.TagClinicalSession,
				RecordID: sess.ID,
				Reason:   err,
			})
			continue
		}
		docs = append(docs, domain.SessionDocument(summary))
	}

	patients, err := s.records.Patients(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load patients: %w", err)
	}
	for _, p := range patients {
		docs = append(docs, domain.PatientDocument(p))
	}

	doctors, err := s.records.Doctors(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load doctors: %w", err)
	}
	for _, d := range doctors {
		docs = append(docs, domain.DoctorDocument(d))
	}

	riskLogs, err := s.records.RiskLogs(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load risk logs: %w", err)
	}
	for _, r := range riskLogs {
		docs = append(docs, domain.RiskLogDocument(r))
	}

	return docs, skipped, nil
}
