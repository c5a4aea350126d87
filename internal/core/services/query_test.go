package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/core/domain"
	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/core/ports/driven"
)

// queryFixture wires a QueryEngine with healthy defaults that
// individual tests override.
type queryFixture struct {
	store      *mockIndexStore
	embedder   *mockEmbeddingService
	records    *mockClinicalStore
	generative *mockGenerativeService
	index      *mockVectorIndex
}

func newQueryFixture() *queryFixture {
	index := &mockVectorIndex{
		hits:   []driven.VectorHit{{Position: 0, Distance: 0.1}, {Position: 1, Distance: 0.4}},
		length: 2,
		dims:   3,
	}
	return &queryFixture{
		index: index,
		store: &mockIndexStore{
			index: index,
			docs: []domain.Document{
				{Tag: domain.TagClinicalSession, Text: "CLINICAL_SESSION: sleep improving"},
				{Tag: domain.TagPatient, Text: "PATIENT: Asha Rao | asha@example.com"},
			},
		},
		embedder: &mockEmbeddingService{embedding: []float32{0.1, 0.2, 0.3}},
		records: &mockClinicalStore{
			patients: []domain.Patient{{Name: "Asha Rao", Email: "asha@example.com"}},
			doctors:  []domain.Doctor{{Name: "Dr. Mehta", Email: "mehta@example.com"}},
			riskLogs: []domain.RiskLog{{Anxiety: 4, Burnout: 2, Depression: 3, SelfHarm: 0}},
		},
		generative: &mockGenerativeService{text: "The records show improving sleep."},
	}
}

func (f *queryFixture) engine() *QueryEngine {
	return NewQueryEngine(f.store, f.embedder, f.records, f.generative)
}

func TestQueryEngine_Answer(t *testing.T) {
	f := newQueryFixture()

	answer := f.engine().Answer(context.Background(), "How is the patient sleeping?")

	require.True(t, answer.OK())
	assert.Equal(t, "The records show improving sleep.", answer.Render())
}

func TestQueryEngine_Answer_PromptAssembly(t *testing.T) {
	f := newQueryFixture()

	f.engine().Answer(context.Background(), "How is the patient sleeping?")

	require.Equal(t, 1, f.generative.calls)
	prompt := f.generative.lastPrompt

	// Retrieved documents come first, then the snapshot block
	assert.Contains(t, prompt, "CLINICAL_SESSION: sleep improving")
	assert.Contains(t, prompt, snapshotSeparator)
	assert.Contains(t, prompt, "Patient: Asha Rao Email: asha@example.com")
	assert.Contains(t, prompt, "Doctor: Dr. Mehta Email: mehta@example.com")
	assert.Contains(t, prompt, "Risk Log: Anxiety 4 Burnout 2 Depression 3 Self Harm 0")
	assert.Contains(t, prompt, "Question:\nHow is the patient sleeping?")
	assert.Less(t,
		strings.Index(prompt, "CLINICAL_SESSION: sleep improving"),
		strings.Index(prompt, snapshotSeparator))
}

func TestQueryEngine_Answer_ClampsK(t *testing.T) {
	f := newQueryFixture()

	f.engine().Answer(context.Background(), "anything")

	// Index holds 2 documents, so only 2 neighbours are requested
	assert.Equal(t, 2, f.index.searchedK)
}

func TestQueryEngine_Answer_LargeIndexUsesCap(t *testing.T) {
	f := newQueryFixture()
	f.index.length = 500
	docs := make([]domain.Document, 500)
	for i := range docs {
		docs[i] = domain.Document{Tag: domain.TagPatient, Text: fmt.Sprintf("PATIENT: p%d | p%d@example.com", i, i)}
	}
	f.store.docs = docs

	f.engine().Answer(context.Background(), "anything")

	assert.Equal(t, maxRetrievedDocs, f.index.searchedK)
}

func TestQueryEngine_Answer_IndexUnavailable(t *testing.T) {
	f := newQueryFixture()
	f.store.loadErr = fmt.Errorf("open rag_index.bin: %w", domain.ErrIndexUnavailable)

	answer := f.engine().Answer(context.Background(), "anything")

	assert.False(t, answer.OK())
	assert.Equal(t, domain.AnswerIndexUnavailable, answer.Kind)
	assert.Zero(t, f.generative.calls)
}

func TestQueryEngine_Answer_IndexSkew(t *testing.T) {
	f := newQueryFixture()
	f.store.loadErr = fmt.Errorf("3 vectors, 5 documents: %w", domain.ErrIndexSkew)

	answer := f.engine().Answer(context.Background(), "anything")

	assert.Equal(t, domain.AnswerIndexUnavailable, answer.Kind)
}

func TestQueryEngine_Answer_DimensionMismatch(t *testing.T) {
	f := newQueryFixture()
	f.embedder.embedding = []float32{0.1, 0.2} // index was built with 3

	answer := f.engine().Answer(context.Background(), "anything")

	assert.Equal(t, domain.AnswerIndexUnavailable, answer.Kind)
	assert.Zero(t, f.generative.calls)
}

func TestQueryEngine_Answer_EmbedFailure(t *testing.T) {
	f := newQueryFixture()
	f.embedder.embedErr = errors.New("connection refused")

	answer := f.engine().Answer(context.Background(), "anything")

	assert.Equal(t, domain.AnswerServiceError, answer.Kind)
}

func TestQueryEngine_Answer_SnapshotFailure(t *testing.T) {
	f := newQueryFixture()
	f.records.patientsErr = errors.New("db locked")

	answer := f.engine().Answer(context.Background(), "anything")

	assert.Equal(t, domain.AnswerServiceError, answer.Kind)
}

func TestQueryEngine_Answer_GenerativeErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want domain.AnswerKind
	}{
		{"timeout", domain.ErrGenerativeTimeout, domain.AnswerTimeout},
		{"wrapped timeout", fmt.Errorf("call: %w", domain.ErrGenerativeTimeout), domain.AnswerTimeout},
		{"no answer", domain.ErrNoAnswer, domain.AnswerNoAnswer},
		{"malformed", domain.ErrMalformedResponse, domain.AnswerMalformed},
		{"anything else", errors.New("500 internal"), domain.AnswerServiceError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newQueryFixture()
			f.generative.err = tt.err

			answer := f.engine().Answer(context.Background(), "anything")

			assert.Equal(t, tt.want, answer.Kind)
			assert.False(t, answer.OK())
		})
	}
}

func TestQueryEngine_Answer_EmptyQuestion(t *testing.T) {
	f := newQueryFixture()

	answer := f.engine().Answer(context.Background(), "   ")

	assert.Equal(t, domain.AnswerNoAnswer, answer.Kind)
	assert.Zero(t, f.generative.calls)
}
