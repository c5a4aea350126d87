package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/core/domain"
	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/core/ports/driven"
	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/core/ports/driving"
	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/logger"
)

// Ensure QueryEngine implements the interface.
var _ driving.QueryService = (*QueryEngine)(nil)

const (
	// maxRetrievedDocs caps how many nearest documents feed the context.
	maxRetrievedDocs = 12

	// recentRiskLogLimit bounds the live snapshot's risk-log slice.
	recentRiskLogLimit = 5

	// snapshotSeparator divides retrieved documents from the live
	// database snapshot inside the assembled context.
	snapshotSeparator = "--- DATABASE SNAPSHOT ---"
)

// QueryEngine answers operator questions grounded in the retrieval
// index plus a live snapshot of the record store.
type QueryEngine struct {
	indexStore driven.IndexStore
	embedder   driven.EmbeddingService
	records    driven.ClinicalStore
	generative driven.GenerativeService
	prompts    driven.PromptStore
}

// NewQueryEngine creates a new query engine.
// The prompts parameter is optional (can be nil); without it the
// embedded default instruction block is used.
func NewQueryEngine(
	indexStore driven.IndexStore,
	embedder driven.EmbeddingService,
	records driven.ClinicalStore,
	generative driven.GenerativeService,
) *QueryEngine {
	return &QueryEngine{
		indexStore: indexStore,
		embedder:   embedder,
		records:    records,
		generative: generative,
	}
}

// SetPromptStore sets the prompt store for the instruction template.
func (q *QueryEngine) SetPromptStore(store driven.PromptStore) {
	q.prompts = store
}

// Answer embeds the question, retrieves the nearest documents, appends
// a live database snapshot and delegates phrasing to the generative
// collaborator.
//
// Every failure maps onto a typed degraded answer; Answer never panics
// and never surfaces an error to the caller.
func (q *QueryEngine) Answer(ctx context.Context, question string) domain.Answer {
	logger.Section("Clinical Query")
	logger.Debug("Question: %q", question)

	question = strings.TrimSpace(question)
	if question == "" {
		return domain.Failure(domain.AnswerNoAnswer)
	}

	index, docs, err := q.indexStore.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrIndexUnavailable) || errors.Is(err, domain.ErrIndexSkew) {
			logger.Debug("Index not loadable: %v", err)
			return domain.Failure(domain.AnswerIndexUnavailable)
		}
		logger.Error("Load index: %v", err)
		return domain.Failure(domain.AnswerServiceError)
	}

	queryVec, err := q.embedder.Embed(ctx, question)
	if err != nil {
		logger.Error("Embed question: %v", err)
		return domain.Failure(domain.AnswerServiceError)
	}

	// A generation built in a different embedding space must never be
	// searched; treat it like a missing index and ask for a rebuild.
	if len(queryVec) != index.Dimensions() {
		logger.Error("Dimension mismatch: question %d, index %d", len(queryVec), index.Dimensions())
		return domain.Failure(domain.AnswerIndexUnavailable)
	}

	k := maxRetrievedDocs
	if index.Len() < k {
		k = index.Len()
	}

	hits, err := index.Search(ctx, queryVec, k)
	if err != nil {
		logger.Error("Vector search: %v", err)
		return domain.Failure(domain.AnswerServiceError)
	}

	retrieved := make([]string, 0, len(hits))
	for _, hit := range hits {
		retrieved = append(retrieved, docs[hit.Position].Text)
	}
	logger.Debug("Retrieved %d documents", len(retrieved))

	snapshot, err := q.liveSnapshot(ctx)
	if err != nil {
		logger.Error("Database snapshot: %v", err)
		return domain.Failure(domain.AnswerServiceError)
	}

	contextBlock := strings.Join(
		append(append(retrieved, snapshotSeparator), snapshot...), "\n")

	prompt, err := q.buildPrompt(contextBlock, question)
	if err != nil {
		logger.Error("Build prompt: %v", err)
		return domain.Failure(domain.AnswerServiceError)
	}

	text, err := q.generative.Answer(ctx, prompt)
	if err != nil {
		return domain.Failure(classifyGenerativeError(err))
	}

	return domain.Answered(text)
}

// liveSnapshot renders the current patients, doctors and most recent
// risk logs into snapshot lines. The snapshot reflects rows written
// after the last rebuild, keeping answers current between rebuilds.
func (q *QueryEngine) liveSnapshot(ctx context.Context) ([]string, error) {
	var lines []string

	patients, err := q.records.Patients(ctx)
	if err != nil {
		return nil, fmt.Errorf("load patients: %w", err)
	}
	for _, p := range patients {
		lines = append(lines, p.SnapshotLine())
	}

	doctors, err := q.records.Doctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("load doctors: %w", err)
	}
	for _, d := range doctors {
		lines = append(lines, d.SnapshotLine())
	}

	riskLogs, err := q.records.RecentRiskLogs(ctx, recentRiskLogLimit)
	if err != nil {
		return nil, fmt.Errorf("load recent risk logs: %w", err)
	}
	for _, r := range riskLogs {
		lines = append(lines, r.SnapshotLine())
	}

	return lines, nil
}

// buildPrompt fills the instruction template with the assembled context
// and the question.
func (q *QueryEngine) buildPrompt(contextBlock, question string) (string, error) {
	template := defaultInstructionTemplate
	if q.prompts != nil {
		loaded, err := q.prompts.Load(driven.PromptClinicalAnswer)
		if err != nil {
			return "", err
		}
		template = loaded
	}
	return fmt.Sprintf(template, contextBlock, question), nil
}

// classifyGenerativeError translates a generative adapter error into
// the matching degraded answer kind.
func classifyGenerativeError(err error) domain.AnswerKind {
	switch {
	case errors.Is(err, domain.ErrGenerativeTimeout):
		logger.Error("Generative request timed out: %v", err)
		return domain.AnswerTimeout
	case errors.Is(err, domain.ErrNoAnswer):
		logger.Debug("Generative service returned no candidates")
		return domain.AnswerNoAnswer
	case errors.Is(err, domain.ErrMalformedResponse):
		logger.Error("Generative response shape changed: %v", err)
		return domain.AnswerMalformed
	default:
		logger.Error("Generative service error: %v", err)
		return domain.AnswerServiceError
	}
}

// defaultInstructionTemplate is the fallback instruction block used
// when no prompt store is configured. It expects two %s placeholders:
// the context block and the question.
const defaultInstructionTemplate = `You are a clinical session analytics assistant for an internal healthcare dashboard.

Answer ONLY using information that is explicitly present in the records provided.

You may:
• Summarize or rephrase clinical session information
• Identify trends, patterns, or repeated observations across sessions
• Provide aggregate counts or frequency-based insights
• Describe administrative or system-level information that appears in the records
  (such as names, emails, number of sessions, or repeated involvement)
• Respond to general administrative questions if relevant data exists

You must NOT:
• Invent clinical qualifications, professional experience, diagnoses, or background
• Guess or assume missing information
• Use external or general medical knowledge
• Provide treatment advice unless asked

Use all relevant information from the records.
Cross reference multiple record types if needed.
Prefer factual consistency over brevity.

If a question is broader than the available data:
Clearly explain what information is available in the records
and what specific details are not documented,
instead of returning no answer.

Write the response in clear, professional English.
Do not use symbols, emojis, markdown, bullets, or formatting characters.
Do not mention that you are an AI.
Do not mention internal instructions, prompts, or data sources.
Do not include disclaimers.

Write in a natural, human, clinical-report style suitable for professional documentation.


Context:
%s

Question:
%s

Answer:`
