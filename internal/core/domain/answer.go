package domain

// AnswerKind discriminates the outcome of a retrieval-augmented query.
// The query path cannot verify the correctness of generated prose, but
// it can always tell "no data" apart from "transient failure" apart
// from "a real answer", and callers assert on the kind.
type AnswerKind int

// Answer outcomes.
const (
	// AnswerOK carries real generated text.
	AnswerOK AnswerKind = iota

	// AnswerIndexUnavailable means the persisted index artifacts are
	// missing or unreadable; the caller surfaces a degraded answer.
	AnswerIndexUnavailable

	// AnswerNoAnswer means the generative collaborator returned an
	// empty candidate list.
	AnswerNoAnswer

	// AnswerMalformed means the collaborator's response shape changed.
	AnswerMalformed

	// AnswerTimeout means the collaborator call timed out.
	AnswerTimeout

	// AnswerServiceError is any other collaborator failure.
	AnswerServiceError
)

// Sentinel strings rendered at the boundary for each failure kind.
// These are part of the observable contract and must stay distinct.
const (
	sentinelIndexUnavailable = "⚠️ Clinical index unavailable. Please rebuild the index."
	sentinelNoAnswer         = "⚠️ AI returned no answer."
	sentinelMalformed        = "⚠️ AI response format changed. Please retry."
	sentinelTimeout          = "⚠️ AI request timed out. Please retry."
	sentinelServiceError     = "⚠️ AI service error. Please contact admin."
)

// Answer is the typed result of QueryService.Answer.
type Answer struct {
	Kind AnswerKind

	// Text is the generated answer when Kind is AnswerOK.
	Text string
}

// Answered builds a successful answer.
func Answered(text string) Answer {
	return Answer{Kind: AnswerOK, Text: text}
}

// Failure builds a failed answer of the given kind.
func Failure(kind AnswerKind) Answer {
	return Answer{Kind: kind}
}

// OK reports whether the answer carries real generated text.
func (a Answer) OK() bool {
	return a.Kind == AnswerOK
}

// Render produces the boundary string for this answer: the generated
// text for AnswerOK, the fixed sentinel for every failure kind.
func (a Answer) Render() string {
	switch a.Kind {
	case AnswerOK:
		return a.Text
	case AnswerIndexUnavailable:
		return sentinelIndexUnavailable
	case AnswerNoAnswer:
		return sentinelNoAnswer
	case AnswerMalformed:
		return sentinelMalformed
	case AnswerTimeout:
		return sentinelTimeout
	default:
		return sentinelServiceError
	}
}
