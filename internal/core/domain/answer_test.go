package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnswer_Render(t *testing.T) {
	tests := []struct {
		name   string
		answer Answer
		want   string
	}{
		{
			name:   "real answer renders its text",
			answer: Answered("Anxiety level 7 was recorded."),
			want:   "Anxiety level 7 was recorded.",
		},
		{
			name:   "index unavailable",
			answer: Failure(AnswerIndexUnavailable),
			want:   "⚠️ Clinical index unavailable. Please rebuild the index.",
		},
		{
			name:   "no answer",
			answer: Failure(AnswerNoAnswer),
			want:   "⚠️ AI returned no answer.",
		},
		{
			name:   "malformed response",
			answer: Failure(AnswerMalformed),
			want:   "⚠️ AI response format changed. Please retry.",
		},
		{
			name:   "timeout",
			answer: Failure(AnswerTimeout),
			want:   "⚠️ AI request timed out. Please retry.",
		},
		{
			name:   "service error",
			answer: Failure(AnswerServiceError),
			want:   "⚠️ AI service error. Please contact admin.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.answer.Render())
		})
	}
}

func TestAnswer_SentinelsAreDistinct(t *testing.T) {
	kinds := []AnswerKind{
		AnswerIndexUnavailable,
		AnswerNoAnswer,
		AnswerMalformed,
		AnswerTimeout,
		AnswerServiceError,
	}

	seen := make(map[string]AnswerKind)
	for _, kind := range kinds {
		rendered := Failure(kind).Render()
		prev, dup := seen[rendered]
		assert.False(t, dup, "kinds %v and %v share sentinel %q", prev, kind, rendered)
		seen[rendered] = kind
	}
}

func TestAnswer_OK(t *testing.T) {
	assert.True(t, Answered("text").OK())
	assert.False(t, Failure(AnswerTimeout).OK())
}
