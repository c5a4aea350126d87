package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/core/domain"
)

func TestAskCmd_Use(t *testing.T) {
	assert.Equal(t, "ask [question]", askCmd.Use)
}

func TestAskCmd_RequiresExactlyOneArg(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask"})
	defer func() { rootCmd.SetArgs(nil) }()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestAskCmd_PrintsAnswer(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.query.answer = domain.Answered("The records show three sessions this month.")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "How many sessions this month?"})
	defer func() { rootCmd.SetArgs(nil) }()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, "How many sessions this month?", ts.query.lastQuestion)
	assert.Contains(t, buf.String(), "The records show three sessions this month.")
}

func TestAskCmd_DegradedAnswerIsNotAFailure(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.query.answer = domain.Failure(domain.AnswerIndexUnavailable)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "anything"})
	defer func() { rootCmd.SetArgs(nil) }()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Clinical index unavailable. Please rebuild the index.")
}
