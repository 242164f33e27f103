package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestAttempt_Advance(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	a := &TestAttempt{TotalQuestions: 3, Status: AttemptStatusStarted}

	assert.False(t, a.Advance(1, now))
	assert.Equal(t, AttemptStatusInProgress, a.Status)
	assert.Equal(t, 1, a.AnsweredCount)

	assert.False(t, a.Advance(1, now), "re-answering keeps the count")
	assert.Equal(t, 1, a.AnsweredCount)

	assert.False(t, a.Advance(2, now))
	assert.True(t, a.Advance(3, now))
	assert.Equal(t, AttemptStatusCompleted, a.Status)
	require.NotNil(t, a.CompletedAt)
	assert.Equal(t, now, *a.CompletedAt)
	assert.Equal(t, a.TotalQuestions, a.AnsweredCount)

	later := now.Add(time.Hour)
	assert.False(t, a.Advance(3, later), "completed attempts are immutable")
	assert.Equal(t, now, *a.CompletedAt)
}

func TestTestAttempt_Includes(t *testing.T) {
	a := &TestAttempt{QuestionIDs: []uint{4, 7, 9}}
	assert.True(t, a.Includes(7))
	assert.False(t, a.Includes(8))
	assert.False(t, (&TestAttempt{}).Includes(1))
}
