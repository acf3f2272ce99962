package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGoalCreateCeiling(t *testing.T) {
	l := New()

	for i := 0; i < 10; i++ {
		assert.True(t, l.Allow(1, ActionGoalCreate), "call %d should pass", i+1)
	}
	assert.False(t, l.Allow(1, ActionGoalCreate), "11th call must be rejected")
}

func TestWindowRollover(t *testing.T) {
	now := time.Now()
	l := NewWithClock(func() time.Time { return now })

	for i := 0; i < 5; i++ {
		assert.True(t, l.Allow(1, ActionNoteCreate))
	}
	assert.False(t, l.Allow(1, ActionNoteCreate))

	now = now.Add(time.Minute)
	assert.True(t, l.Allow(1, ActionNoteCreate), "new window, fresh budget")
}

func TestUsersIsolated(t *testing.T) {
	l := New()

	for i := 0; i < 5; i++ {
		assert.True(t, l.Allow(1, ActionNoteCreate))
	}
	assert.False(t, l.Allow(1, ActionNoteCreate))
	assert.True(t, l.Allow(2, ActionNoteCreate), "user 2 unaffected by user 1's burst")
}

func TestActionsIsolated(t *testing.T) {
	l := New()

	for i := 0; i < 10; i++ {
		assert.True(t, l.Allow(1, ActionGoalCreate))
	}
	assert.False(t, l.Allow(1, ActionGoalCreate))
	assert.True(t, l.Allow(1, ActionGoalUpdate))
}

func TestUnknownActionUnlimited(t *testing.T) {
	l := New()
	for i := 0; i < 100; i++ {
		assert.True(t, l.Allow(1, Action("unknown")))
	}
}
