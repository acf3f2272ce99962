// Package ratelimit rejects rapid repeated writes with a fixed
// per-minute window per user and action.
package ratelimit

import (
	"sync"
	"time"
)

type Action string

const (
	ActionGoalCreate Action = "goal_create"
	ActionGoalUpdate Action = "goal_update"
	ActionNoteCreate Action = "note_create"
)

// Limits are the documented per-minute ceilings. Unknown actions are
// unlimited.
var Limits = map[Action]int{
	ActionGoalCreate: 10,
	ActionGoalUpdate: 20,
	ActionNoteCreate: 5,
}

const window = time.Minute

type bucket struct {
	windowStart time.Time
	count       int
}

type key struct {
	userID uint
	action Action
}

// Limiter counts calls in fixed windows. The clock is injectable for
// tests.
type Limiter struct {
	mu      sync.Mutex
	buckets map[key]*bucket
	now     func() time.Time
}

func New() *Limiter {
	return &Limiter{buckets: make(map[key]*bucket), now: time.Now}
}

func NewWithClock(now func() time.Time) *Limiter {
	l := New()
	l.now = now
	return l
}

// Allow records one attempt and reports whether it fits in the current
// window.
func (l *Limiter) Allow(userID uint, action Action) bool {
	limit, ok := Limits[action]
	if !ok {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	k := key{userID: userID, action: action}
	b := l.buckets[k]
	if b == nil || now.Sub(b.windowStart) >= window {
		b = &bucket{windowStart: now}
		l.buckets[k] = b
	}

	if b.count >= limit {
		return false
	}
	b.count++
	return true
}
