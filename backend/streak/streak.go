// Package streak tracks daily-completion continuity and the threshold
// achievements that hang off it. Pure computation; persistence belongs
// to the caller.
package streak

import (
	"fmt"
	"time"
)

const dayKey = "2006-01-02"

// Achievement is a streak-threshold unlock definition.
type Achievement struct {
	ID             string
	Title          string
	RequiredStreak int
}

// Achievements lists every definition, ascending by threshold.
var Achievements = []Achievement{
	{ID: "first-step", Title: "First Step", RequiredStreak: 1},
	{ID: "on-fire", Title: "On Fire", RequiredStreak: 3},
	{ID: "week-warrior", Title: "Week Warrior", RequiredStreak: 7},
	{ID: "relentless", Title: "Relentless", RequiredStreak: 14},
	{ID: "monarch-in-training", Title: "Monarch in Training", RequiredStreak: 30},
	{ID: "centurion", Title: "Centurion", RequiredStreak: 100},
}

// Unlock records when an achievement was earned.
type Unlock struct {
	AchievementID string
	UnlockedAt    time.Time
}

// Data is the full streak state for one user.
type Data struct {
	CurrentStreak      int
	LongestStreak      int
	LastCompletionDate string // "2006-01-02", empty before first completion
	TotalCompletions   int
	WeeklyProgress     [7]bool // Sunday first
	Unlocked           map[string]time.Time
}

// NewData returns the zero streak state.
func NewData() Data {
	return Data{Unlocked: map[string]time.Time{}}
}

// RecordCompletion registers that the user finished at least one goal on
// the given day. Continuation from yesterday increments the streak, a
// same-day repeat is a no-op, anything else starts over at 1. Returns
// the updated state plus only the achievements newly unlocked by this
// call, so the caller can announce each exactly once.
func RecordCompletion(d Data, today time.Time) (Data, []Unlock, error) {
	if today.IsZero() {
		return Data{}, nil, fmt.Errorf("streak: zero completion time")
	}

	todayKey := today.Format(dayKey)
	if d.LastCompletionDate == todayKey {
		return d, nil, nil
	}

	next := d
	next.Unlocked = make(map[string]time.Time, len(d.Unlocked))
	for id, at := range d.Unlocked {
		next.Unlocked[id] = at
	}

	yesterdayKey := today.AddDate(0, 0, -1).Format(dayKey)
	if d.LastCompletionDate == yesterdayKey {
		next.CurrentStreak = d.CurrentStreak + 1
	} else {
		next.CurrentStreak = 1
	}
	if next.CurrentStreak > next.LongestStreak {
		next.LongestStreak = next.CurrentStreak
	}
	next.LastCompletionDate = todayKey
	next.TotalCompletions = d.TotalCompletions + 1
	next.WeeklyProgress[int(today.Weekday())] = true

	var fresh []Unlock
	for _, a := range Achievements {
		if a.RequiredStreak > next.CurrentStreak {
			break
		}
		if _, ok := next.Unlocked[a.ID]; ok {
			continue
		}
		u := Unlock{AchievementID: a.ID, UnlockedAt: today}
		next.Unlocked[a.ID] = u.UnlockedAt
		fresh = append(fresh, u)
	}

	return next, fresh, nil
}

// ByID looks up an achievement definition.
func ByID(id string) (Achievement, bool) {
	for _, a := range Achievements {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}
