package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestFirstCompletionStartsStreak(t *testing.T) {
	next, fresh, err := RecordCompletion(NewData(), day("2025-01-05"))
	assert.NoError(t, err)
	assert.Equal(t, 1, next.CurrentStreak)
	assert.Equal(t, 1, next.LongestStreak)
	assert.Equal(t, "2025-01-05", next.LastCompletionDate)
	assert.Equal(t, 1, next.TotalCompletions)
	assert.True(t, next.WeeklyProgress[int(day("2025-01-05").Weekday())])

	// first-step unlocks on day one
	assert.Len(t, fresh, 1)
	assert.Equal(t, "first-step", fresh[0].AchievementID)
}

func TestYesterdayContinuesStreak(t *testing.T) {
	d := NewData()
	d.CurrentStreak = 4
	d.LongestStreak = 4
	d.LastCompletionDate = "2025-01-04"

	next, _, err := RecordCompletion(d, day("2025-01-05"))
	assert.NoError(t, err)
	assert.Equal(t, 5, next.CurrentStreak)
	assert.Equal(t, 5, next.LongestStreak)
}

func TestGapResetsStreak(t *testing.T) {
	d := NewData()
	d.CurrentStreak = 9
	d.LongestStreak = 9
	d.LastCompletionDate = "2025-01-05"

	next, _, err := RecordCompletion(d, day("2025-01-07"))
	assert.NoError(t, err)
	assert.Equal(t, 1, next.CurrentStreak)
	assert.Equal(t, 9, next.LongestStreak, "longest survives the reset")
}

func TestSameDayIsNoOp(t *testing.T) {
	d := NewData()
	d.CurrentStreak = 2
	d.LongestStreak = 2
	d.LastCompletionDate = "2025-01-05"
	d.TotalCompletions = 7

	next, fresh, err := RecordCompletion(d, day("2025-01-05"))
	assert.NoError(t, err)
	assert.Equal(t, d, next)
	assert.Empty(t, fresh)
}

func TestLongestStreakInvariant(t *testing.T) {
	d := NewData()
	today := day("2025-01-01")
	for i := 0; i < 12; i++ {
		var err error
		d, _, err = RecordCompletion(d, today)
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, d.LongestStreak, d.CurrentStreak)
		// skip a day every fourth step to force resets
		if i%4 == 3 {
			today = today.AddDate(0, 0, 2)
		} else {
			today = today.AddDate(0, 0, 1)
		}
	}
}

func TestWeekWarriorUnlock(t *testing.T) {
	d := NewData()
	today := day("2025-03-01")
	var all []Unlock
	for i := 0; i < 7; i++ {
		var fresh []Unlock
		var err error
		d, fresh, err = RecordCompletion(d, today)
		assert.NoError(t, err)
		all = append(all, fresh...)
		today = today.AddDate(0, 0, 1)
	}

	assert.Equal(t, 7, d.CurrentStreak)
	ids := make([]string, len(all))
	for i, u := range all {
		ids[i] = u.AchievementID
	}
	assert.Equal(t, []string{"first-step", "on-fire", "week-warrior"}, ids)
}

func TestAchievementPermanence(t *testing.T) {
	d := NewData()
	today := day("2025-03-01")
	for i := 0; i < 7; i++ {
		d, _, _ = RecordCompletion(d, today)
		today = today.AddDate(0, 0, 1)
	}
	assert.Contains(t, d.Unlocked, "week-warrior")

	// break the streak, complete again two days later
	next, fresh, err := RecordCompletion(d, today.AddDate(0, 0, 2))
	assert.NoError(t, err)
	assert.Equal(t, 1, next.CurrentStreak)
	assert.Contains(t, next.Unlocked, "week-warrior")

	// only first-step is re-eligible by threshold, and it is already owned
	assert.Empty(t, fresh)
}

func TestUnlockReportedOnce(t *testing.T) {
	d := NewData()
	d, fresh, err := RecordCompletion(d, day("2025-04-01"))
	assert.NoError(t, err)
	assert.Len(t, fresh, 1)

	_, fresh, err = RecordCompletion(d, day("2025-04-02"))
	assert.NoError(t, err)
	assert.Empty(t, fresh, "no re-announcement of an owned achievement")
}

func TestZeroTimeRejected(t *testing.T) {
	_, _, err := RecordCompletion(NewData(), time.Time{})
	assert.Error(t, err)
}

func TestInputNotMutated(t *testing.T) {
	d := NewData()
	d.CurrentStreak = 6
	d.LongestStreak = 6
	d.LastCompletionDate = "2025-01-04"
	d.Unlocked["first-step"] = day("2024-12-30")

	_, _, err := RecordCompletion(d, day("2025-01-05"))
	assert.NoError(t, err)
	assert.Equal(t, 6, d.CurrentStreak)
	assert.Len(t, d.Unlocked, 1, "caller's unlock map untouched")
}

func TestAchievementsSortedAscending(t *testing.T) {
	for i := 1; i < len(Achievements); i++ {
		assert.Greater(t, Achievements[i].RequiredStreak, Achievements[i-1].RequiredStreak)
	}
}

func TestByID(t *testing.T) {
	a, ok := ByID("week-warrior")
	assert.True(t, ok)
	assert.Equal(t, 7, a.RequiredStreak)

	_, ok = ByID("nope")
	assert.False(t, ok)
}
