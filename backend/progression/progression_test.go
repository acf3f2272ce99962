package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyXPLevelBoundary(t *testing.T) {
	// 980 + 25 crosses into level 2 with 5 XP of progress.
	p := Profile{Level: 1, CurrentXP: 980, TotalXP: 980, Rank: RankE}

	next, err := ApplyXP(p, 25)
	assert.NoError(t, err)
	assert.Equal(t, 1005, next.TotalXP)
	assert.Equal(t, 2, next.Level)
	assert.Equal(t, 5, next.CurrentXP)
	assert.Equal(t, RankE, next.Rank)
}

func TestApplyXPZeroDelta(t *testing.T) {
	p := NewProfile()

	next, err := ApplyXP(p, 0)
	assert.NoError(t, err)
	assert.Equal(t, p, next)
}

func TestApplyXPNegativeDelta(t *testing.T) {
	_, err := ApplyXP(NewProfile(), -1)
	assert.Error(t, err)
}

func TestApplyXPDeterministic(t *testing.T) {
	base := Profile{Level: 3, CurrentXP: 250, TotalXP: 2250, Rank: RankE}

	a, errA := ApplyXP(base, 40)
	b, errB := ApplyXP(base, 40)
	assert.NoError(t, errA)
	assert.NoError(t, errB)
	assert.Equal(t, a, b)
}

func TestTotalXPMonotonic(t *testing.T) {
	p := NewProfile()
	deltas := []int{0, 1, 25, 100, 999, 50}

	for _, d := range deltas {
		next, err := ApplyXP(p, d)
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, next.TotalXP, p.TotalXP)
		assert.Equal(t, next.TotalXP%XPPerLevel, next.CurrentXP)
		assert.Equal(t, next.TotalXP/XPPerLevel+1, next.Level)
		p = next
	}
}

func TestRankOfThresholds(t *testing.T) {
	cases := []struct {
		level int
		want  Rank
	}{
		{1, RankE},
		{4, RankE},
		{5, RankD},
		{9, RankD},
		{10, RankC},
		{19, RankC},
		{20, RankB},
		{29, RankB},
		{30, RankA},
		{39, RankA},
		{40, RankS},
		{49, RankS},
		{50, RankShadowMonarch},
		{120, RankShadowMonarch},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, RankOf(tc.level), "level %d", tc.level)
	}
}

func TestRankMonotonic(t *testing.T) {
	prev := RankOf(1).Index()
	for level := 2; level <= 60; level++ {
		cur := RankOf(level).Index()
		assert.GreaterOrEqual(t, cur, prev, "rank must not descend at level %d", level)
		prev = cur
	}
}

func TestRankIndexUnknown(t *testing.T) {
	assert.Equal(t, -1, Rank("F-Rank").Index())
}
