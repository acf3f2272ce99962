// Package progression maps accumulated experience to level and rank.
// All functions are pure: no clock, no store, no globals.
package progression

import "fmt"

// XPPerLevel is the single canonical level size. Completing a goal worth
// 25 XP at totalXP=980 lands the hunter at level 2 with 5 XP into it.
const XPPerLevel = 1000

type Rank string

const (
	RankE             Rank = "E-Rank"
	RankD             Rank = "D-Rank"
	RankC             Rank = "C-Rank"
	RankB             Rank = "B-Rank"
	RankA             Rank = "A-Rank"
	RankS             Rank = "S-Rank"
	RankShadowMonarch Rank = "Shadow Monarch"
)

// Index gives the position of the rank in the ladder, lowest first.
// Unknown ranks map to -1.
func (r Rank) Index() int {
	for i, known := range ladder {
		if known == r {
			return i
		}
	}
	return -1
}

var ladder = []Rank{RankE, RankD, RankC, RankB, RankA, RankS, RankShadowMonarch}

// Profile is the progression slice of a user: everything applyXP needs
// and nothing it doesn't.
type Profile struct {
	Level     int
	CurrentXP int
	TotalXP   int
	Rank      Rank
}

// NewProfile returns the state every hunter starts with.
func NewProfile() Profile {
	return Profile{Level: 1, CurrentXP: 0, TotalXP: 0, Rank: RankE}
}

// ApplyXP folds a non-negative XP delta into the profile. Level and rank
// are recomputed from total XP, never stored independently.
func ApplyXP(p Profile, delta int) (Profile, error) {
	if delta < 0 {
		return Profile{}, fmt.Errorf("progression: negative xp delta %d", delta)
	}
	if p.TotalXP < 0 {
		return Profile{}, fmt.Errorf("progression: malformed profile, totalXP %d", p.TotalXP)
	}

	total := p.TotalXP + delta
	return Profile{
		Level:     total/XPPerLevel + 1,
		CurrentXP: total % XPPerLevel,
		TotalXP:   total,
		Rank:      RankOf(total/XPPerLevel + 1),
	}, nil
}

// RankOf is a total step function over levels; it never descends as the
// level grows.
func RankOf(level int) Rank {
	switch {
	case level >= 50:
		return RankShadowMonarch
	case level >= 40:
		return RankS
	case level >= 30:
		return RankA
	case level >= 20:
		return RankB
	case level >= 10:
		return RankC
	case level >= 5:
		return RankD
	default:
		return RankE
	}
}
