package models

import (
	"time"

	"gorm.io/gorm"
)

// StreakRecord keeps one row per user. LastCompletionDate is a
// "2006-01-02" day key (empty until the first completion), and
// WeeklyProgress is a 7-rune '0'/'1' mask, Sunday first.
type StreakRecord struct {
	gorm.Model
	UserID             uint   `gorm:"uniqueIndex" json:"-"`
	CurrentStreak      int    `gorm:"default:0" json:"currentStreak"`
	LongestStreak      int    `gorm:"default:0" json:"longestStreak"`
	LastCompletionDate string `json:"lastCompletionDate"`
	TotalCompletions   int    `gorm:"default:0" json:"totalCompletions"`
	WeeklyProgress     string `gorm:"default:'0000000'" json:"weeklyProgress"`
}

// AchievementUnlock rows are append-only; an unlock survives any later
// streak reset.
type AchievementUnlock struct {
	gorm.Model
	UserID        uint      `gorm:"index;not null" json:"-"`
	AchievementID string    `gorm:"not null" json:"achievementId"`
	UnlockedAt    time.Time `json:"unlockedAt"`
}
