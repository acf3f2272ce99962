package models

import (
	"time"

	"gorm.io/gorm"
)

type GoalStatus string

const (
	GoalPending    GoalStatus = "pending"
	GoalInProgress GoalStatus = "in-progress"
	GoalCompleted  GoalStatus = "completed"
	GoalFailed     GoalStatus = "failed"
)

func (s GoalStatus) Valid() bool {
	switch s {
	case GoalPending, GoalInProgress, GoalCompleted, GoalFailed:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// XP rewards outside this range are rejected at the API boundary.
const (
	MinXPReward = 1
	MaxXPReward = 100
)

type Goal struct {
	gorm.Model
	UserID      uint       `gorm:"index;not null" json:"-"`
	CategoryID  uint       `json:"categoryId"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	Status      GoalStatus `gorm:"default:'pending'" json:"status"`
	Priority    Priority   `gorm:"default:'medium'" json:"priority"`
	XPReward    int        `gorm:"default:25" json:"xpReward"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

type Category struct {
	gorm.Model
	UserID uint   `gorm:"index;not null" json:"-"`
	Name   string `gorm:"not null" json:"name"`
	Icon   string `json:"icon"`
	Color  string `json:"color"`
}

// DefaultCategories returns the trio seeded for every new account.
func DefaultCategories(userID uint) []Category {
	return []Category{
		{UserID: userID, Name: "Main Mission", Icon: "sword", Color: "#7C3AED"},
		{UserID: userID, Name: "Training", Icon: "dumbbell", Color: "#2563EB"},
		{UserID: userID, Name: "Side Quest", Icon: "scroll", Color: "#059669"},
	}
}
