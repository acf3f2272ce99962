package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	FirebaseUID string `gorm:"unique;not null" json:"firebaseUid"`
	Email       string `gorm:"not null" json:"email"`
	DisplayName string `json:"displayName"`
	Level       int    `gorm:"default:1" json:"level"`
	CurrentXP   int    `gorm:"default:0" json:"currentXP"`
	TotalXP     int    `gorm:"default:0" json:"totalXP"`
	Rank        string `gorm:"default:'E-Rank'" json:"rank"`
	Streak      int    `gorm:"default:0" json:"streak"`
}

type UserSettings struct {
	gorm.Model
	UserID               uint   `gorm:"uniqueIndex" json:"-"`
	NotificationsEnabled bool   `gorm:"default:true" json:"notificationsEnabled"`
	ReminderTime         string `gorm:"default:'09:00'" json:"reminderTime"` // HH:MM
	Theme                string `gorm:"default:'dark'" json:"theme"`
	DailyGoalTarget      int    `gorm:"default:3" json:"dailyGoalTarget"`
}
