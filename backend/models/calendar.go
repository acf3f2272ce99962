package models

import (
	"time"

	"gorm.io/gorm"
)

type CalendarEvent struct {
	gorm.Model
	UserID      uint      `gorm:"index;not null" json:"-"`
	ExternalID  string    `gorm:"uniqueIndex" json:"externalId"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	AllDay      bool      `gorm:"default:false" json:"allDay"`
}
