package models

import (
	"strings"

	"gorm.io/gorm"
)

type NoteCategory string

const (
	NoteStrategy   NoteCategory = "strategy"
	NoteReflection NoteCategory = "reflection"
	NotePlan       NoteCategory = "plan"
	NoteIdea       NoteCategory = "idea"
)

func (c NoteCategory) Valid() bool {
	switch c {
	case NoteStrategy, NoteReflection, NotePlan, NoteIdea:
		return true
	}
	return false
}

const (
	MaxNoteTags  = 10
	MaxTagLength = 32
)

// Note is a Shadow Archive entry.
type Note struct {
	gorm.Model
	UserID   uint         `gorm:"index;not null" json:"-"`
	Title    string       `gorm:"not null" json:"title"`
	Content  string       `json:"content"`
	Tags     string       `json:"-"` // comma-joined, see TagList
	Category NoteCategory `gorm:"default:'reflection'" json:"category"`
	Starred  bool         `gorm:"default:false" json:"starred"`
}

func (n *Note) TagList() []string {
	if n.Tags == "" {
		return nil
	}
	return strings.Split(n.Tags, ",")
}

func (n *Note) SetTags(tags []string) {
	n.Tags = strings.Join(tags, ",")
}
