// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// StoryTTL is how long a story stays visible after creation.
const StoryTTL = 24 * time.Hour

// Story is an ephemeral image owned by a profile. Expired stories are
// never purged; they simply stop matching the expires_at filter.
type Story struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null;index;size:64" json:"user_id"`
	Profile   Profile   `gorm:"foreignKey:UserID" json:"profiles"`
	ImageURL  string    `gorm:"not null" json:"image_url"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// StoryGroup is one author's active stories, newest first. The story feed
// returns a group per followed author (plus the viewer), ordered by most
// recent story.
type StoryGroup struct {
	UserID  string  `json:"user_id"`
	Profile Profile `json:"profiles"`
	Stories []Story `json:"stories"`
}
