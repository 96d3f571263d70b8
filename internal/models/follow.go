// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Follow is a directed social-graph edge: follower follows following.
// The pair is unique; self-follows are rejected at the service layer.
type Follow struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FollowerID  string    `gorm:"not null;uniqueIndex:idx_follow_pair;size:64" json:"follower_id"`
	FollowingID string    `gorm:"not null;uniqueIndex:idx_follow_pair;size:64" json:"following_id"`
	Follower    Profile   `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Following   Profile   `gorm:"foreignKey:FollowingID" json:"following,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
