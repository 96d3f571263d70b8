// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Post represents a photo post in the Glimpse application.
// Image URL, caption and location are immutable after creation.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null;index;size:64" json:"user_id"`
	Profile   Profile   `gorm:"foreignKey:UserID" json:"profiles"`
	ImageURL  string    `gorm:"not null" json:"image_url"`
	Caption   string    `gorm:"type:text" json:"caption"`
	Location  string    `gorm:"size:128" json:"location,omitempty"`
	Likes     []Like    `gorm:"foreignKey:PostID" json:"likes"`
	Comments  []Comment `gorm:"foreignKey:PostID" json:"comments"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked     bool      `gorm:"->" json:"liked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Like is a join entity marking that a user liked a post.
// The (post_id, user_id) pair is unique; duplicate inserts are absorbed
// with ON CONFLICT DO NOTHING at the repository layer.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_like_post_user" json:"post_id"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_like_post_user;size:64" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment belongs to a post and a profile. Append-only.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	UserID    string    `gorm:"not null;size:64" json:"user_id"`
	Profile   Profile   `gorm:"foreignKey:UserID" json:"profiles"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
