// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Profile represents a user profile in the Glimpse application.
//
// The primary key is shared with the external identity provider so that
// rows synced from Clerk can be joined directly on the identity ID.
// Profiles created through local signup use a generated UUID instead.
type Profile struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	ClerkID   string    `gorm:"uniqueIndex;size:64" json:"clerk_id,omitempty"`
	Username  string    `gorm:"uniqueIndex;not null;size:64" json:"username"`
	Email     string    `gorm:"index;size:255" json:"email,omitempty"`
	FullName  string    `gorm:"size:128" json:"full_name"`
	Bio       string    `gorm:"size:500" json:"bio"`
	Website   string    `gorm:"size:255" json:"website"`
	AvatarURL string    `json:"avatar_url"`
	Password  string    `gorm:"size:128" json:"-"`
	IsDeleted bool      `gorm:"index;default:false" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Posts     []Post    `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

// TableName specifies the table name for GORM
func (Profile) TableName() string {
	return "profiles"
}
