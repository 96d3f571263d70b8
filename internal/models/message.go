// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Message is a direct message between two profiles.
type Message struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	SenderID      string    `gorm:"not null;index;size:64" json:"sender_id"`
	RecipientID   string    `gorm:"not null;index;size:64" json:"recipient_id"`
	Text          string    `gorm:"type:text;not null" json:"text"`
	AttachmentURL string    `json:"attachment_url,omitempty"`
	Read          bool      `gorm:"default:false" json:"read"`
	CreatedAt     time.Time `json:"created_at"`
}

// Conversation is a derived, non-persisted view of all messages between
// one user and a single partner. It is recomputed on every read.
type Conversation struct {
	PartnerID   string    `json:"id"`
	Partner     Profile   `json:"other_user"`
	Messages    []Message `json:"messages"`
	LastMessage *Message  `json:"last_message,omitempty"`
	UnreadCount int       `json:"unread_count"`
}
