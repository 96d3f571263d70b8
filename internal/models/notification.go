// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// NotificationType identifies what kind of activity produced a notification.
type NotificationType string

const (
	// NotificationTypeLike is created when someone likes a post.
	NotificationTypeLike NotificationType = "like"
	// NotificationTypeComment is created when someone comments on a post.
	NotificationTypeComment NotificationType = "comment"
	// NotificationTypeFollow is created when someone follows a user.
	NotificationTypeFollow NotificationType = "follow"
	// NotificationTypeMessage is created when someone sends a direct message.
	NotificationTypeMessage NotificationType = "message"
)

// Notification records an activity event for a recipient.
type Notification struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	RecipientID string           `gorm:"not null;index;size:64" json:"recipient_id"`
	SenderID    string           `gorm:"not null;size:64" json:"sender_id"`
	Sender      Profile          `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Type        NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Message     string           `gorm:"size:255" json:"message"`
	Read        bool             `gorm:"default:false" json:"read"`
	CreatedAt   time.Time        `json:"created_at"`
}
