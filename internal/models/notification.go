package models

import "time"

type NotificationType string

const (
	NotificationTypeFollow      NotificationType = "follow"
	NotificationTypeLikePost    NotificationType = "like_post"
	NotificationTypeLikeComment NotificationType = "like_comment"
)

// Notification is only ever written as a side effect of an interaction
type Notification struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	RecipientID uint             `json:"recipient_id" gorm:"not null;index"`
	ActorID     uint             `json:"actor_id" gorm:"not null;index"`
	Type        NotificationType `json:"type" gorm:"size:50;not null"`
	PostID      *uint            `json:"post_id,omitempty" gorm:"index"`
	CommentID   *uint            `json:"comment_id,omitempty" gorm:"index"`
	IsRead      bool             `json:"is_read" gorm:"not null;default:false;index"`
	Message     string           `json:"message" gorm:"size:256;not null"`
	CreatedAt   time.Time        `json:"created_at"`
}
