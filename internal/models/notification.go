package models

import "time"

// Notification is written by the notifier worker for each follower of a post
// that received a new comment. Email delivery itself is still a logged stub.
type Notification struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	RecipientID int       `gorm:"index;not null" json:"recipient_id"`
	PostID      int       `json:"post_id"`
	CommentID   int       `json:"comment_id"`
	Excerpt     string    `json:"excerpt"`
	Read        bool      `gorm:"default:false" json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}
