package models

import "time"

// PostFollower is a (user, post) membership row; presence means the user is
// notified when the post gets a new comment.
type PostFollower struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	UserID    int       `gorm:"uniqueIndex:idx_post_followers_user_post;not null" json:"user_id"`
	PostID    int       `gorm:"uniqueIndex:idx_post_followers_user_post;not null" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
