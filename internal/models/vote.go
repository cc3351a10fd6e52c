package models

import "time"

// Vote holds one user's vote on one post. Value is -1 or +1; "no vote" is
// the absence of a row, never a stored zero. The composite unique index is
// what the upsert-on-conflict write keys on.
type Vote struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	UserID    int       `gorm:"uniqueIndex:idx_votes_user_post;not null" json:"user_id"`
	PostID    int       `gorm:"uniqueIndex:idx_votes_user_post;not null" json:"post_id"`
	Value     int       `gorm:"not null;check:value IN (-1, 1)" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
