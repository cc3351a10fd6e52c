// Package notify carries comment-created events from the API to the notifier
// worker. Publishing is fire-and-forget at the comment path: a failed enqueue
// is logged and never fails the comment write.
package notify

import (
	"time"
	"unicode/utf8"
)

const TopicCommentCreated = "forum.comment-created"

type CommentCreated struct {
	PostID    int       `json:"post_id"`
	CommentID int       `json:"comment_id"`
	AuthorID  int       `json:"author_id"`
	Excerpt   string    `json:"excerpt"`
	CreatedAt time.Time `json:"created_at"`
}

// Excerpt trims comment content to what fits in a notification line. The cut
// falls on a rune boundary so the result is always valid UTF-8.
func Excerpt(content string) string {
	const max = 80
	if utf8.RuneCountInString(content) <= max {
		return content
	}
	runes := []rune(content)
	return string(runes[:max]) + "..."
}
