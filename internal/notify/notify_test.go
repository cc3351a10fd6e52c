package notify

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short comment", Excerpt("short comment"))

	long := strings.Repeat("x", 200)
	got := Excerpt(long)
	assert.Len(t, got, 83)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestExcerptCutsOnRuneBoundary(t *testing.T) {
	got := Excerpt(strings.Repeat("物", 100))

	assert.True(t, utf8.ValidString(got), "a split rune would be rejected by the notifications table")
	assert.Equal(t, strings.Repeat("物", 80)+"...", got)
}

func TestWriterIsSynchronous(t *testing.T) {
	w := NewWriter("localhost:9092", TopicCommentCreated)
	defer w.Close()

	assert.False(t, w.w.Async, "enqueue failures must reach the caller's log")
}

func TestNopPublisherNeverFails(t *testing.T) {
	p := NopPublisher{}
	err := p.CommentCreated(context.Background(), CommentCreated{PostID: 1, CommentID: 2, Excerpt: "hi"})
	assert.NoError(t, err)
	assert.NoError(t, p.Close())
}
