package notify

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	k "github.com/segmentio/kafka-go"
)

// Publisher enqueues comment-created events for the notifier worker.
type Publisher interface {
	CommentCreated(ctx context.Context, ev CommentCreated) error
	Close() error
}

type Writer struct {
	w *k.Writer
}

func NewWriter(bootstrap, topic string) *Writer {
	return &Writer{
		w: &k.Writer{
			Addr:         k.TCP(bootstrap),
			Topic:        topic,
			Balancer:     &k.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: k.RequireNone,
			// Synchronous writes: an enqueue failure must come back to the
			// caller, which logs it without failing the comment.
		},
	}
}

func (w *Writer) Close() error { return w.w.Close() }

func (w *Writer) CommentCreated(ctx context.Context, ev CommentCreated) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return w.w.WriteMessages(ctx, k.Message{
		Key:   []byte(strconv.Itoa(ev.PostID)),
		Value: value,
		Time:  time.Now(),
	})
}

// NopPublisher stands in when no broker is configured; it logs the event the
// way the original's mock email hook did.
type NopPublisher struct{}

func (NopPublisher) CommentCreated(ctx context.Context, ev CommentCreated) error {
	log.Printf("[notify] would enqueue: post=%d comment=%d excerpt=%q", ev.PostID, ev.CommentID, ev.Excerpt)
	return nil
}

func (NopPublisher) Close() error { return nil }
