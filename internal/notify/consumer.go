package notify

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"gorm.io/gorm"

	"github.com/xmuphysics/forum-backend/internal/models"
)

// Consumer reads comment-created events and fans them out to a post's
// followers as notification rows. Actual email delivery stays a logged stub.
type Consumer struct {
	reader *kafka.Reader
	db     *gorm.DB
}

func NewConsumer(brokers, groupID, topic string, db *gorm.DB) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        strings.Split(brokers, ","),
			GroupID:        groupID,
			Topic:          topic,
			MinBytes:       10e3,
			MaxBytes:       10e6,
			CommitInterval: time.Second,
		}),
		db: db,
	}
}

func (c *Consumer) Run(ctx context.Context) error {
	defer func() {
		_ = c.reader.Close()
	}()

	log.Printf("[kafka] consumer started | group=%s | topic=%s",
		c.reader.Config().GroupID, c.reader.Config().Topic)

	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("[kafka] consumer shutting down...")
				return nil
			}
			log.Printf("[kafka] fetch error: %v", err)
			time.Sleep(time.Second)
			continue
		}

		var ev CommentCreated
		if err := json.Unmarshal(m.Value, &ev); err != nil {
			log.Printf("[kafka] bad event payload: %v", err)
		} else if err := c.fanOut(ctx, ev); err != nil {
			log.Printf("[kafka] fan-out error: %v", err)
		}

		if err := c.reader.CommitMessages(ctx, m); err != nil {
			log.Printf("[kafka] commit error: %v", err)
		}
	}
}

// fanOut writes one notification per follower of the post, skipping the
// comment's own author.
func (c *Consumer) fanOut(ctx context.Context, ev CommentCreated) error {
	var followers []models.PostFollower
	err := c.db.WithContext(ctx).
		Where("post_id = ? AND user_id <> ?", ev.PostID, ev.AuthorID).
		Find(&followers).Error
	if err != nil {
		return err
	}

	for _, f := range followers {
		n := models.Notification{
			RecipientID: f.UserID,
			PostID:      ev.PostID,
			CommentID:   ev.CommentID,
			Excerpt:     ev.Excerpt,
		}
		if err := c.db.WithContext(ctx).Create(&n).Error; err != nil {
			log.Printf("[notify] failed to record notification for user %d: %v", f.UserID, err)
			continue
		}
		// Email delivery stub, as in the original.
		log.Printf("[notify] would email user %d about post %d: %q", f.UserID, ev.PostID, ev.Excerpt)
	}
	return nil
}
