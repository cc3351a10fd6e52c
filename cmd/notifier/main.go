// The notifier consumes comment-created events and records a notification
// for each follower of the commented post. It runs as its own process so
// delivery failures and retries stay off the comment-write path.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/xmuphysics/forum-backend/internal/database"
	"github.com/xmuphysics/forum-backend/internal/notify"
)

func main() {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		brokers = "localhost:9092"
	}
	groupID := os.Getenv("KAFKA_GROUP_ID")
	if groupID == "" {
		groupID = "forum-notifier"
	}

	db := database.New()
	defer db.Close()

	consumer := notify.NewConsumer(brokers, groupID, notify.TopicCommentCreated, db.GetDB())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := consumer.Run(ctx); err != nil {
		log.Fatalf("Consumer error: %v", err)
	}
	log.Println("Notifier stopped")
}
