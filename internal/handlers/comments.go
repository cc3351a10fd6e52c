package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/xmuphysics/forum-backend/internal/models"
	"github.com/xmuphysics/forum-backend/internal/notify"
)

type CommentHandler struct {
	db     *gorm.DB
	events notify.Publisher
}

func NewCommentHandler(db *gorm.DB, events notify.Publisher) *CommentHandler {
	return &CommentHandler{db: db, events: events}
}

// GetComments returns a post's comments in creation order, oldest first.
func (h *CommentHandler) GetComments(c *gin.Context) {
	postID := c.Param("id")

	var comments []models.Comment
	if err := h.db.Where("post_id = ?", postID).Preload("Author").Order("created_at asc").Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	responses := []gin.H{}
	for _, comment := range comments {
		responses = append(responses, gin.H{
			"id":         comment.ID,
			"content":    comment.Content,
			"post_id":    comment.PostID,
			"author_id":  comment.AuthorID,
			"author":     comment.Author,
			"created_at": comment.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, responses)
}

// CreateComment creates a new comment on a post and enqueues the follower
// notification. The enqueue never blocks or fails the comment write.
func (h *CommentHandler) CreateComment(c *gin.Context) {
	var input struct {
		Content string `json:"content" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required"})
		return
	}

	authorID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "You must be logged in to comment."})
		return
	}

	postID := c.Param("id")
	var post models.Post
	if err := h.db.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	comment := models.Comment{
		Content:  input.Content,
		PostID:   post.ID,
		AuthorID: authorID,
	}

	if err := h.db.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	// Fire-and-forget: the request context is about to end, and an enqueue
	// failure is logged, never surfaced.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	ev := notify.CommentCreated{
		PostID:    post.ID,
		CommentID: comment.ID,
		AuthorID:  authorID,
		Excerpt:   notify.Excerpt(comment.Content),
		CreatedAt: comment.CreatedAt,
	}
	if err := h.events.CommentCreated(ctx, ev); err != nil {
		log.Printf("comment notification enqueue failed: %v", err)
	}

	h.db.Preload("Author").First(&comment, comment.ID)
	c.JSON(http.StatusCreated, comment)
}
