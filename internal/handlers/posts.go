package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/xmuphysics/forum-backend/internal/apperr"
	"github.com/xmuphysics/forum-backend/internal/metrics"
	"github.com/xmuphysics/forum-backend/internal/models"
	"github.com/xmuphysics/forum-backend/internal/voting"
)

type PostHandler struct {
	db         *gorm.DB
	reconciler *voting.Reconciler
}

func NewPostHandler(db *gorm.DB, reconciler *voting.Reconciler) *PostHandler {
	return &PostHandler{db: db, reconciler: reconciler}
}

// loadVotes fetches every vote row for a post; scores are always a full
// reduce over these, never a stored counter.
func (h *PostHandler) loadVotes(postID int) ([]models.Vote, error) {
	var votes []models.Vote
	err := h.db.Where("post_id = ?", postID).Find(&votes).Error
	return votes, err
}

func (h *PostHandler) commentCount(postID int) int {
	var count int64
	h.db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&count)
	return int(count)
}

func tagNames(tags []models.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return names
}

func (h *PostHandler) postResponse(post models.Post, viewerID int) (gin.H, error) {
	votes, err := h.loadVotes(post.ID)
	if err != nil {
		return nil, err
	}
	score, userVote := voting.Tally(votes, viewerID)

	return gin.H{
		"id":            post.ID,
		"title":         post.Title,
		"content":       post.Content,
		"category_id":   post.CategoryID,
		"author_id":     post.AuthorID,
		"author":        post.Author,
		"tags":          tagNames(post.Tags),
		"score":         score,
		"user_vote":     userVote,
		"comment_count": h.commentCount(post.ID),
		"created_at":    post.CreatedAt,
		"updated_at":    post.UpdatedAt,
	}, nil
}

// GetCategoryPosts returns a category's posts, newest first, each with its
// derived score and the viewer's own vote.
func (h *PostHandler) GetCategoryPosts(c *gin.Context) {
	slug := c.Param("slug")

	var category models.Category
	if err := h.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	var posts []models.Post
	err := h.db.Where("category_id = ?", category.ID).
		Preload("Author").Preload("Tags").
		Order("created_at desc").
		Find(&posts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	viewerID, _ := extractUserID(c)

	responses := []gin.H{}
	for _, post := range posts {
		resp, err := h.postResponse(post, viewerID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
			return
		}
		responses = append(responses, resp)
	}

	c.JSON(http.StatusOK, gin.H{
		"category": category,
		"posts":    responses,
	})
}

// GetPost returns a single post by ID
func (h *PostHandler) GetPost(c *gin.Context) {
	postID := c.Param("id")

	var post models.Post
	if err := h.db.Preload("Author").Preload("Category").Preload("Tags").First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	viewerID, _ := extractUserID(c)
	resp, err := h.postResponse(post, viewerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
		return
	}
	resp["category"] = post.Category

	c.JSON(http.StatusOK, resp)
}

// CreatePost creates a new post (PROTECTED - requires authentication)
func (h *PostHandler) CreatePost(c *gin.Context) {
	var input struct {
		Title        string   `json:"title" binding:"required"`
		Content      string   `json:"content"`
		CategorySlug string   `json:"category_slug" binding:"required"`
		Tags         []string `json:"tags"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and category are required"})
		return
	}

	authorID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var category models.Category
	if err := h.db.Where("slug = ?", input.CategorySlug).First(&category).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category not found"})
		return
	}

	post := models.Post{
		Title:      input.Title,
		Content:    input.Content,
		CategoryID: category.ID,
		AuthorID:   authorID,
	}

	if err := h.db.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	for _, name := range input.Tags {
		var tag models.Tag
		if err := h.db.Where("name = ?", name).FirstOrCreate(&tag, models.Tag{Name: name}).Error; err != nil {
			continue
		}
		h.db.Model(&post).Association("Tags").Append(&tag)
	}

	h.db.Preload("Author").Preload("Tags").First(&post, post.ID)

	c.JSON(http.StatusCreated, post)
}

// VotePost runs a click on the up/down controls through the reconciler: the
// response carries the optimistically updated score, already rolled back if
// the write failed.
func (h *PostHandler) VotePost(c *gin.Context) {
	postID := c.Param("id")

	var input struct {
		Value int `json:"value" binding:"required,oneof=-1 1"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Vote value must be -1 or 1"})
		return
	}

	var post models.Post
	if err := h.db.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	// Anonymous callers fall through with ID 0; the reconciler rejects them
	// before touching anything.
	voterID, _ := extractUserID(c)

	// The tally runs inside the reconciler's critical section, so a queued
	// click computes from the state the prior one persisted.
	view, err := h.reconciler.Apply(c.Request.Context(), voterID, post.ID, input.Value, func(ctx context.Context) (voting.PostView, error) {
		votes, err := h.loadVotes(post.ID)
		if err != nil {
			return voting.PostView{}, apperr.Storage(err, "Failed to fetch votes")
		}
		score, userVote := voting.Tally(votes, voterID)
		return voting.PostView{Score: score, UserVote: userVote}, nil
	})
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
		return
	}

	metrics.VoteRecorded(view.UserVote)

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"score":     view.Score,
		"user_vote": view.UserVote,
	})
}
