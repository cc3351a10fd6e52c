package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xmuphysics/forum-backend/internal/models"
)

type FollowHandler struct {
	db *gorm.DB
}

func NewFollowHandler(db *gorm.DB) *FollowHandler {
	return &FollowHandler{db: db}
}

// ToggleFollow flips the caller's follow membership for a post. The client
// sends the state it is showing; true means "currently following", so the
// call unfollows, and vice versa.
func (h *FollowHandler) ToggleFollow(c *gin.Context) {
	var input struct {
		Following *bool `json:"following" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Current follow state is required"})
		return
	}

	userID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
		return
	}

	postID := c.Param("id")
	var post models.Post
	if err := h.db.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if *input.Following {
		// Unfollow; deleting a missing row is fine.
		err := h.db.Where("user_id = ? AND post_id = ?", userID, post.ID).
			Delete(&models.PostFollower{}).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update follow status"})
			return
		}
	} else {
		follow := models.PostFollower{UserID: userID, PostID: post.ID}
		err := h.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update follow status"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"following": !*input.Following,
	})
}
