package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/xmuphysics/forum-backend/internal/notify"
	"github.com/xmuphysics/forum-backend/internal/otp"
	"github.com/xmuphysics/forum-backend/internal/storage"
	"github.com/xmuphysics/forum-backend/internal/voting"
)

// Handler combines all handler types
type Handler struct {
	Auth     *AuthHandler
	Post     *PostHandler
	Comment  *CommentHandler
	Follow   *FollowHandler
	Category *CategoryHandler
	Resource *ResourceHandler
	Profile  *ProfileHandler
	News     *NewsHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(db *gorm.DB, codes otp.Dispatcher, files *storage.Store, events notify.Publisher) *Handler {
	reconciler := voting.NewReconciler(voting.NewGormStore(db))

	return &Handler{
		Auth:     NewAuthHandler(db, codes),
		Post:     NewPostHandler(db, reconciler),
		Comment:  NewCommentHandler(db, events),
		Follow:   NewFollowHandler(db),
		Category: NewCategoryHandler(db),
		Resource: NewResourceHandler(db, files),
		Profile:  NewProfileHandler(db),
		News:     NewNewsHandler(db),
	}
}

func extractUserID(c *gin.Context) (int, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	switch v := raw.(type) {
	case int:
		return v, true
	case uint:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
