package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/xmuphysics/forum-backend/internal/models"
	"github.com/xmuphysics/forum-backend/internal/storage"
)

type ResourceHandler struct {
	db    *gorm.DB
	files *storage.Store
}

func NewResourceHandler(db *gorm.DB, files *storage.Store) *ResourceHandler {
	return &ResourceHandler{db: db, files: files}
}

func (h *ResourceHandler) GetResources(c *gin.Context) {
	var resources []models.Resource
	if err := h.db.Preload("Uploader").Order("created_at desc").Find(&resources).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch resources"})
		return
	}
	c.JSON(http.StatusOK, resources)
}

// UploadResource stores the file in the bucket first, then inserts the
// metadata row with the public URL.
func (h *ResourceHandler) UploadResource(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "You must be logged in to upload resources."})
		return
	}

	title := c.PostForm("title")
	if strings.TrimSpace(title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil || file.Size == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file selected."})
		return
	}

	if h.files == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "File storage is not configured"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	defer src.Close()

	key := fmt.Sprintf("%s%s", uuid.NewString(), filepath.Ext(file.Filename))
	contentType := file.Header.Get("Content-Type")

	if err := h.files.Put(c.Request.Context(), key, contentType, src, file.Size); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Upload failed: %v", err)})
		return
	}

	var tags []string
	for _, t := range strings.Split(c.PostForm("tags"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	resource := models.Resource{
		Title:       title,
		Description: c.PostForm("description"),
		FileURL:     h.files.PublicURL(key),
		Tags:        pq.StringArray(tags),
		UploaderID:  userID,
	}

	if err := h.db.Create(&resource).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save resource"})
		return
	}

	c.JSON(http.StatusCreated, resource)
}
