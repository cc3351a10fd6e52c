package handlers

import (
	"errors"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/xmuphysics/forum-backend/internal/apperr"
	"github.com/xmuphysics/forum-backend/internal/models"
	"github.com/xmuphysics/forum-backend/internal/otp"
)

type AuthHandler struct {
	db    *gorm.DB
	codes otp.Dispatcher
}

func NewAuthHandler(db *gorm.DB, codes otp.Dispatcher) *AuthHandler {
	return &AuthHandler{db: db, codes: codes}
}

// Only XMU physics students get in: PHY followed by 7 digits at xmu.edu.my.
var emailPattern = regexp.MustCompile(`(?i)^PHY\d{7}@xmu\.edu\.my$`)

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// Login validates the institutional email and dispatches a one-time passcode.
// There are no passwords anywhere in this flow.
func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	email := strings.TrimSpace(input.Email)
	if !emailPattern.MatchString(email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format. Must be PHYXXXXXXX@xmu.edu.my"})
		return
	}
	email = strings.ToLower(email)

	if err := h.codes.Send(c.Request.Context(), email); err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Check your email for the passcode",
	})
}

// Verify checks the passcode, creates the profile on first login, and issues
// a JWT.
func (h *AuthHandler) Verify(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required"`
		Code  string `json:"code" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and code are required"})
		return
	}

	email := strings.TrimSpace(input.Email)
	if !emailPattern.MatchString(email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format. Must be PHYXXXXXXX@xmu.edu.my"})
		return
	}
	email = strings.ToLower(email)

	if err := h.codes.Check(c.Request.Context(), email, input.Code); err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
		return
	}

	// Signup happens through login: first successful verification creates
	// the profile.
	var profile models.Profile
	err := h.db.Where("email = ?", email).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.Profile{
			Email:     email,
			StudentID: strings.ToUpper(email[:strings.Index(email, "@")]),
			Role:      models.RoleStudent,
		}
		if err := h.db.Create(&profile).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create profile"})
			return
		}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": profile.ID,
		"email":   profile.Email,
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString(jwtSecret())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": tokenString,
		"user": gin.H{
			"id":         profile.ID,
			"email":      profile.Email,
			"student_id": profile.StudentID,
			"full_name":  profile.FullName,
			"role":       profile.Role,
		},
	})
}

// GetMe returns the current authenticated user
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var profile models.Profile
	if err := h.db.First(&profile, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         profile.ID,
		"email":      profile.Email,
		"student_id": profile.StudentID,
		"full_name":  profile.FullName,
		"role":       profile.Role,
		"created_at": profile.CreatedAt,
	})
}
