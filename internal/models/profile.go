package models

import "time"

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

type Profile struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	StudentID string    `gorm:"uniqueIndex;not null" json:"student_id"`
	FullName  string    `json:"full_name"`
	Role      string    `gorm:"default:student" json:"role"` // "student" or "admin"
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
