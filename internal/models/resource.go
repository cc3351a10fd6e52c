package models

import (
	"time"

	"github.com/lib/pq"
)

type Resource struct {
	ID          int            `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `json:"description,omitempty"`
	FileURL     string         `gorm:"not null" json:"file_url"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags"`
	UploaderID  int            `json:"uploader_id"`
	Uploader    Profile        `gorm:"foreignKey:UploaderID" json:"uploader"`
	CreatedAt   time.Time      `json:"created_at"`
}
