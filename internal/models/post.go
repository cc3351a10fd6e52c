package models

import "time"

type Post struct {
	ID         int       `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"not null" json:"title"`
	Content    string    `json:"content"` // markdown, may embed LaTeX
	CategoryID int       `json:"category_id"`
	AuthorID   int       `json:"author_id"`
	Category   Category  `gorm:"foreignKey:CategoryID" json:"category"`
	Author     Profile   `gorm:"foreignKey:AuthorID" json:"author"`
	Tags       []Tag     `gorm:"many2many:post_tags" json:"tags"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
