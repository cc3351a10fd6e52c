// Seed upserts the fixed category set, and with -demo fills the forum with
// generated profiles, posts, comments and votes for local development.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xmuphysics/forum-backend/internal/database"
	"github.com/xmuphysics/forum-backend/internal/models"
)

var categories = []models.Category{
	{Name: "General Discussion", Slug: "general", Description: "Talk about anything physics related."},
	{Name: "Homework Help", Slug: "homework", Description: "Get help with your problem sets."},
	{Name: "Exams & Study", Slug: "exams", Description: "Prepare for upcoming midterms and finals."},
	{Name: "Research & Careers", Slug: "research", Description: "Discuss effective field theories or effective job markets."},
	{Name: "Chit-Chat", Slug: "chit-chat", Description: "Off-topic banter."},
}

func main() {
	demo := flag.Bool("demo", false, "also generate demo profiles, posts, comments and votes")
	flag.Parse()

	db := database.New().GetDB()

	if err := seedCategories(db); err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}

	if *demo {
		seedDemo(db)
	}
}

func seedCategories(db *gorm.DB) error {
	for _, cat := range categories {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "description"}),
		}).Create(&cat).Error
		if err != nil {
			return fmt.Errorf("category %s: %w", cat.Slug, err)
		}
		log.Printf("✅ Category %s", cat.Slug)
	}
	return nil
}

// demoProfile inserts a generated profile, or reuses the existing row when
// the email is already taken.
func demoProfile(db *gorm.DB, sid string) (models.Profile, error) {
	p := models.Profile{
		Email:     strings.ToLower(sid) + "@xmu.edu.my",
		StudentID: sid,
		FullName:  gofakeit.Name(),
		Role:      models.RoleStudent,
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&p).Error; err != nil {
		return p, err
	}
	if p.ID == 0 {
		// DoNothing on a conflicting email leaves the ID unset; re-read the
		// row so posts and votes never reference id 0.
		if err := db.Where("email = ?", p.Email).First(&p).Error; err != nil {
			return p, err
		}
	}
	return p, nil
}

func seedDemo(db *gorm.DB) {
	gofakeit.Seed(0)

	var profiles []models.Profile
	for i := 0; i < 12; i++ {
		sid := fmt.Sprintf("PHY%07d", gofakeit.Number(1000000, 9999999))
		p, err := demoProfile(db, sid)
		if err != nil {
			log.Printf("skip profile %s: %v", sid, err)
			continue
		}
		profiles = append(profiles, p)
	}

	var cats []models.Category
	db.Find(&cats)

	for i := 0; i < 30; i++ {
		author := profiles[gofakeit.Number(0, len(profiles)-1)]
		post := models.Post{
			Title:      gofakeit.Sentence(6),
			Content:    gofakeit.Paragraph(2, 4, 12, "\n\n"),
			CategoryID: cats[gofakeit.Number(0, len(cats)-1)].ID,
			AuthorID:   author.ID,
		}
		if err := db.Create(&post).Error; err != nil {
			log.Printf("skip post: %v", err)
			continue
		}

		for _, voter := range profiles {
			// Most users don't vote on most posts.
			if gofakeit.Number(0, 2) != 0 {
				continue
			}
			value := 1
			if gofakeit.Bool() {
				value = -1
			}
			vote := models.Vote{UserID: voter.ID, PostID: post.ID, Value: value}
			db.Clauses(clause.OnConflict{DoNothing: true}).Create(&vote)
		}

		for j := 0; j < gofakeit.Number(0, 4); j++ {
			commenter := profiles[gofakeit.Number(0, len(profiles)-1)]
			db.Create(&models.Comment{
				Content:  gofakeit.Sentence(12),
				PostID:   post.ID,
				AuthorID: commenter.ID,
			})
		}
	}

	log.Println("✅ Demo data generated")
}
