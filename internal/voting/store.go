package voting

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xmuphysics/forum-backend/internal/apperr"
	"github.com/xmuphysics/forum-backend/internal/models"
)

// GormStore persists votes in the votes table. Writes rely on the composite
// unique index on (user_id, post_id): a non-zero value is an
// INSERT ... ON CONFLICT DO UPDATE, so there is never a read-then-write race
// and never a second row for the pair.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) SetVote(ctx context.Context, userID, postID, value int) error {
	if value == 0 {
		// Absence is not an error; deleting a missing row is a no-op.
		res := s.db.WithContext(ctx).
			Where("user_id = ? AND post_id = ?", userID, postID).
			Delete(&models.Vote{})
		if res.Error != nil {
			return apperr.Storage(res.Error, "Failed to submit vote.")
		}
		return nil
	}

	vote := models.Vote{UserID: userID, PostID: postID, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": time.Now().UTC(),
		}),
	}).Create(&vote).Error
	if err != nil {
		return apperr.Storage(err, "Failed to submit vote.")
	}
	return nil
}
