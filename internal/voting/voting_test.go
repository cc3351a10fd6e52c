package voting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xmuphysics/forum-backend/internal/models"
)

func TestOutcomeToggleTable(t *testing.T) {
	tests := []struct {
		name      string
		current   int
		requested int
		wantVote  int
		wantDelta int
	}{
		{"upvote from neutral", 0, 1, 1, 1},
		{"downvote from neutral", 0, -1, -1, -1},
		{"upvote toggles off", 1, 1, 0, -1},
		{"downvote toggles off", -1, -1, 0, 1},
		{"upvote flips downvote", -1, 1, 1, 2},
		{"downvote flips upvote", 1, -1, -1, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newVote, delta := Outcome(tt.current, tt.requested)
			assert.Equal(t, tt.wantVote, newVote)
			assert.Equal(t, tt.wantDelta, delta)
			assert.Equal(t, newVote-tt.current, delta, "delta must equal newVote - current")
		})
	}
}

func TestTally(t *testing.T) {
	votes := []models.Vote{
		{UserID: 1, PostID: 7, Value: 1},
		{UserID: 2, PostID: 7, Value: 1},
		{UserID: 3, PostID: 7, Value: -1},
	}

	score, userVote := Tally(votes, 3)
	assert.Equal(t, 1, score)
	assert.Equal(t, -1, userVote)

	score, userVote = Tally(votes, 99)
	assert.Equal(t, 1, score)
	assert.Equal(t, 0, userVote, "viewer without a vote gets 0")

	score, userVote = Tally(votes, 0)
	assert.Equal(t, 1, score)
	assert.Equal(t, 0, userVote, "anonymous viewer gets 0")
}

func TestTallyEmpty(t *testing.T) {
	score, userVote := Tally(nil, 1)
	assert.Equal(t, 0, score)
	assert.Equal(t, 0, userVote)
}
