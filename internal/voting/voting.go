// Package voting holds the vote toggle logic, the score aggregation, and the
// reconciler that keeps a displayed score consistent with the persisted vote
// state under write failure.
package voting

import "github.com/xmuphysics/forum-backend/internal/models"

// Outcome computes the vote that results from clicking a direction control.
// Clicking the already-active direction toggles the vote off; any other click
// sets the requested direction. The returned delta is what the displayed
// score moves by: newVote - current.
func Outcome(current, requested int) (newVote, delta int) {
	if requested == current {
		newVote = 0
	} else {
		newVote = requested
	}
	return newVote, newVote - current
}

// Tally reduces a post's vote rows to its display score and the viewer's own
// vote (0 if the viewer has none, or is anonymous). Full recompute per page
// load; fine at forum scale, not meant for posts with thousands of votes.
func Tally(votes []models.Vote, viewerID int) (score, userVote int) {
	for _, v := range votes {
		score += v.Value
		if viewerID != 0 && v.UserID == viewerID {
			userVote = v.Value
		}
	}
	return score, userVote
}
