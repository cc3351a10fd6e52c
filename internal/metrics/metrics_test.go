package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestVoteRecordedCountsAppliedOutcome(t *testing.T) {
	up := testutil.ToFloat64(votesTotal.WithLabelValues("up"))
	down := testutil.ToFloat64(votesTotal.WithLabelValues("down"))
	removed := testutil.ToFloat64(votesTotal.WithLabelValues("removed"))

	VoteRecorded(1)
	VoteRecorded(-1)
	VoteRecorded(0) // toggle-off persists a delete

	assert.Equal(t, up+1, testutil.ToFloat64(votesTotal.WithLabelValues("up")))
	assert.Equal(t, down+1, testutil.ToFloat64(votesTotal.WithLabelValues("down")))
	assert.Equal(t, removed+1, testutil.ToFloat64(votesTotal.WithLabelValues("removed")))
}
