package voting

import (
	"context"
	"encoding/binary"
	"hash/fnv"
	"sync"

	"github.com/xmuphysics/forum-backend/internal/apperr"
)

// Store is the persistence contract the reconciler depends on. value 0 must
// delete the (user, post) row if present; ±1 must insert or update the row
// keyed on the pair. Both are idempotent.
type Store interface {
	SetVote(ctx context.Context, userID, postID, value int) error
}

// PostView is the displayed vote state for one post.
type PostView struct {
	Score    int `json:"score"`
	UserVote int `json:"user_vote"`
}

// Loader reads the current vote state for one (user, post) pair. The
// reconciler calls it only after acquiring the pair's lock, so a queued
// request computes from the state its predecessor left behind.
type Loader func(ctx context.Context) (PostView, error)

// Reconciler translates a direction click into a persisted vote while keeping
// the displayed score consistent. The read, the toggle decision and the write
// for a (user, post) pair all run inside one critical section, so a rapid
// double-toggle settles to the sequential outcome rather than a race-derived
// one.
type Reconciler struct {
	store Store

	// Striped rather than per-pair so the lock table stays fixed-size no
	// matter how many pairs ever vote. Distinct pairs sharing a stripe
	// serialize needlessly, which is harmless.
	locks [64]sync.Mutex
}

type voteKey struct {
	userID int
	postID int
}

func NewReconciler(store Store) *Reconciler {
	return &Reconciler{store: store}
}

func (r *Reconciler) lockFor(k voteKey) *sync.Mutex {
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[:4], uint32(k.userID))
	binary.LittleEndian.PutUint32(buf[4:], uint32(k.postID))
	h := fnv.New32a()
	h.Write(buf[:])
	return &r.locks[h.Sum32()%uint32(len(r.locks))]
}

// Apply handles one click on the up/down controls. requested must be -1 or 1.
// The pre-click state is loaded inside the critical section and the outcome
// derived from it, so concurrent clicks on the same pair apply one after the
// other. On success the returned view carries the applied values as-is; there
// is no reconciliation against a re-read canonical count (a stale tally
// across tabs is accepted). On a failed write the pre-click view is returned
// alongside the error. No automatic retry.
func (r *Reconciler) Apply(ctx context.Context, userID, postID, requested int, load Loader) (PostView, error) {
	if userID == 0 {
		return PostView{}, apperr.Auth("You must be logged in to vote.")
	}
	if requested != 1 && requested != -1 {
		return PostView{}, apperr.Validation("Vote value must be -1 or 1")
	}

	l := r.lockFor(voteKey{userID: userID, postID: postID})
	l.Lock()
	defer l.Unlock()

	view, err := load(ctx)
	if err != nil {
		return PostView{}, err
	}

	newVote, delta := Outcome(view.UserVote, requested)
	applied := PostView{Score: view.Score + delta, UserVote: newVote}

	if err := r.store.SetVote(ctx, userID, postID, newVote); err != nil {
		return view, err
	}
	return applied, nil
}
