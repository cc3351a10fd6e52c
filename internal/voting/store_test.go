package voting

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/xmuphysics/forum-backend/internal/models"
)

// startPostgres brings up a throwaway postgres and returns a migrated gorm
// handle plus a raw pgx connection for independent row assertions.
func startPostgres(t *testing.T) (*gorm.DB, *sql.DB) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("forum_test"),
		tcpostgres.WithUsername("forum"),
		tcpostgres.WithPassword("forum"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(ctr); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Vote{}))

	raw, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })

	return db, raw
}

func countVoteRows(t *testing.T, raw *sql.DB, userID, postID int) (count, value int) {
	t.Helper()
	rows, err := raw.Query("SELECT value FROM votes WHERE user_id = $1 AND post_id = $2", userID, postID)
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		count++
		require.NoError(t, rows.Scan(&value))
	}
	require.NoError(t, rows.Err())
	return count, value
}

func TestGormStoreUpsertKeepsOneRow(t *testing.T) {
	db, raw := startPostgres(t)
	store := NewGormStore(db)
	ctx := context.Background()

	require.NoError(t, store.SetVote(ctx, 1, 7, 1))
	require.NoError(t, store.SetVote(ctx, 1, 7, -1))

	count, value := countVoteRows(t, raw, 1, 7)
	assert.Equal(t, 1, count, "upsert must never leave two rows for the pair")
	assert.Equal(t, -1, value)
}

func TestGormStoreZeroIsIdempotentDelete(t *testing.T) {
	db, raw := startPostgres(t)
	store := NewGormStore(db)
	ctx := context.Background()

	require.NoError(t, store.SetVote(ctx, 1, 7, 1))

	require.NoError(t, store.SetVote(ctx, 1, 7, 0))
	count, _ := countVoteRows(t, raw, 1, 7)
	assert.Equal(t, 0, count)

	// Deleting an absent row is not an error.
	require.NoError(t, store.SetVote(ctx, 1, 7, 0))
	count, _ = countVoteRows(t, raw, 1, 7)
	assert.Equal(t, 0, count)
}

func TestGormStoreKeepsUsersIndependent(t *testing.T) {
	db, raw := startPostgres(t)
	store := NewGormStore(db)
	ctx := context.Background()

	require.NoError(t, store.SetVote(ctx, 1, 7, 1))
	require.NoError(t, store.SetVote(ctx, 2, 7, 1))
	require.NoError(t, store.SetVote(ctx, 3, 7, -1))

	var votes []models.Vote
	require.NoError(t, db.Where("post_id = ?", 7).Find(&votes).Error)
	score, _ := Tally(votes, 0)
	assert.Equal(t, 1, score)

	// Removing one user's vote leaves the others.
	require.NoError(t, store.SetVote(ctx, 2, 7, 0))
	count, value := countVoteRows(t, raw, 1, 7)
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, value)
}
