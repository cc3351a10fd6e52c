package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/xmuphysics/forum-backend/internal/models"
)

func startPostgres(t *testing.T) *gorm.DB {
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
	require.NoError(t, db.AutoMigrate(&models.Profile{}, &models.Category{}))

	return db
}

func TestDemoProfileReusesExistingRow(t *testing.T) {
	db := startPostgres(t)

	first, err := demoProfile(db, "PHY1234567")
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	// The conflicting insert does nothing; the existing id must come back
	// instead of a zero one.
	second, err := demoProfile(db, "PHY1234567")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestSeedCategoriesIsRerunnable(t *testing.T) {
	db := startPostgres(t)

	require.NoError(t, seedCategories(db))
	require.NoError(t, seedCategories(db))

	var count int64
	db.Model(&models.Category{}).Count(&count)
	assert.EqualValues(t, len(categories), count)
}
