package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"smartrent_backend/database"
	"smartrent_backend/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func newActiveSub(userID uint) *models.ActiveSubscription {
	now := time.Now()
	return &models.ActiveSubscription{
		UserID:    userID,
		Plan:      "BASIC",
		StartDate: now,
		EndDate:   now.AddDate(0, 0, 30),
		Status:    models.SubscriptionActive,
	}
}

// The partial unique index makes concurrent activations collide: only
// the first insert wins, the loser gets created=false and no error.
func TestActivateSecondActiveCollides(t *testing.T) {
	repo := NewSubscriptionRepository(newTestDB(t))

	created, err := repo.Activate(newActiveSub(1))
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Activate(newActiveSub(1))
	require.NoError(t, err)
	assert.False(t, created)

	// A different user is unaffected.
	created, err = repo.Activate(newActiveSub(2))
	require.NoError(t, err)
	assert.True(t, created)
}

func TestActivateAfterExpiry(t *testing.T) {
	db := newTestDB(t)
	repo := NewSubscriptionRepository(db)

	sub := newActiveSub(1)
	sub.EndDate = time.Now().Add(-time.Hour)
	created, err := repo.Activate(sub)
	require.NoError(t, err)
	require.True(t, created)

	expired, err := repo.ExpireOverdue(time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), expired)

	// Once the old row is EXPIRED the index no longer blocks a new one.
	created, err = repo.Activate(newActiveSub(1))
	require.NoError(t, err)
	assert.True(t, created)

	active, err := repo.FindActiveByUser(1)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionActive, active.Status)
}

func TestFindActiveByUserNone(t *testing.T) {
	repo := NewSubscriptionRepository(newTestDB(t))

	_, err := repo.FindActiveByUser(42)
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)
}
