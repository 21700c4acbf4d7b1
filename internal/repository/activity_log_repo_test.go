package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/platform-admin-api/internal/models"
)

func TestActivityLogRepositoryListRecentOrdersNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewActivityLogRepository(db)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		entry := models.ActivityLog{
			ActivityType: "payment",
			Title:        fmt.Sprintf("Payment %d", i),
			Message:      "test",
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(&entry).Error)
	}

	entries, err := repo.ListRecent(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, "Payment 4", entries[0].Title)
	require.Equal(t, "Payment 3", entries[1].Title)
	require.Equal(t, "Payment 2", entries[2].Title)
	require.True(t, entries[0].CreatedAt.After(entries[2].CreatedAt))
}

func TestActivityLogRepositoryListRecentReturnsAllWhenLimitExceedsCount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewActivityLogRepository(db)

	for i := 0; i < 4; i++ {
		entry := models.ActivityLog{
			ActivityType: "user_registration",
			Title:        "New User Registration",
			Message:      "test",
			CreatedAt:    time.Now().Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, db.Create(&entry).Error)
	}

	entries, err := repo.ListRecent(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, entries, 4)
}

func TestActivityLogRepositoryListFiltersByTypeAndUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewActivityLogRepository(db)

	userA := uint(1)
	userB := uint(2)
	require.NoError(t, db.Create(&models.ActivityLog{ActivityType: "payment", Title: "p", Message: "m", UserID: &userA}).Error)
	require.NoError(t, db.Create(&models.ActivityLog{ActivityType: "subscription", Title: "s", Message: "m", UserID: &userA}).Error)
	require.NoError(t, db.Create(&models.ActivityLog{ActivityType: "payment", Title: "p2", Message: "m", UserID: &userB}).Error)

	entries, total, err := repo.List(context.Background(), ActivityLogFilter{ActivityType: "payment", PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, entries, 2)

	entries, total, err = repo.List(context.Background(), ActivityLogFilter{UserID: &userA, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	for _, entry := range entries {
		require.Equal(t, userA, *entry.UserID)
	}
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ActivityLog{}, &models.Moderator{}))
	return db
}
