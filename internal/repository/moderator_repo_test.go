package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/platform-admin-api/internal/models"
)

func TestModeratorRepositoryCreateAndLookup(t *testing.T) {
	db := setupTestDB(t)
	repo := NewModeratorRepository(db)

	moderator := models.Moderator{Username: "mod1", Email: "m1@x.com", Password: "hash", IsModerator: true}
	require.NoError(t, repo.Create(context.Background(), &moderator))
	require.NotZero(t, moderator.ID)

	found, err := repo.GetByEmail(context.Background(), "M1@X.COM")
	require.NoError(t, err)
	require.Equal(t, moderator.ID, found.ID)

	exists, err := repo.Exists(context.Background(), "m1@x.com", "someone-else")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = repo.Exists(context.Background(), "other@x.com", "other")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestModeratorRepositoryListSearchesUsernameAndEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewModeratorRepository(db)

	require.NoError(t, repo.Create(context.Background(), &models.Moderator{Username: "alice", Email: "alice@x.com", Password: "h", IsModerator: true}))
	require.NoError(t, repo.Create(context.Background(), &models.Moderator{Username: "bob", Email: "bob@x.com", Password: "h", IsModerator: true}))

	moderators, total, err := repo.List(context.Background(), ModeratorFilter{Search: "ali", PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, moderators, 1)
	require.Equal(t, "alice", moderators[0].Username)
}

func TestModeratorRepositoryDeleteMissingRowReportsNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewModeratorRepository(db)

	err := repo.Delete(context.Background(), 9999)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	var count int64
	require.NoError(t, db.Model(&models.Moderator{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestModeratorRepositoryUpdateAppliesOnlyGivenFields(t *testing.T) {
	db := setupTestDB(t)
	repo := NewModeratorRepository(db)

	moderator := models.Moderator{Username: "mod2", Email: "m2@x.com", Password: "original-hash", IsModerator: true}
	require.NoError(t, repo.Create(context.Background(), &moderator))

	updated, err := repo.Update(context.Background(), moderator.ID, map[string]interface{}{"assigned_model": "aurora"})
	require.NoError(t, err)
	require.Equal(t, "aurora", updated.AssignedModel)
	require.Equal(t, "original-hash", updated.Password)
}
