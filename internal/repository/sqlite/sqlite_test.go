package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Oohevt/Eco-Learn/internal/domain"
	"github.com/Oohevt/Eco-Learn/internal/repository"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Fatalf("close db: %v", err)
		}
	})
	return db
}

func TestUserRepository(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.Init(ctx))

	user := &domain.User{Username: "alice", Email: "alice@x.com", PasswordHash: "original"}
	require.NoError(t, repo.Create(ctx, user))
	require.NotEmpty(t, user.ID)

	byName, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	byEmail, err := repo.GetByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	dup := &domain.User{Username: "alice", Email: "other@x.com", PasswordHash: "attacker"}
	assert.ErrorIs(t, repo.Create(ctx, dup), repository.ErrDuplicate)

	kept, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "original", kept.PasswordHash)

	require.NoError(t, repo.UpdatePasswordHash(ctx, user.ID, "rotated"))
	kept, err = repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "rotated", kept.PasswordHash)

	_, err = repo.GetByUsername(ctx, "bob")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestChapterRepository(t *testing.T) {
	db := openTestDB(t)
	repo := NewChapterRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.Init(ctx))

	chapters := []domain.Chapter{
		{ChapterID: "gdp", Title: "GDP", Category: domain.CategoryMacro, Order: 3, IsPublished: true,
			Examples: []domain.Example{{Title: "Growth", Explanation: "Economy expands"}}},
		{ChapterID: "supply-demand", Title: "Supply and Demand", Category: domain.CategoryMicro, Order: 1, IsPublished: true},
		{ChapterID: "stocks", Title: "Stocks", Category: domain.CategoryFinance, Order: 5, IsPublished: true},
		{ChapterID: "draft", Title: "Draft", Category: domain.CategoryFinance, Order: 2, IsPublished: false},
	}
	for i := range chapters {
		require.NoError(t, repo.Create(ctx, &chapters[i]))
	}

	dup := &domain.Chapter{ChapterID: "gdp", Title: "GDP again", Category: domain.CategoryMacro}
	assert.ErrorIs(t, repo.Create(ctx, dup), repository.ErrDuplicate)

	published, err := repo.List(ctx, repository.ChapterFilter{PublishedOnly: true})
	require.NoError(t, err)
	require.Len(t, published, 3)
	assert.Equal(t, "supply-demand", published[0].ChapterID)
	assert.Equal(t, "gdp", published[1].ChapterID)
	assert.Equal(t, "stocks", published[2].ChapterID)

	finance, err := repo.List(ctx, repository.ChapterFilter{Category: domain.CategoryFinance, PublishedOnly: true})
	require.NoError(t, err)
	require.Len(t, finance, 1)
	assert.Equal(t, "stocks", finance[0].ChapterID)

	gdp, err := repo.GetByChapterID(ctx, "gdp")
	require.NoError(t, err)
	require.Len(t, gdp.Examples, 1)
	assert.Equal(t, "Growth", gdp.Examples[0].Title)

	gdp.Title = "Gross Domestic Product"
	gdp.IsPublished = false
	require.NoError(t, repo.Update(ctx, gdp))
	reloaded, err := repo.GetByID(ctx, gdp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gross Domestic Product", reloaded.Title)
	assert.False(t, reloaded.IsPublished)

	require.NoError(t, repo.Delete(ctx, gdp.ID))
	_, err = repo.GetByChapterID(ctx, "gdp")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, gdp.ID), repository.ErrNotFound)
}

func TestProgressRepository(t *testing.T) {
	db := openTestDB(t)
	repo := NewProgressRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.Init(ctx))

	_, err := repo.Get(ctx, "u1", "c1")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	score := 80
	completedAt := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.Save(ctx, &domain.Progress{
		UserID: "u1", ChapterID: "c1", Completed: true, Score: &score, CompletedAt: &completedAt,
	}))
	require.NoError(t, repo.Save(ctx, &domain.Progress{UserID: "u1", ChapterID: "c2"}))
	require.NoError(t, repo.Save(ctx, &domain.Progress{UserID: "u2", ChapterID: "c1"}))

	got, err := repo.Get(ctx, "u1", "c1")
	require.NoError(t, err)
	require.NotNil(t, got.Score)
	assert.Equal(t, 80, *got.Score)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, got.CompletedAt.Equal(completedAt))

	// overwrite keeps the same row
	newScore := 95
	require.NoError(t, repo.Save(ctx, &domain.Progress{
		UserID: "u1", ChapterID: "c1", Completed: true, Score: &newScore, CompletedAt: &completedAt,
	}))
	got, err = repo.Get(ctx, "u1", "c1")
	require.NoError(t, err)
	assert.Equal(t, 95, *got.Score)

	mine, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	require.NoError(t, repo.DeleteByUser(ctx, "u1"))
	mine, err = repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestFavoriteRepository(t *testing.T) {
	db := openTestDB(t)
	repo := NewFavoriteRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.Init(ctx))

	first := &domain.Favorite{UserID: "u1", ChapterID: "gdp"}
	require.NoError(t, repo.Add(ctx, first))
	require.NotEmpty(t, first.ID)

	again := &domain.Favorite{UserID: "u1", ChapterID: "gdp"}
	require.NoError(t, repo.Add(ctx, again))
	assert.Equal(t, first.ID, again.ID)

	require.NoError(t, repo.Add(ctx, &domain.Favorite{UserID: "u1", ChapterID: "stocks"}))

	favorites, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, favorites, 2)

	require.NoError(t, repo.Remove(ctx, "u1", "gdp"))
	assert.ErrorIs(t, repo.Remove(ctx, "u1", "gdp"), repository.ErrNotFound)
}
