package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Oohevt/Eco-Learn/internal/domain"
	"github.com/Oohevt/Eco-Learn/internal/kv"
	"github.com/Oohevt/Eco-Learn/internal/repository"
)

func TestUserCreateAndLookups(t *testing.T) {
	store := kv.NewMemory()
	repo := NewUserRepository(store)
	ctx := context.Background()

	user := &domain.User{Username: "alice", Email: "alice@x.com", PasswordHash: "h1"}
	require.NoError(t, repo.Create(ctx, user))
	require.NotEmpty(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	byName, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	byEmail, err := repo.GetByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.GetByUsername(ctx, "bob")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserDuplicateDoesNotOverwrite(t *testing.T) {
	store := kv.NewMemory()
	repo := NewUserRepository(store)
	ctx := context.Background()

	first := &domain.User{Username: "alice", Email: "alice@x.com", PasswordHash: "original"}
	require.NoError(t, repo.Create(ctx, first))

	sameName := &domain.User{Username: "alice", Email: "other@x.com", PasswordHash: "attacker"}
	assert.ErrorIs(t, repo.Create(ctx, sameName), repository.ErrDuplicate)

	sameEmail := &domain.User{Username: "alice2", Email: "alice@x.com", PasswordHash: "attacker"}
	assert.ErrorIs(t, repo.Create(ctx, sameEmail), repository.ErrDuplicate)

	kept, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "original", kept.PasswordHash)
}

func TestUserDanglingIndexTreatedAsNotFound(t *testing.T) {
	store := kv.NewMemory()
	repo := NewUserRepository(store)
	ctx := context.Background()

	user := &domain.User{Username: "alice", Email: "alice@x.com", PasswordHash: "h1"}
	require.NoError(t, repo.Create(ctx, user))

	// simulate a crash that lost the primary record but kept the index
	require.NoError(t, store.Delete(ctx, userKeyPrefix+user.ID))

	_, err := repo.GetByUsername(ctx, "alice")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserUpdatePasswordHash(t *testing.T) {
	store := kv.NewMemory()
	repo := NewUserRepository(store)
	ctx := context.Background()

	user := &domain.User{Username: "alice", Email: "alice@x.com", PasswordHash: "old"}
	require.NoError(t, repo.Create(ctx, user))
	require.NoError(t, repo.UpdatePasswordHash(ctx, user.ID, "new"))

	reloaded, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", reloaded.PasswordHash)

	assert.ErrorIs(t, repo.UpdatePasswordHash(ctx, "missing", "x"), repository.ErrNotFound)
}

func seedChapters(t *testing.T, repo repository.ChapterRepository) {
	t.Helper()
	ctx := context.Background()
	chapters := []domain.Chapter{
		{ChapterID: "gdp", Title: "GDP", Category: domain.CategoryMacro, Order: 3, IsPublished: true},
		{ChapterID: "supply-demand", Title: "Supply and Demand", Category: domain.CategoryMicro, Order: 1, IsPublished: true},
		{ChapterID: "stocks", Title: "Stocks", Category: domain.CategoryFinance, Order: 5, IsPublished: true},
		{ChapterID: "bonds", Title: "Bonds", Category: domain.CategoryFinance, Order: 6, IsPublished: true},
		{ChapterID: "draft", Title: "Draft", Category: domain.CategoryFinance, Order: 2, IsPublished: false},
	}
	for i := range chapters {
		require.NoError(t, repo.Create(ctx, &chapters[i]))
	}
}

func TestChapterListFilterAndSort(t *testing.T) {
	for name, store := range map[string]kv.Store{
		"with-list":    kv.NewMemory(),
		"without-list": kv.NewMemoryWithoutList(),
	} {
		t.Run(name, func(t *testing.T) {
			repo := NewChapterRepository(store)
			seedChapters(t, repo)
			ctx := context.Background()

			all, err := repo.List(ctx, repository.ChapterFilter{PublishedOnly: true})
			require.NoError(t, err)
			require.Len(t, all, 4)
			for i := 1; i < len(all); i++ {
				assert.LessOrEqual(t, all[i-1].Order, all[i].Order)
			}

			finance, err := repo.List(ctx, repository.ChapterFilter{
				Category:      domain.CategoryFinance,
				PublishedOnly: true,
			})
			require.NoError(t, err)
			require.Len(t, finance, 2)
			assert.Equal(t, "stocks", finance[0].ChapterID)
			assert.Equal(t, "bonds", finance[1].ChapterID)

			unpublishedIncluded, err := repo.List(ctx, repository.ChapterFilter{Category: domain.CategoryFinance})
			require.NoError(t, err)
			assert.Len(t, unpublishedIncluded, 3)
		})
	}
}

func TestChapterDuplicateAndDelete(t *testing.T) {
	store := kv.NewMemoryWithoutList()
	repo := NewChapterRepository(store)
	ctx := context.Background()

	chapter := &domain.Chapter{ChapterID: "gdp", Title: "GDP", Category: domain.CategoryMacro, Order: 1, IsPublished: true}
	require.NoError(t, repo.Create(ctx, chapter))

	dup := &domain.Chapter{ChapterID: "gdp", Title: "GDP again", Category: domain.CategoryMacro}
	assert.ErrorIs(t, repo.Create(ctx, dup), repository.ErrDuplicate)

	byChapterID, err := repo.GetByChapterID(ctx, "gdp")
	require.NoError(t, err)
	assert.Equal(t, chapter.ID, byChapterID.ID)

	require.NoError(t, repo.Delete(ctx, chapter.ID))
	_, err = repo.GetByChapterID(ctx, "gdp")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	remaining, err := repo.List(ctx, repository.ChapterFilter{})
	require.NoError(t, err)
	assert.Empty(t, remaining)

	assert.ErrorIs(t, repo.Delete(ctx, chapter.ID), repository.ErrNotFound)
}

func TestProgressSaveListDelete(t *testing.T) {
	for name, store := range map[string]kv.Store{
		"with-list":    kv.NewMemory(),
		"without-list": kv.NewMemoryWithoutList(),
	} {
		t.Run(name, func(t *testing.T) {
			repo := NewProgressRepository(store)
			ctx := context.Background()

			_, err := repo.Get(ctx, "u1", "c1")
			assert.ErrorIs(t, err, repository.ErrNotFound)

			score := 80
			require.NoError(t, repo.Save(ctx, &domain.Progress{UserID: "u1", ChapterID: "c1", Completed: true, Score: &score}))
			require.NoError(t, repo.Save(ctx, &domain.Progress{UserID: "u1", ChapterID: "c2"}))
			require.NoError(t, repo.Save(ctx, &domain.Progress{UserID: "u2", ChapterID: "c1"}))

			mine, err := repo.ListByUser(ctx, "u1")
			require.NoError(t, err)
			assert.Len(t, mine, 2)

			require.NoError(t, repo.DeleteByUser(ctx, "u1"))
			mine, err = repo.ListByUser(ctx, "u1")
			require.NoError(t, err)
			assert.Empty(t, mine)

			theirs, err := repo.ListByUser(ctx, "u2")
			require.NoError(t, err)
			assert.Len(t, theirs, 1)
		})
	}
}

func TestFavoriteAddIdempotentAndRemove(t *testing.T) {
	store := kv.NewMemoryWithoutList()
	repo := NewFavoriteRepository(store)
	ctx := context.Background()

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

	favorites, err = repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, "stocks", favorites[0].ChapterID)
}
