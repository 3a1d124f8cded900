package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Oohevt/Eco-Learn/internal/auth"
	"github.com/Oohevt/Eco-Learn/internal/kv"
	"github.com/Oohevt/Eco-Learn/internal/repository"
	"github.com/Oohevt/Eco-Learn/internal/repository/kvstore"
)

func TestEnsureChaptersIdempotent(t *testing.T) {
	store := kv.NewMemory()
	repo := kvstore.NewChapterRepository(store)
	ctx := context.Background()

	require.NoError(t, EnsureChapters(ctx, repo, nil))
	require.NoError(t, EnsureChapters(ctx, repo, nil))

	chapters, err := repo.List(ctx, repository.ChapterFilter{PublishedOnly: true})
	require.NoError(t, err)
	assert.Len(t, chapters, 6)

	// seeded catalog comes back ordered
	for i := 1; i < len(chapters); i++ {
		assert.Less(t, chapters[i-1].Order, chapters[i].Order)
	}
}

func TestEnsureAdmin(t *testing.T) {
	store := kv.NewMemory()
	repo := kvstore.NewUserRepository(store)
	hasher := auth.NewBcryptHasher()
	hasher.Cost = 4
	ctx := context.Background()

	require.NoError(t, EnsureAdmin(ctx, repo, hasher, "admin", "changeme", nil))

	admin, err := repo.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)
	assert.True(t, hasher.Verify("changeme", admin.PasswordHash))

	// second run keeps the existing account
	require.NoError(t, EnsureAdmin(ctx, repo, hasher, "admin", "other", nil))
	same, err := repo.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, admin.PasswordHash, same.PasswordHash)

	// unset credentials are a no-op
	require.NoError(t, EnsureAdmin(ctx, repo, hasher, "", "", nil))
}
