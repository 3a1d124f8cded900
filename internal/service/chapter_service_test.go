package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Oohevt/Eco-Learn/internal/domain"
	"github.com/Oohevt/Eco-Learn/internal/kv"
	"github.com/Oohevt/Eco-Learn/internal/repository"
	"github.com/Oohevt/Eco-Learn/internal/repository/kvstore"
)

func newChapterService(t *testing.T) ChapterService {
	t.Helper()
	svc := NewChapterService(kvstore.NewChapterRepository(kv.NewMemory()))
	ctx := context.Background()
	chapters := []domain.Chapter{
		{ChapterID: "supply-demand", Title: "Supply and Demand", Category: domain.CategoryMicro, Difficulty: 2, Order: 1, IsPublished: true},
		{ChapterID: "gdp", Title: "GDP", Category: domain.CategoryMacro, Difficulty: 2, Order: 3, IsPublished: true},
		{ChapterID: "stocks", Title: "Stocks", Category: domain.CategoryFinance, Difficulty: 2, Order: 5, IsPublished: true},
		{ChapterID: "bonds", Title: "Bonds", Category: domain.CategoryFinance, Difficulty: 2, Order: 6, IsPublished: true},
	}
	for i := range chapters {
		require.NoError(t, svc.Create(ctx, &chapters[i]))
	}
	return svc
}

func TestChapterListByCategory(t *testing.T) {
	svc := newChapterService(t)
	ctx := context.Background()

	finance, err := svc.List(ctx, domain.CategoryFinance, true)
	require.NoError(t, err)
	require.Len(t, finance, 2)
	for _, chapter := range finance {
		assert.Equal(t, domain.CategoryFinance, chapter.Category)
	}
	assert.Equal(t, "stocks", finance[0].ChapterID)
	assert.Equal(t, "bonds", finance[1].ChapterID)

	unknown, err := svc.List(ctx, "astrology", true)
	require.NoError(t, err)
	assert.Empty(t, unknown)
}

func TestChapterCreateValidation(t *testing.T) {
	svc := newChapterService(t)
	ctx := context.Background()

	err := svc.Create(ctx, &domain.Chapter{ChapterID: "x", Title: "X", Category: "unknown", Difficulty: 2})
	assert.Error(t, err)

	err = svc.Create(ctx, &domain.Chapter{ChapterID: "x", Title: "X", Category: domain.CategoryMicro, Difficulty: 9})
	assert.Error(t, err)

	err = svc.Create(ctx, &domain.Chapter{ChapterID: "gdp", Title: "GDP again", Category: domain.CategoryMacro, Difficulty: 2})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestChapterPartialUpdate(t *testing.T) {
	svc := newChapterService(t)
	ctx := context.Background()

	gdp, err := svc.GetByChapterID(ctx, "gdp")
	require.NoError(t, err)

	title := "Gross Domestic Product"
	published := false
	updated, err := svc.Update(ctx, gdp.ID, domain.ChapterUpdate{Title: &title, IsPublished: &published})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.False(t, updated.IsPublished)
	assert.Equal(t, gdp.Order, updated.Order) // untouched fields survive

	stats, err := svc.CategoryStats(ctx)
	require.NoError(t, err)
	byCategory := map[domain.Category]int{}
	for _, stat := range stats {
		byCategory[stat.Category] = stat.Count
	}
	assert.Equal(t, 1, byCategory[domain.CategoryMicro])
	assert.Equal(t, 0, byCategory[domain.CategoryMacro]) // gdp unpublished above
	assert.Equal(t, 2, byCategory[domain.CategoryFinance])
}
