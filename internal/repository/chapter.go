package repository

import (
	"context"

	"github.com/Oohevt/Eco-Learn/internal/domain"
)

// ChapterFilter narrows List results. Zero values mean "no filter".
type ChapterFilter struct {
	Category      domain.Category
	PublishedOnly bool
}

// ChapterRepository defines persistence operations for the lesson catalog.
// List returns chapters sorted ascending by Order (stable on ties).
type ChapterRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, chapter *domain.Chapter) error
	GetByID(ctx context.Context, id string) (*domain.Chapter, error)
	GetByChapterID(ctx context.Context, chapterID string) (*domain.Chapter, error)
	List(ctx context.Context, filter ChapterFilter) ([]domain.Chapter, error)
	Update(ctx context.Context, chapter *domain.Chapter) error
	Delete(ctx context.Context, id string) error
}
