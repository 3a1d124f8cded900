package repository

import (
	"context"

	"github.com/Oohevt/Eco-Learn/internal/domain"
)

// ProgressRepository stores per-user per-chapter progress rows. Save is a
// plain last-write-wins write of the full record; the merge semantics live
// in the service layer.
type ProgressRepository interface {
	Init(ctx context.Context) error
	Get(ctx context.Context, userID, chapterID string) (*domain.Progress, error)
	Save(ctx context.Context, progress *domain.Progress) error
	ListByUser(ctx context.Context, userID string) ([]domain.Progress, error)
	DeleteByUser(ctx context.Context, userID string) error
}

// FavoriteRepository stores chapter bookmarks. Add is idempotent per
// (user, chapter) pair; Remove of an absent bookmark returns ErrNotFound.
type FavoriteRepository interface {
	Init(ctx context.Context) error
	Add(ctx context.Context, favorite *domain.Favorite) error
	Remove(ctx context.Context, userID, chapterID string) error
	ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error)
}
