package service

import (
	"context"
	"errors"
	"time"

	"github.com/Oohevt/Eco-Learn/internal/domain"
	"github.com/Oohevt/Eco-Learn/internal/repository"
)

// ProgressService tracks per-user lesson progress and bookmarks.
type ProgressService interface {
	Get(ctx context.Context, userID, chapterID string) (*domain.Progress, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Progress, error)
	Upsert(ctx context.Context, userID, chapterID string, update domain.ProgressUpdate) (*domain.Progress, error)
	Clear(ctx context.Context, userID string) error

	AddFavorite(ctx context.Context, userID, chapterID string) (*domain.Favorite, error)
	RemoveFavorite(ctx context.Context, userID, chapterID string) error
	ListFavorites(ctx context.Context, userID string) ([]domain.Favorite, error)
}

type progressService struct {
	progress  repository.ProgressRepository
	favorites repository.FavoriteRepository
}

func NewProgressService(progress repository.ProgressRepository, favorites repository.FavoriteRepository) ProgressService {
	return &progressService{
		progress:  progress,
		favorites: favorites,
	}
}

func (s *progressService) Get(ctx context.Context, userID, chapterID string) (*domain.Progress, error) {
	return s.progress.Get(ctx, userID, chapterID)
}

func (s *progressService) ListByUser(ctx context.Context, userID string) ([]domain.Progress, error) {
	return s.progress.ListByUser(ctx, userID)
}

// Upsert reads the existing record (or synthesizes defaults), shallow-merges
// the update over it, and writes it back. Plain read-modify-write: last
// writer wins, which is fine while a row is only touched by its owner.
// CompletedAt is set on the first completion and never overwritten.
func (s *progressService) Upsert(ctx context.Context, userID, chapterID string, update domain.ProgressUpdate) (*domain.Progress, error) {
	if chapterID == "" {
		return nil, errors.New("chapter id is required")
	}

	record, err := s.progress.Get(ctx, userID, chapterID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		record = &domain.Progress{
			UserID:    userID,
			ChapterID: chapterID,
		}
	}

	if update.Completed != nil {
		record.Completed = *update.Completed
	}
	if update.Score != nil {
		if *update.Score < 0 || *update.Score > 100 {
			return nil, errors.New("score must be between 0 and 100")
		}
		record.Score = update.Score
	}
	if record.Completed && record.CompletedAt == nil {
		now := time.Now().UTC()
		record.CompletedAt = &now
	}

	if err := s.progress.Save(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *progressService) Clear(ctx context.Context, userID string) error {
	return s.progress.DeleteByUser(ctx, userID)
}

func (s *progressService) AddFavorite(ctx context.Context, userID, chapterID string) (*domain.Favorite, error) {
	if chapterID == "" {
		return nil, errors.New("chapter id is required")
	}
	favorite := &domain.Favorite{
		UserID:    userID,
		ChapterID: chapterID,
	}
	if err := s.favorites.Add(ctx, favorite); err != nil {
		return nil, err
	}
	return favorite, nil
}

func (s *progressService) RemoveFavorite(ctx context.Context, userID, chapterID string) error {
	return s.favorites.Remove(ctx, userID, chapterID)
}

func (s *progressService) ListFavorites(ctx context.Context, userID string) ([]domain.Favorite, error) {
	return s.favorites.ListByUser(ctx, userID)
}
