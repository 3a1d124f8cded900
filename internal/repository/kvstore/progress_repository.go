package kvstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Oohevt/Eco-Learn/internal/domain"
	"github.com/Oohevt/Eco-Learn/internal/kv"
	"github.com/Oohevt/Eco-Learn/internal/repository"
)

type ProgressRepository struct {
	store kv.Store
}

func NewProgressRepository(store kv.Store) repository.ProgressRepository {
	return &ProgressRepository{store: store}
}

func progressKey(userID, chapterID string) string {
	return progressKeyPrefix + userID + ":" + chapterID
}

func (r *ProgressRepository) Init(ctx context.Context) error { return nil }

func (r *ProgressRepository) Get(ctx context.Context, userID, chapterID string) (*domain.Progress, error) {
	var progress domain.Progress
	if err := getJSON(ctx, r.store, progressKey(userID, chapterID), &progress); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &progress, nil
}

func (r *ProgressRepository) Save(ctx context.Context, progress *domain.Progress) error {
	if err := putJSON(ctx, r.store, progressKey(progress.UserID, progress.ChapterID), progress); err != nil {
		return fmt.Errorf("put progress: %w", err)
	}
	reg := registry{store: r.store, key: progressRegistryPrefix + progress.UserID}
	if err := reg.add(ctx, progress.ChapterID); err != nil {
		return fmt.Errorf("update progress registry: %w", err)
	}
	return nil
}

func (r *ProgressRepository) ListByUser(ctx context.Context, userID string) ([]domain.Progress, error) {
	chapterIDs, err := r.listChapterIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	records := make([]domain.Progress, 0, len(chapterIDs))
	for _, chapterID := range chapterIDs {
		progress, err := r.Get(ctx, userID, chapterID)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		records = append(records, *progress)
	}
	return records, nil
}

func (r *ProgressRepository) DeleteByUser(ctx context.Context, userID string) error {
	chapterIDs, err := r.listChapterIDs(ctx, userID)
	if err != nil {
		return err
	}
	for _, chapterID := range chapterIDs {
		if err := r.store.Delete(ctx, progressKey(userID, chapterID)); err != nil {
			return fmt.Errorf("delete progress: %w", err)
		}
	}
	return r.store.Delete(ctx, progressRegistryPrefix+userID)
}

func (r *ProgressRepository) listChapterIDs(ctx context.Context, userID string) ([]string, error) {
	prefix := progressKeyPrefix + userID + ":"
	keys, err := r.store.List(ctx, prefix)
	if err == nil {
		chapterIDs := make([]string, 0, len(keys))
		for _, key := range keys {
			chapterIDs = append(chapterIDs, strings.TrimPrefix(key, prefix))
		}
		return chapterIDs, nil
	}
	if !errors.Is(err, kv.ErrListUnsupported) {
		return nil, err
	}
	reg := registry{store: r.store, key: progressRegistryPrefix + userID}
	return reg.load(ctx)
}
