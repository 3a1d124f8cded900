package kvstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Oohevt/Eco-Learn/internal/domain"
	"github.com/Oohevt/Eco-Learn/internal/kv"
	"github.com/Oohevt/Eco-Learn/internal/repository"
)

type ChapterRepository struct {
	store    kv.Store
	registry registry
}

func NewChapterRepository(store kv.Store) repository.ChapterRepository {
	return &ChapterRepository{
		store:    store,
		registry: registry{store: store, key: chapterRegistryKey},
	}
}

func (r *ChapterRepository) Init(ctx context.Context) error { return nil }

func (r *ChapterRepository) Create(ctx context.Context, chapter *domain.Chapter) error {
	if _, err := r.store.Get(ctx, chapterIDPrefix+chapter.ChapterID); err == nil {
		return fmt.Errorf("chapter %s: %w", chapter.ChapterID, repository.ErrDuplicate)
	} else if !errors.Is(err, kv.ErrNotFound) {
		return err
	}

	if chapter.ID == "" {
		chapter.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if chapter.CreatedAt.IsZero() {
		chapter.CreatedAt = now
	}
	chapter.UpdatedAt = now

	if err := putJSON(ctx, r.store, chapterKeyPrefix+chapter.ID, chapter); err != nil {
		return fmt.Errorf("put chapter: %w", err)
	}
	if err := r.store.Put(ctx, chapterIDPrefix+chapter.ChapterID, []byte(chapter.ID)); err != nil {
		return fmt.Errorf("put chapter index: %w", err)
	}
	if err := r.registry.add(ctx, chapter.ID); err != nil {
		return fmt.Errorf("update chapter registry: %w", err)
	}
	return nil
}

func (r *ChapterRepository) GetByID(ctx context.Context, id string) (*domain.Chapter, error) {
	var chapter domain.Chapter
	if err := getJSON(ctx, r.store, chapterKeyPrefix+id, &chapter); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &chapter, nil
}

func (r *ChapterRepository) GetByChapterID(ctx context.Context, chapterID string) (*domain.Chapter, error) {
	id, err := r.store.Get(ctx, chapterIDPrefix+chapterID)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return r.GetByID(ctx, string(id))
}

func (r *ChapterRepository) List(ctx context.Context, filter repository.ChapterFilter) ([]domain.Chapter, error) {
	ids, err := r.listIDs(ctx)
	if err != nil {
		return nil, err
	}

	chapters := make([]domain.Chapter, 0, len(ids))
	for _, id := range ids {
		chapter, err := r.GetByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			continue // registry or enumeration ahead of a deleted record
		}
		if err != nil {
			return nil, err
		}
		if filter.PublishedOnly && !chapter.IsPublished {
			continue
		}
		if filter.Category != "" && chapter.Category != filter.Category {
			continue
		}
		chapters = append(chapters, *chapter)
	}

	sort.SliceStable(chapters, func(i, j int) bool {
		return chapters[i].Order < chapters[j].Order
	})
	return chapters, nil
}

// listIDs prefers native prefix enumeration and falls back to the
// maintained registry when the backing store cannot list.
func (r *ChapterRepository) listIDs(ctx context.Context) ([]string, error) {
	keys, err := r.store.List(ctx, chapterKeyPrefix)
	if err == nil {
		ids := make([]string, 0, len(keys))
		for _, key := range keys {
			ids = append(ids, strings.TrimPrefix(key, chapterKeyPrefix))
		}
		return ids, nil
	}
	if !errors.Is(err, kv.ErrListUnsupported) {
		return nil, err
	}
	return r.registry.load(ctx)
}

func (r *ChapterRepository) Update(ctx context.Context, chapter *domain.Chapter) error {
	if _, err := r.GetByID(ctx, chapter.ID); err != nil {
		return err
	}
	chapter.UpdatedAt = time.Now().UTC()
	if err := putJSON(ctx, r.store, chapterKeyPrefix+chapter.ID, chapter); err != nil {
		return fmt.Errorf("put chapter: %w", err)
	}
	return nil
}

func (r *ChapterRepository) Delete(ctx context.Context, id string) error {
	chapter, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.store.Delete(ctx, chapterKeyPrefix+id); err != nil {
		return fmt.Errorf("delete chapter: %w", err)
	}
	if err := r.store.Delete(ctx, chapterIDPrefix+chapter.ChapterID); err != nil {
		return fmt.Errorf("delete chapter index: %w", err)
	}
	if err := r.registry.remove(ctx, id); err != nil {
		return fmt.Errorf("update chapter registry: %w", err)
	}
	return nil
}
