package kvstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Oohevt/Eco-Learn/internal/domain"
	"github.com/Oohevt/Eco-Learn/internal/kv"
	"github.com/Oohevt/Eco-Learn/internal/repository"
)

type FavoriteRepository struct {
	store kv.Store
}

func NewFavoriteRepository(store kv.Store) repository.FavoriteRepository {
	return &FavoriteRepository{store: store}
}

func favoriteKey(userID, chapterID string) string {
	return favoriteKeyPrefix + userID + ":" + chapterID
}

func (r *FavoriteRepository) Init(ctx context.Context) error { return nil }

func (r *FavoriteRepository) Add(ctx context.Context, favorite *domain.Favorite) error {
	key := favoriteKey(favorite.UserID, favorite.ChapterID)
	var existing domain.Favorite
	err := getJSON(ctx, r.store, key, &existing)
	if err == nil {
		*favorite = existing // already bookmarked, keep the original row
		return nil
	}
	if !errors.Is(err, kv.ErrNotFound) {
		return err
	}

	if favorite.ID == "" {
		favorite.ID = uuid.NewString()
	}
	if favorite.CreatedAt.IsZero() {
		favorite.CreatedAt = time.Now().UTC()
	}
	if err := putJSON(ctx, r.store, key, favorite); err != nil {
		return fmt.Errorf("put favorite: %w", err)
	}
	reg := registry{store: r.store, key: favoriteRegistryPrefix + favorite.UserID}
	if err := reg.add(ctx, favorite.ChapterID); err != nil {
		return fmt.Errorf("update favorite registry: %w", err)
	}
	return nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, chapterID string) error {
	key := favoriteKey(userID, chapterID)
	if _, err := r.store.Get(ctx, key); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return repository.ErrNotFound
		}
		return err
	}
	if err := r.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	reg := registry{store: r.store, key: favoriteRegistryPrefix + userID}
	if err := reg.remove(ctx, chapterID); err != nil {
		return fmt.Errorf("update favorite registry: %w", err)
	}
	return nil
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error) {
	prefix := favoriteKeyPrefix + userID + ":"
	chapterIDs, err := r.listChapterIDs(ctx, userID, prefix)
	if err != nil {
		return nil, err
	}

	favorites := make([]domain.Favorite, 0, len(chapterIDs))
	for _, chapterID := range chapterIDs {
		var favorite domain.Favorite
		err := getJSON(ctx, r.store, favoriteKey(userID, chapterID), &favorite)
		if errors.Is(err, kv.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		favorites = append(favorites, favorite)
	}
	return favorites, nil
}

func (r *FavoriteRepository) listChapterIDs(ctx context.Context, userID, prefix string) ([]string, error) {
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
	reg := registry{store: r.store, key: favoriteRegistryPrefix + userID}
	return reg.load(ctx)
}
