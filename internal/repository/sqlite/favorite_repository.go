package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Oohevt/Eco-Learn/internal/domain"
	"github.com/Oohevt/Eco-Learn/internal/repository"
)

const createFavoritesTable = `
CREATE TABLE IF NOT EXISTS favorites (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	chapter_id TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	UNIQUE (user_id, chapter_id)
);
CREATE INDEX IF NOT EXISTS idx_favorites_user ON favorites(user_id);
`

type FavoriteRepository struct {
	db *sql.DB
}

func NewFavoriteRepository(db *sql.DB) repository.FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createFavoritesTable); err != nil {
		return fmt.Errorf("create favorites table: %w", err)
	}
	return nil
}

func (r *FavoriteRepository) Add(ctx context.Context, favorite *domain.Favorite) error {
	if favorite.ID == "" {
		favorite.ID = uuid.NewString()
	}
	if favorite.CreatedAt.IsZero() {
		favorite.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO favorites (id, user_id, chapter_id, created_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(user_id, chapter_id) DO NOTHING`,
		favorite.ID,
		favorite.UserID,
		favorite.ChapterID,
		favorite.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert favorite: %w", err)
	}

	// re-read so the caller sees the surviving row on a repeat add
	row := r.db.QueryRowContext(ctx, `
SELECT id, user_id, chapter_id, created_at
FROM favorites
WHERE user_id = ? AND chapter_id = ?`,
		favorite.UserID, favorite.ChapterID,
	)
	if err := row.Scan(&favorite.ID, &favorite.UserID, &favorite.ChapterID, &favorite.CreatedAt); err != nil {
		return fmt.Errorf("scan favorite: %w", err)
	}
	return nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, chapterID string) error {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM favorites WHERE user_id = ? AND chapter_id = ?`,
		userID, chapterID,
	)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, chapter_id, created_at
FROM favorites
WHERE user_id = ?
ORDER BY created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	var favorites []domain.Favorite
	for rows.Next() {
		var favorite domain.Favorite
		if err := rows.Scan(&favorite.ID, &favorite.UserID, &favorite.ChapterID, &favorite.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		favorites = append(favorites, favorite)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return favorites, nil
}
