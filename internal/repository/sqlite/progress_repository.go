package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Oohevt/Eco-Learn/internal/domain"
	"github.com/Oohevt/Eco-Learn/internal/repository"
)

const createProgressTable = `
CREATE TABLE IF NOT EXISTS progress (
	user_id TEXT NOT NULL,
	chapter_id TEXT NOT NULL,
	completed INTEGER NOT NULL DEFAULT 0,
	score INTEGER,
	completed_at DATETIME,
	PRIMARY KEY (user_id, chapter_id)
);
CREATE INDEX IF NOT EXISTS idx_progress_user ON progress(user_id);
`

type ProgressRepository struct {
	db *sql.DB
}

func NewProgressRepository(db *sql.DB) repository.ProgressRepository {
	return &ProgressRepository{db: db}
}

func (r *ProgressRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createProgressTable); err != nil {
		return fmt.Errorf("create progress table: %w", err)
	}
	return nil
}

func (r *ProgressRepository) Get(ctx context.Context, userID, chapterID string) (*domain.Progress, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT user_id, chapter_id, completed, score, completed_at
FROM progress
WHERE user_id = ? AND chapter_id = ?`,
		userID, chapterID,
	)
	return scanProgress(row)
}

func (r *ProgressRepository) Save(ctx context.Context, progress *domain.Progress) error {
	var score sql.NullInt64
	if progress.Score != nil {
		score = sql.NullInt64{Int64: int64(*progress.Score), Valid: true}
	}
	var completedAt sql.NullTime
	if progress.CompletedAt != nil {
		completedAt = sql.NullTime{Time: *progress.CompletedAt, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO progress (user_id, chapter_id, completed, score, completed_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(user_id, chapter_id) DO UPDATE SET
	completed = excluded.completed,
	score = excluded.score,
	completed_at = excluded.completed_at`,
		progress.UserID,
		progress.ChapterID,
		progress.Completed,
		score,
		completedAt,
	)
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

func (r *ProgressRepository) ListByUser(ctx context.Context, userID string) ([]domain.Progress, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT user_id, chapter_id, completed, score, completed_at
FROM progress
WHERE user_id = ?`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	defer rows.Close()

	var records []domain.Progress
	for rows.Next() {
		progress, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *progress)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	return records, nil
}

func (r *ProgressRepository) DeleteByUser(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM progress WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("delete progress: %w", err)
	}
	return nil
}

func scanProgress(row interface {
	Scan(dest ...any) error
}) (*domain.Progress, error) {
	var (
		progress    domain.Progress
		score       sql.NullInt64
		completedAt sql.NullTime
	)
	if err := row.Scan(
		&progress.UserID,
		&progress.ChapterID,
		&progress.Completed,
		&score,
		&completedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan progress: %w", err)
	}
	if score.Valid {
		v := int(score.Int64)
		progress.Score = &v
	}
	if completedAt.Valid {
		v := completedAt.Time
		progress.CompletedAt = &v
	}
	return &progress, nil
}
