package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Oohevt/Eco-Learn/internal/domain"
	"github.com/Oohevt/Eco-Learn/internal/repository"
)

const createChaptersTable = `
CREATE TABLE IF NOT EXISTS chapters (
	id TEXT PRIMARY KEY,
	chapter_id TEXT NOT NULL UNIQUE,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	content TEXT NOT NULL DEFAULT '',
	simple_explanation TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL,
	difficulty INTEGER NOT NULL DEFAULT 1,
	sort_order INTEGER NOT NULL DEFAULT 0,
	examples TEXT NOT NULL DEFAULT '[]',
	related_charts TEXT NOT NULL DEFAULT '[]',
	is_published INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type ChapterRepository struct {
	db *sql.DB
}

func NewChapterRepository(db *sql.DB) repository.ChapterRepository {
	return &ChapterRepository{db: db}
}

func (r *ChapterRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createChaptersTable); err != nil {
		return fmt.Errorf("create chapters table: %w", err)
	}
	return nil
}

func (r *ChapterRepository) Create(ctx context.Context, chapter *domain.Chapter) error {
	if chapter.ID == "" {
		chapter.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if chapter.CreatedAt.IsZero() {
		chapter.CreatedAt = now
	}
	chapter.UpdatedAt = now

	examples, relatedCharts, err := encodeChapterLists(chapter)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO chapters (
	id, chapter_id, title, description, content, simple_explanation,
	category, difficulty, sort_order, examples, related_charts,
	is_published, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		chapter.ID,
		chapter.ChapterID,
		chapter.Title,
		chapter.Description,
		chapter.Content,
		chapter.SimpleExplanation,
		string(chapter.Category),
		chapter.Difficulty,
		chapter.Order,
		examples,
		relatedCharts,
		chapter.IsPublished,
		chapter.CreatedAt,
		chapter.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return fmt.Errorf("chapter %s: %w", chapter.ChapterID, repository.ErrDuplicate)
		}
		return fmt.Errorf("insert chapter: %w", err)
	}
	return nil
}

const selectChapterColumns = `
SELECT id, chapter_id, title, description, content, simple_explanation,
	category, difficulty, sort_order, examples, related_charts,
	is_published, created_at, updated_at
FROM chapters
`

func (r *ChapterRepository) GetByID(ctx context.Context, id string) (*domain.Chapter, error) {
	row := r.db.QueryRowContext(ctx, selectChapterColumns+`WHERE id = ?`, id)
	return scanChapter(row)
}

func (r *ChapterRepository) GetByChapterID(ctx context.Context, chapterID string) (*domain.Chapter, error) {
	row := r.db.QueryRowContext(ctx, selectChapterColumns+`WHERE chapter_id = ?`, chapterID)
	return scanChapter(row)
}

func (r *ChapterRepository) List(ctx context.Context, filter repository.ChapterFilter) ([]domain.Chapter, error) {
	query := selectChapterColumns + `WHERE 1=1`
	var args []any
	if filter.PublishedOnly {
		query += ` AND is_published = 1`
	}
	if filter.Category != "" {
		query += ` AND category = ?`
		args = append(args, string(filter.Category))
	}
	query += ` ORDER BY sort_order ASC, rowid ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	defer rows.Close()

	var chapters []domain.Chapter
	for rows.Next() {
		chapter, err := scanChapter(rows)
		if err != nil {
			return nil, err
		}
		chapters = append(chapters, *chapter)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	return chapters, nil
}

func (r *ChapterRepository) Update(ctx context.Context, chapter *domain.Chapter) error {
	chapter.UpdatedAt = time.Now().UTC()

	examples, relatedCharts, err := encodeChapterLists(chapter)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
UPDATE chapters SET
	title = ?, description = ?, content = ?, simple_explanation = ?,
	category = ?, difficulty = ?, sort_order = ?, examples = ?,
	related_charts = ?, is_published = ?, updated_at = ?
WHERE id = ?`,
		chapter.Title,
		chapter.Description,
		chapter.Content,
		chapter.SimpleExplanation,
		string(chapter.Category),
		chapter.Difficulty,
		chapter.Order,
		examples,
		relatedCharts,
		chapter.IsPublished,
		chapter.UpdatedAt,
		chapter.ID,
	)
	if err != nil {
		return fmt.Errorf("update chapter: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update chapter: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ChapterRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM chapters WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete chapter: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete chapter: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func encodeChapterLists(chapter *domain.Chapter) (string, string, error) {
	examples := chapter.Examples
	if examples == nil {
		examples = []domain.Example{}
	}
	examplesJSON, err := json.Marshal(examples)
	if err != nil {
		return "", "", fmt.Errorf("encode examples: %w", err)
	}

	relatedCharts := chapter.RelatedCharts
	if relatedCharts == nil {
		relatedCharts = []string{}
	}
	relatedChartsJSON, err := json.Marshal(relatedCharts)
	if err != nil {
		return "", "", fmt.Errorf("encode related charts: %w", err)
	}
	return string(examplesJSON), string(relatedChartsJSON), nil
}

func scanChapter(row interface {
	Scan(dest ...any) error
}) (*domain.Chapter, error) {
	var (
		chapter       domain.Chapter
		category      string
		examples      string
		relatedCharts string
	)
	if err := row.Scan(
		&chapter.ID,
		&chapter.ChapterID,
		&chapter.Title,
		&chapter.Description,
		&chapter.Content,
		&chapter.SimpleExplanation,
		&category,
		&chapter.Difficulty,
		&chapter.Order,
		&examples,
		&relatedCharts,
		&chapter.IsPublished,
		&chapter.CreatedAt,
		&chapter.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan chapter: %w", err)
	}
	chapter.Category = domain.Category(category)
	if err := json.Unmarshal([]byte(examples), &chapter.Examples); err != nil {
		return nil, fmt.Errorf("decode examples: %w", err)
	}
	if err := json.Unmarshal([]byte(relatedCharts), &chapter.RelatedCharts); err != nil {
		return nil, fmt.Errorf("decode related charts: %w", err)
	}
	return &chapter, nil
}
