package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Oohevt/Eco-Learn/internal/domain"
	"github.com/Oohevt/Eco-Learn/internal/repository"
)

// ChapterService coordinates catalog operations backed by the chapter
// repository.
type ChapterService interface {
	List(ctx context.Context, category domain.Category, publishedOnly bool) ([]domain.Chapter, error)
	GetByChapterID(ctx context.Context, chapterID string) (*domain.Chapter, error)
	Create(ctx context.Context, chapter *domain.Chapter) error
	Update(ctx context.Context, id string, update domain.ChapterUpdate) (*domain.Chapter, error)
	Delete(ctx context.Context, id string) error
	CategoryStats(ctx context.Context) ([]domain.CategoryStat, error)
}

type chapterService struct {
	chapters repository.ChapterRepository
}

func NewChapterService(chapters repository.ChapterRepository) ChapterService {
	return &chapterService{chapters: chapters}
}

func (s *chapterService) List(ctx context.Context, category domain.Category, publishedOnly bool) ([]domain.Chapter, error) {
	if category != "" && !category.Valid() {
		return []domain.Chapter{}, nil
	}
	return s.chapters.List(ctx, repository.ChapterFilter{
		Category:      category,
		PublishedOnly: publishedOnly,
	})
}

func (s *chapterService) GetByChapterID(ctx context.Context, chapterID string) (*domain.Chapter, error) {
	return s.chapters.GetByChapterID(ctx, chapterID)
}

func (s *chapterService) Create(ctx context.Context, chapter *domain.Chapter) error {
	if chapter.ChapterID == "" {
		return errors.New("chapter id is required")
	}
	if chapter.Title == "" {
		return errors.New("title is required")
	}
	if !chapter.Category.Valid() {
		return fmt.Errorf("unknown category %q", chapter.Category)
	}
	if chapter.Difficulty < 1 || chapter.Difficulty > 5 {
		return errors.New("difficulty must be between 1 and 5")
	}
	return s.chapters.Create(ctx, chapter)
}

func (s *chapterService) Update(ctx context.Context, id string, update domain.ChapterUpdate) (*domain.Chapter, error) {
	chapter, err := s.chapters.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		chapter.Title = *update.Title
	}
	if update.Description != nil {
		chapter.Description = *update.Description
	}
	if update.Content != nil {
		chapter.Content = *update.Content
	}
	if update.SimpleExplanation != nil {
		chapter.SimpleExplanation = *update.SimpleExplanation
	}
	if update.Category != nil {
		if !update.Category.Valid() {
			return nil, fmt.Errorf("unknown category %q", *update.Category)
		}
		chapter.Category = *update.Category
	}
	if update.Difficulty != nil {
		if *update.Difficulty < 1 || *update.Difficulty > 5 {
			return nil, errors.New("difficulty must be between 1 and 5")
		}
		chapter.Difficulty = *update.Difficulty
	}
	if update.Order != nil {
		chapter.Order = *update.Order
	}
	if update.Examples != nil {
		chapter.Examples = *update.Examples
	}
	if update.RelatedCharts != nil {
		chapter.RelatedCharts = *update.RelatedCharts
	}
	if update.IsPublished != nil {
		chapter.IsPublished = *update.IsPublished
	}

	if err := s.chapters.Update(ctx, chapter); err != nil {
		return nil, err
	}
	return chapter, nil
}

func (s *chapterService) Delete(ctx context.Context, id string) error {
	return s.chapters.Delete(ctx, id)
}

func (s *chapterService) CategoryStats(ctx context.Context) ([]domain.CategoryStat, error) {
	chapters, err := s.chapters.List(ctx, repository.ChapterFilter{PublishedOnly: true})
	if err != nil {
		return nil, err
	}

	stats := []domain.CategoryStat{
		{Category: domain.CategoryMicro, Name: "微观经济学"},
		{Category: domain.CategoryMacro, Name: "宏观经济学"},
		{Category: domain.CategoryFinance, Name: "金融学"},
	}
	for _, chapter := range chapters {
		for i := range stats {
			if stats[i].Category == chapter.Category {
				stats[i].Count++
			}
		}
	}
	return stats, nil
}
