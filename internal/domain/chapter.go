package domain

import "time"

type Category string

const (
	CategoryMicro   Category = "micro"
	CategoryMacro   Category = "macro"
	CategoryFinance Category = "finance"
)

// Valid reports whether c is one of the known lesson categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryMicro, CategoryMacro, CategoryFinance:
		return true
	}
	return false
}

// Example is a short real-world illustration attached to a chapter.
type Example struct {
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
}

// Chapter is a single lesson in the catalog. ID is the internal record id;
// ChapterID is the stable external identifier used in URLs and progress rows.
type Chapter struct {
	ID                string    `json:"id"`
	ChapterID         string    `json:"chapter_id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Content           string    `json:"content"`
	SimpleExplanation string    `json:"simple_explanation"`
	Category          Category  `json:"category"`
	Difficulty        int       `json:"difficulty"`
	Order             int       `json:"order"`
	Examples          []Example `json:"examples"`
	RelatedCharts     []string  `json:"related_charts"`
	IsPublished       bool      `json:"is_published"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ChapterUpdate carries a partial chapter edit. Nil fields are left untouched.
type ChapterUpdate struct {
	Title             *string    `json:"title"`
	Description       *string    `json:"description"`
	Content           *string    `json:"content"`
	SimpleExplanation *string    `json:"simple_explanation"`
	Category          *Category  `json:"category"`
	Difficulty        *int       `json:"difficulty"`
	Order             *int       `json:"order"`
	Examples          *[]Example `json:"examples"`
	RelatedCharts     *[]string  `json:"related_charts"`
	IsPublished       *bool      `json:"is_published"`
}

// CategoryStat is an aggregate of published chapters per category.
type CategoryStat struct {
	Category Category `json:"category"`
	Name     string   `json:"name"`
	Count    int      `json:"count"`
}
