package domain

import "time"

// Progress tracks one user's state for one chapter, keyed by the pair
// (UserID, ChapterID). CompletedAt is set the first time Completed flips
// to true and is never overwritten afterwards.
type Progress struct {
	UserID      string     `json:"user_id"`
	ChapterID   string     `json:"chapter_id"`
	Completed   bool       `json:"completed"`
	Score       *int       `json:"score"`
	CompletedAt *time.Time `json:"completed_at"`
}

// ProgressUpdate carries an incoming progress change. Nil fields leave the
// stored value untouched.
type ProgressUpdate struct {
	Completed *bool `json:"completed"`
	Score     *int  `json:"score"`
}

// Favorite marks a chapter bookmarked by a user.
type Favorite struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ChapterID string    `json:"chapter_id"`
	CreatedAt time.Time `json:"created_at"`
}
