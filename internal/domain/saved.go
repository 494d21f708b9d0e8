package domain

import "time"

// SavedNewsItem is a per-user bookmark of an article. At most one item
// exists per (UserID, NewsID); the store enforces this with a unique
// index and the service reports a duplicate as ErrAlreadySaved.
type SavedNewsItem struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	NewsID    string    `db:"news_id" json:"newsId"`
	Title     string    `db:"title" json:"title"`
	Image     string    `db:"image" json:"image"`
	Category  string    `db:"category" json:"category"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
