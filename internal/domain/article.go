package domain

import (
	"io"
	"time"
)

// CategoryAll is the sentinel category meaning "no category filter".
const CategoryAll = "All"

// DefaultAuthor is used when a publishing identity carries no display name.
const DefaultAuthor = "Asre Hazir Desk"

const (
	StatusPublished = "published"
)

// Change event actions emitted on every admin write.
const (
	ChangeCreate = "create"
	ChangeUpdate = "update"
	ChangeDelete = "delete"
)

type Article struct {
	ID          string     `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Content     string     `db:"content" json:"content"` // sanitized HTML
	Section     string     `db:"section" json:"section,omitempty"`
	Category    string     `db:"category" json:"category"`
	SubCategory string     `db:"sub_category" json:"subCategory,omitempty"`
	ImageURL    string     `db:"image_url" json:"imageUrl"`
	VideoURL    string     `db:"video_url" json:"videoUrl,omitempty"`
	TitleFont   string     `db:"title_font" json:"titleFont,omitempty"`
	ContentFont string     `db:"content_font" json:"contentFont,omitempty"`
	Author      string     `db:"author" json:"author"`
	AuthorID    string     `db:"author_id" json:"authorId"`
	Status      string     `db:"status" json:"status"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   *time.Time `db:"updated_at" json:"updatedAt,omitempty"`
}

// Draft is the compose-form state of an unpublished article. The same
// shape backs the publish input and the per-author autosaved draft.
type Draft struct {
	Title       string     `db:"title" json:"title"`
	Content     string     `db:"content" json:"content"`
	Section     string     `db:"section" json:"section"`
	Category    string     `db:"category" json:"category"`
	SubCategory string     `db:"sub_category" json:"subCategory"`
	TitleFont   string     `db:"title_font" json:"titleFont"`
	ContentFont string     `db:"content_font" json:"contentFont"`
	VideoURL    string     `db:"video_url" json:"videoUrl"`
	UpdatedAt   *time.Time `db:"updated_at" json:"updatedAt,omitempty"`
}

// ArticlePatch carries the fields an edit may change. Nil fields are
// left untouched; ID and CreatedAt are never patchable.
type ArticlePatch struct {
	Title       *string `json:"title,omitempty"`
	Content     *string `json:"content,omitempty"`
	Section     *string `json:"section,omitempty"`
	Category    *string `json:"category,omitempty"`
	SubCategory *string `json:"subCategory,omitempty"`
	TitleFont   *string `json:"titleFont,omitempty"`
	ContentFont *string `json:"contentFont,omitempty"`
	VideoURL    *string `json:"videoUrl,omitempty"`
	ImageURL    *string `json:"-"`
}

// MediaUpload is an incoming media asset prior to object storage.
type MediaUpload struct {
	Filename    string
	ContentType string
	Data        io.Reader
}

type Advertisement struct {
	ID        string    `db:"id" json:"id"`
	Placement string    `db:"placement" json:"placement"`
	ImageURL  string    `db:"image_url" json:"imageUrl"`
	Link      string    `db:"link" json:"link"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
