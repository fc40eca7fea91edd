package entity

import "time"

type Article struct {
	Base
	Title         string     `db:"title"`
	Content       *string    `db:"content"`
	FeaturedImage *string    `db:"featured_image"`
	IsPublished   bool       `db:"is_published"`
	ViewCount     int        `db:"view_count"`
	PublishedAt   *time.Time `db:"published_at"`
}
