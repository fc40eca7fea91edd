package response

import (
	"time"

	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/data/entity"
)

type ArticleResponse struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Content       *string    `json:"content,omitempty"`
	FeaturedImage *string    `json:"featured_image,omitempty"`
	IsPublished   bool       `json:"is_published"`
	ViewCount     int        `json:"view_count"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func ArticleToResponse(a *entity.Article) ArticleResponse {
	return ArticleResponse{
		ID:            a.ID.String(),
		Title:         a.Title,
		Content:       a.Content,
		FeaturedImage: a.FeaturedImage,
		IsPublished:   a.IsPublished,
		ViewCount:     a.ViewCount,
		PublishedAt:   a.PublishedAt,
		CreatedAt:     a.CreatedAt,
	}
}
