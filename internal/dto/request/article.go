package request

type CreateArticleRequest struct {
	Title         string  `json:"title" validate:"required,min=3,max=500"`
	Content       *string `json:"content,omitempty"`
	FeaturedImage *string `json:"featured_image,omitempty"`
	IsPublished   bool    `json:"is_published"`
}

type UpdateArticleRequest struct {
	Title         *string `json:"title,omitempty" validate:"omitempty,min=3,max=500"`
	Content       *string `json:"content,omitempty"`
	FeaturedImage *string `json:"featured_image,omitempty"`
	IsPublished   *bool   `json:"is_published,omitempty"`
}
