package wire

import (
	"github.com/go-chi/chi/v5"

	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/adaptor"
)

func wireArticle(r chi.Router, articleHandler *adaptor.ArticleHandler) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/articles - Published articles for the storefront
	r.Get("/api/articles", articleHandler.ListPublished)

	// GET /api/articles/{id} - Article detail, counts the view
	r.Get("/api/articles/{id}", articleHandler.GetArticle)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/articles", func(r chi.Router) {
		r.Get("/", articleHandler.ListAll)
		r.Get("/{id}", articleHandler.GetArticleAdmin)
		r.Post("/", articleHandler.CreateArticle)
		r.Put("/{id}", articleHandler.UpdateArticle)
		r.Delete("/{id}", articleHandler.DeleteArticle)
	})
}
