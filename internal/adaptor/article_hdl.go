package adaptor

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/dto/request"
	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/usecase"
	"github.com/cnv1902/KhacQuanMotorbikeRental/pkg/utils"
)

type ArticleHandler struct {
	service usecase.ArticleService
	log     *zap.Logger
}

func NewArticleHandler(service usecase.ArticleService, log *zap.Logger) *ArticleHandler {
	return &ArticleHandler{
		service: service,
		log:     log.With(zap.String("handler", "article")),
	}
}

// ListPublished handles GET /api/articles (public)
func (h *ArticleHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

// ListAll handles GET /api/admin/articles
func (h *ArticleHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

func (h *ArticleHandler) list(w http.ResponseWriter, r *http.Request, publishedOnly bool) {
	query := r.URL.Query()
	page := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	articles, err := h.service.ListArticles(r.Context(), publishedOnly, page)
	if err != nil {
		handleServiceError(h.log, w, err, "list articles")
		return
	}

	utils.ResponseSuccess(w, "success", articles)
}

// GetArticle handles GET /api/articles/{id} (public, counts the view)
func (h *ArticleHandler) GetArticle(w http.ResponseWriter, r *http.Request) {
	article, err := h.service.GetArticle(r.Context(), chi.URLParam(r, "id"), true)
	if err != nil {
		handleServiceError(h.log, w, err, "get article")
		return
	}

	utils.ResponseSuccess(w, "success", article)
}

// GetArticleAdmin handles GET /api/admin/articles/{id}
func (h *ArticleHandler) GetArticleAdmin(w http.ResponseWriter, r *http.Request) {
	article, err := h.service.GetArticle(r.Context(), chi.URLParam(r, "id"), false)
	if err != nil {
		handleServiceError(h.log, w, err, "get article")
		return
	}

	utils.ResponseSuccess(w, "success", article)
}

// CreateArticle handles POST /api/admin/articles
func (h *ArticleHandler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var req request.CreateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	article, err := h.service.CreateArticle(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create article")
		return
	}

	utils.ResponseCreated(w, "success", article)
}

// UpdateArticle handles PUT /api/admin/articles/{id}
func (h *ArticleHandler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	article, err := h.service.UpdateArticle(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update article")
		return
	}

	utils.ResponseSuccess(w, "success", article)
}

// DeleteArticle handles DELETE /api/admin/articles/{id}
func (h *ArticleHandler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteArticle(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(h.log, w, err, "delete article")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
