package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/data/entity"
	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/data/repository"
	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/dto/request"
	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/dto/response"
	"github.com/cnv1902/KhacQuanMotorbikeRental/pkg/database"
	"github.com/cnv1902/KhacQuanMotorbikeRental/pkg/utils"
)

type ArticleService interface {
	CreateArticle(ctx context.Context, req *request.CreateArticleRequest) (*response.ArticleResponse, error)
	GetArticle(ctx context.Context, articleID string, countView bool) (*response.ArticleResponse, error)
	ListArticles(ctx context.Context, publishedOnly bool, page *request.PaginatedRequest) ([]response.ArticleResponse, error)
	UpdateArticle(ctx context.Context, articleID string, req *request.UpdateArticleRequest) (*response.ArticleResponse, error)
	DeleteArticle(ctx context.Context, articleID string) error
}

type articleService struct {
	db   database.PgxIface
	repo *repository.Repository
	log  *zap.Logger
}

func NewArticleService(db database.PgxIface, repo *repository.Repository, log *zap.Logger) ArticleService {
	return &articleService{
		db:   db,
		repo: repo,
		log:  log.With(zap.String("service", "article")),
	}
}

func (s *articleService) CreateArticle(ctx context.Context, req *request.CreateArticleRequest) (*response.ArticleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	article := &entity.Article{
		Base:          entity.Base{ID: utils.GenerateUUID(), CreatedAt: now, UpdatedAt: now},
		Title:         req.Title,
		Content:       req.Content,
		FeaturedImage: req.FeaturedImage,
		IsPublished:   req.IsPublished,
	}
	if article.IsPublished {
		article.PublishedAt = &now
	}

	if err := s.repo.Article.Create(ctx, s.db, article); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	resp := response.ArticleToResponse(article)
	return &resp, nil
}

func (s *articleService) GetArticle(ctx context.Context, articleID string, countView bool) (*response.ArticleResponse, error) {
	id, err := uuid.Parse(articleID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid article ID %s", ErrValidation, articleID)
	}

	article, err := s.repo.Article.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("find article: %w", err)
	}
	if article == nil {
		return nil, fmt.Errorf("%w: article %s", ErrNotFound, articleID)
	}

	if countView {
		if err := s.repo.Article.IncrementViewCount(ctx, s.db, id); err != nil {
			s.log.Warn("Failed to count view", zap.Error(err), zap.String("article_id", articleID))
		} else {
			article.ViewCount++
		}
	}

	resp := response.ArticleToResponse(article)
	return &resp, nil
}

func (s *articleService) ListArticles(ctx context.Context, publishedOnly bool, page *request.PaginatedRequest) ([]response.ArticleResponse, error) {
	articles, err := s.repo.Article.FindAll(ctx, s.db, publishedOnly, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	data := make([]response.ArticleResponse, len(articles))
	for i, article := range articles {
		data[i] = response.ArticleToResponse(article)
	}
	return data, nil
}

func (s *articleService) UpdateArticle(ctx context.Context, articleID string, req *request.UpdateArticleRequest) (*response.ArticleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}
	id, err := uuid.Parse(articleID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid article ID %s", ErrValidation, articleID)
	}

	article, err := s.repo.Article.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("find article: %w", err)
	}
	if article == nil {
		return nil, fmt.Errorf("%w: article %s", ErrNotFound, articleID)
	}

	now := time.Now()
	if req.Title != nil {
		article.Title = *req.Title
	}
	if req.Content != nil {
		article.Content = req.Content
	}
	if req.FeaturedImage != nil {
		article.FeaturedImage = req.FeaturedImage
	}
	if req.IsPublished != nil {
		if *req.IsPublished && !article.IsPublished {
			article.PublishedAt = &now
		}
		article.IsPublished = *req.IsPublished
	}

	article.UpdatedAt = now
	if err := s.repo.Article.Update(ctx, s.db, article); err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}

	resp := response.ArticleToResponse(article)
	return &resp, nil
}

func (s *articleService) DeleteArticle(ctx context.Context, articleID string) error {
	id, err := uuid.Parse(articleID)
	if err != nil {
		return fmt.Errorf("%w: invalid article ID %s", ErrValidation, articleID)
	}
	if err := s.repo.Article.Delete(ctx, s.db, id); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}
