package repository

import (
	"context"
	"fmt"

	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/data/entity"
	"github.com/cnv1902/KhacQuanMotorbikeRental/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ArticleRepository interface {
	Create(ctx context.Context, qx database.Querier, article *entity.Article) error
	FindByID(ctx context.Context, qx database.Querier, id uuid.UUID) (*entity.Article, error)
	FindAll(ctx context.Context, qx database.Querier, publishedOnly bool, limit, offset int) ([]*entity.Article, error)
	Update(ctx context.Context, qx database.Querier, article *entity.Article) error
	IncrementViewCount(ctx context.Context, qx database.Querier, id uuid.UUID) error
	Delete(ctx context.Context, qx database.Querier, id uuid.UUID) error
}

type articleRepository struct {
	log *zap.Logger
}

func NewArticleRepository(log *zap.Logger) ArticleRepository {
	return &articleRepository{
		log: log.With(zap.String("repository", "article")),
	}
}

const articleColumns = `id, title, content, featured_image, is_published, view_count, published_at, created_at, updated_at`

func scanArticle(row pgx.Row) (*entity.Article, error) {
	var a entity.Article
	err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Content,
		&a.FeaturedImage,
		&a.IsPublished,
		&a.ViewCount,
		&a.PublishedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *articleRepository) Create(ctx context.Context, qx database.Querier, article *entity.Article) error {
	query := `
		INSERT INTO articles (id, title, content, featured_image, is_published, view_count, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := qx.Exec(ctx, query,
		article.ID,
		article.Title,
		article.Content,
		article.FeaturedImage,
		article.IsPublished,
		article.ViewCount,
		article.PublishedAt,
		article.CreatedAt,
		article.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create article", zap.Error(err), zap.String("title", article.Title))
		return fmt.Errorf("create article: %w", err)
	}

	return nil
}

func (r *articleRepository) FindByID(ctx context.Context, qx database.Querier, id uuid.UUID) (*entity.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`

	article, err := scanArticle(qx.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find article by ID", zap.Error(err), zap.String("article_id", id.String()))
		return nil, fmt.Errorf("find article by ID %s: %w", id.String(), err)
	}

	return article, nil
}

func (r *articleRepository) FindAll(ctx context.Context, qx database.Querier, publishedOnly bool, limit, offset int) ([]*entity.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles`
	if publishedOnly {
		query += ` WHERE is_published = TRUE`
	}
	query += fmt.Sprintf(` ORDER BY published_at DESC NULLS LAST, created_at DESC LIMIT %d OFFSET %d`, limit, offset)

	rows, err := qx.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list articles", zap.Error(err))
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	var articles []*entity.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, article)
	}

	return articles, rows.Err()
}

func (r *articleRepository) Update(ctx context.Context, qx database.Querier, article *entity.Article) error {
	query := `
		UPDATE articles
		SET title = $2, content = $3, featured_image = $4, is_published = $5,
		    published_at = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := qx.Exec(ctx, query,
		article.ID,
		article.Title,
		article.Content,
		article.FeaturedImage,
		article.IsPublished,
		article.PublishedAt,
		article.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update article", zap.Error(err), zap.String("article_id", article.ID.String()))
		return fmt.Errorf("update article %s: %w", article.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("article %s not found", article.ID.String())
	}

	return nil
}

func (r *articleRepository) IncrementViewCount(ctx context.Context, qx database.Querier, id uuid.UUID) error {
	query := `UPDATE articles SET view_count = view_count + 1 WHERE id = $1`

	if _, err := qx.Exec(ctx, query, id); err != nil {
		r.log.Error("Failed to increment view count", zap.Error(err), zap.String("article_id", id.String()))
		return fmt.Errorf("increment view count for article %s: %w", id.String(), err)
	}

	return nil
}

func (r *articleRepository) Delete(ctx context.Context, qx database.Querier, id uuid.UUID) error {
	query := `DELETE FROM articles WHERE id = $1`

	result, err := qx.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete article", zap.Error(err), zap.String("article_id", id.String()))
		return fmt.Errorf("delete article %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("article %s not found", id.String())
	}

	return nil
}
