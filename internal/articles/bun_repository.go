package articles

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/contentkit/go-corpus/articles"
)

// BunArticleRepository adapts go-repository-bun to the article index.
type BunArticleRepository struct {
	repo repository.Repository[*articles.Article]
}

func NewBunArticleRepository(db *bun.DB) *BunArticleRepository {
	return NewBunArticleRepositoryWithCache(db, nil, nil)
}

// NewBunArticleRepositoryWithCache constructs an article repository with optional read caching.
func NewBunArticleRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunArticleRepository {
	base := NewArticleRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunArticleRepository{repo: wrapped}
}

func (r *BunArticleRepository) Create(ctx context.Context, record *articles.Article) (*articles.Article, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("article repository create: %w", err)
	}
	return created, nil
}

func (r *BunArticleRepository) Update(ctx context.Context, record *articles.Article, columns ...string) (*articles.Article, error) {
	opts := []repository.UpdateCriteria{repository.UpdateByID(record.ID.String())}
	if len(columns) > 0 {
		opts = append(opts, repository.UpdateColumns(columns...))
	}
	updated, err := r.repo.Update(ctx, record, opts...)
	if err != nil {
		return nil, mapRepositoryError(err, "article", record.ID.String())
	}
	return updated, nil
}

func (r *BunArticleRepository) GetByID(ctx context.Context, id uuid.UUID) (*articles.Article, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "article", id.String())
	}
	return result, nil
}

func (r *BunArticleRepository) GetByURL(ctx context.Context, url string) (*articles.Article, error) {
	result, err := r.repo.GetByIdentifier(ctx, url)
	if err != nil {
		return nil, mapRepositoryError(err, "article", url)
	}
	return result, nil
}

func (r *BunArticleRepository) List(ctx context.Context) ([]*articles.Article, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("url ASC")
	}))
	if err != nil {
		return nil, fmt.Errorf("article repository list: %w", err)
	}
	return records, nil
}

func (r *BunArticleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &articles.Article{ID: id}); err != nil {
		return mapRepositoryError(err, "article", id.String())
	}
	return nil
}

// BunArticleRevisionRepository stores article snapshots.
type BunArticleRevisionRepository struct {
	repo repository.Repository[*articles.ArticleRevision]
}

func NewBunArticleRevisionRepository(db *bun.DB) *BunArticleRevisionRepository {
	return &BunArticleRevisionRepository{repo: NewArticleRevisionRepository(db)}
}

func (r *BunArticleRevisionRepository) Create(ctx context.Context, record *articles.ArticleRevision) (*articles.ArticleRevision, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("revision repository create: %w", err)
	}
	return created, nil
}

func (r *BunArticleRevisionRepository) GetByID(ctx context.Context, id uuid.UUID) (*articles.ArticleRevision, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "article_revision", id.String())
	}
	return result, nil
}

func (r *BunArticleRevisionRepository) ListByArticle(ctx context.Context, articleID uuid.UUID) ([]*articles.ArticleRevision, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("article_id = ?", articleID.String()).Order("created_at ASC")
	}))
	if err != nil {
		return nil, fmt.Errorf("revision repository list: %w", err)
	}
	return records, nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &articles.NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
