package articles

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/contentkit/go-corpus/articles"
)

func NewArticleRepository(db *bun.DB) repository.Repository[*articles.Article] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*articles.Article]{
		NewRecord: func() *articles.Article { return &articles.Article{} },
		GetID: func(a *articles.Article) uuid.UUID {
			return a.ID
		},
		SetID: func(a *articles.Article, id uuid.UUID) {
			a.ID = id
		},
		GetIdentifier: func() string {
			return "url"
		},
		GetIdentifierValue: func(a *articles.Article) string {
			return a.URL
		},
	})
}

func NewArticleRevisionRepository(db *bun.DB) repository.Repository[*articles.ArticleRevision] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*articles.ArticleRevision]{
		NewRecord: func() *articles.ArticleRevision { return &articles.ArticleRevision{} },
		GetID: func(r *articles.ArticleRevision) uuid.UUID {
			return r.ID
		},
		SetID: func(r *articles.ArticleRevision, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(r *articles.ArticleRevision) string {
			if r == nil {
				return ""
			}
			return r.ID.String()
		},
	})
}
