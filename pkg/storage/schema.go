package storage

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/contentkit/go-corpus/articles"
)

// EnsureSchema creates the index tables when they do not exist. Migration
// tooling is out of scope; the schema is small enough to manage in place.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*articles.Article)(nil),
		(*articles.ArticleRevision)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("storage: create table for %T: %w", model, err)
		}
	}
	return nil
}
