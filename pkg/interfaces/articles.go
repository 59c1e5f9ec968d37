package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ArticleService is the index contract the markdown importer drives. The
// concrete implementation lives in the articles package; the indirection keeps
// internal workflows testable with stubs.
type ArticleService interface {
	Upsert(ctx context.Context, req ArticleUpsertRequest) (*ArticleRecord, UpsertAction, error)
	GetByURL(ctx context.Context, url string) (*ArticleRecord, error)
	List(ctx context.Context) ([]*ArticleRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UpsertAction reports what an Upsert call did with the supplied document.
type UpsertAction string

const (
	UpsertCreated UpsertAction = "created"
	UpsertUpdated UpsertAction = "updated"
	UpsertSkipped UpsertAction = "skipped"
)

// ArticleUpsertRequest carries the document fields the index persists.
type ArticleUpsertRequest struct {
	URL        string
	Title      string
	Authors    []string
	Categories []string
	Date       time.Time
	Modified   time.Time
	Excerpt    string
	Image      string
	Path       string
	Year       int
	Checksum   string
	Languages  []string
	Directives []string
	DryRun     bool
}

// ArticleRecord is the index projection of a stored article.
type ArticleRecord struct {
	ID         uuid.UUID
	URL        string
	Title      string
	Authors    []string
	Categories []string
	Date       time.Time
	Modified   time.Time
	Excerpt    string
	Image      string
	Path       string
	Year       int
	Checksum   string
	Languages  []string
	Directives []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
