package articles

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Article is the canonical index record for a blog post. The url key from
// front matter identifies the article across imports; the path records which
// source file currently backs it.
type Article struct {
	bun.BaseModel `bun:"table:articles,alias:a"`

	ID         uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	URL        string     `bun:"url,notnull,unique" json:"url"`
	Title      string     `bun:"title,notnull" json:"title"`
	Authors    []string   `bun:"authors,type:jsonb" json:"authors,omitempty"`
	Categories []string   `bun:"categories,type:jsonb" json:"categories,omitempty"`
	Date       time.Time  `bun:"date,nullzero" json:"date"`
	Modified   *time.Time `bun:"modified,nullzero" json:"modified,omitempty"`
	Excerpt    string     `bun:"excerpt" json:"excerpt,omitempty"`
	Image      string     `bun:"image" json:"image,omitempty"`
	Path       string     `bun:"path,notnull" json:"path"`
	Year       int        `bun:"year" json:"year"`
	Checksum   string     `bun:"checksum,notnull" json:"checksum"`
	Languages  []string   `bun:"languages,type:jsonb" json:"languages,omitempty"`
	Directives []string   `bun:"directives,type:jsonb" json:"directives,omitempty"`
	CreatedAt  time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Revisions []*ArticleRevision `bun:"rel:has-many,join:id=article_id" json:"revisions,omitempty"`
}

// ArticleRevision captures an immutable snapshot of an article at import
// time, keyed by the content checksum so re-imports of identical content do
// not grow history.
type ArticleRevision struct {
	bun.BaseModel `bun:"table:article_revisions,alias:ar"`

	ID        uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	ArticleID uuid.UUID      `bun:"article_id,notnull,type:uuid" json:"article_id"`
	Checksum  string         `bun:"checksum,notnull" json:"checksum"`
	Path      string         `bun:"path,notnull" json:"path"`
	Snapshot  map[string]any `bun:"snapshot,type:jsonb,notnull" json:"snapshot"`
	CreatedAt time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`

	Article *Article `bun:"rel:belongs-to,join:article_id=id" json:"article,omitempty"`
}
