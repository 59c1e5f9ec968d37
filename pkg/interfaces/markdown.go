package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MarkdownParser defines how raw Markdown bytes are converted into HTML.
// Implementations should be reusable across invocations so hosts can share a
// single parser instance without additional locking.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown parsing behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// MarkdownService exposes the file workflows the corpus tooling is built on:
// loading article documents from disk, rendering them to HTML, and
// synchronising them with the article index.
type MarkdownService interface {
	Load(ctx context.Context, path string, opts LoadOptions) (*Document, error)
	LoadDirectory(ctx context.Context, dir string, opts LoadOptions) ([]*Document, error)
	Render(ctx context.Context, markdown []byte, opts ParseOptions) ([]byte, error)
	RenderDocument(ctx context.Context, doc *Document, opts ParseOptions) ([]byte, error)
	Import(ctx context.Context, doc *Document, opts ImportOptions) (*ImportResult, error)
	ImportDirectory(ctx context.Context, dir string, opts ImportOptions) (*ImportResult, error)
	Sync(ctx context.Context, dir string, opts SyncOptions) (*SyncResult, error)
}

// Document represents a Markdown article with parsed metadata and content.
// The struct is shared between the interfaces package and internal
// implementations so consumers can depend on a stable contract.
type Document struct {
	FilePath     string
	Path         PathInfo
	FrontMatter  FrontMatter
	Body         []byte
	BodyHTML     []byte
	CodeFences   []CodeFence
	LastModified time.Time
	// Checksum stores a SHA-256 digest of the original file content so sync
	// workflows can detect changes without re-importing unchanged files.
	Checksum []byte
}

// PathInfo captures the metadata encoded in the corpus path convention
// content/blog/<year>/<date>-<slug>.md. Conforms is false when the file path
// does not match the convention, in which case the remaining fields are zero.
type PathInfo struct {
	Year     int
	Date     time.Time
	Slug     string
	Conforms bool
}

// FrontMatter models the article metadata block. The named fields cover every
// key the corpus uses across its eras of writing; unrecognised keys are
// preserved in Custom and the canonical merged view lives in Raw.
type FrontMatter struct {
	Title       string         `yaml:"title" json:"title"`
	Authors     []string       `yaml:"authors" json:"authors"`
	Categories  []string       `yaml:"categories" json:"categories"`
	Date        time.Time      `yaml:"date" json:"date"`
	Modified    time.Time      `yaml:"modified" json:"modified"`
	Excerpt     string         `yaml:"excerpt" json:"excerpt"`
	Description string         `yaml:"description" json:"description"`
	Image       string         `yaml:"image" json:"image"`
	URL         string         `yaml:"url" json:"url"`
	Custom      map[string]any `yaml:",inline" json:"custom"`
	Raw         map[string]any `yaml:"-" json:"raw"`
}

// CodeFence describes a fenced code block discovered in an article body.
type CodeFence struct {
	// Lang is the info string following the opening fence, lower-cased and
	// trimmed. Empty when the fence declares no language.
	Lang string
	// Line is the 1-based line number of the opening fence.
	Line int
	// Closed reports whether a matching closing fence was found.
	Closed bool
}

// LoadOptions fine-tunes how documents are discovered and parsed from disk.
type LoadOptions struct {
	Recursive *bool
	Pattern   string
	Parser    ParseOptions
}

// ImportOptions controls how article documents are written to the index.
type ImportOptions struct {
	// DryRun collects the import outcome without persisting changes.
	DryRun bool
	// Pattern overrides the loader's filename glob for directory operations.
	Pattern string
}

// SyncOptions extends ImportOptions to handle delete semantics for repeated
// synchronisation runs against the same index.
type SyncOptions struct {
	ImportOptions
	// DeleteOrphaned removes index records whose source file no longer exists.
	DeleteOrphaned bool
}

// ImportResult reports the outcome of an import operation, exposing IDs so
// callers can audit behaviour or trigger follow-up actions. DuplicateURLs
// lists url values shared by more than one source file; the corresponding
// documents are imported under the first path seen and flagged, never merged.
type ImportResult struct {
	CreatedArticleIDs []uuid.UUID
	UpdatedArticleIDs []uuid.UUID
	SkippedArticleIDs []uuid.UUID
	DuplicateURLs     map[string][]string
	Errors            []error
}

// SyncResult summarises a bulk sync run across many files. DuplicateURLs
// carries the duplicate slug map from the underlying import so sync callers
// see the defect without a separate lint pass.
type SyncResult struct {
	Created       int
	Updated       int
	Deleted       int
	Skipped       int
	DuplicateURLs map[string][]string
	Errors        []error
}
