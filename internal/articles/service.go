package articles

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/contentkit/go-corpus/articles"
	"github.com/contentkit/go-corpus/internal/identity"
	"github.com/contentkit/go-corpus/pkg/interfaces"
)

// ArticleRepository abstracts storage operations for index records.
type ArticleRepository interface {
	Create(ctx context.Context, record *articles.Article) (*articles.Article, error)
	Update(ctx context.Context, record *articles.Article, columns ...string) (*articles.Article, error)
	GetByID(ctx context.Context, id uuid.UUID) (*articles.Article, error)
	GetByURL(ctx context.Context, url string) (*articles.Article, error)
	List(ctx context.Context) ([]*articles.Article, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// RevisionRepository stores import-time snapshots.
type RevisionRepository interface {
	Create(ctx context.Context, record *articles.ArticleRevision) (*articles.ArticleRevision, error)
	ListByArticle(ctx context.Context, articleID uuid.UUID) ([]*articles.ArticleRevision, error)
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*Service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *Service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithLogger attaches a logger for upsert tracing.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRevisions toggles snapshot capture on create and update.
func WithRevisions(enabled bool) ServiceOption {
	return func(s *Service) {
		s.revisionsEnabled = enabled
	}
}

// Service maintains the persistent article index. Article IDs derive
// deterministically from the url key, so repeated imports of the same corpus
// are idempotent.
type Service struct {
	repo             ArticleRepository
	revisions        RevisionRepository
	now              func() time.Time
	logger           interfaces.Logger
	revisionsEnabled bool
}

// NewService constructs the index service.
func NewService(repo ArticleRepository, revisions RevisionRepository, opts ...ServiceOption) *Service {
	svc := &Service{
		repo:             repo,
		revisions:        revisions,
		now:              time.Now,
		revisionsEnabled: revisions != nil,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.revisions == nil {
		svc.revisionsEnabled = false
	}
	return svc
}

// Upsert creates or refreshes the index record for the supplied document
// fields. Records whose checksum matches the stored one are skipped.
func (s *Service) Upsert(ctx context.Context, req interfaces.ArticleUpsertRequest) (*interfaces.ArticleRecord, interfaces.UpsertAction, error) {
	if err := validateUpsertRequest(req); err != nil {
		return nil, interfaces.UpsertSkipped, err
	}

	url := strings.TrimSpace(req.URL)
	id := identity.ArticleUUID(url)

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil && !articles.IsNotFound(err) {
		return nil, interfaces.UpsertSkipped, fmt.Errorf("articles: lookup %s: %w", url, err)
	}

	if existing == nil {
		record := s.buildRecord(id, url, req)
		if req.DryRun {
			return toRecordView(record), interfaces.UpsertCreated, nil
		}
		created, err := s.repo.Create(ctx, record)
		if err != nil {
			return nil, interfaces.UpsertSkipped, fmt.Errorf("articles: create %s: %w", url, err)
		}
		if err := s.captureRevision(ctx, created, req); err != nil {
			return nil, interfaces.UpsertSkipped, err
		}
		return toRecordView(created), interfaces.UpsertCreated, nil
	}

	if existing.Checksum == req.Checksum {
		return toRecordView(existing), interfaces.UpsertSkipped, nil
	}

	if req.DryRun {
		return toRecordView(existing), interfaces.UpsertUpdated, nil
	}

	record := s.buildRecord(id, url, req)
	record.CreatedAt = existing.CreatedAt
	updated, err := s.repo.Update(ctx, record,
		"title", "authors", "categories", "date", "modified",
		"excerpt", "image", "path", "year", "checksum", "languages", "directives", "updated_at",
	)
	if err != nil {
		return nil, interfaces.UpsertSkipped, fmt.Errorf("articles: update %s: %w", url, err)
	}
	if err := s.captureRevision(ctx, updated, req); err != nil {
		return nil, interfaces.UpsertSkipped, err
	}
	return toRecordView(updated), interfaces.UpsertUpdated, nil
}

// GetByURL resolves a single index record by its url key.
func (s *Service) GetByURL(ctx context.Context, url string) (*interfaces.ArticleRecord, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, articles.ErrURLRequired
	}
	record, err := s.repo.GetByURL(ctx, url)
	if err != nil {
		return nil, err
	}
	return toRecordView(record), nil
}

// List returns all index records ordered by url.
func (s *Service) List(ctx context.Context) ([]*interfaces.ArticleRecord, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]*interfaces.ArticleRecord, 0, len(records))
	for _, record := range records {
		views = append(views, toRecordView(record))
	}
	return views, nil
}

// Delete removes an index record.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return articles.ErrIDRequired
	}
	return s.repo.Delete(ctx, id)
}

// Revisions lists snapshot history for an article, oldest first.
func (s *Service) Revisions(ctx context.Context, articleID uuid.UUID) ([]*articles.ArticleRevision, error) {
	if s.revisions == nil {
		return nil, nil
	}
	return s.revisions.ListByArticle(ctx, articleID)
}

func (s *Service) buildRecord(id uuid.UUID, url string, req interfaces.ArticleUpsertRequest) *articles.Article {
	now := s.now().UTC()
	record := &articles.Article{
		ID:         id,
		URL:        url,
		Title:      strings.TrimSpace(req.Title),
		Authors:    append([]string(nil), req.Authors...),
		Categories: append([]string(nil), req.Categories...),
		Date:       req.Date,
		Excerpt:    req.Excerpt,
		Image:      req.Image,
		Path:       req.Path,
		Year:       req.Year,
		Checksum:   req.Checksum,
		Languages:  append([]string(nil), req.Languages...),
		Directives: append([]string(nil), req.Directives...),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if !req.Modified.IsZero() {
		modified := req.Modified
		record.Modified = &modified
	}
	return record
}

func (s *Service) captureRevision(ctx context.Context, record *articles.Article, req interfaces.ArticleUpsertRequest) error {
	if !s.revisionsEnabled {
		return nil
	}
	revision := &articles.ArticleRevision{
		ID:        identity.RevisionUUID(record.ID, record.Checksum),
		ArticleID: record.ID,
		Checksum:  record.Checksum,
		Path:      record.Path,
		Snapshot: map[string]any{
			"title":      record.Title,
			"authors":    record.Authors,
			"categories": record.Categories,
			"excerpt":    record.Excerpt,
			"image":      record.Image,
			"year":       record.Year,
			"languages":  record.Languages,
			"directives": record.Directives,
		},
		CreatedAt: s.now().UTC(),
	}
	if _, err := s.revisions.Create(ctx, revision); err != nil {
		return fmt.Errorf("articles: capture revision %s: %w", record.URL, err)
	}
	if s.logger != nil {
		s.logger.Debug("revision captured", "url", record.URL, "checksum", record.Checksum)
	}
	return nil
}

func validateUpsertRequest(req interfaces.ArticleUpsertRequest) error {
	if strings.TrimSpace(req.URL) == "" {
		return articles.ErrURLRequired
	}
	if strings.TrimSpace(req.Path) == "" {
		return articles.ErrPathRequired
	}
	if strings.TrimSpace(req.Checksum) == "" {
		return articles.ErrChecksumRequired
	}
	return nil
}

func toRecordView(record *articles.Article) *interfaces.ArticleRecord {
	if record == nil {
		return nil
	}
	view := &interfaces.ArticleRecord{
		ID:         record.ID,
		URL:        record.URL,
		Title:      record.Title,
		Authors:    append([]string(nil), record.Authors...),
		Categories: append([]string(nil), record.Categories...),
		Date:       record.Date,
		Excerpt:    record.Excerpt,
		Image:      record.Image,
		Path:       record.Path,
		Year:       record.Year,
		Checksum:   record.Checksum,
		Languages:  append([]string(nil), record.Languages...),
		Directives: append([]string(nil), record.Directives...),
		CreatedAt:  record.CreatedAt,
		UpdatedAt:  record.UpdatedAt,
	}
	if record.Modified != nil {
		view.Modified = *record.Modified
	}
	return view
}

var _ interfaces.ArticleService = (*Service)(nil)
