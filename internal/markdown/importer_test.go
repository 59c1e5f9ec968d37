package markdown

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/contentkit/go-corpus/pkg/interfaces"
)

type stubArticleService struct {
	records map[string]*interfaces.ArticleRecord
	deleted []uuid.UUID
	listErr error
}

func newStubArticleService() *stubArticleService {
	return &stubArticleService{
		records: map[string]*interfaces.ArticleRecord{},
	}
}

func (s *stubArticleService) Upsert(ctx context.Context, req interfaces.ArticleUpsertRequest) (*interfaces.ArticleRecord, interfaces.UpsertAction, error) {
	existing, ok := s.records[req.URL]
	if ok {
		if existing.Checksum == req.Checksum {
			return existing, interfaces.UpsertSkipped, nil
		}
		if req.DryRun {
			return existing, interfaces.UpsertSkipped, nil
		}
		existing.Title = req.Title
		existing.Checksum = req.Checksum
		existing.Path = req.Path
		return existing, interfaces.UpsertUpdated, nil
	}

	record := &interfaces.ArticleRecord{
		ID:        uuid.New(),
		URL:       req.URL,
		Title:     req.Title,
		Path:      req.Path,
		Checksum:  req.Checksum,
		Languages: req.Languages,
	}
	if req.DryRun {
		return record, interfaces.UpsertSkipped, nil
	}
	s.records[req.URL] = record
	return record, interfaces.UpsertCreated, nil
}

func (s *stubArticleService) GetByURL(ctx context.Context, url string) (*interfaces.ArticleRecord, error) {
	record, ok := s.records[url]
	if !ok {
		return nil, errors.New("not found")
	}
	return record, nil
}

func (s *stubArticleService) List(ctx context.Context) ([]*interfaces.ArticleRecord, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]*interfaces.ArticleRecord, 0, len(s.records))
	for _, record := range s.records {
		out = append(out, record)
	}
	return out, nil
}

func (s *stubArticleService) Delete(ctx context.Context, id uuid.UUID) error {
	for url, record := range s.records {
		if record.ID == id {
			delete(s.records, url)
			s.deleted = append(s.deleted, id)
			return nil
		}
	}
	return errors.New("not found")
}

func newImportTestService(tb testing.TB, articles interfaces.ArticleService) *Service {
	tb.Helper()
	svc := newTestService(tb, true)
	return svc.WithImporter(NewImporter(ImporterConfig{Articles: articles}))
}

func TestImportDirectoryCreatesArticles(t *testing.T) {
	articles := newStubArticleService()
	svc := newImportTestService(t, articles)

	result, err := svc.ImportDirectory(context.Background(), "content/blog", interfaces.ImportOptions{})
	if err != nil {
		t.Fatalf("ImportDirectory: %v", err)
	}

	// Two distinct urls: the quick sort pair shares one.
	if len(result.CreatedArticleIDs) != 2 {
		t.Fatalf("expected 2 created articles, got %#v", result)
	}

	record := articles.records["merge sort in kotlin"]
	if record == nil {
		t.Fatalf("merge sort article not indexed")
	}
	if record.Checksum == "" {
		t.Fatalf("expected checksum recorded")
	}
	if len(record.Languages) != 1 || record.Languages[0] != "kotlin" {
		t.Fatalf("unexpected languages %#v", record.Languages)
	}
}

func TestImportDirectoryReportsDuplicates(t *testing.T) {
	articles := newStubArticleService()
	svc := newImportTestService(t, articles)

	result, err := svc.ImportDirectory(context.Background(), "content/blog", interfaces.ImportOptions{})
	if err != nil {
		t.Fatalf("ImportDirectory: %v", err)
	}

	files, ok := result.DuplicateURLs["quick sort in java"]
	if !ok {
		t.Fatalf("expected duplicate url reported, got %#v", result.DuplicateURLs)
	}
	if len(files) != 2 {
		t.Fatalf("expected both files listed, got %#v", files)
	}

	// The lexically first file wins; the newer one is never merged in.
	record := articles.records["quick sort in java"]
	if record == nil {
		t.Fatalf("quick sort article not indexed")
	}
	if record.Path != "content/blog/2014/2014-06-02-quick-sort-in-java.md" {
		t.Fatalf("expected first path to win, got %s", record.Path)
	}
	if record.Title != "Quick Sort in Java" {
		t.Fatalf("unexpected title %q", record.Title)
	}
}

func TestImportSecondRunSkipsUnchanged(t *testing.T) {
	articles := newStubArticleService()
	svc := newImportTestService(t, articles)

	if _, err := svc.ImportDirectory(context.Background(), "content/blog", interfaces.ImportOptions{}); err != nil {
		t.Fatalf("initial import: %v", err)
	}

	result, err := svc.ImportDirectory(context.Background(), "content/blog", interfaces.ImportOptions{})
	if err != nil {
		t.Fatalf("second import: %v", err)
	}

	if len(result.CreatedArticleIDs) != 0 || len(result.UpdatedArticleIDs) != 0 {
		t.Fatalf("expected no changes on second run, got %#v", result)
	}
	if len(result.SkippedArticleIDs) != 2 {
		t.Fatalf("expected 2 skipped articles, got %#v", result)
	}
}

func TestImportDryRunPersistsNothing(t *testing.T) {
	articles := newStubArticleService()
	svc := newImportTestService(t, articles)

	result, err := svc.ImportDirectory(context.Background(), "content/blog", interfaces.ImportOptions{DryRun: true})
	if err != nil {
		t.Fatalf("ImportDirectory: %v", err)
	}

	if len(articles.records) != 0 {
		t.Fatalf("expected no records persisted, got %#v", articles.records)
	}
	if len(result.SkippedArticleIDs) != 2 {
		t.Fatalf("expected dry run to report skips, got %#v", result)
	}
}

func TestImportMissingURL(t *testing.T) {
	articles := newStubArticleService()
	importer := NewImporter(ImporterConfig{Articles: articles})

	doc := &interfaces.Document{FilePath: "content/blog/2024/2024-01-01-missing.md"}
	result, err := importer.ImportDocument(context.Background(), doc, interfaces.ImportOptions{})
	if !errors.Is(err, ErrURLMissing) {
		t.Fatalf("expected ErrURLMissing, got %v", err)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected error collected in result, got %#v", result)
	}
}

func TestImportDirectoryHonoursPatternOverride(t *testing.T) {
	articles := newStubArticleService()
	svc := newImportTestService(t, articles)

	result, err := svc.ImportDirectory(context.Background(), "content/blog", interfaces.ImportOptions{
		Pattern: "2024-03-*.md",
	})
	if err != nil {
		t.Fatalf("ImportDirectory: %v", err)
	}

	if len(result.CreatedArticleIDs) != 1 {
		t.Fatalf("expected only the matching file imported, got %#v", result)
	}
	if articles.records["merge sort in kotlin"] == nil {
		t.Fatalf("merge sort article not indexed")
	}
	if _, ok := articles.records["quick sort in java"]; ok {
		t.Fatalf("expected non-matching files to be skipped")
	}
}

func TestSyncReportsDuplicates(t *testing.T) {
	articles := newStubArticleService()
	svc := newImportTestService(t, articles)

	result, err := svc.Sync(context.Background(), "content/blog", interfaces.SyncOptions{})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}

	files, ok := result.DuplicateURLs["quick sort in java"]
	if !ok {
		t.Fatalf("expected duplicate url carried into sync result, got %#v", result.DuplicateURLs)
	}
	if len(files) != 2 {
		t.Fatalf("expected both files listed, got %#v", files)
	}
}

func TestSyncHonoursPatternOverride(t *testing.T) {
	articles := newStubArticleService()
	svc := newImportTestService(t, articles)

	result, err := svc.Sync(context.Background(), "content/blog", interfaces.SyncOptions{
		ImportOptions: interfaces.ImportOptions{Pattern: "2024-03-*.md"},
	})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}

	if result.Created != 1 {
		t.Fatalf("expected only the matching file synced, got %#v", result)
	}
	if _, ok := articles.records["quick sort in java"]; ok {
		t.Fatalf("expected non-matching files to be skipped")
	}
}

func TestSyncDeletesOrphans(t *testing.T) {
	articles := newStubArticleService()
	svc := newImportTestService(t, articles)

	// Seed a record whose source file does not exist.
	orphan := uuid.New()
	articles.records["removed article"] = &interfaces.ArticleRecord{
		ID:  orphan,
		URL: "removed article",
	}

	result, err := svc.Sync(context.Background(), "content/blog", interfaces.SyncOptions{DeleteOrphaned: true})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}

	if result.Created != 2 {
		t.Fatalf("expected 2 created, got %#v", result)
	}
	if result.Deleted != 1 {
		t.Fatalf("expected orphan deleted, got %#v", result)
	}
	if _, ok := articles.records["removed article"]; ok {
		t.Fatalf("expected orphan removed from index")
	}
}

func TestSyncWithoutDeleteKeepsOrphans(t *testing.T) {
	articles := newStubArticleService()
	svc := newImportTestService(t, articles)

	articles.records["removed article"] = &interfaces.ArticleRecord{
		ID:  uuid.New(),
		URL: "removed article",
	}

	result, err := svc.Sync(context.Background(), "content/blog", interfaces.SyncOptions{})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}

	if result.Deleted != 0 {
		t.Fatalf("expected no deletions, got %#v", result)
	}
	if _, ok := articles.records["removed article"]; !ok {
		t.Fatalf("expected orphan preserved")
	}
}
