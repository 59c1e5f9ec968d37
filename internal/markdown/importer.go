package markdown

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/contentkit/go-corpus/pkg/interfaces"
)

var (
	ErrArticleServiceRequired = errors.New("markdown importer: article service is required")
	ErrURLMissing             = errors.New("markdown importer: frontmatter url is required")
)

// ImporterConfig encapsulates dependencies required to persist article documents.
type ImporterConfig struct {
	Articles interfaces.ArticleService
	// Shortcodes, when set, is used to record which directives each article
	// invokes. Extraction failures are ignored here; the lint layer reports them.
	Shortcodes interfaces.ShortcodeParser
	Logger     interfaces.Logger
}

// Importer reconciles parsed article documents with the article index. Files
// are grouped by their frontmatter url; when more than one file claims the
// same url, the lexically first path wins and the rest are reported as
// duplicates rather than merged.
type Importer struct {
	articles   interfaces.ArticleService
	shortcodes interfaces.ShortcodeParser
	logger     interfaces.Logger
}

// NewImporter builds an Importer from the supplied configuration.
func NewImporter(cfg ImporterConfig) *Importer {
	return &Importer{
		articles:   cfg.Articles,
		shortcodes: cfg.Shortcodes,
		logger:     cfg.Logger,
	}
}

// ImportDocument imports a single article document.
func (i *Importer) ImportDocument(ctx context.Context, doc *interfaces.Document, opts interfaces.ImportOptions) (*interfaces.ImportResult, error) {
	if i.articles == nil {
		return nil, ErrArticleServiceRequired
	}
	acc := newImportAccumulator()
	if err := i.applyDocument(ctx, doc, opts, acc); err != nil {
		acc.addError(err)
	}
	return acc.result(), firstError(acc.errors)
}

// ImportDocuments imports an arbitrary slice of documents, grouping them by url.
func (i *Importer) ImportDocuments(ctx context.Context, docs []*interfaces.Document, opts interfaces.ImportOptions) (*interfaces.ImportResult, error) {
	if i.articles == nil {
		return nil, ErrArticleServiceRequired
	}

	acc := newImportAccumulator()
	for _, group := range groupByURL(docs) {
		if len(group.docs) > 1 {
			acc.duplicate(group.url, paths(group.docs))
		}
		if err := i.applyDocument(ctx, group.docs[0], opts, acc); err != nil {
			acc.addError(err)
		}
	}
	return acc.result(), firstError(acc.errors)
}

// SyncDocuments imports all provided documents and optionally deletes index
// records whose source file no longer exists.
func (i *Importer) SyncDocuments(ctx context.Context, docs []*interfaces.Document, opts interfaces.SyncOptions) (*interfaces.SyncResult, error) {
	if i.articles == nil {
		return nil, ErrArticleServiceRequired
	}

	grouped := groupByURL(docs)
	acc := newSyncAccumulator()

	res := newImportAccumulator()
	for _, group := range grouped {
		if len(group.docs) > 1 {
			res.duplicate(group.url, paths(group.docs))
		}
		if err := i.applyDocument(ctx, group.docs[0], opts.ImportOptions, res); err != nil {
			res.addError(err)
		}
	}
	acc.merge(res.result())

	if opts.DeleteOrphaned {
		if err := i.deleteOrphaned(ctx, grouped, opts, acc); err != nil {
			acc.addError(err)
		}
	}

	return acc.result(), firstError(acc.errors)
}

func (i *Importer) applyDocument(ctx context.Context, doc *interfaces.Document, opts interfaces.ImportOptions, acc *importAccumulator) error {
	if doc == nil {
		return errors.New("markdown importer: nil document")
	}

	url := strings.TrimSpace(doc.FrontMatter.URL)
	if url == "" {
		return fmt.Errorf("%w: %s", ErrURLMissing, doc.FilePath)
	}

	req := buildUpsertRequest(doc, url, opts)
	req.Directives = i.directiveNames(doc)

	record, action, err := i.articles.Upsert(ctx, req)
	if err != nil {
		return fmt.Errorf("markdown importer: upsert %s: %w", url, err)
	}

	if i.logger != nil {
		i.logger.Debug("article indexed", "url", url, "path", doc.FilePath, "action", string(action))
	}

	switch action {
	case interfaces.UpsertCreated:
		acc.created(record.ID)
	case interfaces.UpsertUpdated:
		acc.updated(record.ID)
	default:
		acc.skip(record.ID)
	}
	return nil
}

func (i *Importer) deleteOrphaned(ctx context.Context, groups []urlGroup, opts interfaces.SyncOptions, acc *syncAccumulator) error {
	existing, err := i.articles.List(ctx)
	if err != nil {
		return fmt.Errorf("markdown importer: list articles: %w", err)
	}

	known := make(map[string]struct{}, len(groups))
	for _, group := range groups {
		known[group.url] = struct{}{}
	}

	for _, record := range existing {
		if _, ok := known[record.URL]; ok {
			continue
		}
		if opts.DryRun {
			acc.deleted++
			continue
		}
		if err := i.articles.Delete(ctx, record.ID); err != nil {
			return fmt.Errorf("markdown importer: delete article %s: %w", record.URL, err)
		}
		if i.logger != nil {
			i.logger.Info("article removed from index", "url", record.URL)
		}
		acc.deleted++
	}

	return nil
}

func buildUpsertRequest(doc *interfaces.Document, url string, opts interfaces.ImportOptions) interfaces.ArticleUpsertRequest {
	date := doc.FrontMatter.Date
	if date.IsZero() && doc.Path.Conforms {
		date = doc.Path.Date
	}

	return interfaces.ArticleUpsertRequest{
		URL:        url,
		Title:      strings.TrimSpace(doc.FrontMatter.Title),
		Authors:    doc.FrontMatter.Authors,
		Categories: doc.FrontMatter.Categories,
		Date:       date,
		Modified:   doc.FrontMatter.Modified,
		Excerpt:    doc.FrontMatter.Excerpt,
		Image:      doc.FrontMatter.Image,
		Path:       doc.FilePath,
		Year:       doc.Path.Year,
		Checksum:   hex.EncodeToString(doc.Checksum),
		Languages:  fenceLanguages(doc.CodeFences),
		DryRun:     opts.DryRun,
	}
}

// directiveNames returns the distinct, sorted directive names invoked by the
// document body. Content the parser rejects yields no names.
func (i *Importer) directiveNames(doc *interfaces.Document) []string {
	if i.shortcodes == nil {
		return nil
	}
	parsed, err := i.shortcodes.Parse(string(doc.Body))
	if err != nil || len(parsed) == 0 {
		return nil
	}
	seen := map[string]struct{}{}
	names := []string{}
	for _, sc := range parsed {
		name := strings.ToLower(sc.Name)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// fenceLanguages returns the distinct, sorted language tags used by the
// document's code fences.
func fenceLanguages(fences []interfaces.CodeFence) []string {
	seen := map[string]struct{}{}
	langs := []string{}
	for _, fence := range fences {
		if fence.Lang == "" {
			continue
		}
		if _, ok := seen[fence.Lang]; ok {
			continue
		}
		seen[fence.Lang] = struct{}{}
		langs = append(langs, fence.Lang)
	}
	slices.Sort(langs)
	return langs
}

type urlGroup struct {
	url  string
	docs []*interfaces.Document
}

// groupByURL buckets documents by trimmed frontmatter url, sorts each bucket
// by file path, and returns the buckets in url order so runs are deterministic.
func groupByURL(docs []*interfaces.Document) []urlGroup {
	buckets := map[string][]*interfaces.Document{}
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		url := strings.TrimSpace(doc.FrontMatter.URL)
		buckets[url] = append(buckets[url], doc)
	}

	groups := make([]urlGroup, 0, len(buckets))
	for url, group := range buckets {
		slices.SortFunc(group, func(a, b *interfaces.Document) int {
			return strings.Compare(a.FilePath, b.FilePath)
		})
		groups = append(groups, urlGroup{url: url, docs: group})
	}
	slices.SortFunc(groups, func(a, b urlGroup) int {
		return strings.Compare(a.url, b.url)
	})
	return groups
}

func paths(docs []*interfaces.Document) []string {
	out := make([]string, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.FilePath)
	}
	return out
}

type importAccumulator struct {
	createdIDs []uuid.UUID
	updatedIDs []uuid.UUID
	skippedIDs []uuid.UUID
	duplicates map[string][]string
	errors     []error
}

func newImportAccumulator() *importAccumulator {
	return &importAccumulator{
		createdIDs: []uuid.UUID{},
		updatedIDs: []uuid.UUID{},
		skippedIDs: []uuid.UUID{},
		duplicates: map[string][]string{},
		errors:     []error{},
	}
}

func (a *importAccumulator) created(id uuid.UUID) {
	if id != uuid.Nil {
		a.createdIDs = append(a.createdIDs, id)
	}
}

func (a *importAccumulator) updated(id uuid.UUID) {
	if id != uuid.Nil {
		a.updatedIDs = append(a.updatedIDs, id)
	}
}

func (a *importAccumulator) skip(id uuid.UUID) {
	if id != uuid.Nil {
		a.skippedIDs = append(a.skippedIDs, id)
	}
}

func (a *importAccumulator) duplicate(url string, files []string) {
	a.duplicates[url] = files
}

func (a *importAccumulator) addError(err error) {
	if err != nil {
		a.errors = append(a.errors, err)
	}
}

func (a *importAccumulator) result() *interfaces.ImportResult {
	return &interfaces.ImportResult{
		CreatedArticleIDs: a.createdIDs,
		UpdatedArticleIDs: a.updatedIDs,
		SkippedArticleIDs: a.skippedIDs,
		DuplicateURLs:     a.duplicates,
		Errors:            a.errors,
	}
}

type syncAccumulator struct {
	created    int
	updated    int
	deleted    int
	skipped    int
	duplicates map[string][]string
	errors     []error
}

func newSyncAccumulator() *syncAccumulator {
	return &syncAccumulator{
		errors: []error{},
	}
}

func (s *syncAccumulator) merge(res *interfaces.ImportResult) {
	if res == nil {
		return
	}
	s.created += len(res.CreatedArticleIDs)
	s.updated += len(res.UpdatedArticleIDs)
	s.skipped += len(res.SkippedArticleIDs)
	for url, paths := range res.DuplicateURLs {
		if s.duplicates == nil {
			s.duplicates = map[string][]string{}
		}
		s.duplicates[url] = append(s.duplicates[url], paths...)
	}
	s.errors = append(s.errors, res.Errors...)
}

func (s *syncAccumulator) addError(err error) {
	if err != nil {
		s.errors = append(s.errors, err)
	}
}

func (s *syncAccumulator) result() *interfaces.SyncResult {
	return &interfaces.SyncResult{
		Created:       s.created,
		Updated:       s.updated,
		Deleted:       s.deleted,
		Skipped:       s.skipped,
		DuplicateURLs: s.duplicates,
		Errors:        s.errors,
	}
}

func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
