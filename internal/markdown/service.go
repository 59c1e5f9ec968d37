package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/contentkit/go-corpus/pkg/interfaces"
)

// ErrImporterNotConfigured is returned by Import/Sync when the service was
// built without an article index.
var ErrImporterNotConfigured = errors.New("markdown service: importer not configured")

// Config controls how the markdown service discovers and parses files.
type Config struct {
	BasePath  string
	Pattern   string
	Recursive bool
	Parser    interfaces.ParseOptions
}

// Service implements interfaces.MarkdownService for filesystem-backed corpora.
type Service struct {
	cfg        Config
	parser     interfaces.MarkdownParser
	shortcodes interfaces.ShortcodeParser
	loader     *Loader
	importer   *Importer
}

// NewService constructs a markdown service using an underlying loader. When
// parser is nil, a goldmark parser with the provided default options is
// created. The shortcode parser is optional; without one, directives are
// rendered verbatim.
func NewService(cfg Config, parser interfaces.MarkdownParser, shortcodes interfaces.ShortcodeParser) (*Service, error) {
	filesystem, err := prepareFilesystem(cfg.BasePath)
	if err != nil {
		return nil, err
	}

	if parser == nil {
		parser = NewGoldmarkParser(cfg.Parser)
	}

	loader := NewLoader(filesystem, LoaderConfig{
		BasePath:  cfg.BasePath,
		Pattern:   cfg.Pattern,
		Recursive: cfg.Recursive,
	})

	return &Service{
		cfg:        cfg,
		parser:     parser,
		shortcodes: shortcodes,
		loader:     loader,
	}, nil
}

// NewServiceWithFS is the fs.FS variant of NewService, used by tests and
// embedded corpora.
func NewServiceWithFS(filesystem fs.FS, cfg Config, parser interfaces.MarkdownParser, shortcodes interfaces.ShortcodeParser) *Service {
	if parser == nil {
		parser = NewGoldmarkParser(cfg.Parser)
	}
	return &Service{
		cfg:        cfg,
		parser:     parser,
		shortcodes: shortcodes,
		loader: NewLoader(filesystem, LoaderConfig{
			BasePath:  cfg.BasePath,
			Pattern:   cfg.Pattern,
			Recursive: cfg.Recursive,
		}),
	}
}

// WithImporter attaches the article index importer used by Import and Sync.
func (s *Service) WithImporter(importer *Importer) *Service {
	s.importer = importer
	return s
}

// Load reads a single article relative to the configured base path.
func (s *Service) Load(ctx context.Context, path string, opts interfaces.LoadOptions) (*interfaces.Document, error) {
	result, err := s.loader.LoadFile(ctx, s.normalisePath(path), toLoaderParams(opts))
	if err != nil {
		return nil, err
	}
	if err := s.renderDocument(ctx, result.Document, opts.Parser); err != nil {
		return nil, err
	}
	return result.Document, nil
}

// LoadDirectory reads every article within the supplied directory.
func (s *Service) LoadDirectory(ctx context.Context, dir string, opts interfaces.LoadOptions) ([]*interfaces.Document, error) {
	results, err := s.loader.LoadDirectory(ctx, s.normalisePath(dir), toLoaderParams(opts))
	if err != nil {
		return nil, err
	}

	docs := make([]*interfaces.Document, 0, len(results))
	for _, result := range results {
		if err := s.renderDocument(ctx, result.Document, opts.Parser); err != nil {
			return nil, err
		}
		docs = append(docs, result.Document)
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].FilePath < docs[j].FilePath
	})
	return docs, nil
}

// Render parses Markdown bytes into HTML using the configured parser. When a
// shortcode parser is attached, directives are extracted to placeholders
// first so goldmark never sees the templating syntax; content with unbalanced
// directives falls back to a verbatim render and the lint layer reports it.
func (s *Service) Render(ctx context.Context, markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	source := markdown
	if s.shortcodes != nil {
		if extracted, _, err := s.shortcodes.Extract(string(markdown)); err == nil {
			source = []byte(extracted)
		}
	}
	return s.parser.ParseWithOptions(source, mergeParseOptions(s.cfg.Parser, opts))
}

// RenderDocument converts the document's Markdown body into HTML using the
// configured parser.
func (s *Service) RenderDocument(ctx context.Context, doc *interfaces.Document, opts interfaces.ParseOptions) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("markdown service: document is nil")
	}
	html, err := s.Render(ctx, doc.Body, opts)
	if err != nil {
		return nil, err
	}
	doc.BodyHTML = html
	return html, nil
}

// Import persists a single document to the article index.
func (s *Service) Import(ctx context.Context, doc *interfaces.Document, opts interfaces.ImportOptions) (*interfaces.ImportResult, error) {
	if s.importer == nil {
		return nil, ErrImporterNotConfigured
	}
	return s.importer.ImportDocument(ctx, doc, opts)
}

// ImportDirectory loads a directory and persists every document to the index.
func (s *Service) ImportDirectory(ctx context.Context, dir string, opts interfaces.ImportOptions) (*interfaces.ImportResult, error) {
	if s.importer == nil {
		return nil, ErrImporterNotConfigured
	}
	docs, err := s.LoadDirectory(ctx, dir, interfaces.LoadOptions{Pattern: opts.Pattern})
	if err != nil {
		return nil, err
	}
	return s.importer.ImportDocuments(ctx, docs, opts)
}

// Sync imports a directory and reconciles the index against it, optionally
// deleting records whose source file disappeared.
func (s *Service) Sync(ctx context.Context, dir string, opts interfaces.SyncOptions) (*interfaces.SyncResult, error) {
	if s.importer == nil {
		return nil, ErrImporterNotConfigured
	}
	docs, err := s.LoadDirectory(ctx, dir, interfaces.LoadOptions{Pattern: opts.Pattern})
	if err != nil {
		return nil, err
	}
	return s.importer.SyncDocuments(ctx, docs, opts)
}

func (s *Service) renderDocument(ctx context.Context, doc *interfaces.Document, overrides interfaces.ParseOptions) error {
	if doc == nil {
		return nil
	}
	html, err := s.Render(ctx, doc.Body, overrides)
	if err != nil {
		return fmt.Errorf("markdown render document %s: %w", doc.FilePath, err)
	}
	doc.BodyHTML = html
	return nil
}

func (s *Service) normalisePath(path string) string {
	if strings.TrimSpace(path) == "" {
		return "."
	}
	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) && strings.TrimSpace(s.cfg.BasePath) != "" {
		if rel, err := filepath.Rel(s.cfg.BasePath, clean); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(clean)
}

func mergeParseOptions(base, override interfaces.ParseOptions) interfaces.ParseOptions {
	result := base
	if len(override.Extensions) > 0 {
		result.Extensions = append([]string(nil), override.Extensions...)
	}
	if override.Sanitize {
		result.Sanitize = true
	}
	if override.HardWraps {
		result.HardWraps = true
	}
	if override.SafeMode {
		result.SafeMode = true
	}
	return result
}

func toLoaderParams(opts interfaces.LoadOptions) LoadParams {
	return LoadParams{
		Pattern:   opts.Pattern,
		Recursive: opts.Recursive,
	}
}

func prepareFilesystem(basePath string) (fs.FS, error) {
	if strings.TrimSpace(basePath) == "" {
		basePath = "."
	}
	if _, err := os.Stat(basePath); err != nil {
		return nil, fmt.Errorf("markdown service: stat base path %s: %w", basePath, err)
	}
	return os.DirFS(basePath), nil
}
