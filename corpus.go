package corpus

import (
	"github.com/uptrace/bun"

	"github.com/contentkit/go-corpus/internal/di"
	"github.com/contentkit/go-corpus/internal/lint"
	"github.com/contentkit/go-corpus/pkg/interfaces"
)

// ArticleService exports the article index contract for consumers of the corpus package.
type ArticleService = interfaces.ArticleService

// MarkdownService exports the markdown workflow contract.
type MarkdownService = interfaces.MarkdownService

// Document exports the parsed article document type.
type Document = interfaces.Document

// FrontMatter exports the article metadata type.
type FrontMatter = interfaces.FrontMatter

// LintReport exports the aggregated lint result type.
type LintReport = interfaces.LintReport

// Issue exports the single lint finding type.
type Issue = interfaces.Issue

// Severity exports the lint severity type.
type Severity = interfaces.Severity

// Severity levels re-exported for caller convenience.
const (
	SeverityError   = interfaces.SeverityError
	SeverityWarning = interfaces.SeverityWarning
	SeverityInfo    = interfaces.SeverityInfo
)

// LintEngine exports the corpus lint engine.
type LintEngine = lint.Engine

// Module represents the top level corpus runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a corpus module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Articles returns the configured article index service.
func (m *Module) Articles() ArticleService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.ArticleService()
}

// Markdown returns the configured markdown service.
func (m *Module) Markdown() MarkdownService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.MarkdownService()
}

// Linter returns the configured lint engine; nil when the lint feature is disabled.
func (m *Module) Linter() *LintEngine {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.LintEngine()
}

// Shortcodes returns the configured directive registry.
func (m *Module) Shortcodes() interfaces.ShortcodeRegistry {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.ShortcodeRegistry()
}

// DB exposes the database handle backing the article index when storage is configured.
func (m *Module) DB() *bun.DB {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.DB()
}

// Close releases resources held by the module.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
