package di

import (
	"context"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	articlesvc "github.com/contentkit/go-corpus/internal/articles"
	"github.com/contentkit/go-corpus/internal/lint"
	"github.com/contentkit/go-corpus/internal/logging"
	"github.com/contentkit/go-corpus/internal/logging/console"
	"github.com/contentkit/go-corpus/internal/logging/gologger"
	"github.com/contentkit/go-corpus/internal/markdown"
	"github.com/contentkit/go-corpus/internal/runtimeconfig"
	"github.com/contentkit/go-corpus/internal/shortcode"
	"github.com/contentkit/go-corpus/internal/shortcode/parser"
	"github.com/contentkit/go-corpus/pkg/interfaces"
	"github.com/contentkit/go-corpus/pkg/storage"
)

// Container wires module dependencies: storage, the article index, the
// markdown service, the lint engine, and logging.
type Container struct {
	Config runtimeconfig.Config

	bunDB   *bun.DB
	ownedDB bool

	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	loggerProvider interfaces.LoggerProvider

	shortcodeRegistry interfaces.ShortcodeRegistry
	shortcodeParser   interfaces.ShortcodeParser

	articleSvc  interfaces.ArticleService
	markdownSvc interfaces.MarkdownService
	lintEngine  *lint.Engine
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB supplies an existing database handle. The container will not
// close handles it did not open.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default repository cache bindings.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the logger provider resolved from configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithArticleService overrides the default article index binding.
func WithArticleService(svc interfaces.ArticleService) Option {
	return func(c *Container) {
		c.articleSvc = svc
	}
}

// WithMarkdownService overrides the default markdown service binding.
func WithMarkdownService(svc interfaces.MarkdownService) Option {
	return func(c *Container) {
		c.markdownSvc = svc
	}
}

// WithShortcodeRegistry overrides the default directive registry.
func WithShortcodeRegistry(registry interfaces.ShortcodeRegistry) Option {
	return func(c *Container) {
		c.shortcodeRegistry = registry
	}
}

// WithShortcodeParser overrides the default Hugo-style directive parser.
func WithShortcodeParser(p interfaces.ShortcodeParser) Option {
	return func(c *Container) {
		c.shortcodeParser = p
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cacheTTL,
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	c.configureShortcodes()
	c.configureCacheDefaults()

	if err := c.configureArticles(); err != nil {
		return nil, err
	}
	if err := c.configureMarkdown(); err != nil {
		return nil, err
	}
	c.configureLint()

	return c, nil
}

// LoggerProvider exposes the resolved logger provider; may be nil when the
// logging feature is disabled and no override was supplied.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// DB exposes the underlying database handle when storage was configured.
func (c *Container) DB() *bun.DB {
	return c.bunDB
}

// ArticleService returns the configured article index service.
func (c *Container) ArticleService() interfaces.ArticleService {
	return c.articleSvc
}

// MarkdownService returns the configured markdown service.
func (c *Container) MarkdownService() interfaces.MarkdownService {
	return c.markdownSvc
}

// LintEngine returns the configured lint engine; nil when the lint feature is disabled.
func (c *Container) LintEngine() *lint.Engine {
	return c.lintEngine
}

// ShortcodeRegistry returns the directive registry.
func (c *Container) ShortcodeRegistry() interfaces.ShortcodeRegistry {
	return c.shortcodeRegistry
}

// ShortcodeParser returns the directive parser.
func (c *Container) ShortcodeParser() interfaces.ShortcodeParser {
	return c.shortcodeParser
}

// Close releases resources the container opened itself. Database handles
// supplied via WithBunDB are left untouched.
func (c *Container) Close() error {
	if c == nil || c.bunDB == nil || !c.ownedDB {
		return nil
	}
	return c.bunDB.Close()
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		minLevel := console.ParseLevel(c.Config.Logging.Level)
		c.loggerProvider = console.NewProvider(console.Options{MinLevel: &minLevel})
	}
	return nil
}

func (c *Container) configureShortcodes() {
	if c.shortcodeRegistry == nil {
		c.shortcodeRegistry = shortcode.DefaultRegistry()
	}
	if c.shortcodeParser == nil {
		c.shortcodeParser = parser.NewHugoParser()
	}
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		cfg.TTL = c.cacheTTL
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureArticles() error {
	if c.articleSvc != nil || !c.Config.Features.Import {
		return nil
	}

	if c.bunDB == nil {
		db, err := storage.Open(storage.Config{
			Driver:       c.Config.Storage.Driver,
			DSN:          c.Config.Storage.DSN,
			MaxOpenConns: c.Config.Storage.MaxOpenConns,
		})
		if err != nil {
			return err
		}
		if err := storage.EnsureSchema(context.Background(), db); err != nil {
			_ = db.Close()
			return err
		}
		c.bunDB = db
		c.ownedDB = true
	}

	repo := articlesvc.NewBunArticleRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)

	var revisions articlesvc.RevisionRepository
	if c.Config.Features.Revisions {
		revisions = articlesvc.NewBunArticleRevisionRepository(c.bunDB)
	}

	c.articleSvc = articlesvc.NewService(repo, revisions,
		articlesvc.WithLogger(logging.ArticlesLogger(c.loggerProvider)),
		articlesvc.WithRevisions(c.Config.Features.Revisions),
	)
	return nil
}

func (c *Container) configureMarkdown() error {
	if c.markdownSvc != nil {
		return nil
	}

	svc, err := markdown.NewService(markdown.Config{
		BasePath:  c.Config.Markdown.ContentDir,
		Pattern:   c.Config.Markdown.Pattern,
		Recursive: c.Config.Markdown.Recursive,
		Parser: interfaces.ParseOptions{
			Extensions: c.Config.Markdown.Parser.Extensions,
			Sanitize:   c.Config.Markdown.Parser.Sanitize,
			HardWraps:  c.Config.Markdown.Parser.HardWraps,
			SafeMode:   c.Config.Markdown.Parser.SafeMode,
		},
	}, nil, c.shortcodeParser)
	if err != nil {
		return err
	}

	if c.articleSvc != nil {
		svc = svc.WithImporter(markdown.NewImporter(markdown.ImporterConfig{
			Articles:   c.articleSvc,
			Shortcodes: c.shortcodeParser,
			Logger:     logging.MarkdownLogger(c.loggerProvider),
		}))
	}

	c.markdownSvc = svc
	return nil
}

func (c *Container) configureLint() {
	if c.lintEngine != nil || !c.Config.Features.Lint {
		return
	}

	rules := lint.DefaultRules(c.shortcodeParser, c.shortcodeRegistry, lint.RulesConfig{
		FenceLanguages: c.Config.Lint.FenceLanguages,
	})
	c.lintEngine = lint.NewEngine(rules,
		lint.WithWorkers(c.Config.Lint.Workers),
		lint.WithLogger(logging.LintLogger(c.loggerProvider)),
	)
}
