package di_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/contentkit/go-corpus/internal/di"
	"github.com/contentkit/go-corpus/internal/runtimeconfig"
	"github.com/contentkit/go-corpus/pkg/interfaces"
	"github.com/contentkit/go-corpus/pkg/storage"
	"github.com/contentkit/go-corpus/pkg/testsupport"
	"github.com/uptrace/bun"
)

func testConfig(t *testing.T) runtimeconfig.Config {
	t.Helper()
	cfg := runtimeconfig.DefaultConfig()
	cfg.Markdown.ContentDir = t.TempDir()
	return cfg
}

func testDB(t *testing.T) *bun.DB {
	t.Helper()
	db, err := testsupport.NewBunDB()
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := storage.EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return db
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Markdown.ContentDir = " "

	if _, err := di.NewContainer(cfg); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestNewContainerWiresServices(t *testing.T) {
	cfg := testConfig(t)

	container, err := di.NewContainer(cfg, di.WithBunDB(testDB(t)))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	t.Cleanup(func() { _ = container.Close() })

	if container.ArticleService() == nil {
		t.Fatal("expected article service")
	}
	if container.MarkdownService() == nil {
		t.Fatal("expected markdown service")
	}
	if container.LintEngine() == nil {
		t.Fatal("expected lint engine")
	}
	if container.ShortcodeRegistry() == nil || container.ShortcodeParser() == nil {
		t.Fatal("expected shortcode bindings")
	}
}

func TestNewContainerSkipsArticleIndexWhenImportDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Features.Import = false

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	t.Cleanup(func() { _ = container.Close() })

	if container.ArticleService() != nil {
		t.Fatal("expected no article service")
	}
	if container.DB() != nil {
		t.Fatal("expected no database handle")
	}
	if container.MarkdownService() == nil {
		t.Fatal("expected markdown service without importer")
	}
}

func TestNewContainerSkipsLintWhenDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Features.Lint = false

	container, err := di.NewContainer(cfg, di.WithBunDB(testDB(t)))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	t.Cleanup(func() { _ = container.Close() })

	if container.LintEngine() != nil {
		t.Fatal("expected no lint engine")
	}
}

type recordingProvider struct {
	names []string
}

func (p *recordingProvider) GetLogger(name string) interfaces.Logger {
	p.names = append(p.names, name)
	return nil
}

func TestNewContainerUsesLoggerProviderOverride(t *testing.T) {
	cfg := testConfig(t)
	provider := &recordingProvider{}

	container, err := di.NewContainer(cfg, di.WithBunDB(testDB(t)), di.WithLoggerProvider(provider))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	t.Cleanup(func() { _ = container.Close() })

	if len(provider.names) == 0 {
		t.Fatal("expected provider to be consulted during wiring")
	}
}

func TestContainerImportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	year := filepath.Join(dir, "content", "blog", "2024")
	if err := os.MkdirAll(year, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	article := "---\ntitle: Merge Sort in Kotlin\ndate: 2024-03-11\nurl: merge sort in kotlin\n---\n\nBody.\n"
	if err := os.WriteFile(filepath.Join(year, "2024-03-11-merge-sort-in-kotlin.md"), []byte(article), 0o644); err != nil {
		t.Fatalf("write article: %v", err)
	}

	cfg := runtimeconfig.DefaultConfig()
	cfg.Markdown.ContentDir = dir

	container, err := di.NewContainer(cfg, di.WithBunDB(testDB(t)))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	t.Cleanup(func() { _ = container.Close() })

	result, err := container.MarkdownService().ImportDirectory(context.Background(), "content/blog", interfaces.ImportOptions{})
	if err != nil {
		t.Fatalf("ImportDirectory: %v", err)
	}
	if len(result.CreatedArticleIDs) != 1 {
		t.Fatalf("expected one created article, got %#v", result)
	}

	record, err := container.ArticleService().GetByURL(context.Background(), "merge sort in kotlin")
	if err != nil {
		t.Fatalf("GetByURL: %v", err)
	}
	if record.Title != "Merge Sort in Kotlin" {
		t.Fatalf("unexpected record %#v", record)
	}
}
