package corpus_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	corpus "github.com/contentkit/go-corpus"
	"github.com/contentkit/go-corpus/internal/di"
	"github.com/contentkit/go-corpus/pkg/interfaces"
	"github.com/contentkit/go-corpus/pkg/storage"
	"github.com/contentkit/go-corpus/pkg/testsupport"
)

func writeArticle(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func newTestModule(t *testing.T, contentDir string) *corpus.Module {
	t.Helper()

	db, err := testsupport.NewBunDB()
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := storage.EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	cfg := corpus.DefaultConfig()
	cfg.Markdown.ContentDir = contentDir

	module, err := corpus.New(cfg, di.WithBunDB(db))
	if err != nil {
		t.Fatalf("corpus.New: %v", err)
	}
	t.Cleanup(func() { _ = module.Close() })
	return module
}

func TestModuleSyncAndLintWorkflow(t *testing.T) {
	dir := t.TempDir()
	writeArticle(t, dir, "content/blog/2024/2024-03-11-merge-sort-in-kotlin.md",
		"---\ntitle: Merge Sort in Kotlin\ndate: 2024-03-11\nurl: merge sort in kotlin\n---\n\n```kotlin\nfun mergeSort() {}\n```\n")
	writeArticle(t, dir, "content/blog/2014/2014-06-02-quick-sort-in-java.md",
		"---\ntitle: Quick Sort in Java\ndate: 2014-06-02\nurl: quick sort in java\n---\n\n```java\nint[] xs;\n```\n")

	module := newTestModule(t, dir)
	ctx := context.Background()

	sync, err := module.Markdown().Sync(ctx, "content/blog", interfaces.SyncOptions{})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if sync.Created != 2 {
		t.Fatalf("expected 2 created articles, got %#v", sync)
	}

	records, err := module.Articles().List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 indexed articles, got %d", len(records))
	}

	docs, err := module.Markdown().LoadDirectory(ctx, "content/blog", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	report, err := module.Linter().Run(ctx, docs)
	if err != nil {
		t.Fatalf("lint run: %v", err)
	}
	if report.Failed(corpus.SeverityError) {
		t.Fatalf("expected clean corpus, got %#v", report.Issues)
	}
}

func TestModuleSyncDeletesOrphans(t *testing.T) {
	dir := t.TempDir()
	keep := "content/blog/2024/2024-03-11-merge-sort-in-kotlin.md"
	drop := "content/blog/2014/2014-06-02-quick-sort-in-java.md"
	writeArticle(t, dir, keep,
		"---\ntitle: Merge Sort in Kotlin\ndate: 2024-03-11\nurl: merge sort in kotlin\n---\n\nBody.\n")
	writeArticle(t, dir, drop,
		"---\ntitle: Quick Sort in Java\ndate: 2014-06-02\nurl: quick sort in java\n---\n\nBody.\n")

	module := newTestModule(t, dir)
	ctx := context.Background()

	if _, err := module.Markdown().Sync(ctx, "content/blog", interfaces.SyncOptions{}); err != nil {
		t.Fatalf("initial sync: %v", err)
	}

	if err := os.Remove(filepath.Join(dir, filepath.FromSlash(drop))); err != nil {
		t.Fatalf("remove: %v", err)
	}

	sync, err := module.Markdown().Sync(ctx, "content/blog", interfaces.SyncOptions{DeleteOrphaned: true})
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if sync.Deleted != 1 {
		t.Fatalf("expected one deleted orphan, got %#v", sync)
	}

	if _, err := module.Articles().GetByURL(ctx, "quick sort in java"); err == nil {
		t.Fatal("expected orphan to be removed from the index")
	}
}

func TestModuleLinterFlagsDuplicateURLs(t *testing.T) {
	dir := t.TempDir()
	writeArticle(t, dir, "content/blog/2014/2014-06-02-quick-sort-in-java.md",
		"---\ntitle: Quick Sort in Java\ndate: 2014-06-02\nurl: quick sort in java\n---\n\nA.\n")
	writeArticle(t, dir, "content/blog/2024/2024-05-20-quick-sort-revisited.md",
		"---\ntitle: Quick Sort Revisited\ndate: 2024-05-20\nurl: quick sort in java\n---\n\nB.\n")

	module := newTestModule(t, dir)
	ctx := context.Background()

	docs, err := module.Markdown().LoadDirectory(ctx, "content/blog", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	report, err := module.Linter().Run(ctx, docs)
	if err != nil {
		t.Fatalf("lint run: %v", err)
	}
	if !report.Failed(corpus.SeverityError) {
		t.Fatalf("expected duplicate url error, got %#v", report)
	}
}
