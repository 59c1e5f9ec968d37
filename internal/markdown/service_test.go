package markdown

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/contentkit/go-corpus/pkg/interfaces"
)

func newTestService(tb testing.TB, recursive bool) *Service {
	tb.Helper()

	svc, err := NewService(Config{
		BasePath:  filepath.Join("testdata", "corpus"),
		Pattern:   "*.md",
		Recursive: recursive,
	}, nil, nil)
	if err != nil {
		tb.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestServiceLoad(t *testing.T) {
	svc := newTestService(t, true)

	doc, err := svc.Load(context.Background(), "content/blog/2024/2024-03-11-merge-sort-in-kotlin.md", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if doc.FrontMatter.URL != "merge sort in kotlin" {
		t.Fatalf("unexpected url %q", doc.FrontMatter.URL)
	}
	if len(doc.BodyHTML) == 0 {
		t.Fatalf("expected BodyHTML to be populated")
	}
	if len(doc.Checksum) == 0 {
		t.Fatalf("expected checksum to be populated")
	}
	if len(doc.CodeFences) != 2 {
		t.Fatalf("expected 2 code fences, got %#v", doc.CodeFences)
	}
	for _, fence := range doc.CodeFences {
		if fence.Lang != "kotlin" {
			t.Fatalf("unexpected fence language %q", fence.Lang)
		}
	}
}

func TestServiceLoadDirectory(t *testing.T) {
	svc := newTestService(t, true)

	docs, err := svc.LoadDirectory(context.Background(), "content/blog", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}

	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(docs))
	}
	for _, doc := range docs {
		if !doc.Path.Conforms {
			t.Fatalf("expected conforming path for %s", doc.FilePath)
		}
		if len(doc.BodyHTML) == 0 {
			t.Fatalf("expected rendered body for %s", doc.FilePath)
		}
	}
}

func TestServiceLoadDirectorySkipsDraftsWhenScoped(t *testing.T) {
	svc := newTestService(t, true)

	docs, err := svc.LoadDirectory(context.Background(), ".", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}

	// The drafts directory is still part of the corpus root.
	if len(docs) != 4 {
		t.Fatalf("expected 4 documents from the root, got %d", len(docs))
	}

	docs, err = svc.LoadDirectory(context.Background(), "content/blog", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("expected drafts excluded when scoped, got %d", len(docs))
	}
}

func TestServiceRender(t *testing.T) {
	svc := newTestService(t, true)

	html, err := svc.Render(context.Background(), []byte("a | b\n--- | ---\n1 | 2\n"), interfaces.ParseOptions{Extensions: []string{"gfm"}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(html), "<table>") {
		t.Fatalf("expected table rendering, got %q", html)
	}
}

func TestServiceImportWithoutImporter(t *testing.T) {
	svc := newTestService(t, true)

	if _, err := svc.ImportDirectory(context.Background(), "content/blog", interfaces.ImportOptions{}); err != ErrImporterNotConfigured {
		t.Fatalf("expected ErrImporterNotConfigured, got %v", err)
	}
	if _, err := svc.Sync(context.Background(), "content/blog", interfaces.SyncOptions{}); err != ErrImporterNotConfigured {
		t.Fatalf("expected ErrImporterNotConfigured, got %v", err)
	}
}

func TestMergeParseOptions(t *testing.T) {
	base := interfaces.ParseOptions{Extensions: []string{"gfm"}}
	merged := mergeParseOptions(base, interfaces.ParseOptions{HardWraps: true})

	if len(merged.Extensions) != 1 || merged.Extensions[0] != "gfm" {
		t.Fatalf("expected base extensions preserved, got %#v", merged.Extensions)
	}
	if !merged.HardWraps {
		t.Fatalf("expected override applied")
	}

	merged = mergeParseOptions(base, interfaces.ParseOptions{Extensions: []string{"footnote"}})
	if len(merged.Extensions) != 1 || merged.Extensions[0] != "footnote" {
		t.Fatalf("expected extension override, got %#v", merged.Extensions)
	}
}
