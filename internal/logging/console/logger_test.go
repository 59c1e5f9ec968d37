package console

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/contentkit/go-corpus/internal/logging"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 11, 9, 30, 0, 0, time.UTC)
}

func TestConsoleLoggerFormatsEntry(t *testing.T) {
	var out strings.Builder
	provider := NewProvider(Options{Writer: &out, TimeFunc: fixedClock})

	logger := provider.GetLogger("corpus.markdown")
	logger.Info("import complete", "created", 3, "dry_run", false)

	line := strings.TrimSuffix(out.String(), "\n")
	if !strings.HasPrefix(line, "2024-03-11T09:30:00Z INFO import complete") {
		t.Fatalf("unexpected prefix: %q", line)
	}
	for _, want := range []string{"created=3", "dry_run=false", "logger=corpus.markdown"} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in %q", want, line)
		}
	}
}

func TestConsoleLoggerHonoursMinLevel(t *testing.T) {
	var out strings.Builder
	min := LevelWarn
	provider := NewProvider(Options{Writer: &out, TimeFunc: fixedClock, MinLevel: &min})

	logger := provider.GetLogger("corpus")
	logger.Info("dropped")
	logger.Error("kept")

	if strings.Contains(out.String(), "dropped") {
		t.Fatalf("expected info entry to be filtered, got %q", out.String())
	}
	if !strings.Contains(out.String(), "kept") {
		t.Fatalf("expected error entry, got %q", out.String())
	}
}

func TestConsoleLoggerMergesContextFields(t *testing.T) {
	var out strings.Builder
	provider := NewProvider(Options{Writer: &out, TimeFunc: fixedClock})

	ctx := logging.ContextWithFields(context.Background(), map[string]any{"run_id": "r-42"})
	logger := provider.GetLogger("corpus").WithContext(ctx)
	logger.Info("lint run complete")

	if !strings.Contains(out.String(), "run_id=r-42") {
		t.Fatalf("expected context field, got %q", out.String())
	}
}

func TestConsoleLoggerQuotesValuesWithSpaces(t *testing.T) {
	var out strings.Builder
	provider := NewProvider(Options{Writer: &out, TimeFunc: fixedClock})

	provider.GetLogger("corpus").Info("article indexed", "url", "quick sort in java")

	if !strings.Contains(out.String(), `url="quick sort in java"`) {
		t.Fatalf("expected quoted url, got %q", out.String())
	}
}

func TestParseLevel(t *testing.T) {
	if got := ParseLevel("warning"); got != LevelWarn {
		t.Fatalf("expected warn, got %v", got)
	}
	if got := ParseLevel(""); got != LevelDebug {
		t.Fatalf("expected debug default, got %v", got)
	}
}
