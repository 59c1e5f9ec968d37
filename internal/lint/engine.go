package lint

import (
	"context"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/contentkit/go-corpus/pkg/interfaces"
)

// EngineOption configures the engine at construction time.
type EngineOption func(*Engine)

// WithWorkers bounds the per-document fan-out.
func WithWorkers(workers int) EngineOption {
	return func(e *Engine) {
		if workers > 0 {
			e.workers = workers
		}
	}
}

// WithLogger attaches a logger for run tracing.
func WithLogger(logger interfaces.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Engine fans documents out across a worker pool, applies every rule, and
// aggregates the findings into a deterministic report. Corpus-wide rules run
// after the per-document pass so they see the complete document set.
type Engine struct {
	rules   []interfaces.LintRule
	workers int
	logger  interfaces.Logger
}

// NewEngine constructs an engine over the supplied rules.
func NewEngine(rules []interfaces.LintRule, opts ...EngineOption) *Engine {
	engine := &Engine{
		rules:   rules,
		workers: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

// Run lints the supplied documents and returns the aggregated report.
func (e *Engine) Run(ctx context.Context, docs []*interfaces.Document) (*interfaces.LintReport, error) {
	var (
		mu     sync.Mutex
		issues []interfaces.Issue
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(e.workers)

	for _, doc := range docs {
		doc := doc
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			var found []interfaces.Issue
			for _, rule := range e.rules {
				found = append(found, rule.Check(groupCtx, doc)...)
			}
			if len(found) > 0 {
				mu.Lock()
				issues = append(issues, found...)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	for _, rule := range e.rules {
		corpusRule, ok := rule.(interfaces.CorpusRule)
		if !ok {
			continue
		}
		issues = append(issues, corpusRule.CheckCorpus(ctx, docs)...)
	}

	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Path != issues[j].Path {
			return issues[i].Path < issues[j].Path
		}
		if issues[i].Line != issues[j].Line {
			return issues[i].Line < issues[j].Line
		}
		return issues[i].Rule < issues[j].Rule
	})

	report := &interfaces.LintReport{
		Files:  len(docs),
		Issues: issues,
	}
	for _, issue := range issues {
		switch issue.Severity {
		case interfaces.SeverityError:
			report.Errors++
		case interfaces.SeverityWarning:
			report.Warnings++
		default:
			report.Infos++
		}
	}

	if e.logger != nil {
		e.logger.Info("lint run complete",
			"files", report.Files,
			"errors", report.Errors,
			"warnings", report.Warnings,
			"infos", report.Infos,
		)
	}

	return report, nil
}
