package interfaces

import "context"

// Severity ranks lint findings. Error findings fail a corpus check, warnings
// surface editorial defects worth fixing, info findings are advisory.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Rank returns a sortable weight for the severity, highest first.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 2
	case SeverityWarning:
		return 1
	default:
		return 0
	}
}

// Valid reports whether the severity is one of the known levels.
func (s Severity) Valid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// Issue is a single lint finding attached to a source file.
type Issue struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Path     string   `json:"path"`
	// Line is 1-based; zero when the finding applies to the whole file.
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
}

// LintRule checks a single document. Implementations must be safe for
// concurrent use; the engine fans documents out across a worker pool.
type LintRule interface {
	Name() string
	Check(ctx context.Context, doc *Document) []Issue
}

// CorpusRule extends LintRule with a corpus-wide pass that runs after every
// per-document check has completed (e.g. url uniqueness).
type CorpusRule interface {
	LintRule
	CheckCorpus(ctx context.Context, docs []*Document) []Issue
}

// LintReport aggregates the findings of a lint run with deterministic
// ordering (path, then line, then rule).
type LintReport struct {
	Files    int     `json:"files"`
	Issues   []Issue `json:"issues"`
	Errors   int     `json:"errors"`
	Warnings int     `json:"warnings"`
	Infos    int     `json:"infos"`
}

// Failed reports whether the run produced findings at or above the supplied
// threshold severity.
func (r *LintReport) Failed(threshold Severity) bool {
	if r == nil {
		return false
	}
	for _, issue := range r.Issues {
		if issue.Severity.Rank() >= threshold.Rank() {
			return true
		}
	}
	return false
}
