package lint

import (
	"context"
	"fmt"
	"strings"

	"github.com/contentkit/go-corpus/pkg/interfaces"
)

// DefaultFenceLanguages lists the language tags observed across the corpus.
func DefaultFenceLanguages() []string {
	return []string{
		"bash", "c", "cpp", "csharp", "css", "dockerfile", "go", "groovy",
		"html", "ini", "java", "javascript", "json", "kotlin", "markdown",
		"properties", "python", "ruby", "scala", "shell", "sql", "swift",
		"text", "typescript", "xml", "yaml",
	}
}

// FenceLanguageRule warns about fence info strings outside the known tag set.
// Untagged fences are allowed; highlighters fall back to plain text.
type FenceLanguageRule struct {
	known map[string]struct{}
}

// NewFenceLanguageRule builds the rule from an allow list. An empty list uses
// the defaults.
func NewFenceLanguageRule(languages []string) *FenceLanguageRule {
	if len(languages) == 0 {
		languages = DefaultFenceLanguages()
	}
	known := make(map[string]struct{}, len(languages))
	for _, lang := range languages {
		known[strings.ToLower(strings.TrimSpace(lang))] = struct{}{}
	}
	return &FenceLanguageRule{known: known}
}

func (*FenceLanguageRule) Name() string { return "codefence/language" }

func (r *FenceLanguageRule) Check(ctx context.Context, doc *interfaces.Document) []interfaces.Issue {
	var issues []interfaces.Issue
	for _, fence := range doc.CodeFences {
		if fence.Lang == "" {
			continue
		}
		if _, ok := r.known[fence.Lang]; ok {
			continue
		}
		issues = append(issues, interfaces.Issue{
			Rule:     r.Name(),
			Severity: interfaces.SeverityWarning,
			Path:     doc.FilePath,
			Line:     fence.Line,
			Message:  fmt.Sprintf("unknown code fence language %q", fence.Lang),
		})
	}
	return issues
}

// FenceClosedRule reports fences that never close; everything after the
// opening fence renders as code.
type FenceClosedRule struct{}

func (FenceClosedRule) Name() string { return "codefence/closed" }

func (r FenceClosedRule) Check(ctx context.Context, doc *interfaces.Document) []interfaces.Issue {
	var issues []interfaces.Issue
	for _, fence := range doc.CodeFences {
		if fence.Closed {
			continue
		}
		issues = append(issues, interfaces.Issue{
			Rule:     r.Name(),
			Severity: interfaces.SeverityError,
			Path:     doc.FilePath,
			Line:     fence.Line,
			Message:  "code fence is never closed",
		})
	}
	return issues
}
