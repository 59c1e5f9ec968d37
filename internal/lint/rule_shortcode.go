package lint

import (
	"context"
	"fmt"
	"strings"

	"github.com/contentkit/go-corpus/pkg/interfaces"
)

// ShortcodeKnownRule checks every directive invocation against the registry:
// unknown names are warnings, missing required parameters are errors.
type ShortcodeKnownRule struct {
	parser   interfaces.ShortcodeParser
	registry interfaces.ShortcodeRegistry
}

func NewShortcodeKnownRule(parser interfaces.ShortcodeParser, registry interfaces.ShortcodeRegistry) *ShortcodeKnownRule {
	return &ShortcodeKnownRule{parser: parser, registry: registry}
}

func (*ShortcodeKnownRule) Name() string { return "shortcode/known" }

func (r *ShortcodeKnownRule) Check(ctx context.Context, doc *interfaces.Document) []interfaces.Issue {
	parsed, err := r.parser.Parse(string(doc.Body))
	if err != nil {
		// shortcode/balanced owns structural failures.
		return nil
	}

	var issues []interfaces.Issue
	for _, sc := range parsed {
		def, ok := r.registry.Get(sc.Name)
		if !ok {
			issues = append(issues, interfaces.Issue{
				Rule:     r.Name(),
				Severity: interfaces.SeverityWarning,
				Path:     doc.FilePath,
				Line:     sc.Line,
				Message:  fmt.Sprintf("unknown directive %q", sc.Name),
			})
			continue
		}
		for _, param := range def.RequiredParams {
			if _, ok := sc.Params[param]; ok {
				continue
			}
			issues = append(issues, interfaces.Issue{
				Rule:     r.Name(),
				Severity: interfaces.SeverityError,
				Path:     doc.FilePath,
				Line:     sc.Line,
				Message:  fmt.Sprintf("directive %q is missing required parameter %s", sc.Name, param),
			})
		}
	}
	return issues
}

// ShortcodeBalancedRule reports structural directive failures: unbalanced or
// mismatched tag pairs, and wrapping directives invoked without a body.
type ShortcodeBalancedRule struct {
	parser   interfaces.ShortcodeParser
	registry interfaces.ShortcodeRegistry
}

func NewShortcodeBalancedRule(parser interfaces.ShortcodeParser, registry interfaces.ShortcodeRegistry) *ShortcodeBalancedRule {
	return &ShortcodeBalancedRule{parser: parser, registry: registry}
}

func (*ShortcodeBalancedRule) Name() string { return "shortcode/balanced" }

func (r *ShortcodeBalancedRule) Check(ctx context.Context, doc *interfaces.Document) []interfaces.Issue {
	parsed, err := r.parser.Parse(string(doc.Body))
	if err != nil {
		return []interfaces.Issue{{
			Rule:     r.Name(),
			Severity: interfaces.SeverityError,
			Path:     doc.FilePath,
			Line:     lineFromParseError(err),
			Message:  err.Error(),
		}}
	}

	var issues []interfaces.Issue
	for _, sc := range parsed {
		if !sc.SelfClosing {
			continue
		}
		def, ok := r.registry.Get(sc.Name)
		if !ok || !def.AllowInner {
			continue
		}
		issues = append(issues, interfaces.Issue{
			Rule:     r.Name(),
			Severity: interfaces.SeverityWarning,
			Path:     doc.FilePath,
			Line:     sc.Line,
			Message:  fmt.Sprintf("directive %q wraps content but has no closing tag", sc.Name),
		})
	}
	return issues
}

// lineFromParseError digs the "at line N" suffix out of parser errors so the
// finding lands on the offending tag.
func lineFromParseError(err error) int {
	msg := err.Error()
	idx := strings.LastIndex(msg, "at line ")
	if idx < 0 {
		return 0
	}
	var line int
	if _, scanErr := fmt.Sscanf(msg[idx:], "at line %d", &line); scanErr != nil {
		return 0
	}
	return line
}
