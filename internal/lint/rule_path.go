package lint

import (
	"context"
	"fmt"

	"github.com/contentkit/go-corpus/pkg/interfaces"
)

// PathConventionRule warns when a file sits outside the
// content/blog/<year>/<date>-<slug>.md convention, or when the year
// directory, filename date, and front matter date disagree.
type PathConventionRule struct{}

func (PathConventionRule) Name() string { return "path/convention" }

func (r PathConventionRule) Check(ctx context.Context, doc *interfaces.Document) []interfaces.Issue {
	if !doc.Path.Conforms {
		return []interfaces.Issue{{
			Rule:     r.Name(),
			Severity: interfaces.SeverityWarning,
			Path:     doc.FilePath,
			Message:  "path does not match content/blog/<year>/<date>-<slug>.md",
		}}
	}

	var issues []interfaces.Issue
	if doc.Path.Year != doc.Path.Date.Year() {
		issues = append(issues, interfaces.Issue{
			Rule:     r.Name(),
			Severity: interfaces.SeverityWarning,
			Path:     doc.FilePath,
			Message:  fmt.Sprintf("year directory %d does not match filename date %s", doc.Path.Year, doc.Path.Date.Format("2006-01-02")),
		})
	}

	metaDate := doc.FrontMatter.Date
	if !metaDate.IsZero() {
		fileDate := doc.Path.Date
		if metaDate.Year() != fileDate.Year() || metaDate.Month() != fileDate.Month() || metaDate.Day() != fileDate.Day() {
			issues = append(issues, interfaces.Issue{
				Rule:     r.Name(),
				Severity: interfaces.SeverityWarning,
				Path:     doc.FilePath,
				Message: fmt.Sprintf("front matter date %s does not match filename date %s",
					metaDate.Format("2006-01-02"), fileDate.Format("2006-01-02")),
			})
		}
	}
	return issues
}
