package lint

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/contentkit/go-corpus/articles"
	"github.com/contentkit/go-corpus/pkg/interfaces"
)

// URLFormatRule warns about url keys that will not normalise cleanly into a
// permalink. The corpus convention is lowercase words separated by single
// spaces, and the slug the url normalises to should agree with the filename
// slug; anything else tends to surprise the static site generator.
type URLFormatRule struct{}

func (URLFormatRule) Name() string { return "url/format" }

func (r URLFormatRule) Check(ctx context.Context, doc *interfaces.Document) []interfaces.Issue {
	url := doc.FrontMatter.URL
	if url == "" {
		// frontmatter/required reports the missing key.
		return nil
	}

	var problems []string
	if url != strings.TrimSpace(url) {
		problems = append(problems, "leading or trailing whitespace")
	}
	if strings.Contains(url, "  ") {
		problems = append(problems, "consecutive spaces")
	}
	if url != strings.ToLower(url) {
		problems = append(problems, "uppercase characters")
	}
	for _, r := range url {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ' ' || r == '-' {
			continue
		}
		if r >= 'A' && r <= 'Z' {
			continue
		}
		problems = append(problems, fmt.Sprintf("character %q", r))
		break
	}

	if doc.Path.Conforms && doc.Path.Slug != "" {
		if normalized, err := articles.NormalizeSlug(url); err == nil && normalized != "" && normalized != doc.Path.Slug {
			problems = append(problems, fmt.Sprintf("normalises to slug %q which does not match file slug %q", normalized, doc.Path.Slug))
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return []interfaces.Issue{{
		Rule:     r.Name(),
		Severity: interfaces.SeverityWarning,
		Path:     doc.FilePath,
		Message:  fmt.Sprintf("url %q: %s", url, strings.Join(problems, "; ")),
	}}
}

// URLUniqueRule reports url keys claimed by more than one file. Duplicates
// are an error: the importer will only index the first file and the rest
// silently vanish from the site.
type URLUniqueRule struct{}

func (URLUniqueRule) Name() string { return "url/unique" }

func (URLUniqueRule) Check(ctx context.Context, doc *interfaces.Document) []interfaces.Issue {
	return nil
}

func (r URLUniqueRule) CheckCorpus(ctx context.Context, docs []*interfaces.Document) []interfaces.Issue {
	byURL := map[string][]string{}
	for _, doc := range docs {
		url := strings.TrimSpace(doc.FrontMatter.URL)
		if url == "" {
			continue
		}
		byURL[url] = append(byURL[url], doc.FilePath)
	}

	var issues []interfaces.Issue
	for url, paths := range byURL {
		if len(paths) < 2 {
			continue
		}
		sort.Strings(paths)
		for _, path := range paths {
			issues = append(issues, interfaces.Issue{
				Rule:     r.Name(),
				Severity: interfaces.SeverityError,
				Path:     path,
				Message:  fmt.Sprintf("url %q is shared by %d files: %s", url, len(paths), strings.Join(paths, ", ")),
			})
		}
	}
	return issues
}

var _ interfaces.CorpusRule = URLUniqueRule{}
