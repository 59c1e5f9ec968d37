package lint

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	corpusvalidation "github.com/contentkit/go-corpus/internal/validation"
	"github.com/contentkit/go-corpus/pkg/interfaces"
)

// FrontMatterRequiredRule checks the fields every article must carry.
type FrontMatterRequiredRule struct{}

func (FrontMatterRequiredRule) Name() string { return "frontmatter/required" }

func (r FrontMatterRequiredRule) Check(ctx context.Context, doc *interfaces.Document) []interfaces.Issue {
	meta := doc.FrontMatter
	err := validation.ValidateStruct(&meta,
		validation.Field(&meta.Title, validation.Required),
		validation.Field(&meta.URL, validation.Required),
	)
	if err == nil {
		return nil
	}

	var issues []interfaces.Issue
	if errs, ok := err.(validation.Errors); ok {
		for field, fieldErr := range errs {
			issues = append(issues, interfaces.Issue{
				Rule:     r.Name(),
				Severity: interfaces.SeverityError,
				Path:     doc.FilePath,
				Message:  fmt.Sprintf("%s: %s", field, fieldErr.Error()),
			})
		}
		return issues
	}
	return []interfaces.Issue{{
		Rule:     r.Name(),
		Severity: interfaces.SeverityError,
		Path:     doc.FilePath,
		Message:  err.Error(),
	}}
}

// FrontMatterSchemaRule validates the raw metadata block against the article
// JSON schema.
type FrontMatterSchemaRule struct{}

func (FrontMatterSchemaRule) Name() string { return "frontmatter/schema" }

func (r FrontMatterSchemaRule) Check(ctx context.Context, doc *interfaces.Document) []interfaces.Issue {
	err := corpusvalidation.ValidateFrontMatter(doc.FrontMatter.Raw)
	if err == nil {
		return nil
	}

	var issues []interfaces.Issue
	for _, issue := range corpusvalidation.Issues(err) {
		message := issue.Message
		if issue.Location != "" {
			message = fmt.Sprintf("%s: %s", issue.Location, issue.Message)
		}
		issues = append(issues, interfaces.Issue{
			Rule:     r.Name(),
			Severity: interfaces.SeverityError,
			Path:     doc.FilePath,
			Message:  message,
		})
	}
	return issues
}
