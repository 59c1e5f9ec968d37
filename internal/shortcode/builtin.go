package shortcode

import (
	"github.com/contentkit/go-corpus/pkg/interfaces"
)

// BuiltInDefinitions returns the directive catalogue the article corpus uses.
func BuiltInDefinitions() []interfaces.DirectiveDefinition {
	return []interfaces.DirectiveDefinition{
		{
			Name:           "github",
			Description:    "Links a code sample to its path in the companion repository",
			AllowInner:     false,
			RequiredParams: []string{"param1"},
		},
		{
			Name:        "info",
			Description: "Renders an informational callout around the inner content",
			AllowInner:  true,
		},
		{
			Name:        "warning",
			Description: "Renders a cautionary callout around the inner content",
			AllowInner:  true,
		},
		{
			Name:        "danger",
			Description: "Renders a critical callout around the inner content",
			AllowInner:  true,
		},
	}
}
