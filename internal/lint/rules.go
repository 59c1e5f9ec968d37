package lint

import (
	"github.com/contentkit/go-corpus/pkg/interfaces"
)

// RulesConfig tunes the default rule set.
type RulesConfig struct {
	// FenceLanguages overrides the known code fence tags.
	FenceLanguages []string
}

// DefaultRules assembles the built-in rule set in reporting order.
func DefaultRules(parser interfaces.ShortcodeParser, registry interfaces.ShortcodeRegistry, cfg RulesConfig) []interfaces.LintRule {
	rules := []interfaces.LintRule{
		FrontMatterRequiredRule{},
		FrontMatterSchemaRule{},
		URLFormatRule{},
		URLUniqueRule{},
		NewFenceLanguageRule(cfg.FenceLanguages),
		FenceClosedRule{},
		PathConventionRule{},
	}
	if parser != nil && registry != nil {
		rules = append(rules,
			NewShortcodeKnownRule(parser, registry),
			NewShortcodeBalancedRule(parser, registry),
		)
	}
	return rules
}
