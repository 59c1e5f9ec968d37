package interfaces

// ShortcodeParser extracts shortcode invocations from article content.
// Implementations must handle both percent-delimited ({{% name %}}) and
// angle-delimited ({{< name >}}) Hugo directive styles.
type ShortcodeParser interface {
	Parse(content string) ([]ParsedShortcode, error)
	Extract(content string) (placeholders string, shortcodes []ParsedShortcode, err error)
}

// ShortcodeRegistry describes the catalogue of directives the corpus accepts.
// Implementations must be safe for concurrent use.
type ShortcodeRegistry interface {
	// Register stores a definition and returns an error when a directive with
	// the same name already exists or the definition fails validation.
	Register(definition DirectiveDefinition) error

	// Get returns the definition for the supplied directive name.
	Get(name string) (DirectiveDefinition, bool)

	// List exposes the current catalogue sorted by name.
	List() []DirectiveDefinition

	// Remove deletes the directive from the registry. Removing an unknown
	// directive must be a no-op.
	Remove(name string)
}

// DirectiveDefinition captures the contract a shortcode directive must honour
// inside article bodies.
type DirectiveDefinition struct {
	Name        string
	Description string
	// AllowInner reports whether the directive wraps inner content and
	// therefore requires a closing tag.
	AllowInner bool
	// RequiredParams lists parameter names that must be present on every
	// invocation. Positional parameters are keyed param1, param2, and so on.
	RequiredParams []string
}

// ParsedShortcode represents a single invocation discovered by the parser.
type ParsedShortcode struct {
	Name   string
	Params map[string]any
	Inner  string
	// Line is the 1-based line of the opening tag within the scanned content.
	Line int
	// SelfClosing reports that the invocation had no closing tag.
	SelfClosing bool
}
