package shortcode

import "errors"

var (
	// ErrDuplicateDefinition indicates an attempt to register a directive name twice.
	ErrDuplicateDefinition = errors.New("shortcode: duplicate definition")
	// ErrInvalidDefinition occurs when a definition has no usable name.
	ErrInvalidDefinition = errors.New("shortcode: invalid definition")
)
