package articles

import (
	"errors"
	"fmt"
)

var (
	ErrURLRequired      = errors.New("articles: url is required")
	ErrTitleRequired    = errors.New("articles: title is required")
	ErrPathRequired     = errors.New("articles: path is required")
	ErrChecksumRequired = errors.New("articles: checksum is required")
	ErrIDRequired       = errors.New("articles: id required")
)

// NotFoundError reports a missing index record.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}
