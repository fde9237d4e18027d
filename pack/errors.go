package pack

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rony4d/go-bitpack/utils/bits"
	"github.com/rony4d/go-bitpack/utils/buffer"
)

// Errors returned by field descriptors and compiled formats. Detail is added
// with %w wrapping, so callers match them with errors.Is.
var (
	ErrInvalidFormat = errors.New("pack: invalid format option")
	ErrUnknownKind   = errors.New("pack: unknown field kind")
	ErrValueType     = errors.New("pack: unsupported value type for field")
	ErrValueCount    = errors.New("pack: wrong number of values")
	ErrMember        = errors.New("pack: invalid struct member")

	// Re-exported from the lower layers so most callers only import pack.
	ErrRange      = buffer.ErrRange
	ErrValueRange = bits.ErrValueRange
	ErrWidth      = bits.ErrWidth
	ErrOffset     = bits.ErrOffset
)

// FieldError ties a decode or encode failure to the field that caused it.
type FieldError struct {
	Index int
	Path  string
	Err   error
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func (e *FieldError) Error() string {
	msg := strings.TrimPrefix(e.Err.Error(), "pack: ")
	if e.Path != "" {
		return fmt.Sprintf("pack: %s (at %s)", msg, e.Path)
	}
	return fmt.Sprintf("pack: %s (at #%d)", msg, e.Index)
}

// withField wraps err with the field position. A bare FieldError gets the
// outer name prepended to its path; anything else, including errors that
// wrap a FieldError, becomes the cause of a new FieldError.
func withField(err error, index int, name string) error {
	if err == nil {
		return nil
	}
	if fe, ok := err.(*FieldError); ok {
		if name != "" {
			fe.Path = name + "." + fe.Path
		}
		return fe
	}
	path := name
	if path == "" {
		path = fmt.Sprintf("#%d", index)
	}
	return &FieldError{Index: index, Path: path, Err: err}
}
