package logotype

import "errors"

// Validation errors. Requests failing with one of these are the caller's
// fault; any other render error is internal.
var (
	ErrInvalidColor      = errors.New("logotype: invalid color")
	ErrInvalidDimensions = errors.New("logotype: invalid dimensions")
	ErrUnknownPreset     = errors.New("logotype: unknown preset")
	ErrTextTooLong       = errors.New("logotype: text too long")
)

// IsInvalidRequest reports whether err was caused by bad request input.
func IsInvalidRequest(err error) bool {
	return errors.Is(err, ErrInvalidColor) ||
		errors.Is(err, ErrInvalidDimensions) ||
		errors.Is(err, ErrUnknownPreset) ||
		errors.Is(err, ErrTextTooLong)
}
