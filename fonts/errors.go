package fonts

import "errors"

var (
	// ErrEmptyFontData is returned when a font source has no bytes.
	ErrEmptyFontData = errors.New("fonts: empty font data")

	// ErrUnknownFont is returned by Lookup for names that were never registered.
	ErrUnknownFont = errors.New("fonts: unknown font")

	// ErrDuplicateFont is returned when two sources register the same name.
	ErrDuplicateFont = errors.New("fonts: duplicate font name")
)
