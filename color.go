package logotype

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/gogpu/gg"
	"golang.org/x/image/colornames"
)

// ParseColor parses a CSS color: a named color ("red", "rebeccapurple"),
// "transparent", or a hex form "#rgb", "#rgba", "#rrggbb", "#rrggbbaa".
func ParseColor(s string) (color.Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return nil, fmt.Errorf("empty color: %w", ErrInvalidColor)
	}
	if v == "transparent" {
		return color.NRGBA{}, nil
	}
	if c, ok := colornames.Map[v]; ok {
		return c, nil
	}

	hex, ok := strings.CutPrefix(v, "#")
	if !ok || !isHex(hex) {
		return nil, fmt.Errorf("%q: %w", s, ErrInvalidColor)
	}
	switch len(hex) {
	case 3, 4, 6, 8:
		return gg.Hex(hex).Color(), nil
	}
	return nil, fmt.Errorf("%q: %w", s, ErrInvalidColor)
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f') {
			return false
		}
	}
	return true
}
