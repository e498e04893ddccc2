package fonts

import (
	"bytes"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"

	gotext "github.com/go-text/typesetting/font"
)

// shaperPool holds HarfbuzzShaper instances. A shaper keeps an internal
// buffer and must not be used by two goroutines at once.
var shaperPool = sync.Pool{
	New: func() any {
		return &shaping.HarfbuzzShaper{}
	},
}

// parseShapingFont parses data into a go-text Font, which is read-only and
// safe for concurrent use.
func parseShapingFont(data []byte) (*gotext.Font, error) {
	face, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return face.Font, nil
}

// Measure returns the advance width of s at the given pixel size, with
// kerning and ligatures applied.
func (f *Font) Measure(s string, size float64) float64 {
	if s == "" || size <= 0 {
		return 0
	}
	runes := []rune(s)

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      gotext.NewFace(f.shaped),
		Size:      toFixed(size),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := shaperPool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	shaperPool.Put(hb)

	return fromFixed(out.Advance)
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
