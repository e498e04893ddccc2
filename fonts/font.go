// Package fonts provides the immutable font registry used by the logotype
// renderer.
//
// A [Registry] is built once at process start and shared read-only by every
// render call. Each registered [Font] is parsed up front so that request
// handling never touches the filesystem.
package fonts

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/math/fixed"

	gotext "github.com/go-text/typesetting/font"
)

// SegmentOp is the kind of a single outline segment.
type SegmentOp uint8

const (
	// MoveTo starts a new contour at Args[0].
	MoveTo SegmentOp = iota
	// LineTo draws a straight line to Args[0].
	LineTo
	// QuadTo draws a quadratic curve with control Args[0] ending at Args[1].
	QuadTo
	// CubeTo draws a cubic curve with controls Args[0], Args[1] ending at Args[2].
	CubeTo
)

// Point is a point in pixel units. Y increases downwards.
type Point struct {
	X, Y float64
}

// Segment is one element of a glyph outline.
type Segment struct {
	Op   SegmentOp
	Args [3]Point
}

// Outline is a glyph outline scaled to a pixel size, with the pen origin on
// the baseline at (0, 0).
type Outline struct {
	Rune     rune
	Advance  float64
	Segments []Segment
}

// Empty reports whether the outline has nothing to draw.
func (o Outline) Empty() bool {
	return len(o.Segments) == 0
}

// Metrics holds vertical font metrics at a pixel size.
// Descent is positive, measured below the baseline.
type Metrics struct {
	Ascent  float64
	Descent float64
}

// Font is a parsed, immutable font. Font is safe for concurrent use.
type Font struct {
	name   string
	family string
	data   []byte

	source *text.FontSource
	shaped *gotext.Font
}

// newFont parses data with every backend the renderer needs.
func newFont(name string, data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("font %q: %w", name, ErrEmptyFontData)
	}

	source, err := text.NewFontSource(data)
	if err != nil {
		return nil, fmt.Errorf("font %q: parse outlines: %w", name, err)
	}

	shaped, err := parseShapingFont(data)
	if err != nil {
		_ = source.Close()
		return nil, fmt.Errorf("font %q: parse shaping tables: %w", name, err)
	}

	family := source.Parsed().Name()
	if family == "" {
		family = name
	}

	return &Font{
		name:   strings.ToLower(name),
		family: family,
		data:   data,
		source: source,
		shaped: shaped,
	}, nil
}

// Name returns the registry name of the font.
func (f *Font) Name() string {
	return f.name
}

// Family returns the family name stored in the font file.
func (f *Font) Family() string {
	return f.family
}

// Metrics returns the ascent and descent at the given pixel size.
func (f *Font) Metrics(size float64) Metrics {
	m := f.source.Face(size).Metrics()
	return Metrics{Ascent: m.Ascent, Descent: m.Descent}
}

// extractors holds gg outline extractors. Each owns an sfnt.Buffer and must
// not be shared between goroutines.
var extractors = sync.Pool{
	New: func() any { return text.NewOutlineExtractor() },
}

// Outline returns the outline of r at the given pixel size.
// Runes the font has no glyph for yield an empty outline with zero advance.
func (f *Font) Outline(r rune, size float64) (Outline, error) {
	out := Outline{Rune: r}

	parsed := f.source.Parsed()
	gid := parsed.GlyphIndex(r)
	if gid == 0 {
		return out, nil
	}

	e := extractors.Get().(*text.OutlineExtractor)
	glyph, err := e.ExtractOutline(parsed, text.GlyphID(gid), size)
	extractors.Put(e)
	if err != nil {
		return out, fmt.Errorf("load glyph %q: %w", r, err)
	}
	if glyph == nil {
		return out, nil
	}
	out.Advance = float64(glyph.Advance)

	out.Segments = make([]Segment, 0, len(glyph.Segments))
	for _, s := range glyph.Segments {
		seg := Segment{
			Args: [3]Point{toPoint(s.Points[0]), toPoint(s.Points[1]), toPoint(s.Points[2])},
		}
		switch s.Op {
		case text.OutlineOpMoveTo:
			seg.Op = MoveTo
		case text.OutlineOpLineTo:
			seg.Op = LineTo
		case text.OutlineOpQuadTo:
			seg.Op = QuadTo
		case text.OutlineOpCubicTo:
			seg.Op = CubeTo
		default:
			continue
		}
		out.Segments = append(out.Segments, seg)
	}
	return out, nil
}

// close releases the face source.
func (f *Font) close() error {
	return f.source.Close()
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}

func toPoint(p text.OutlinePoint) Point {
	return Point{X: float64(p.X), Y: float64(p.Y)}
}
