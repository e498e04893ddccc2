package logotype

import (
	"image/color"

	"github.com/gogpu/logotype/fonts"
)

// Canvas is the drawing surface the layouts render onto. *gg.Context
// satisfies it; tests substitute a recorder.
//
// Path coordinates are interpreted under the current transform, and
// Push/Pop save and restore that transform.
type Canvas interface {
	Push()
	Pop()
	Translate(x, y float64)
	Rotate(angle float64)
	Shear(x, y float64)

	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticTo(cx, cy, x, y float64)
	CubicTo(c1x, c1y, c2x, c2y, x, y float64)
	ClosePath()
	ClearPath()

	SetColor(c color.Color)
	SetLineWidth(width float64)
	Fill() error
	FillPreserve() error
	Stroke() error
}

// Anchor positions a glyph relative to its pose origin, as fractions of
// its advance and of its ascent-plus-descent box.
// (0.5, 0.5) centers the glyph; (0, 0) puts the bottom-left corner of the
// box, one descent below the baseline, on the origin.
type Anchor struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// AnchorCenter centers glyphs on their pose, like canvas
// textAlign=center with textBaseline=middle.
var AnchorCenter = Anchor{X: 0.5, Y: 0.5}

// TextStyle is the paint applied to glyphs.
type TextStyle struct {
	Font        *fonts.Font
	Size        float64
	Fill        color.Color
	Stroke      color.Color
	StrokeWidth float64
	Anchor      Anchor
}

// glyphDrawer draws glyph outlines onto a Canvas at its current transform.
type glyphDrawer struct {
	style   TextStyle
	metrics fonts.Metrics
}

func newGlyphDrawer(style TextStyle) glyphDrawer {
	return glyphDrawer{style: style, metrics: style.Font.Metrics(style.Size)}
}

// draw renders r with its anchor at the local origin. Runes without an
// outline draw nothing.
func (d glyphDrawer) draw(c Canvas, r rune) error {
	o, err := d.style.Font.Outline(r, d.style.Size)
	if err != nil {
		return err
	}
	if o.Empty() {
		return nil
	}

	dx := -o.Advance * d.style.Anchor.X
	// Box spans [-ascent, +descent] around the baseline.
	box := d.metrics.Ascent + d.metrics.Descent
	dy := box*d.style.Anchor.Y - d.metrics.Descent

	d.trace(c, o, dx, dy)
	if d.style.Fill != nil {
		c.SetColor(d.style.Fill)
		if err := c.FillPreserve(); err != nil {
			return err
		}
	}
	if d.style.Stroke != nil && d.style.StrokeWidth > 0 {
		c.SetColor(d.style.Stroke)
		c.SetLineWidth(d.style.StrokeWidth)
		if err := c.Stroke(); err != nil {
			return err
		}
	}
	c.ClearPath()
	return nil
}

func (d glyphDrawer) trace(c Canvas, o fonts.Outline, dx, dy float64) {
	open := false
	for _, s := range o.Segments {
		a := s.Args
		switch s.Op {
		case fonts.MoveTo:
			if open {
				c.ClosePath()
			}
			c.MoveTo(a[0].X+dx, a[0].Y+dy)
			open = true
		case fonts.LineTo:
			c.LineTo(a[0].X+dx, a[0].Y+dy)
		case fonts.QuadTo:
			c.QuadraticTo(a[0].X+dx, a[0].Y+dy, a[1].X+dx, a[1].Y+dy)
		case fonts.CubeTo:
			c.CubicTo(a[0].X+dx, a[0].Y+dy, a[1].X+dx, a[1].Y+dy, a[2].X+dx, a[2].Y+dy)
		}
	}
	if open {
		c.ClosePath()
	}
}

// DrawSkewText draws s with l onto c. Each glyph is translated to its pose,
// sheared by its angle and drawn inside its own Push/Pop.
func DrawSkewText(c Canvas, s string, l SkewLayout, style TextStyle) error {
	poses := l.Place(s)
	if len(poses) == 0 {
		return nil
	}
	d := newGlyphDrawer(style)
	for _, p := range poses {
		if p.Separator {
			continue
		}
		c.Push()
		c.Translate(p.X, p.Y)
		c.Shear(l.Shear(p))
		err := d.draw(c, p.Rune)
		c.Pop()
		if err != nil {
			return err
		}
	}
	return nil
}

// DrawArcText draws s with l onto c. Each glyph is translated to its pose
// and rotated by its angle inside its own Push/Pop.
func DrawArcText(c Canvas, s string, l ArcLayout, style TextStyle) error {
	poses := l.Place(s)
	if len(poses) == 0 {
		return nil
	}
	d := newGlyphDrawer(style)
	for _, p := range poses {
		c.Push()
		c.Translate(p.X, p.Y)
		c.Rotate(p.Radians())
		if p.OffsetX != 0 {
			c.Translate(p.OffsetX, 0)
		}
		err := d.draw(c, p.Rune)
		c.Pop()
		if err != nil {
			return err
		}
	}
	return nil
}
