package logotype

import (
	"math"
	"unicode"
)

// GlyphPose is the placement of one rune produced by a layout.
// X and Y are in canvas units, Angle is in degrees. OffsetX is applied in
// the glyph's local frame after the pose transform.
type GlyphPose struct {
	Rune      rune
	Index     int
	Separator bool
	X, Y      float64
	Angle     float64
	OffsetX   float64
}

// Radians returns the pose angle in radians.
func (p GlyphPose) Radians() float64 {
	return p.Angle * math.Pi / 180
}

// isSeparator reports whether r is drawn as a word gap.
func isSeparator(r rune) bool {
	return unicode.IsSpace(r)
}

// ShearAxis selects which coordinate a skew displaces.
type ShearAxis int

const (
	// ShearHorizontal displaces x in proportion to y, slanting letters
	// like italics.
	ShearHorizontal ShearAxis = iota
	// ShearVertical displaces y in proportion to x, matching the canvas
	// transform(1, tan, 0, 1, 0, 0) form.
	ShearVertical
)

// String returns the axis name used in configuration files.
func (a ShearAxis) String() string {
	if a == ShearVertical {
		return "vertical"
	}
	return "horizontal"
}

// SkewLayout places runes on a horizontal baseline, shearing each by an
// angle interpolated from StartAngle to EndAngle.
type SkewLayout struct {
	X, Y                 float64
	StartAngle, EndAngle float64
	// LetterSpacing is the cursor advance after an ordinary rune.
	LetterSpacing float64
	// WordSpacing is the cursor advance after a separator.
	WordSpacing float64
	Axis        ShearAxis
}

// Angle returns the shear angle in degrees for rune r at index i of n.
// The last rune always gets EndAngle; separators always get 0.
func (l SkewLayout) Angle(i, n int, r rune) float64 {
	if isSeparator(r) {
		return 0
	}
	if i == n-1 {
		return l.EndAngle
	}
	return l.StartAngle + float64(i)*(l.EndAngle-l.StartAngle)/float64(n)
}

// Place computes the pose of every rune in s.
func (l SkewLayout) Place(s string) []GlyphPose {
	runes := []rune(s)
	n := len(runes)
	if n == 0 {
		return nil
	}

	poses := make([]GlyphPose, n)
	x := l.X
	for i, r := range runes {
		sep := isSeparator(r)
		poses[i] = GlyphPose{
			Rune:      r,
			Index:     i,
			Separator: sep,
			X:         x,
			Y:         l.Y,
			Angle:     l.Angle(i, n, r),
		}
		if sep {
			x += l.WordSpacing
		} else {
			x += l.LetterSpacing
		}
	}
	return poses
}

// Shear returns the shear factors for a pose, as taken by gg.Shear.
func (l SkewLayout) Shear(p GlyphPose) (sx, sy float64) {
	t := math.Tan(p.Radians())
	if l.Axis == ShearVertical {
		return 0, t
	}
	return t, 0
}

// ArcLayout places runes along a circle of Radius around the center, or on
// a straight line through the center when Arc is false. Each rune is
// rotated by its interpolated angle.
type ArcLayout struct {
	CenterX, CenterY     float64
	StartAngle, EndAngle float64
	Radius               float64
	Arc                  bool
	// Spacing is added to x once per rune index.
	Spacing float64
	// SpaceAdvance is the local x offset given to separators, which have
	// no outline of their own.
	SpaceAdvance float64
}

// Angle returns the rotation in degrees for index i of n. Both ends of the
// range are reached; a single rune gets 0.
func (l ArcLayout) Angle(i, n int) float64 {
	if n == 1 {
		return 0
	}
	return l.StartAngle + float64(i)*(l.EndAngle-l.StartAngle)/float64(n-1)
}

// Position returns the canvas position for a rune at index i with the
// given angle in degrees.
func (l ArcLayout) Position(i int, angle float64) (x, y float64) {
	rad := angle * math.Pi / 180
	x = l.CenterX + l.Radius*math.Sin(rad) + l.Spacing*float64(i)
	lift := 0.0
	if l.Arc {
		lift = -l.Radius * (1 - math.Cos(rad))
	}
	y = l.CenterY - lift
	return x, y
}

// Place computes the pose of every rune in s.
func (l ArcLayout) Place(s string) []GlyphPose {
	runes := []rune(s)
	n := len(runes)
	if n == 0 {
		return nil
	}

	poses := make([]GlyphPose, n)
	for i, r := range runes {
		angle := l.Angle(i, n)
		x, y := l.Position(i, angle)
		p := GlyphPose{
			Rune:      r,
			Index:     i,
			Separator: isSeparator(r),
			X:         x,
			Y:         y,
			Angle:     angle,
		}
		if p.Separator {
			p.OffsetX = l.SpaceAdvance
		}
		poses[i] = p
	}
	return poses
}
