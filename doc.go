// Package logotype renders stylized logotypes: a line of skewed banner text
// over a trapezoid, above a wordmark laid out on a circular arc.
//
// # Overview
//
// The package is built on gg's canvas-style drawing context. Two layouts do
// the real work:
//
//   - [SkewLayout] walks a horizontal baseline with a fixed advance and
//     shears every glyph by an angle interpolated across the string.
//   - [ArcLayout] places glyphs on a circle (or a straight line), rotating
//     each one by its interpolated angle.
//
// Both are pure functions of glyph index and count; [DrawSkewText] and
// [DrawArcText] replay the resulting poses onto any [Canvas].
//
// # Quick Start
//
//	reg, err := fonts.NewRegistry()
//	if err != nil {
//	    return err
//	}
//	r, err := logotype.NewRenderer(reg)
//	if err != nil {
//	    return err
//	}
//	err = r.RenderPNG(ctx, w, logotype.Request{Text: "teenage mutant ninja turtles"})
//
// # Presets
//
// A [Preset] bundles every constant of one design: canvas size, colors,
// fonts, angle ranges, radius and spacing. The built-ins are [ClassicPreset],
// [OutlinedPreset] and [DynamicPreset]; more can be passed with
// [WithPresets] or loaded from YAML by the server.
//
// # Coordinate System
//
// Standard raster coordinates: origin at top-left, y grows downwards.
// Layout angles are in degrees; [GlyphPose.Radians] converts for the
// canvas transform.
package logotype
