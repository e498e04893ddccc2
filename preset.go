package logotype

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/gogpu/logotype/fonts"
)

// Preset is one logotype design. Horizontal positions are offsets from the
// vertical midline of the design, so the same preset works at any width.
// Vertical positions are absolute design-space coordinates.
type Preset struct {
	Name        string `yaml:"name"`
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	Background  string `yaml:"background"`
	DefaultText string `yaml:"default_text"`
	Uppercase   bool   `yaml:"uppercase"`
	// BannerWords is how many leading words go on the banner; the rest
	// form the wordmark.
	BannerWords int `yaml:"banner_words"`

	// AutoSize derives the design width from the measured text. Width is
	// then only used when the measured width is smaller than MinWidth.
	AutoSize bool    `yaml:"auto_size"`
	MinWidth int     `yaml:"min_width"`
	Padding  float64 `yaml:"padding"`

	Banner   BannerSpec   `yaml:"banner"`
	Wordmark WordmarkSpec `yaml:"wordmark"`
}

// ShapeSpec is the trapezoid drawn behind the banner text, centered on the
// midline.
type ShapeSpec struct {
	Top         float64 `yaml:"top"`
	Bottom      float64 `yaml:"bottom"`
	TopWidth    float64 `yaml:"top_width"`
	BottomWidth float64 `yaml:"bottom_width"`
	Fill        string  `yaml:"fill"`
	Stroke      string  `yaml:"stroke"`
	LineWidth   float64 `yaml:"line_width"`
}

// FontSpec selects a registered font and its paint.
type FontSpec struct {
	Font        string  `yaml:"font"`
	Size        float64 `yaml:"size"`
	Fill        string  `yaml:"fill"`
	Stroke      string  `yaml:"stroke"`
	StrokeWidth float64 `yaml:"stroke_width"`
	Anchor      *Anchor `yaml:"anchor"`
}

// BannerSpec configures the skewed banner line.
type BannerSpec struct {
	Shape         ShapeSpec `yaml:"shape"`
	Text          FontSpec  `yaml:"text"`
	OffsetX       float64   `yaml:"offset_x"`
	Y             float64   `yaml:"y"`
	StartAngle    float64   `yaml:"start_angle"`
	EndAngle      float64   `yaml:"end_angle"`
	LetterSpacing float64   `yaml:"letter_spacing"`
	WordSpacing   float64   `yaml:"word_spacing"`
	Shear         string    `yaml:"shear"`
}

// WordmarkSpec configures the arced wordmark.
type WordmarkSpec struct {
	Text         FontSpec `yaml:"text"`
	OffsetX      float64  `yaml:"offset_x"`
	Y            float64  `yaml:"y"`
	StartAngle   float64  `yaml:"start_angle"`
	EndAngle     float64  `yaml:"end_angle"`
	Radius       float64  `yaml:"radius"`
	Arc          bool     `yaml:"arc"`
	Spacing      float64  `yaml:"spacing"`
	SpaceAdvance float64  `yaml:"space_advance"`
}

// Built-in preset names.
const (
	PresetClassic  = "classic"
	PresetOutlined = "outlined"
	PresetDynamic  = "dynamic"
)

// ClassicPreset is the plain design: an 800x600 canvas,
// a red trapezoid under three green skewed words and a small green arc.
func ClassicPreset() Preset {
	return Preset{
		Name:        PresetClassic,
		Width:       800,
		Height:      600,
		Background:  "white",
		DefaultText: "No Text Provided",
		BannerWords: 3,
		Banner: BannerSpec{
			Shape: ShapeSpec{
				Top: 150, Bottom: 200,
				TopWidth: 600, BottomWidth: 500,
				Fill: "red", Stroke: "black", LineWidth: 8,
			},
			Text:          FontSpec{Font: fonts.GoRegular, Size: 40, Fill: "green"},
			OffsetX:       -300,
			Y:             180,
			StartAngle:    -10,
			EndAngle:      10,
			LetterSpacing: 30,
			WordSpacing:   30,
			Shear:         ShearVertical.String(),
		},
		Wordmark: WordmarkSpec{
			Text:         FontSpec{Font: fonts.GoRegular, Size: 40, Fill: "green"},
			Y:            265,
			StartAngle:   -30,
			EndAngle:     30,
			Radius:       50,
			Arc:          true,
			SpaceAdvance: 8,
		},
	}
}

// OutlinedPreset upper-cases the text and draws a large bold wordmark with
// a dark outline on a wide arc.
func OutlinedPreset() Preset {
	return Preset{
		Name:        PresetOutlined,
		Width:       800,
		Height:      600,
		Background:  "white",
		DefaultText: "Teenage Mutant Ninja Turtles",
		Uppercase:   true,
		BannerWords: 3,
		Banner: BannerSpec{
			Shape: ShapeSpec{
				Top: 120, Bottom: 180,
				TopWidth: 640, BottomWidth: 540,
				Fill: "#d7261e", Stroke: "black", LineWidth: 6,
			},
			Text:          FontSpec{Font: fonts.GoBold, Size: 36, Fill: "white"},
			OffsetX:       -247,
			Y:             152,
			StartAngle:    -8,
			EndAngle:      8,
			LetterSpacing: 26,
			WordSpacing:   26,
			Shear:         ShearHorizontal.String(),
		},
		Wordmark: WordmarkSpec{
			Text: FontSpec{
				Font: fonts.GoBold, Size: 96,
				Fill: "#7ac143", Stroke: "#1b1b1b", StrokeWidth: 4,
			},
			Y:            330,
			StartAngle:   -20,
			EndAngle:     20,
			Radius:       600,
			Arc:          true,
			SpaceAdvance: 24,
		},
	}
}

// DynamicPreset is OutlinedPreset with the design width derived from the
// measured text.
func DynamicPreset() Preset {
	p := OutlinedPreset()
	p.Name = PresetDynamic
	p.AutoSize = true
	p.MinWidth = 400
	p.Padding = 40
	p.Wordmark.Radius = 0
	p.Wordmark.Arc = false
	p.Wordmark.StartAngle = 0
	p.Wordmark.EndAngle = 0
	p.Wordmark.Spacing = 68
	p.Wordmark.SpaceAdvance = 0
	return p
}

// DefaultPresets returns the built-in presets.
func DefaultPresets() []Preset {
	return []Preset{ClassicPreset(), OutlinedPreset(), DynamicPreset()}
}

// compiledPreset is a Preset with fonts and colors resolved.
type compiledPreset struct {
	Preset
	background    color.Color
	shapeFill     color.Color
	shapeStroke   color.Color
	bannerStyle   TextStyle
	wordmarkStyle TextStyle
	shear         ShearAxis
}

// compile validates p and resolves it against reg.
func (p Preset) compile(reg *fonts.Registry) (*compiledPreset, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, fmt.Errorf("preset without a name")
	}
	if p.Width <= 0 || p.Height <= 0 {
		return nil, fmt.Errorf("preset %q: size %dx%d: %w", name, p.Width, p.Height, ErrInvalidDimensions)
	}
	if p.BannerWords < 0 {
		return nil, fmt.Errorf("preset %q: negative banner_words %d", name, p.BannerWords)
	}

	c := &compiledPreset{Preset: p}
	c.Name = strings.ToLower(name)

	var err error
	if c.background, err = optionalColor(p.Background, color.White); err != nil {
		return nil, fmt.Errorf("preset %q: background: %w", name, err)
	}
	if c.shapeFill, err = optionalColor(p.Banner.Shape.Fill, nil); err != nil {
		return nil, fmt.Errorf("preset %q: banner shape fill: %w", name, err)
	}
	if c.shapeStroke, err = optionalColor(p.Banner.Shape.Stroke, nil); err != nil {
		return nil, fmt.Errorf("preset %q: banner shape stroke: %w", name, err)
	}
	if c.bannerStyle, err = p.Banner.Text.style(reg); err != nil {
		return nil, fmt.Errorf("preset %q: banner text: %w", name, err)
	}
	if c.wordmarkStyle, err = p.Wordmark.Text.style(reg); err != nil {
		return nil, fmt.Errorf("preset %q: wordmark text: %w", name, err)
	}

	switch strings.ToLower(strings.TrimSpace(p.Banner.Shear)) {
	case "", "horizontal":
		c.shear = ShearHorizontal
	case "vertical":
		c.shear = ShearVertical
	default:
		return nil, fmt.Errorf("preset %q: unknown shear axis %q", name, p.Banner.Shear)
	}
	return c, nil
}

func (s FontSpec) style(reg *fonts.Registry) (TextStyle, error) {
	f, err := reg.Lookup(s.Font)
	if err != nil {
		return TextStyle{}, err
	}
	if s.Size <= 0 {
		return TextStyle{}, fmt.Errorf("font size %v must be positive", s.Size)
	}
	fill, err := optionalColor(s.Fill, color.Black)
	if err != nil {
		return TextStyle{}, fmt.Errorf("fill: %w", err)
	}
	stroke, err := optionalColor(s.Stroke, nil)
	if err != nil {
		return TextStyle{}, fmt.Errorf("stroke: %w", err)
	}
	anchor := AnchorCenter
	if s.Anchor != nil {
		anchor = *s.Anchor
	}
	return TextStyle{
		Font:        f,
		Size:        s.Size,
		Fill:        fill,
		Stroke:      stroke,
		StrokeWidth: s.StrokeWidth,
		Anchor:      anchor,
	}, nil
}

func optionalColor(s string, def color.Color) (color.Color, error) {
	if strings.TrimSpace(s) == "" {
		return def, nil
	}
	return ParseColor(s)
}
