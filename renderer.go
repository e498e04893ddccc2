package logotype

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"io"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/gogpu/gg"

	"github.com/gogpu/logotype/fonts"
)

// Request is one render call. Zero fields fall back to the preset.
type Request struct {
	Text       string
	Preset     string
	Background string
	Width      int
	Height     int
}

// Renderer draws logotypes. It holds only immutable configuration and is
// safe for concurrent use.
type Renderer struct {
	fonts         *fonts.Registry
	presets       map[string]*compiledPreset
	defaultPreset string
	maxWidth      int
	maxHeight     int
	maxTextLength int
}

// NewRenderer creates a Renderer using the fonts in reg.
func NewRenderer(reg *fonts.Registry, opts ...RendererOption) (*Renderer, error) {
	if reg == nil {
		return nil, fmt.Errorf("logotype: nil font registry")
	}
	o := defaultRendererOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxWidth <= 0 || o.maxHeight <= 0 {
		return nil, fmt.Errorf("max size %dx%d: %w", o.maxWidth, o.maxHeight, ErrInvalidDimensions)
	}

	r := &Renderer{
		fonts:         reg,
		presets:       make(map[string]*compiledPreset, len(o.presets)),
		defaultPreset: strings.ToLower(strings.TrimSpace(o.defaultPreset)),
		maxWidth:      o.maxWidth,
		maxHeight:     o.maxHeight,
		maxTextLength: o.maxTextLength,
	}
	for _, p := range o.presets {
		c, err := p.compile(reg)
		if err != nil {
			return nil, err
		}
		r.presets[c.Name] = c
	}
	if _, ok := r.presets[r.defaultPreset]; !ok {
		return nil, fmt.Errorf("default preset %q: %w", o.defaultPreset, ErrUnknownPreset)
	}

	Logger().Debug("logotype: renderer ready",
		"presets", len(r.presets), "default", r.defaultPreset, "fonts", len(reg.Names()))
	return r, nil
}

// Presets returns the available preset names in sorted order.
func (r *Renderer) Presets() []string {
	names := make([]string, 0, len(r.presets))
	for n := range r.presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// DefaultPreset returns the name of the preset used when a request names none.
func (r *Renderer) DefaultPreset() string {
	return r.defaultPreset
}

// plan is a validated request with every default applied.
type plan struct {
	preset     *compiledPreset
	banner     string
	wordmark   string
	background color.Color
	width      int
	height     int

	designWidth float64
	shape       ShapeSpec
	skew        SkewLayout
	arc         ArcLayout
}

// resolve validates req and fills in defaults before anything else reads it.
func (r *Renderer) resolve(req Request) (*plan, error) {
	name := strings.ToLower(strings.TrimSpace(req.Preset))
	if name == "" {
		name = r.defaultPreset
	}
	p, ok := r.presets[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", req.Preset, ErrUnknownPreset)
	}

	if r.maxTextLength > 0 && utf8.RuneCountInString(req.Text) > r.maxTextLength {
		return nil, fmt.Errorf("%d runes, limit %d: %w",
			utf8.RuneCountInString(req.Text), r.maxTextLength, ErrTextTooLong)
	}
	text := normalizeText(req.Text, p.DefaultText, p.Uppercase)
	banner, wordmark := splitWords(text, p.BannerWords)

	pl := &plan{
		preset:     p,
		banner:     banner,
		wordmark:   wordmark,
		background: p.background,
		shape:      p.Banner.Shape,
	}
	if strings.TrimSpace(req.Background) != "" {
		bg, err := ParseColor(req.Background)
		if err != nil {
			return nil, err
		}
		pl.background = bg
	}

	pl.designWidth = float64(p.Width)
	bannerOffset := p.Banner.OffsetX
	wordmarkOffset := p.Wordmark.OffsetX
	if p.AutoSize {
		bannerOffset, wordmarkOffset = r.autosize(pl)
	}
	mid := pl.designWidth / 2

	pl.skew = SkewLayout{
		X:             mid + bannerOffset,
		Y:             p.Banner.Y,
		StartAngle:    p.Banner.StartAngle,
		EndAngle:      p.Banner.EndAngle,
		LetterSpacing: p.Banner.LetterSpacing,
		WordSpacing:   p.Banner.WordSpacing,
		Axis:          p.shear,
	}
	pl.arc = ArcLayout{
		CenterX:      mid + wordmarkOffset,
		CenterY:      p.Wordmark.Y,
		StartAngle:   p.Wordmark.StartAngle,
		EndAngle:     p.Wordmark.EndAngle,
		Radius:       p.Wordmark.Radius,
		Arc:          p.Wordmark.Arc,
		Spacing:      p.Wordmark.Spacing,
		SpaceAdvance: p.Wordmark.SpaceAdvance,
	}

	pl.width, pl.height = req.Width, req.Height
	if pl.width == 0 {
		pl.width = int(math.Ceil(pl.designWidth))
	}
	if pl.height == 0 {
		pl.height = p.Height
	}
	if pl.width < 0 || pl.height < 0 || pl.width > r.maxWidth || pl.height > r.maxHeight {
		return nil, fmt.Errorf("%dx%d, limit %dx%d: %w",
			pl.width, pl.height, r.maxWidth, r.maxHeight, ErrInvalidDimensions)
	}
	return pl, nil
}

// autosize sets the design width and banner shape from the measured text
// and returns the banner and wordmark offsets from the midline.
func (r *Renderer) autosize(pl *plan) (bannerOffset, wordmarkOffset float64) {
	p := pl.preset
	b := p.Banner
	style := p.bannerStyle

	// The banner cursor advances by fixed spacing, so the drawn span comes
	// from the layout while the glyph extents come from measurement.
	span := 0.0
	if poses := (SkewLayout{LetterSpacing: b.LetterSpacing, WordSpacing: b.WordSpacing}).Place(pl.banner); len(poses) > 0 {
		span = poses[len(poses)-1].X - poses[0].X
	}
	measured := style.Font.Measure(pl.banner, style.Size)
	textWidth := math.Max(span+b.LetterSpacing, measured)

	slant := p.Banner.Shape.TopWidth - p.Banner.Shape.BottomWidth
	pl.shape.TopWidth = textWidth + 2*p.Padding
	pl.shape.BottomWidth = math.Max(pl.shape.TopWidth-slant, 0)

	n := utf8.RuneCountInString(pl.wordmark)
	wm := p.wordmarkStyle
	wordmarkWidth := 0.0
	if n > 0 {
		wordmarkWidth = math.Max(p.Wordmark.Spacing*float64(n-1), 0) + wm.Font.Measure(pl.wordmark, wm.Size)/float64(n)
	}

	width := math.Max(pl.shape.TopWidth, pl.shape.BottomWidth) + 2*p.Padding
	width = math.Max(width, wordmarkWidth+2*p.Padding)
	width = math.Max(width, float64(p.MinWidth))
	pl.designWidth = math.Ceil(width)

	bannerOffset = -span / 2
	wordmarkOffset = p.Wordmark.OffsetX
	if n > 1 {
		wordmarkOffset -= p.Wordmark.Spacing * float64(n-1) / 2
	}
	Logger().Debug("logotype: autosize",
		"banner_span", span, "banner_measured", measured, "wordmark_width", wordmarkWidth, "width", pl.designWidth)
	return bannerOffset, wordmarkOffset
}

// Render draws the logotype for req. The caller owns the returned context
// and must Close it.
func (r *Renderer) Render(ctx context.Context, req Request) (*gg.Context, error) {
	pl, err := r.resolve(req)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(pl.width, pl.height)
	if err := r.draw(ctx, dc, pl); err != nil {
		_ = dc.Close()
		return nil, err
	}

	Logger().Debug("logotype: rendered",
		"preset", pl.preset.Name, "width", pl.width, "height", pl.height,
		"banner", pl.banner, "wordmark", pl.wordmark)
	return dc, nil
}

// RenderPNG renders req and writes it to w as PNG. The image is fully
// encoded before the first byte is written, so a failure leaves w untouched.
func (r *Renderer) RenderPNG(ctx context.Context, w io.Writer, req Request) error {
	dc, err := r.Render(ctx, req)
	if err != nil {
		return err
	}
	defer func() { _ = dc.Close() }()

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err = buf.WriteTo(w)
	return err
}

func (r *Renderer) draw(ctx context.Context, dc *gg.Context, pl *plan) error {
	dc.ClearWithColor(gg.FromColor(pl.background))

	// Fit the design into the canvas, centered, keeping its aspect ratio.
	dw, dh := pl.designWidth, float64(pl.preset.Height)
	scale := math.Min(float64(pl.width)/dw, float64(pl.height)/dh)
	dc.Push()
	defer dc.Pop()
	dc.Translate((float64(pl.width)-dw*scale)/2, (float64(pl.height)-dh*scale)/2)
	dc.Scale(scale, scale)

	if err := drawTrapezoid(dc, dw/2, pl.shape, pl.preset.shapeFill, pl.preset.shapeStroke); err != nil {
		return fmt.Errorf("banner shape: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := DrawSkewText(dc, pl.banner, pl.skew, pl.preset.bannerStyle); err != nil {
		return fmt.Errorf("banner text: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := DrawArcText(dc, pl.wordmark, pl.arc, pl.preset.wordmarkStyle); err != nil {
		return fmt.Errorf("wordmark: %w", err)
	}
	return ctx.Err()
}

// drawTrapezoid fills and outlines the banner shape centered on mid.
func drawTrapezoid(c Canvas, mid float64, s ShapeSpec, fill, stroke color.Color) error {
	if s.TopWidth <= 0 && s.BottomWidth <= 0 {
		return nil
	}
	c.MoveTo(mid-s.TopWidth/2, s.Top)
	c.LineTo(mid+s.TopWidth/2, s.Top)
	c.LineTo(mid+s.BottomWidth/2, s.Bottom)
	c.LineTo(mid-s.BottomWidth/2, s.Bottom)
	c.ClosePath()

	if fill != nil {
		c.SetColor(fill)
		if err := c.FillPreserve(); err != nil {
			return err
		}
	}
	if stroke != nil && s.LineWidth > 0 {
		c.SetColor(stroke)
		c.SetLineWidth(s.LineWidth)
		if err := c.Stroke(); err != nil {
			return err
		}
	}
	c.ClearPath()
	return nil
}
