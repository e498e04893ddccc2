package logotype

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"strings"
	"testing"

	"github.com/gogpu/gg"

	"github.com/gogpu/logotype/fonts"
)

func newTestRenderer(t *testing.T, opts ...RendererOption) *Renderer {
	t.Helper()
	reg, err := fonts.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	t.Cleanup(func() { _ = reg.Close() })

	r, err := NewRenderer(reg, opts...)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	return r
}

func render(t *testing.T, r *Renderer, req Request) *gg.Context {
	t.Helper()
	dc, err := r.Render(context.Background(), req)
	if err != nil {
		t.Fatalf("Render(%+v) error = %v", req, err)
	}
	t.Cleanup(func() { _ = dc.Close() })
	return dc
}

func pixel(dc *gg.Context, x, y int) (r, g, b uint8) {
	cr, cg, cb, _ := dc.Image().At(x, y).RGBA()
	return uint8(cr >> 8), uint8(cg >> 8), uint8(cb >> 8)
}

func TestRenderClassicDefaults(t *testing.T) {
	r := newTestRenderer(t)
	dc := render(t, r, Request{})

	if dc.Width() != 800 || dc.Height() != 600 {
		t.Fatalf("size = %dx%d, want 800x600", dc.Width(), dc.Height())
	}
	if cr, cg, cb := pixel(dc, 5, 5); cr != 255 || cg != 255 || cb != 255 {
		t.Errorf("background at (5,5) = (%d,%d,%d), want white", cr, cg, cb)
	}
	// Inside the trapezoid, right of the banner text.
	if cr, cg, cb := pixel(dc, 650, 165); cr < 200 || cg > 60 || cb > 60 {
		t.Errorf("trapezoid at (650,165) = (%d,%d,%d), want red", cr, cg, cb)
	}
	// On the top edge stroke.
	if cr, cg, cb := pixel(dc, 400, 150); cr > 60 || cg > 60 || cb > 60 {
		t.Errorf("trapezoid stroke at (400,150) = (%d,%d,%d), want black", cr, cg, cb)
	}
}

func TestRenderDrawsBannerAndWordmark(t *testing.T) {
	r := newTestRenderer(t)
	dc := render(t, r, Request{Text: "teenage mutant ninja turtles"})

	greenIn := func(x0, y0, x1, y1 int) int {
		n := 0
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				cr, cg, cb := pixel(dc, x, y)
				if cg > 80 && cr < 80 && cb < 80 {
					n++
				}
			}
		}
		return n
	}

	if n := greenIn(90, 160, 700, 200); n == 0 {
		t.Error("no banner text pixels over the trapezoid")
	}
	if n := greenIn(320, 220, 480, 320); n == 0 {
		t.Error("no wordmark pixels around the arc center")
	}

	empty := render(t, r, Request{Text: "a b c"})
	if n := countNonWhitePixels(empty, 300, 230, 500, 320); n != 0 {
		t.Errorf("wordmark area has %d pixels with no wordmark words", n)
	}
}

// The default three banner words of the outlined preset leave a band of
// plain fill between the text and both slanted edges.
func TestRenderOutlinedBannerInsideShape(t *testing.T) {
	r := newTestRenderer(t)
	dc := render(t, r, Request{Preset: PresetOutlined})

	isFill := func(x, y int) bool {
		cr, cg, cb := pixel(dc, x, y)
		return cr > 150 && cg < 90 && cb < 90
	}
	for _, band := range []struct {
		name   string
		x0, x1 int
	}{
		{"left", 122, 136},
		{"right", 666, 678},
	} {
		for y := 136; y <= 162; y++ {
			for x := band.x0; x < band.x1; x++ {
				if !isFill(x, y) {
					cr, cg, cb := pixel(dc, x, y)
					t.Fatalf("%s margin (%d,%d) = (%d,%d,%d), want banner fill", band.name, x, y, cr, cg, cb)
				}
			}
		}
	}

	// The text itself is drawn inside the shape.
	white := 0
	for y := 136; y <= 164; y++ {
		for x := 136; x < 666; x++ {
			if cr, cg, cb := pixel(dc, x, y); cr > 230 && cg > 230 && cb > 230 {
				white++
			}
		}
	}
	if white == 0 {
		t.Error("no banner text pixels inside the shape")
	}
}

func TestRenderPNGRoundTrip(t *testing.T) {
	r := newTestRenderer(t)
	tests := []struct {
		name          string
		req           Request
		width, height int
	}{
		{"defaults", Request{Text: "A B C D"}, 800, 600},
		{"explicit", Request{Text: "A B C D", Width: 320, Height: 200}, 320, 200},
		{"width only", Request{Width: 1024}, 1024, 600},
		{"outlined", Request{Preset: PresetOutlined, Height: 300}, 800, 300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := r.RenderPNG(context.Background(), &buf, tt.req); err != nil {
				t.Fatalf("RenderPNG() error = %v", err)
			}
			img, err := png.Decode(&buf)
			if err != nil {
				t.Fatalf("png.Decode() error = %v", err)
			}
			b := img.Bounds()
			if b.Dx() != tt.width || b.Dy() != tt.height {
				t.Errorf("decoded size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.width, tt.height)
			}
		})
	}
}

func TestRenderBackground(t *testing.T) {
	r := newTestRenderer(t)
	dc := render(t, r, Request{Background: "black"})
	if cr, cg, cb := pixel(dc, 5, 5); cr != 0 || cg != 0 || cb != 0 {
		t.Errorf("background = (%d,%d,%d), want black", cr, cg, cb)
	}

	dc = render(t, r, Request{Background: "#0000ff"})
	if cr, cg, cb := pixel(dc, 5, 5); cr != 0 || cg != 0 || cb != 255 {
		t.Errorf("background = (%d,%d,%d), want blue", cr, cg, cb)
	}
}

func TestRenderValidation(t *testing.T) {
	r := newTestRenderer(t, WithMaxDimensions(1000, 1000), WithMaxTextLength(20))
	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"unknown preset", Request{Preset: "nope"}, ErrUnknownPreset},
		{"bad color", Request{Background: "plaid"}, ErrInvalidColor},
		{"negative width", Request{Width: -1}, ErrInvalidDimensions},
		{"too tall", Request{Height: 1001}, ErrInvalidDimensions},
		{"too long", Request{Text: strings.Repeat("x", 21)}, ErrTextTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dc, err := r.Render(context.Background(), tt.req)
			if err == nil {
				_ = dc.Close()
				t.Fatal("Render() succeeded, want error")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Render() error = %v, want %v", err, tt.want)
			}
			if !IsInvalidRequest(err) {
				t.Errorf("IsInvalidRequest(%v) = false", err)
			}
		})
	}
}

func TestRenderCanceled(t *testing.T) {
	r := newTestRenderer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Render(ctx, Request{Text: "a b c d"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Render() error = %v, want context.Canceled", err)
	}
	if IsInvalidRequest(err) {
		t.Error("cancellation classified as invalid request")
	}

	var buf bytes.Buffer
	if err := r.RenderPNG(ctx, &buf, Request{}); !errors.Is(err, context.Canceled) {
		t.Errorf("RenderPNG() error = %v, want context.Canceled", err)
	}
	if buf.Len() != 0 {
		t.Errorf("RenderPNG wrote %d bytes on failure", buf.Len())
	}
}

func TestRenderAutoSize(t *testing.T) {
	r := newTestRenderer(t)

	short := render(t, r, Request{Preset: PresetDynamic, Text: "a b c d"})
	if short.Width() != 400 {
		t.Errorf("short text width = %d, want MinWidth 400", short.Width())
	}

	long := render(t, r, Request{
		Preset: PresetDynamic,
		Text:   "supercalifragilistic expialidocious words turtles",
	})
	if long.Width() <= 1200 {
		t.Errorf("long text width = %d, want > 1200", long.Width())
	}
	if long.Height() != 600 {
		t.Errorf("long text height = %d, want 600", long.Height())
	}

	fixed := render(t, r, Request{Preset: PresetDynamic, Text: "a b c d", Width: 640})
	if fixed.Width() != 640 {
		t.Errorf("explicit width = %d, want 640", fixed.Width())
	}
}

func TestRendererPresets(t *testing.T) {
	custom := ClassicPreset()
	custom.Name = "Mono"
	custom.Banner.Shape.Fill = "gray"

	r := newTestRenderer(t, WithPresets(custom), WithDefaultPreset("mono"))
	got := r.Presets()
	want := []string{PresetClassic, PresetDynamic, "mono", PresetOutlined}
	if len(got) != len(want) {
		t.Fatalf("Presets() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Presets()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if r.DefaultPreset() != "mono" {
		t.Errorf("DefaultPreset() = %q, want mono", r.DefaultPreset())
	}

	dc := render(t, r, Request{})
	if cr, cg, cb := pixel(dc, 650, 165); cr != cg || cg != cb {
		t.Errorf("custom trapezoid at (650,165) = (%d,%d,%d), want gray", cr, cg, cb)
	}
}

func TestNewRendererErrors(t *testing.T) {
	reg, err := fonts.NewRegistry()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = reg.Close() })

	if _, err := NewRenderer(nil); err == nil {
		t.Error("NewRenderer(nil) succeeded")
	}
	if _, err := NewRenderer(reg, WithDefaultPreset("missing")); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("unknown default preset error = %v", err)
	}
	if _, err := NewRenderer(reg, WithMaxDimensions(0, 10)); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("zero max dimensions error = %v", err)
	}

	bad := func(mut func(*Preset)) Preset {
		p := ClassicPreset()
		p.Name = "bad"
		mut(&p)
		return p
	}
	tests := []struct {
		name   string
		preset Preset
		want   error
	}{
		{"zero size", bad(func(p *Preset) { p.Width = 0 }), ErrInvalidDimensions},
		{"bad background", bad(func(p *Preset) { p.Background = "nope" }), ErrInvalidColor},
		{"bad text fill", bad(func(p *Preset) { p.Wordmark.Text.Fill = "#12" }), ErrInvalidColor},
		{"unknown font", bad(func(p *Preset) { p.Banner.Text.Font = "papyrus" }), fonts.ErrUnknownFont},
		{"bad size", bad(func(p *Preset) { p.Banner.Text.Size = 0 }), nil},
		{"bad shear", bad(func(p *Preset) { p.Banner.Shear = "diagonal" }), nil},
		{"no name", bad(func(p *Preset) { p.Name = " " }), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRenderer(reg, WithPresets(tt.preset))
			if err == nil {
				t.Fatal("NewRenderer() succeeded, want error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("NewRenderer() error = %v, want %v", err, tt.want)
			}
		})
	}
}
