package logotype

import (
	"testing"

	"github.com/gogpu/logotype/fonts"
)

func TestBuiltinPresetsCompile(t *testing.T) {
	reg, err := fonts.NewRegistry()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = reg.Close() })

	for _, p := range DefaultPresets() {
		t.Run(p.Name, func(t *testing.T) {
			c, err := p.compile(reg)
			if err != nil {
				t.Fatalf("compile() error = %v", err)
			}
			if c.bannerStyle.Font == nil || c.wordmarkStyle.Font == nil {
				t.Error("text styles without fonts")
			}
			if c.shapeFill == nil {
				t.Error("banner shape has no fill")
			}
		})
	}
}

func TestClassicPresetShear(t *testing.T) {
	reg, err := fonts.NewRegistry()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = reg.Close() })

	c, err := ClassicPreset().compile(reg)
	if err != nil {
		t.Fatal(err)
	}
	if c.shear != ShearVertical {
		t.Errorf("classic shear = %v, want vertical", c.shear)
	}

	c, err = OutlinedPreset().compile(reg)
	if err != nil {
		t.Fatal(err)
	}
	if c.shear != ShearHorizontal {
		t.Errorf("outlined shear = %v, want horizontal", c.shear)
	}
}

func TestFontSpecDefaults(t *testing.T) {
	reg, err := fonts.NewRegistry(fonts.WithDefault(fonts.GoBold))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = reg.Close() })

	style, err := FontSpec{Size: 20}.style(reg)
	if err != nil {
		t.Fatal(err)
	}
	if style.Font.Name() != fonts.GoBold {
		t.Errorf("font = %q, want registry default %q", style.Font.Name(), fonts.GoBold)
	}
	if style.Anchor != AnchorCenter {
		t.Errorf("anchor = %+v, want center", style.Anchor)
	}
	if style.Stroke != nil {
		t.Errorf("stroke = %v, want none", style.Stroke)
	}
	if r, g, b, _ := style.Fill.RGBA(); r != 0 || g != 0 || b != 0 {
		t.Errorf("fill = %v, want black", style.Fill)
	}

	custom := Anchor{X: 0, Y: 1}
	style, err = FontSpec{Size: 20, Anchor: &custom, Stroke: "white", StrokeWidth: 2}.style(reg)
	if err != nil {
		t.Fatal(err)
	}
	if style.Anchor != custom || style.Stroke == nil || style.StrokeWidth != 2 {
		t.Errorf("style = %+v", style)
	}
}
