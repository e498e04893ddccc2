// Command logogen renders one logotype to a PNG file.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/logotype"
	"github.com/gogpu/logotype/fonts"
)

func main() {
	var (
		text       = flag.String("text", "", "logo text (empty uses the preset default)")
		preset     = flag.String("preset", "", "preset name (classic, outlined, dynamic)")
		width      = flag.Int("width", 0, "image width (0 uses the preset)")
		height     = flag.Int("height", 0, "image height (0 uses the preset)")
		background = flag.String("background", "", "background color")
		fontFile   = flag.String("font", "", "TrueType font file to use as the default font")
		output     = flag.String("output", "logo.png", "output file")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		logotype.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	var opts []fonts.Option
	if *fontFile != "" {
		opts = append(opts, fonts.WithFontFile("custom", *fontFile), fonts.WithDefault("custom"))
	}
	reg, err := fonts.NewRegistry(opts...)
	if err != nil {
		log.Fatalf("Failed to load fonts: %v", err)
	}
	defer func() { _ = reg.Close() }()

	r, err := logotype.NewRenderer(reg)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}

	dc, err := r.Render(context.Background(), logotype.Request{
		Text:       *text,
		Preset:     *preset,
		Background: *background,
		Width:      *width,
		Height:     *height,
	})
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}
	defer func() { _ = dc.Close() }()

	if err := dc.SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Logo saved to %s (%dx%d)\n", *output, dc.Width(), dc.Height())
}
