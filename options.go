package logotype

// RendererOption configures a Renderer during creation.
//
// Example:
//
//	reg, _ := fonts.NewRegistry()
//	r, _ := logotype.NewRenderer(reg,
//	    logotype.WithDefaultPreset(logotype.PresetOutlined),
//	    logotype.WithMaxDimensions(2048, 2048),
//	)
type RendererOption func(*rendererOptions)

// rendererOptions holds optional configuration for Renderer creation.
type rendererOptions struct {
	presets       []Preset
	defaultPreset string
	maxWidth      int
	maxHeight     int
	maxTextLength int
}

// defaultRendererOptions returns the default renderer options.
func defaultRendererOptions() rendererOptions {
	return rendererOptions{
		presets:       DefaultPresets(),
		defaultPreset: PresetClassic,
		maxWidth:      4096,
		maxHeight:     4096,
		maxTextLength: 256,
	}
}

// WithPresets adds presets to the built-in set. A preset with the name of
// a built-in replaces it.
func WithPresets(presets ...Preset) RendererOption {
	return func(o *rendererOptions) {
		o.presets = append(o.presets, presets...)
	}
}

// WithDefaultPreset selects the preset used when a request names none.
func WithDefaultPreset(name string) RendererOption {
	return func(o *rendererOptions) {
		o.defaultPreset = name
	}
}

// WithMaxDimensions bounds the output canvas size a request may ask for.
func WithMaxDimensions(width, height int) RendererOption {
	return func(o *rendererOptions) {
		o.maxWidth = width
		o.maxHeight = height
	}
}

// WithMaxTextLength bounds the request text length in runes.
func WithMaxTextLength(n int) RendererOption {
	return func(o *rendererOptions) {
		o.maxTextLength = n
	}
}
