package fonts

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	findfont "github.com/flopp/go-findfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Names of the fonts every Registry carries.
const (
	GoRegular = "go-regular"
	GoBold    = "go-bold"
)

// Registry is an immutable set of named fonts. It is built once with
// NewRegistry and is safe for concurrent use afterwards.
type Registry struct {
	fonts       map[string]*Font
	defaultName string
}

// Option configures a Registry during construction.
type Option func(*registryOptions)

type source struct {
	name   string
	data   []byte
	path   string
	family string
}

type registryOptions struct {
	sources     []source
	defaultName string
}

// WithFontData registers a font from raw TTF/OTF bytes.
func WithFontData(name string, data []byte) Option {
	return func(o *registryOptions) {
		o.sources = append(o.sources, source{name: name, data: data})
	}
}

// WithFontFile registers a font read from path.
func WithFontFile(name, path string) Option {
	return func(o *registryOptions) {
		o.sources = append(o.sources, source{name: name, path: path})
	}
}

// WithSystemFont registers a font found in the user or system font
// directories, for example WithSystemFont("arial", "Arial.ttf").
func WithSystemFont(name, file string) Option {
	return func(o *registryOptions) {
		o.sources = append(o.sources, source{name: name, family: file})
	}
}

// WithDefault sets the font returned by Lookup("").
// The default is GoRegular.
func WithDefault(name string) Option {
	return func(o *registryOptions) {
		o.defaultName = name
	}
}

// NewRegistry parses the bundled Go fonts and every configured source.
func NewRegistry(opts ...Option) (*Registry, error) {
	o := registryOptions{defaultName: GoRegular}
	for _, opt := range opts {
		opt(&o)
	}

	builtin := []source{
		{name: GoRegular, data: goregular.TTF},
		{name: GoBold, data: gobold.TTF},
	}

	r := &Registry{
		fonts:       make(map[string]*Font, len(builtin)+len(o.sources)),
		defaultName: strings.ToLower(o.defaultName),
	}

	for _, src := range append(builtin, o.sources...) {
		if err := r.add(src); err != nil {
			_ = r.Close()
			return nil, err
		}
	}

	if _, ok := r.fonts[r.defaultName]; !ok {
		_ = r.Close()
		return nil, fmt.Errorf("default font %q: %w", o.defaultName, ErrUnknownFont)
	}
	return r, nil
}

func (r *Registry) add(src source) error {
	key := strings.ToLower(strings.TrimSpace(src.name))
	if key == "" {
		return fmt.Errorf("fonts: source without a name")
	}
	if _, ok := r.fonts[key]; ok {
		return fmt.Errorf("%q: %w", src.name, ErrDuplicateFont)
	}

	data := src.data
	switch {
	case src.path != "":
		// #nosec G304 -- font path comes from operator configuration
		b, err := os.ReadFile(src.path)
		if err != nil {
			return fmt.Errorf("font %q: read %s: %w", src.name, src.path, err)
		}
		data = b
	case src.family != "":
		path, err := findfont.Find(src.family)
		if err != nil {
			return fmt.Errorf("font %q: find %s: %w", src.name, src.family, err)
		}
		// #nosec G304 -- path resolved from font directories
		b, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("font %q: read %s: %w", src.name, path, err)
		}
		data = b
	}

	f, err := newFont(key, data)
	if err != nil {
		return err
	}
	r.fonts[key] = f
	return nil
}

// Lookup returns the font registered under name, ignoring case.
// An empty name selects the default font.
func (r *Registry) Lookup(name string) (*Font, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = r.defaultName
	}
	f, ok := r.fonts[key]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownFont)
	}
	return f, nil
}

// Default returns the default font.
func (r *Registry) Default() *Font {
	return r.fonts[r.defaultName]
}

// Names returns the registered font names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.fonts))
	for n := range r.fonts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Close releases the parsed font sources. The registry must not be used
// afterwards.
func (r *Registry) Close() error {
	var errs []error
	for _, f := range r.fonts {
		if err := f.close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
