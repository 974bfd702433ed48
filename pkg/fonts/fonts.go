// Package fonts resolves font family names to parsed TrueType fonts.
//
// The Go font family is embedded in the binary and always available under
// the names listed by [Embedded]. Any other family is looked up among the
// user and system font files with go-findfont, matching the file name, so
// "Ebrima" finds ebrima.ttf. There is no silent fallback: a family that
// cannot be found is an error with code FONT_NOT_FOUND.
package fonts

import (
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	dterrors "github.com/matzehuels/datatree/pkg/errors"
)

// DPI is the resolution faces are rasterized at.
const DPI = 300

var embedded = map[string][]byte{
	"go":        goregular.TTF,
	"go bold":   gobold.TTF,
	"go italic": goitalic.TTF,
	"go mono":   gomono.TTF,
}

// Embedded returns the names of the fonts compiled into the binary.
func Embedded() []string {
	names := make([]string, 0, len(embedded))
	for n := range embedded {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Resolver loads fonts by family and caches parsed results. The zero value
// is ready to use and safe for concurrent use.
type Resolver struct {
	mu    sync.Mutex
	fonts map[string]*truetype.Font

	// find locates a font file by family; findfont.Find when nil.
	find func(name string) (string, error)
}

var defaultResolver Resolver

// Default returns the process-wide resolver used by [Load] and [Face].
func Default() *Resolver { return &defaultResolver }

// Load resolves family with the package-level resolver.
func Load(family string) (*truetype.Font, error) {
	return defaultResolver.Load(family)
}

// Face resolves family and returns a face of the given size in points at
// [DPI].
func Face(family string, points float64) (font.Face, error) {
	return defaultResolver.Face(family, points)
}

// Load returns the parsed font for family.
func (r *Resolver) Load(family string) (*truetype.Font, error) {
	key := strings.ToLower(strings.TrimSpace(family))
	if key == "" {
		return nil, dterrors.New(dterrors.ErrCodeFontNotFound, "font family is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.fonts[key]; ok {
		return f, nil
	}

	data, err := r.read(key, family)
	if err != nil {
		return nil, err
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, dterrors.Wrap(dterrors.ErrCodeFontNotFound, err, "font %q is not a usable TrueType font", family)
	}
	if r.fonts == nil {
		r.fonts = make(map[string]*truetype.Font)
	}
	r.fonts[key] = f
	return f, nil
}

// Face returns a face for family at the given size in points.
func (r *Resolver) Face(family string, points float64) (font.Face, error) {
	f, err := r.Load(family)
	if err != nil {
		return nil, err
	}
	return NewFace(f, points), nil
}

// NewFace creates a face for f at the given size in points at [DPI].
func NewFace(f *truetype.Font, points float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    points,
		DPI:     DPI,
		Hinting: font.HintingNone,
	})
}

func (r *Resolver) read(key, family string) ([]byte, error) {
	if data, ok := embedded[key]; ok {
		return data, nil
	}
	find := r.find
	if find == nil {
		find = findfont.Find
	}
	path, err := find(family + ".ttf")
	if err != nil {
		return nil, dterrors.Wrap(dterrors.ErrCodeFontNotFound, err,
			"font family %q not found; install it or choose another family (built in: %s)", family, strings.Join(Embedded(), ", "))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, dterrors.Wrap(dterrors.ErrCodeFontNotFound, err, "read font %s", path)
	}
	return data, nil
}
