package chart

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/datatree/pkg/colormap"
	dterrors "github.com/matzehuels/datatree/pkg/errors"
)

// Defaults applied by [Options.WithDefaults].
const (
	DefaultColormap   = colormap.Default
	DefaultOffset     = 20.0
	DefaultFontFamily = "Ebrima"
)

// DefaultFontSizes are the inner, mid and outer label sizes in points.
var DefaultFontSizes = FontSizes{8, 7, 6.5}

// Options configures [Build].
//
// Offset controls the color shift of the mid and outer rings relative to the
// inner ring: shift = -round(wedges / Offset). Zero disables the shift.
// Offset sign and font size ranges are not validated here.
type Options struct {
	Colormap   string
	Offset     float64
	FontFamily string
	FontSizes  FontSizes
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Colormap:   DefaultColormap,
		Offset:     DefaultOffset,
		FontFamily: DefaultFontFamily,
		FontSizes:  DefaultFontSizes,
	}
}

// WithDefaults fills empty string fields and all-zero font sizes. Offset is
// left alone since zero is meaningful.
func (o Options) WithDefaults() Options {
	if o.Colormap == "" {
		o.Colormap = DefaultColormap
	}
	if o.FontFamily == "" {
		o.FontFamily = DefaultFontFamily
	}
	if o.FontSizes == (FontSizes{}) {
		o.FontSizes = DefaultFontSizes
	}
	return o
}

// FontSizes holds the label sizes in points for the inner, mid and outer
// ring. It implements pflag.Value so it can be bound to a command flag.
type FontSizes [3]float64

var fontSizeSep = regexp.MustCompile(`\s*,\s*|\s+`)

// ParseFontSizes parses three sizes separated by commas and/or spaces, such
// as "8, 7, 6.5" or "8 7 6.5".
func ParseFontSizes(s string) (FontSizes, error) {
	var fs FontSizes
	s = strings.TrimSpace(s)
	if s == "" {
		return fs, dterrors.New(dterrors.ErrCodeInvalidInput, "font sizes: empty")
	}
	parts := fontSizeSep.Split(s, -1)
	if len(parts) != len(fs) {
		return fs, dterrors.New(dterrors.ErrCodeInvalidInput, "font sizes: want 3 values (inner, mid, outer), got %d", len(parts))
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return fs, dterrors.Wrap(dterrors.ErrCodeInvalidInput, err, "font sizes: %q is not a number", p)
		}
		fs[i] = v
	}
	return fs, nil
}

// String formats the sizes the way ParseFontSizes reads them.
func (f *FontSizes) String() string {
	parts := make([]string, len(f))
	for i, v := range f {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ", ")
}

// Set parses s into f.
func (f *FontSizes) Set(s string) error {
	v, err := ParseFontSizes(s)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Type names the flag value type in help output.
func (f *FontSizes) Type() string { return "sizes" }
