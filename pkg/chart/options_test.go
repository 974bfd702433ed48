package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dterrors "github.com/matzehuels/datatree/pkg/errors"
)

func TestParseFontSizes(t *testing.T) {
	tests := []struct {
		in      string
		want    FontSizes
		wantErr bool
	}{
		{"8, 7, 6.5", FontSizes{8, 7, 6.5}, false},
		{"8,7,6.5", FontSizes{8, 7, 6.5}, false},
		{"8 7 6.5", FontSizes{8, 7, 6.5}, false},
		{"  10,  9 , 8 ", FontSizes{10, 9, 8}, false},
		{"", FontSizes{}, true},
		{"8, 7", FontSizes{}, true},
		{"8, 7, 6, 5", FontSizes{}, true},
		{"8, big, 6", FontSizes{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFontSizes(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dterrors.Is(err, dterrors.ErrCodeInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFontSizesFlagValue(t *testing.T) {
	fs := DefaultFontSizes
	assert.Equal(t, "8, 7, 6.5", fs.String())
	assert.Equal(t, "sizes", fs.Type())

	require.NoError(t, fs.Set("12 11 10"))
	assert.Equal(t, FontSizes{12, 11, 10}, fs)

	require.Error(t, fs.Set("x"))
	assert.Equal(t, FontSizes{12, 11, 10}, fs)
}

func TestOptionsWithDefaults(t *testing.T) {
	o := Options{}.WithDefaults()
	assert.Equal(t, "hsv", o.Colormap)
	assert.Equal(t, "Ebrima", o.FontFamily)
	assert.Equal(t, DefaultFontSizes, o.FontSizes)
	assert.Zero(t, o.Offset)

	o = Options{Colormap: "viridis", FontSizes: FontSizes{1, 2, 3}}.WithDefaults()
	assert.Equal(t, "viridis", o.Colormap)
	assert.Equal(t, FontSizes{1, 2, 3}, o.FontSizes)
}
