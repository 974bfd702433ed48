package render

import (
	"image"
	"image/color"
	"io"
	"os"

	"github.com/disintegration/imaging"

	dterrors "github.com/matzehuels/datatree/pkg/errors"
)

// JPEGQuality is the quality used for JPEG export.
const JPEGQuality = 95

var white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// Finalize crops the figure to [CropBox] and resizes it to OutputSize x
// OutputSize with a Lanczos filter.
func Finalize(fig image.Image) (*Image, error) {
	if !CropBox.In(fig.Bounds()) {
		return nil, dterrors.New(dterrors.ErrCodeRenderFailed,
			"figure %v does not contain crop box %v", fig.Bounds(), CropBox)
	}
	cropped := imaging.Crop(fig, CropBox)
	return &Image{img: imaging.Resize(cropped, OutputSize, OutputSize, imaging.Lanczos)}, nil
}

// Image is a finalized chart image. It is not modified after creation;
// conversions return new images.
type Image struct {
	img *image.NRGBA
}

// NewImage wraps a copy of img.
func NewImage(img image.Image) *Image {
	return &Image{img: imaging.Clone(img)}
}

// Image returns a copy of the pixels.
func (i *Image) Image() *image.NRGBA { return imaging.Clone(i.img) }

// Bounds returns the image bounds.
func (i *Image) Bounds() image.Rectangle { return i.img.Bounds() }

// Opaque reports whether every pixel is fully opaque.
func (i *Image) Opaque() bool { return i.img.Opaque() }

// ToRGB flattens the image over a white background.
func (i *Image) ToRGB() *Image {
	b := i.img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), white)
	return &Image{img: imaging.Overlay(bg, i.img, image.Pt(0, 0), 1)}
}

// EncodePNG writes the image as PNG, keeping transparency.
func (i *Image) EncodePNG(w io.Writer) error {
	if err := imaging.Encode(w, i.img, imaging.PNG); err != nil {
		return dterrors.Wrap(dterrors.ErrCodeRenderFailed, err, "encode png")
	}
	return nil
}

// EncodeJPEG flattens the image and writes it as JPEG.
func (i *Image) EncodeJPEG(w io.Writer) error {
	if err := imaging.Encode(w, i.ToRGB().img, imaging.JPEG, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return dterrors.Wrap(dterrors.ErrCodeRenderFailed, err, "encode jpeg")
	}
	return nil
}

// SavePNG writes the image to path as PNG.
func (i *Image) SavePNG(path string) error {
	return writeFile(path, i.EncodePNG)
}

// SaveJPEG flattens the image and writes it to path as JPEG.
func (i *Image) SaveJPEG(path string) error {
	return writeFile(path, i.EncodeJPEG)
}

// Save writes the image in the format given by the path extension: .png,
// .jpg or .jpeg.
func (i *Image) Save(path string) error {
	format, err := dterrors.ImageFormat(path)
	if err != nil {
		return err
	}
	if format == "jpeg" {
		return i.SaveJPEG(path)
	}
	return i.SavePNG(path)
}

func writeFile(path string, encode func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return dterrors.Wrap(dterrors.ErrCodeRenderFailed, err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = dterrors.Wrap(dterrors.ErrCodeRenderFailed, cerr, "close %s", path)
		}
	}()
	return encode(f)
}
