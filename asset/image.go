// Package asset decodes images into premultiplied RGBA texels ready for
// upload and parses spritesheet descriptions.
//
// PNG, JPEG and GIF are decoded by the standard library; BMP, TIFF and
// WebP by golang.org/x/image.
package asset

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"log/slog"
	"os"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/sprite"
	_ "golang.org/x/image/bmp" // register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// ErrUnsupportedFormat is returned when the input is not an image any
// registered decoder understands.
var ErrUnsupportedFormat = errors.New("asset: unsupported image format")

// ColorSpace selects how texel values are interpreted on the GPU.
type ColorSpace uint8

const (
	// Linear texels are sampled as stored.
	Linear ColorSpace = iota
	// SRGB texels are decoded from sRGB when sampled.
	SRGB
)

// Format returns the texture format for the color space.
func (c ColorSpace) Format() gputypes.TextureFormat {
	if c == SRGB {
		return gputypes.TextureFormatRGBA8UnormSrgb
	}
	return gputypes.TextureFormatRGBA8Unorm
}

func (c ColorSpace) String() string {
	switch c {
	case Linear:
		return "linear"
	case SRGB:
		return "srgb"
	default:
		return fmt.Sprintf("ColorSpace(%d)", uint8(c))
	}
}

// ImageSource holds decoded texels: tightly packed rows of premultiplied
// 8-bit RGBA.
type ImageSource struct {
	Pix    []byte
	Width  int
	Height int
	Format gputypes.TextureFormat
}

// Load decodes the image file at path.
func Load(path string, cs ColorSpace) (*ImageSource, error) {
	f, err := os.Open(path) //nolint:gosec // caller-provided asset path
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	src, err := Decode(f, cs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return src, nil
}

// Decode reads an image from r.
func Decode(r io.Reader, cs ColorSpace) (*ImageSource, error) {
	img, name, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}
	src, err := FromImage(img, cs)
	if err != nil {
		return nil, err
	}
	sprite.Logger().Debug("asset: image decoded",
		slog.String("format", name),
		slog.Int("width", src.Width), slog.Int("height", src.Height),
		slog.String("space", cs.String()),
	)
	return src, nil
}

// FromImage converts img to premultiplied RGBA texels.
func FromImage(img image.Image, cs ColorSpace) (*ImageSource, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrUnsupportedFormat)
	}

	var pix []byte
	if n, ok := img.(*image.NRGBA); ok && n.Stride == b.Dx()*4 && n.Rect.Min == (image.Point{}) {
		pix = make([]byte, len(n.Pix))
		copy(pix, n.Pix)
	} else {
		dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		pix = dst.Pix
	}
	Premultiply(pix)

	return &ImageSource{
		Pix:    pix,
		Width:  b.Dx(),
		Height: b.Dy(),
		Format: cs.Format(),
	}, nil
}

// Premultiply multiplies the color channels of straight-alpha RGBA texels
// by their alpha in place, truncating: c = c*a/255.
func Premultiply(pix []byte) {
	for i := 0; i+3 < len(pix); i += 4 {
		a := uint32(pix[i+3])
		if a == 0xFF {
			continue
		}
		pix[i+0] = uint8(uint32(pix[i+0]) * a / 0xFF)
		pix[i+1] = uint8(uint32(pix[i+1]) * a / 0xFF)
		pix[i+2] = uint8(uint32(pix[i+2]) * a / 0xFF)
	}
}

// Image returns the texels as an *image.RGBA sharing Pix.
func (s *ImageSource) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    s.Pix,
		Stride: s.Width * 4,
		Rect:   image.Rect(0, 0, s.Width, s.Height),
	}
}
