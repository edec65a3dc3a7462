package asset

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestPremultiply(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want []byte
	}{
		{"half", []byte{200, 100, 50, 128}, []byte{100, 50, 25, 128}},
		{"opaque", []byte{200, 100, 50, 255}, []byte{200, 100, 50, 255}},
		{"transparent", []byte{200, 100, 50, 0}, []byte{0, 0, 0, 0}},
		{"trailing", []byte{10, 20, 30, 0, 7}, []byte{0, 0, 0, 0, 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := append([]byte(nil), tt.in...)
			Premultiply(got)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Premultiply(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestColorSpace(t *testing.T) {
	tests := []struct {
		cs     ColorSpace
		format gputypes.TextureFormat
		name   string
	}{
		{Linear, gputypes.TextureFormatRGBA8Unorm, "linear"},
		{SRGB, gputypes.TextureFormatRGBA8UnormSrgb, "srgb"},
	}
	for _, tt := range tests {
		if got := tt.cs.Format(); got != tt.format {
			t.Errorf("%v.Format() = %v, want %v", tt.cs, got, tt.format)
		}
		if got := tt.cs.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
	}
	if got := ColorSpace(7).String(); got != "ColorSpace(7)" {
		t.Errorf("ColorSpace(7).String() = %q", got)
	}
}

func TestDecodePNG(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for y := range 2 {
		for x := range 3 {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: 128})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	src, err := Decode(&buf, SRGB)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if src.Width != 3 || src.Height != 2 {
		t.Errorf("size = %dx%d, want 3x2", src.Width, src.Height)
	}
	if src.Format != gputypes.TextureFormatRGBA8UnormSrgb {
		t.Errorf("Format = %v, want RGBA8UnormSrgb", src.Format)
	}
	if len(src.Pix) != 3*2*4 {
		t.Fatalf("len(Pix) = %d, want 24", len(src.Pix))
	}
	if !bytes.Equal(src.Pix[:4], []byte{100, 50, 25, 128}) {
		t.Errorf("first texel = %v, want [100 50 25 128]", src.Pix[:4])
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("not an image")), Linear)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Decode() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestFromImageSubImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.SetNRGBA(2, 2, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	sub := img.SubImage(image.Rect(2, 2, 4, 4))

	src, err := FromImage(sub, Linear)
	if err != nil {
		t.Fatalf("FromImage() error = %v", err)
	}
	if src.Width != 2 || src.Height != 2 {
		t.Fatalf("size = %dx%d, want 2x2", src.Width, src.Height)
	}
	if !bytes.Equal(src.Pix[:4], []byte{1, 2, 3, 255}) {
		t.Errorf("first texel = %v, want [1 2 3 255]", src.Pix[:4])
	}
	if got := src.Image().RGBAAt(0, 0); got != (color.RGBA{R: 1, G: 2, B: 3, A: 255}) {
		t.Errorf("Image().RGBAAt(0, 0) = %v", got)
	}
}

func TestFromImageCopies(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 200, A: 128})
	if _, err := FromImage(img, Linear); err != nil {
		t.Fatal(err)
	}
	if img.Pix[0] != 200 {
		t.Errorf("source modified: R = %d, want 200", img.Pix[0])
	}
}

func TestFromImageEmpty(t *testing.T) {
	_, err := FromImage(image.NewNRGBA(image.Rectangle{}), Linear)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("FromImage(empty) error = %v, want ErrUnsupportedFormat", err)
	}
}
