package asset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/gogpu/sprite"
)

var (
	// ErrUnknownFrame is returned when a sheet has no frame of the given name.
	ErrUnknownFrame = errors.New("asset: unknown frame")
	// ErrUnknownAnimation is returned when a sheet has no animation of the
	// given name.
	ErrUnknownAnimation = errors.New("asset: unknown animation")
	// ErrInvalidSheet is returned for sheets whose contents are inconsistent.
	ErrInvalidSheet = errors.New("asset: invalid spritesheet")
)

// Rect is a pixel rectangle inside the sheet image.
type Rect struct {
	X      float32 `json:"x"`
	Y      float32 `json:"y"`
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
}

// Frame converts r to a sprite.Frame.
func (r Rect) Frame() sprite.Frame {
	return sprite.Frame{X: r.X, Y: r.Y, W: r.Width, H: r.Height}
}

// Size is a width and height in pixels.
type Size struct {
	W float32 `json:"w"`
	H float32 `json:"h"`
}

// Meta describes the sheet image.
type Meta struct {
	Image string  `json:"image"`
	Size  Size    `json:"size"`
	Scale float32 `json:"scale"`
}

// SheetFrame is one named region of the sheet.
type SheetFrame struct {
	Frame   Rect `json:"frame"`
	Rotated bool `json:"rotated"`
	Trimmed bool `json:"trimmed"`

	// SpriteSourceSize is the trimmed box inside the original image.
	SpriteSourceSize Rect `json:"sprite_source_size"`
	// SourceSize is the original image size before trimming.
	SourceSize Size `json:"source_size"`

	Anchor sprite.Point `json:"anchor"`
}

// Sheet is a parsed spritesheet description.
type Sheet struct {
	Meta       Meta                  `json:"meta"`
	Frames     map[string]SheetFrame `json:"frames"`
	Animations map[string][]string   `json:"animations"`
}

// UnmarshalJSON decodes a frame. A missing anchor defaults to the center.
func (f *SheetFrame) UnmarshalJSON(data []byte) error {
	type plain SheetFrame
	var aux struct {
		plain
		Anchor struct {
			X float32 `json:"x"`
			Y float32 `json:"y"`
		} `json:"anchor"`
	}
	aux.Anchor.X, aux.Anchor.Y = 0.5, 0.5
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*f = SheetFrame(aux.plain)
	f.Anchor = sprite.Pt(aux.Anchor.X, aux.Anchor.Y)
	return nil
}

// ParseSheet decodes a spritesheet from JSON and checks that every
// animation refers to existing frames.
func ParseSheet(data []byte) (*Sheet, error) {
	var s Sheet
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse spritesheet: %w", err)
	}
	if s.Meta.Size.W <= 0 || s.Meta.Size.H <= 0 {
		return nil, fmt.Errorf("%w: image size %vx%v", ErrInvalidSheet, s.Meta.Size.W, s.Meta.Size.H)
	}
	if s.Meta.Scale == 0 {
		s.Meta.Scale = 1
	}
	for anim, names := range s.Animations {
		for _, name := range names {
			if _, ok := s.Frames[name]; !ok {
				return nil, fmt.Errorf("%w: animation %q: %w %q", ErrInvalidSheet, anim, ErrUnknownFrame, name)
			}
		}
	}
	return &s, nil
}

// ReadSheet reads and parses a spritesheet from r.
func ReadSheet(r io.Reader) (*Sheet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read spritesheet: %w", err)
	}
	return ParseSheet(data)
}

// OpenSheet parses the spritesheet file at path. A relative Meta.Image is
// resolved against the directory of path.
func OpenSheet(path string) (*Sheet, error) {
	data, err := os.ReadFile(path) //nolint:gosec // caller-provided asset path
	if err != nil {
		return nil, fmt.Errorf("open spritesheet: %w", err)
	}
	s, err := ParseSheet(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Meta.Image != "" && !filepath.IsAbs(s.Meta.Image) {
		s.Meta.Image = filepath.Join(filepath.Dir(path), s.Meta.Image)
	}
	sprite.Logger().Debug("asset: spritesheet loaded",
		slog.String("path", path),
		slog.Int("frames", len(s.Frames)),
		slog.Int("animations", len(s.Animations)),
	)
	return s, nil
}

// LoadImage decodes the image named by Meta.Image.
func (s *Sheet) LoadImage(cs ColorSpace) (*ImageSource, error) {
	if s.Meta.Image == "" {
		return nil, fmt.Errorf("%w: no image", ErrInvalidSheet)
	}
	return Load(s.Meta.Image, cs)
}

// FrameNames returns the frame names in sorted order.
func (s *Sheet) FrameNames() []string {
	names := make([]string, 0, len(s.Frames))
	for name := range s.Frames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Frame returns the named frame.
func (s *Sheet) Frame(name string) (SheetFrame, error) {
	f, ok := s.Frames[name]
	if !ok {
		return SheetFrame{}, fmt.Errorf("%w %q", ErrUnknownFrame, name)
	}
	return f, nil
}

// AnimationFrames returns the frame names of the named animation in
// playback order.
func (s *Sheet) AnimationFrames(name string) ([]string, error) {
	names, ok := s.Animations[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownAnimation, name)
	}
	return names, nil
}

// UV returns the texture coordinates of the named frame, clockwise from
// the top-left corner. Rotated frames are stored a quarter turn clockwise.
func (s *Sheet) UV(name string) ([4][2]float32, error) {
	f, err := s.Frame(name)
	if err != nil {
		return [4][2]float32{}, err
	}
	if f.Rotated {
		return sprite.RotatedUV(f.Frame.Frame(), s.Meta.Size.W, s.Meta.Size.H, sprite.S), nil
	}
	return sprite.SimpleUV(f.Frame.Frame(), s.Meta.Size.W, s.Meta.Size.H), nil
}

// Sprite creates a sprite sized to the named frame's original image, with
// its anchor and trim applied. opts are applied after those and may
// override them.
func (s *Sheet) Sprite(name string, opts ...sprite.SpriteOption) (*sprite.Sprite, error) {
	f, err := s.Frame(name)
	if err != nil {
		return nil, err
	}
	w, h := f.SourceSize.W, f.SourceSize.H
	if w == 0 || h == 0 {
		w, h = f.Frame.Width, f.Frame.Height
		if f.Rotated {
			w, h = h, w
		}
	}
	base := []sprite.SpriteOption{sprite.WithAnchor(f.Anchor.X, f.Anchor.Y)}
	if f.Trimmed {
		base = append(base, sprite.WithTrim(f.SpriteSourceSize.Frame()))
	}
	return sprite.NewSprite(w, h, append(base, opts...)...), nil
}

// Quad returns the vertices of spr textured with the named frame.
func (s *Sheet) Quad(name string, spr *sprite.Sprite) ([4]sprite.Vertex, error) {
	uv, err := s.UV(name)
	if err != nil {
		return [4]sprite.Vertex{}, err
	}
	return spr.QuadUV(uv), nil
}

// Animation builds an animation over the named sequence's frame names,
// each shown for frameMillis milliseconds. Zero gives a uniform animation
// advanced by Update's dt times speed.
func (s *Sheet) Animation(name string, frameMillis float32) (*sprite.Animation[string], error) {
	names, err := s.AnimationFrames(name)
	if err != nil {
		return nil, err
	}
	if frameMillis == 0 {
		return sprite.TryNewAnimation(names, nil)
	}
	durations := make([]float32, len(names))
	for i := range durations {
		durations[i] = frameMillis
	}
	return sprite.TryNewAnimation(names, durations)
}
