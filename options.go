package sprite

// SpriteOption configures a Sprite during creation.
//
// Example:
//
//	// Centered 64x64 sprite at the origin
//	s := sprite.NewSprite(64, 64)
//
//	// Top-left anchored, moved and snapped to a 2x pixel grid
//	s := sprite.NewSprite(64, 64,
//	    sprite.WithAnchor(0, 0),
//	    sprite.WithTransform(sprite.Identity().Translate(100, 40)),
//	    sprite.WithRound(2),
//	)
type SpriteOption func(*spriteOptions)

// spriteOptions holds optional configuration for Sprite creation.
type spriteOptions struct {
	transform Matrix
	anchor    Point
	trim      *Frame
	round     float32
}

// defaultSpriteOptions returns the default sprite options.
func defaultSpriteOptions() spriteOptions {
	return spriteOptions{
		transform: Identity(),
		anchor:    Point{X: 0.5, Y: 0.5},
		trim:      nil, // whole texture
		round:     0,   // no pixel snapping
	}
}

// WithTransform sets the world transform of the sprite.
func WithTransform(m Matrix) SpriteOption {
	return func(o *spriteOptions) {
		o.transform = m
	}
}

// WithAnchor sets the fractional pivot point. (0, 0) is the top-left
// corner of the texture and (1, 1) the bottom-right.
func WithAnchor(x, y float32) SpriteOption {
	return func(o *spriteOptions) {
		o.anchor = Point{X: x, Y: y}
	}
}

// WithTrim sets the trimmed region of the original texture that actually
// carries pixels, as produced by texture packers.
//
// Example:
//
//	// 32x32 source trimmed to a 20x24 box at (6, 4)
//	s := sprite.NewSprite(32, 32, sprite.WithTrim(sprite.Frame{X: 6, Y: 4, W: 20, H: 24}))
func WithTrim(trim Frame) SpriteOption {
	return func(o *spriteOptions) {
		t := trim
		o.trim = &t
	}
}

// WithRound snaps vertices to the pixel grid of the given scale factor.
// Zero or negative disables rounding.
func WithRound(scale float32) SpriteOption {
	return func(o *spriteOptions) {
		o.round = scale
	}
}
