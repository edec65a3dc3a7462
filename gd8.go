package sprite

// GD8 is an element of the dihedral group of order 16: the eight compass
// rotations in 45 degree steps plus their eight reflections. Texture
// packers use it to describe how a frame was rotated in the atlas.
//
// The axis directions after applying g are (UX, UY) for U and (VX, VY)
// for V. Diagonal elements do not produce unit vectors.
type GD8 uint8

// Rotations, clockwise in screen space.
const (
	E  GD8 = iota // 0°
	SE            // 45°
	S             // 90°
	SW            // 135°
	W             // 180°
	NW            // 225°
	N             // 270°
	NE            // 315°
)

// Reflections.
const (
	MirrorVertical   GD8 = 8
	MainDiagonal     GD8 = 10
	MirrorHorizontal GD8 = 12
	ReverseDiagonal  GD8 = 14
)

var (
	gd8UX = [16]float32{1, 1, 0, -1, -1, -1, 0, 1, 1, 1, 0, -1, -1, -1, 0, 1}
	gd8UY = [16]float32{0, 1, 1, 1, 0, -1, -1, -1, 0, 1, 1, 1, 0, -1, -1, -1}
	gd8VX = [16]float32{0, -1, -1, -1, 0, 1, 1, 1, 0, 1, 1, 1, 0, -1, -1, -1}
	gd8VY = [16]float32{1, 1, 0, -1, -1, -1, 0, 1, -1, -1, 0, 1, 1, 1, 0, -1}
)

// cayley[i][j] is the composition of i and j.
var cayley [16][16]GD8

func init() {
	for i := range 16 {
		for j := range 16 {
			var v int
			switch {
			case i < 8 && j < 8:
				v = (i + j) % 8
			case i < 8:
				v = 8 + (i+j)%8
			case j < 8:
				v = 8 + (i-j+8)%8
			default:
				v = (i - j + 8) % 8
			}
			cayley[i][j] = GD8(v)
		}
	}
}

// Add composes g and h.
func (g GD8) Add(h GD8) GD8 {
	return cayley[g&15][h&15]
}

// Sub composes g with the inverse of h, undoing Add.
func (g GD8) Sub(h GD8) GD8 {
	return cayley[g&15][h.Inv()]
}

// Inv returns the inverse element. Reflections are their own inverse.
func (g GD8) Inv() GD8 {
	if g&8 != 0 {
		return g & 15
	}
	return (8 - g%8) % 8
}

// Rotate180 adds a half turn.
func (g GD8) Rotate180() GD8 {
	return g ^ 4
}

// IsVertical reports whether g is the S or N rotation. Reflections give
// meaningless results.
func (g GD8) IsVertical() bool {
	return g%4 == 2
}

// UX is the X component of the U axis after applying g.
func (g GD8) UX() float32 { return gd8UX[g&15] }

// UY is the Y component of the U axis after applying g.
func (g GD8) UY() float32 { return gd8UY[g&15] }

// VX is the X component of the V axis after applying g.
func (g GD8) VX() float32 { return gd8VX[g&15] }

// VY is the Y component of the V axis after applying g.
func (g GD8) VY() float32 { return gd8VY[g&15] }

// ByDirection approximates the vector (dx, dy) by one of the eight
// rotations.
func ByDirection(dx, dy float32) GD8 {
	adx, ady := abs32(dx), abs32(dy)
	switch {
	case adx*2 <= ady:
		if dy >= 0 {
			return S
		}
		return N
	case ady*2 <= adx:
		if dx > 0 {
			return E
		}
		return W
	case dy > 0:
		if dx > 0 {
			return SE
		}
		return SW
	case dx > 0:
		return NE
	default:
		return NW
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
