package sprite

import "unsafe"

// Vertex is the per-vertex layout consumed by the sprite pipeline: two
// Float32x2 attributes at shader locations 0 and 1.
type Vertex struct {
	Position [2]float32
	TexCoord [2]float32
}

// VertexSize is the byte stride of Vertex.
const VertexSize = uint64(unsafe.Sizeof(Vertex{}))

// QuadIndices is the index pattern shared by every quad. Corners are
// ordered max-max, max-min, min-min, min-max.
var QuadIndices = [6]uint16{0, 1, 2, 0, 2, 3}

// SpriteQuad returns the four vertices of the axis-aligned rectangle
// spanning min and max, mapped to the whole texture.
func SpriteQuad(minXY, maxXY [2]float32) [4]Vertex {
	return [4]Vertex{
		{Position: [2]float32{maxXY[0], maxXY[1]}, TexCoord: [2]float32{1, 1}},
		{Position: [2]float32{maxXY[0], minXY[1]}, TexCoord: [2]float32{1, 0}},
		{Position: [2]float32{minXY[0], minXY[1]}, TexCoord: [2]float32{0, 0}},
		{Position: [2]float32{minXY[0], maxXY[1]}, TexCoord: [2]float32{0, 1}},
	}
}

// VertexBytes reinterprets verts as raw bytes for upload. The returned
// slice aliases verts.
func VertexBytes(verts []Vertex) []byte {
	if len(verts) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&verts[0])), len(verts)*int(VertexSize)) //nolint:gosec // Vertex is plain float32 data
}
