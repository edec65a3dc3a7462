// Package batch accumulates sprite quads and splits them into indexed draw
// commands that each stay within a 16-bit index range.
//
// It knows nothing about the GPU: the render package uploads Vertices and
// Indices and replays Commands through an IndexedDrawer.
package batch

import (
	"fmt"
	"math"

	"github.com/gogpu/sprite"
)

const (
	// MaxQuads is the number of quads one draw command can address with
	// 16-bit indices relative to its base vertex.
	MaxQuads = 0x10000 / 4

	// MaxIndex is the index count of a full draw command.
	MaxIndex = MaxQuads * 6
)

// ErrCapacityExceeded is returned by AddQuad when the vertex count would
// no longer fit a signed 32-bit base vertex.
var ErrCapacityExceeded = sprite.ErrCapacityExceeded

// DrawCommand is one indexed draw: End indices starting at index 0, with
// vertices offset by Base.
type DrawCommand struct {
	End  uint32
	Base int32
}

// IndexedDrawer receives the draw calls of a batch. render.Batch adapts a
// wgpu render pass to it.
type IndexedDrawer interface {
	DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32)
}

// indices is the shared index pattern for MaxQuads quads. It never changes
// after init.
var indices = buildIndices()

func buildIndices() []uint16 {
	idx := make([]uint16, MaxIndex)
	for i := range idx {
		idx[i] = uint16(i/6*4) + sprite.QuadIndices[i%6]
	}
	return idx
}

// Indices returns the static index pattern covering MaxQuads quads. The
// slice is shared and must not be modified.
func Indices() []uint16 {
	return indices
}

// Quads is a growable list of quads partitioned into draw commands.
// The zero value is an empty batch ready for use.
type Quads struct {
	first DrawCommand
	cmds  []DrawCommand
	vtx   []sprite.Vertex

	// maxVertices bounds len(vtx); zero means math.MaxInt32.
	maxVertices int
}

// New returns an empty batch with room for capacity quads before the
// vertex list grows.
func New(capacity int) *Quads {
	return &Quads{vtx: make([]sprite.Vertex, 0, capacity*4)}
}

func (q *Quads) limit() int {
	if q.maxVertices > 0 {
		return q.maxVertices
	}
	return math.MaxInt32
}

func (q *Quads) last() *DrawCommand {
	if n := len(q.cmds); n > 0 {
		return &q.cmds[n-1]
	}
	return &q.first
}

// AddQuad appends one quad, opening a new draw command when the active one
// is full. It fails without modifying the batch when the vertex count
// would exceed the addressable range.
func (q *Quads) AddQuad(quad [4]sprite.Vertex) error {
	if len(q.vtx)+4 > q.limit() {
		return fmt.Errorf("%w: %d vertices", ErrCapacityExceeded, len(q.vtx)+4)
	}
	if q.last().End >= MaxIndex {
		q.cmds = append(q.cmds, DrawCommand{Base: int32(len(q.vtx))}) //nolint:gosec // bounded by limit
	}
	q.last().End += 6
	q.vtx = append(q.vtx, quad[:]...)
	return nil
}

// AddSprite appends the axis-aligned quad spanning min and max with
// texture coordinates covering the whole image.
func (q *Quads) AddSprite(minXY, maxXY [2]float32) error {
	return q.AddQuad(sprite.SpriteQuad(minXY, maxXY))
}

// Clear drops all quads and commands. The vertex storage and the shared
// index pattern are kept.
func (q *Quads) Clear() {
	q.first = DrawCommand{}
	q.cmds = q.cmds[:0]
	q.vtx = q.vtx[:0]
}

// Len returns the number of quads.
func (q *Quads) Len() int { return len(q.vtx) / 4 }

// IsEmpty reports whether the batch holds no quads.
func (q *Quads) IsEmpty() bool { return len(q.vtx) == 0 }

// Vertices returns the accumulated vertices. The slice is only valid until
// the next mutation.
func (q *Quads) Vertices() []sprite.Vertex { return q.vtx }

// Commands returns the draw commands in submission order. An empty batch
// still reports its zero first command.
func (q *Quads) Commands() []DrawCommand {
	out := make([]DrawCommand, 0, len(q.cmds)+1)
	out = append(out, q.first)
	return append(out, q.cmds...)
}

// Draw issues one DrawIndexed per command. Nothing is drawn for an empty
// batch.
func (q *Quads) Draw(d IndexedDrawer) {
	if q.IsEmpty() {
		return
	}
	d.DrawIndexed(q.first.End, 1, 0, q.first.Base, 0)
	for _, cmd := range q.cmds {
		d.DrawIndexed(cmd.End, 1, 0, cmd.Base, 0)
	}
}
