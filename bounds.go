package sprite

import "math"

// Bounds is an axis-aligned bounding box accumulated from points.
// The zero value is not empty; use EmptyBounds to start accumulating.
type Bounds struct {
	Min, Max Point
}

// EmptyBounds returns bounds that contain nothing. Adding any point makes
// them non-empty.
func EmptyBounds() Bounds {
	inf := float32(math.Inf(1))
	return Bounds{
		Min: Point{X: inf, Y: inf},
		Max: Point{X: -inf, Y: -inf},
	}
}

// BoundsFromFrame returns the bounds covering f.
func BoundsFromFrame(f Frame) Bounds {
	return Bounds{Min: PointFrom(f.Min()), Max: PointFrom(f.Max())}
}

// BoundsFromAnchor returns the local extent of a frame-sized quad placed
// around anchor. Min holds the far corner and Max the near one, matching
// the corner naming used by Sprite.Vertices; the result is empty for
// positive sizes and must be normalized with AddBounds before use as a box.
func BoundsFromAnchor(anchor Point, f Frame) Bounds {
	w1 := -anchor.X * f.W
	w0 := w1 + f.W
	h1 := -anchor.Y * f.H
	h0 := h1 + f.H
	return Bounds{
		Min: Point{X: w0, Y: h0},
		Max: Point{X: w1, Y: h1},
	}
}

// Frame converts the bounds to a frame. Empty bounds give the zero frame.
func (b Bounds) Frame() Frame {
	if b.IsEmpty() {
		return Frame{}
	}
	return Frame{
		X: b.Min.X,
		Y: b.Min.Y,
		W: b.Max.X - b.Min.X,
		H: b.Max.Y - b.Min.Y,
	}
}

// IsEmpty reports whether min exceeds max on either axis.
func (b Bounds) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y
}

// Size returns max minus min.
func (b Bounds) Size() Point {
	return b.Max.Sub(b.Min)
}

// AddXY extends the bounds to contain (x, y).
func (b *Bounds) AddXY(x, y float32) {
	b.Min.X = min(b.Min.X, x)
	b.Min.Y = min(b.Min.Y, y)
	b.Max.X = max(b.Max.X, x)
	b.Max.Y = max(b.Max.Y, y)
}

// AddPoint extends the bounds to contain p.
func (b *Bounds) AddPoint(p Point) {
	b.AddXY(p.X, p.Y)
}

func (b *Bounds) addPt(xy [2]float32) {
	b.AddXY(xy[0], xy[1])
}

// AddQuad extends the bounds to contain the four corners packed as
// x0,y0,x1,y1,x2,y2,x3,y3.
func (b *Bounds) AddQuad(v [8]float32) {
	b.AddXY(v[0], v[1])
	b.AddXY(v[2], v[3])
	b.AddXY(v[4], v[5])
	b.AddXY(v[6], v[7])
}

// AddFrame extends the bounds to contain the rectangle (x0,y0)-(x1,y1)
// transformed by m.
func (b *Bounds) AddFrame(m Matrix, x0, y0, x1, y1 float32) {
	b.addPt(m.Apply(x0, y0))
	b.addPt(m.Apply(x1, y0))
	b.addPt(m.Apply(x1, y1))
	b.addPt(m.Apply(x0, y1))
}

// AddVertexData extends the bounds with the packed xy pairs in verts.
// A trailing odd element is ignored.
func (b *Bounds) AddVertexData(verts []float32) {
	for i := 0; i+1 < len(verts); i += 2 {
		b.AddXY(verts[i], verts[i+1])
	}
}

// AddVertices transforms each packed xy pair in verts by m and adds it
// grown by pad in both directions.
func (b *Bounds) AddVertices(m Matrix, verts []float32, pad Point) {
	for i := 0; i+1 < len(verts); i += 2 {
		p := m.ApplyPoint(Point{X: verts[i], Y: verts[i+1]})
		b.AddPoint(p.Sub(pad))
		b.AddPoint(p.Add(pad))
	}
}

// AddBounds extends the bounds to contain other's corners.
func (b *Bounds) AddBounds(other Bounds) {
	b.AddPoint(other.Min)
	b.AddPoint(other.Max)
}

// AddBoundsMask adds the intersection of other and mask. Nothing is added
// when they do not overlap.
func (b *Bounds) AddBoundsMask(other, mask Bounds) {
	minX := max(other.Min.X, mask.Min.X)
	minY := max(other.Min.Y, mask.Min.Y)
	maxX := min(other.Max.X, mask.Max.X)
	maxY := min(other.Max.Y, mask.Max.Y)
	if minX <= maxX && minY <= maxY {
		b.AddXY(minX, minY)
		b.AddXY(maxX, maxY)
	}
}

// AddBoundsMatrix adds other transformed by m.
func (b *Bounds) AddBoundsMatrix(other Bounds, m Matrix) {
	b.AddFrame(m, other.Min.X, other.Min.Y, other.Max.X, other.Max.Y)
}

// AddBoundsArea adds the part of other that lies inside area.
func (b *Bounds) AddBoundsArea(other Bounds, area Frame) {
	b.AddBoundsMask(other, BoundsFromFrame(area))
}

// Pad grows non-empty bounds by padding on every side.
func (b *Bounds) Pad(padding Point) {
	if b.IsEmpty() {
		return
	}
	b.Min = b.Min.Sub(padding)
	b.Max = b.Max.Add(padding)
}

// AddFramePad adds p0-pad and p1+pad.
func (b *Bounds) AddFramePad(p0, p1, pad Point) {
	b.AddPoint(p0.Sub(pad))
	b.AddPoint(p1.Add(pad))
}
