package geom

import "math"

// Polygon is an ordered, closed ring of vertices. The closing edge from the
// last vertex back to the first is implicit. A polygon with fewer than three
// vertices is degenerate.
type Polygon []Vec2

// Rect is an axis-aligned rectangle.
type Rect struct {
	Min, Max Vec2
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Contains reports whether p lies inside or on the boundary of r.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Clone returns a copy of the polygon.
func (p Polygon) Clone() Polygon {
	out := make(Polygon, len(p))
	copy(out, p)
	return out
}

// Translate returns the polygon moved by d.
func (p Polygon) Translate(d Vec2) Polygon {
	out := make(Polygon, len(p))
	for i, v := range p {
		out[i] = v.Add(d)
	}
	return out
}

// Area returns the signed area using the shoelace formula. Positive for
// counter-clockwise winding.
func (p Polygon) Area() float64 {
	if len(p) < 3 {
		return 0
	}
	sum := 0.0
	for i, a := range p {
		b := p[(i+1)%len(p)]
		sum += a.Cross(b)
	}
	return sum / 2
}

// AbsArea returns the unsigned area.
func (p Polygon) AbsArea() float64 {
	return math.Abs(p.Area())
}

// Centroid returns the area centroid. For degenerate polygons the vertex
// average is returned instead.
func (p Polygon) Centroid() Vec2 {
	a := p.Area()
	if math.Abs(a) < 1e-12 {
		var c Vec2
		for _, v := range p {
			c = c.Add(v)
		}
		if len(p) > 0 {
			c = c.Scale(1 / float64(len(p)))
		}
		return c
	}
	var c Vec2
	for i, v := range p {
		w := p[(i+1)%len(p)]
		f := v.Cross(w)
		c.X += (v.X + w.X) * f
		c.Y += (v.Y + w.Y) * f
	}
	return c.Scale(1 / (6 * a))
}

// IsCCW reports whether the polygon winds counter-clockwise.
func (p Polygon) IsCCW() bool {
	return p.Area() > 0
}

// Normalized returns the polygon with counter-clockwise winding, reversing
// the vertex order if necessary.
func (p Polygon) Normalized() Polygon {
	if p.IsCCW() || len(p) < 3 {
		return p
	}
	out := make(Polygon, len(p))
	for i, v := range p {
		out[len(p)-1-i] = v
	}
	return out
}

// Bounds returns the axis-aligned bounding rectangle.
func (p Polygon) Bounds() Rect {
	if len(p) == 0 {
		return Rect{}
	}
	r := Rect{Min: p[0], Max: p[0]}
	for _, v := range p[1:] {
		r.Min.X = math.Min(r.Min.X, v.X)
		r.Min.Y = math.Min(r.Min.Y, v.Y)
		r.Max.X = math.Max(r.Max.X, v.X)
		r.Max.Y = math.Max(r.Max.Y, v.Y)
	}
	return r
}

// ContainsPoint reports whether pt lies strictly inside the polygon,
// using the even-odd rule.
func (p Polygon) ContainsPoint(pt Vec2) bool {
	inside := false
	for i, a := range p {
		b := p[(i+1)%len(p)]
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			x := a.X + (pt.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if pt.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// SelfIntersects reports whether any two non-adjacent edges cross. Offsetting
// and jittering must never produce a crossing ring; callers discard polygons
// that fail this check.
func (p Polygon) SelfIntersects() bool {
	n := len(p)
	if n < 4 {
		return false
	}
	for i := 0; i < n; i++ {
		a1 := p[i]
		a2 := p[(i+1)%n]
		for j := i + 1; j < n; j++ {
			// Skip edges sharing a vertex.
			if j == i || (j+1)%n == i || (i+1)%n == j {
				continue
			}
			b1 := p[j]
			b2 := p[(j+1)%n]
			if segmentsCross(a1, a2, b1, b2) {
				return true
			}
		}
	}
	return false
}

// segmentsCross reports proper intersection of the open segments a1a2, b1b2.
func segmentsCross(a1, a2, b1, b2 Vec2) bool {
	d1 := a2.Sub(a1).Cross(b1.Sub(a1))
	d2 := a2.Sub(a1).Cross(b2.Sub(a1))
	d3 := b2.Sub(b1).Cross(a1.Sub(b1))
	d4 := b2.Sub(b1).Cross(a2.Sub(b1))
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

// lineIntersection returns the intersection of the infinite lines through
// p1 with direction d1 and p2 with direction d2. ok is false when the lines
// are (nearly) parallel.
func lineIntersection(p1, d1, p2, d2 Vec2) (Vec2, bool) {
	den := d1.Cross(d2)
	if math.Abs(den) < 1e-12 {
		return Vec2{}, false
	}
	t := p2.Sub(p1).Cross(d2) / den
	return p1.Add(d1.Scale(t)), true
}
