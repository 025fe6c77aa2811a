package geom

import "math"

// Join selects the corner policy used when offsetting a polygon.
type Join int

const (
	// JoinMiter extends the offset edges to their intersection, subject to
	// MiterLimit.
	JoinMiter Join = iota
	// JoinSquare cuts the corner flat between the offset edge endpoints.
	JoinSquare
	// JoinRound approximates the corner with an arc.
	JoinRound
)

// MiterLimit is the maximum miter length as a multiple of the offset
// distance before a miter join falls back to a flat cut.
const MiterLimit = 2.0

// roundStep is the maximum angular step, in radians, used to approximate
// round joins.
const roundStep = 0.4

// Offset returns the polygon grown (d > 0) or shrunk (d < 0) by |d| units.
// The result winds counter-clockwise. A nil result means the offset
// collapsed the polygon to a degenerate shape; callers skip or retry with a
// smaller distance.
func Offset(p Polygon, d float64, join Join) Polygon {
	if len(p) < 3 {
		return nil
	}
	if d == 0 {
		return p.Clone().Normalized()
	}
	src := p.Normalized()
	n := len(src)

	out := make(Polygon, 0, n*2)
	for i := 0; i < n; i++ {
		prev := src[(i-1+n)%n]
		cur := src[i]
		next := src[(i+1)%n]

		e1 := cur.Sub(prev)
		e2 := next.Sub(cur)
		if e1.Length() < 1e-12 || e2.Length() < 1e-12 {
			continue
		}
		// Outward normals for CCW winding.
		n1 := Vec2{e1.Y, -e1.X}.Normalize()
		n2 := Vec2{e2.Y, -e2.X}.Normalize()

		p1 := cur.Add(n1.Scale(d))
		p2 := cur.Add(n2.Scale(d))

		turn := e1.Cross(e2)
		if math.Abs(turn) < 1e-12 && e1.Dot(e2) > 0 {
			out = append(out, p1)
			continue
		}

		// The offset edges leave a gap at convex corners when growing and
		// at reflex corners when shrinking; everywhere else the mitered
		// intersection is exact.
		gap := turn*d > 0
		if !gap {
			if m, ok := lineIntersection(p1, e1, p2, e2); ok {
				out = append(out, m)
			} else {
				out = append(out, p1)
			}
			continue
		}

		switch join {
		case JoinMiter:
			m, ok := lineIntersection(p1, e1, p2, e2)
			if ok && m.Distance(cur) <= MiterLimit*math.Abs(d) {
				out = append(out, m)
			} else {
				out = append(out, p1, p2)
			}
		case JoinSquare:
			out = append(out, p1, p2)
		case JoinRound:
			// The gap corner spans less than half a turn, so the arc from
			// p1 to p2 around cur is always the minor one.
			d1 := p1.Sub(cur)
			d2 := p2.Sub(cur)
			a1 := math.Atan2(d1.Y, d1.X)
			sweep := math.Atan2(d2.Y, d2.X) - a1
			for sweep > math.Pi {
				sweep -= 2 * math.Pi
			}
			for sweep < -math.Pi {
				sweep += 2 * math.Pi
			}
			out = append(out, p1)
			steps := int(math.Ceil(math.Abs(sweep) / roundStep))
			for s := 1; s < steps; s++ {
				a := a1 + sweep*float64(s)/float64(steps)
				out = append(out, cur.Add(Vec2{math.Cos(a), math.Sin(a)}.Scale(math.Abs(d))))
			}
			out = append(out, p2)
		}
	}

	out = dedupe(out)
	if len(out) < 3 {
		return nil
	}
	// A collapsed offset flips the winding or pinches the ring.
	if out.Area() <= 1e-12 || out.SelfIntersects() {
		return nil
	}
	return out
}

// dedupe removes consecutive (nearly) coincident vertices.
func dedupe(p Polygon) Polygon {
	if len(p) == 0 {
		return p
	}
	out := p[:0]
	for _, v := range p {
		if len(out) == 0 || v.Distance(out[len(out)-1]) > 1e-9 {
			out = append(out, v)
		}
	}
	if len(out) > 1 && out[0].Distance(out[len(out)-1]) <= 1e-9 {
		out = out[:len(out)-1]
	}
	return out
}
