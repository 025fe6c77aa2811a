package geom

import "sort"

// clipEps is the tolerance for on-boundary classification during clipping.
const clipEps = 1e-9

// halfPlane is the set of points x with n.Dot(x) <= c.
type halfPlane struct {
	n Vec2
	c float64
}

// dist is negative inside the half-plane, positive outside.
func (h halfPlane) dist(p Vec2) float64 {
	return h.n.Dot(p) - h.c
}

// ClipRect intersects the polygon with an axis-aligned rectangle. The result
// may be empty, a single polygon, or several polygons when the clip cuts the
// ring into separate pieces.
func (p Polygon) ClipRect(r Rect) []Polygon {
	polys := []Polygon{p.Normalized()}
	for _, h := range []halfPlane{
		{Vec2{1, 0}, r.Max.X},
		{Vec2{-1, 0}, -r.Min.X},
		{Vec2{0, 1}, r.Max.Y},
		{Vec2{0, -1}, -r.Min.Y},
	} {
		var next []Polygon
		for _, poly := range polys {
			next = append(next, splitHalfPlane(poly, h)...)
		}
		polys = next
		if len(polys) == 0 {
			break
		}
	}
	return polys
}

// splitHalfPlane clips a simple CCW polygon against a half-plane, splitting
// the result into separate rings where the clip line cuts the polygon more
// than once. The inside portions of the boundary form chains; the segments
// of the clip line interior to the polygon bridge them back into closed
// loops.
func splitHalfPlane(p Polygon, h halfPlane) []Polygon {
	n := len(p)
	if n < 3 {
		return nil
	}
	ds := make([]float64, n)
	allIn, allOut := true, true
	for i, v := range p {
		ds[i] = h.dist(v)
		if ds[i] > clipEps {
			allIn = false
		}
		if ds[i] < -clipEps {
			allOut = false
		}
	}
	if allIn {
		return []Polygon{p}
	}
	if allOut {
		return nil
	}

	inside := func(i int) bool { return ds[i] <= clipEps }

	// Start the walk at an outside vertex so every chain begins with an
	// entry crossing and ends with an exit crossing.
	start := 0
	for i := range p {
		if !inside(i) {
			start = i
			break
		}
	}

	type chain struct {
		pts           Polygon
		entryT, exitT float64
		next          *chain
	}
	dir := h.n.Perp()
	var chains []*chain
	var cur *chain
	for k := 0; k < n; k++ {
		i := (start + k) % n
		j := (start + k + 1) % n
		if inside(j) != inside(i) {
			t := ds[i] / (ds[i] - ds[j])
			x := p[i].Lerp(p[j], t)
			if inside(j) {
				cur = &chain{pts: Polygon{x}, entryT: dir.Dot(x)}
				chains = append(chains, cur)
			} else if cur != nil {
				cur.pts = append(cur.pts, x)
				cur.exitT = dir.Dot(x)
				cur = nil
			}
		}
		if inside(j) && cur != nil {
			cur.pts = append(cur.pts, p[j])
		}
	}
	if len(chains) == 0 {
		return nil
	}
	if cur != nil {
		// Walk ended inside an open chain; close it at its entry.
		cur.exitT = cur.entryT
	}

	// Crossings along the clip line alternate between intervals interior
	// and exterior to the polygon. Sorting them and pairing consecutive
	// events yields the interior bridges.
	type event struct {
		ch    *chain
		t     float64
		entry bool
	}
	events := make([]event, 0, len(chains)*2)
	for _, c := range chains {
		events = append(events, event{c, c.entryT, true}, event{c, c.exitT, false})
	}
	sort.SliceStable(events, func(a, b int) bool { return events[a].t < events[b].t })
	for k := 0; k+1 < len(events); k += 2 {
		a, b := events[k], events[k+1]
		switch {
		case !a.entry && b.entry:
			a.ch.next = b.ch
		case a.entry && !b.entry:
			b.ch.next = a.ch
		default:
			// Tangential contact; bridge them anyway to keep the
			// traversal total.
			a.ch.next = b.ch
		}
	}

	used := make(map[*chain]bool, len(chains))
	var out []Polygon
	for _, c0 := range chains {
		if used[c0] {
			continue
		}
		var loop Polygon
		for c := c0; c != nil && !used[c]; c = c.next {
			used[c] = true
			loop = append(loop, c.pts...)
		}
		loop = dedupe(loop)
		if len(loop) >= 3 && loop.AbsArea() > 1e-12 {
			out = append(out, loop)
		}
	}
	return out
}

// clipConvex is plain Sutherland-Hodgman against one half-plane. Valid when
// the subject polygon is convex, where the intersection is a single ring.
func clipConvex(p Polygon, h halfPlane) Polygon {
	n := len(p)
	if n == 0 {
		return nil
	}
	out := make(Polygon, 0, n+2)
	for i := 0; i < n; i++ {
		a := p[i]
		b := p[(i+1)%n]
		da := h.dist(a)
		db := h.dist(b)
		if da <= clipEps {
			out = append(out, a)
		}
		if (da > clipEps) != (db > clipEps) {
			t := da / (da - db)
			out = append(out, a.Lerp(b, t))
		}
	}
	if len(out) < 3 {
		return nil
	}
	return dedupe(out)
}
