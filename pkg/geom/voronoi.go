package geom

import "sort"

// Cell is one region of a periodic Voronoi partition: the set of tile points
// closer to its site than to any other site under toroidal distance.
type Cell struct {
	// Site is the generating seed position, translated for wrapped copies.
	Site Vec2
	// Owner is the index of the generating seed in the input slice after
	// lexicographic ordering. Wrapped copies share the owner of their
	// primary cell.
	Owner int
	// Offset is the tile translation applied to this copy. The primary
	// copy has offset (0,0).
	Offset Vec2
	// Polygon is the convex cell boundary. It may extend beyond the tile;
	// fragments outside reappear on the opposite side as wrapped copies.
	Polygon Polygon
}

// Primary reports whether this is the untranslated copy of the cell.
func (c Cell) Primary() bool {
	return c.Offset == Vec2{}
}

// tileOffsets enumerates the 3x3 neighborhood used for periodic replication.
var tileOffsets = [9]Vec2{
	{0, 0},
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// PeriodicVoronoi partitions the tile [0,w)x[0,h) among the given seed
// points using wraparound distance. Every seed is replicated into the eight
// neighboring tile copies, each cell is built by intersecting bisector
// half-planes, and translated copies that reach into the tile are emitted
// alongside the primary cells, so a cell straddling one tile edge reappears
// with identical shape on the opposite side.
//
// Seeds are ordered lexicographically before partitioning, which fixes the
// topology for degenerate (co-circular) configurations. Exact duplicates are
// dropped. The union of the returned cells, clipped to the tile, covers it
// exactly once up to floating-point tolerance.
func PeriodicVoronoi(seeds []Vec2, w, h float64) []Cell {
	ordered := make([]Vec2, len(seeds))
	copy(ordered, seeds)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Less(ordered[j]) })
	// Drop exact duplicates; they would produce empty cells.
	uniq := ordered[:0]
	for _, s := range ordered {
		if len(uniq) == 0 || uniq[len(uniq)-1] != s {
			uniq = append(uniq, s)
		}
	}
	ordered = uniq
	if len(ordered) == 0 {
		return nil
	}

	// All sites, primaries plus the 8 replicas each.
	type site struct {
		p     Vec2
		owner int
	}
	sites := make([]site, 0, len(ordered)*9)
	for i, s := range ordered {
		for _, off := range tileOffsets {
			sites = append(sites, site{s.Add(Vec2{off.X * w, off.Y * h}), i})
		}
	}

	var cells []Cell
	neighbors := make([]site, 0, len(sites))
	for owner, s := range ordered {
		// Generous starting bound; the true cell cannot reach farther
		// than one tile period from its site.
		cell := Polygon{
			{s.X - w, s.Y - h},
			{s.X + w, s.Y - h},
			{s.X + w, s.Y + h},
			{s.X - w, s.Y + h},
		}

		neighbors = neighbors[:0]
		for _, q := range sites {
			if q.p == s {
				continue
			}
			neighbors = append(neighbors, q)
		}
		sort.SliceStable(neighbors, func(i, j int) bool {
			di := neighbors[i].p.Sub(s).Dot(neighbors[i].p.Sub(s))
			dj := neighbors[j].p.Sub(s).Dot(neighbors[j].p.Sub(s))
			if di != dj {
				return di < dj
			}
			return neighbors[i].p.Less(neighbors[j].p)
		})

		for _, q := range neighbors {
			// Once every remaining site is farther than twice the
			// cell radius, no bisector can cut the cell.
			radius := 0.0
			for _, v := range cell {
				if d := v.Distance(s); d > radius {
					radius = d
				}
			}
			if q.p.Distance(s) > 2*radius {
				break
			}
			// Keep the side of the bisector closer to s.
			half := halfPlane{
				n: q.p.Sub(s).Scale(2),
				c: q.p.Dot(q.p) - s.Dot(s),
			}
			cell = clipConvex(cell, half)
			if cell == nil {
				break
			}
		}
		if cell == nil {
			continue
		}
		cell = cell.Normalized()

		for _, off := range tileOffsets {
			d := Vec2{off.X * w, off.Y * h}
			poly := cell
			if d != (Vec2{}) {
				poly = cell.Translate(d)
			}
			b := poly.Bounds()
			if b.Min.X >= w || b.Max.X <= 0 || b.Min.Y >= h || b.Max.Y <= 0 {
				continue
			}
			cells = append(cells, Cell{
				Site:    s.Add(d),
				Owner:   owner,
				Offset:  d,
				Polygon: poly,
			})
		}
	}
	return cells
}
