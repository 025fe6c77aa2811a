// Package stones synthesizes tileable stone layouts: a periodic Voronoi
// partition of the tile turned into individual paving stones with mortar
// gaps, cut corners, per-stone height bias and optional missing-stone
// defects.
package stones

import (
	"fmt"
	"math/rand"

	"github.com/stereopair/roadgen/pkg/geom"
)

// Params controls the stone layout. Lengths are fractions of the average
// stone spacing (one layout unit).
type Params struct {
	// GridSize is the edge length of the seed grid; the tile holds about
	// GridSize*GridSize stones.
	GridSize int
	// Distortion displaces each grid seed by up to this amount in x and y.
	Distortion float64
	// GapWidth is the mortar joint width between stones.
	GapWidth float64
	// CornerSize is the corner cutoff distance applied after the gap inset.
	CornerSize float64
	// HeightRange is the maximum random height bias per stone, as a
	// fraction of the full height scale.
	HeightRange float64
	// CornerJitter randomly displaces shape vertices by up to this amount
	// for irregularity. Zero disables jittering.
	CornerJitter float64
}

// Stone is one paving unit of the layout. Wrapped copies of a stone share
// the same owner and attributes, so the layout stays consistent across the
// periodic boundary.
type Stone struct {
	Cell geom.Cell
	// Shape is the stone surface polygon after gap inset and corner
	// cutoff. Nil when offsetting degenerated the cell; such stones are
	// skipped during rasterization.
	Shape geom.Polygon
	// DefectShape is the mask polygon for defect stones, inset by half
	// the gap like the original surface renderer.
	DefectShape geom.Polygon
	// Height is the stone top's height bias in [0, HeightRange].
	Height float64
	// Shade is the per-stone brightness factor in [0, 1).
	Shade float64
	// Defect marks a missing stone.
	Defect bool
}

// Layout is a synthesized stone arrangement over a square periodic tile.
type Layout struct {
	// Size is the tile edge length in layout units.
	Size float64
	// Stones lists every cell copy that reaches into the tile, including
	// wrapped mirrors of edge-straddling stones.
	Stones []Stone
	// DefectsRequested and DefectsActual report the defect clamp: fewer
	// defects than requested is a condition for the caller, not an error.
	DefectsRequested int
	DefectsActual    int
	Clamped          bool
}

// jitterRetries bounds the re-validation loop after corner jittering; each
// retry halves the magnitude.
const jitterRetries = 3

// Synthesize builds a stone layout from the given random stream. The stream
// fully determines the result: identical rng state and parameters yield an
// identical layout.
func Synthesize(rng *rand.Rand, p Params, defects int) (*Layout, error) {
	if p.GridSize < 2 {
		return nil, fmt.Errorf("grid size %d too small, need at least 2", p.GridSize)
	}
	if defects < 0 {
		return nil, fmt.Errorf("negative defect count %d", defects)
	}
	size := float64(p.GridSize)

	seeds := make([]geom.Vec2, 0, p.GridSize*p.GridSize)
	for x := 0; x < p.GridSize; x++ {
		for y := 0; y < p.GridSize; y++ {
			seeds = append(seeds, geom.Vec2{
				X: float64(x) + 0.5 + (rng.Float64()-0.5)*2*p.Distortion,
				Y: float64(y) + 0.5 + (rng.Float64()-0.5)*2*p.Distortion,
			})
		}
	}

	cells := geom.PeriodicVoronoi(seeds, size, size)
	owners := 0
	for _, c := range cells {
		if c.Owner+1 > owners {
			owners = c.Owner + 1
		}
	}
	if owners == 0 {
		return nil, fmt.Errorf("voronoi partition produced no cells")
	}

	// Per-owner attributes and shapes are drawn once and shared by all
	// wrapped copies, keeping mirrors identical.
	type ownerData struct {
		height, shade float64
		shape         geom.Polygon
		defectShape   geom.Polygon
	}
	base := make([]geom.Polygon, owners)
	for _, c := range cells {
		if base[c.Owner] == nil {
			base[c.Owner] = c.Polygon.Translate(c.Offset.Scale(-1))
		}
	}
	data := make([]ownerData, owners)
	for i := 0; i < owners; i++ {
		d := ownerData{
			height: rng.Float64() * p.HeightRange,
			shade:  rng.Float64(),
		}
		if base[i] != nil {
			d.shape = stoneShape(rng, base[i], p)
			d.defectShape = geom.Offset(base[i], -p.GapWidth/2, geom.JoinMiter)
		}
		data[i] = d
	}

	actual := defects
	clamped := false
	if actual > owners {
		actual = owners
		clamped = true
	}
	defective := make(map[int]bool, actual)
	for _, idx := range rng.Perm(owners)[:actual] {
		defective[idx] = true
	}

	layout := &Layout{
		Size:             size,
		Stones:           make([]Stone, 0, len(cells)),
		DefectsRequested: defects,
		DefectsActual:    actual,
		Clamped:          clamped,
	}
	for _, c := range cells {
		d := data[c.Owner]
		s := Stone{
			Cell:   c,
			Height: d.height,
			Shade:  d.shade,
			Defect: defective[c.Owner],
		}
		if d.shape != nil {
			s.Shape = d.shape.Translate(c.Offset)
		}
		if d.defectShape != nil {
			s.DefectShape = d.defectShape.Translate(c.Offset)
		}
		layout.Stones = append(layout.Stones, s)
	}
	return layout, nil
}

// stoneShape insets the cell to open the mortar gap, cuts the corners, and
// optionally jitters the vertices. Degenerate intermediate results collapse
// the whole shape to nil; the jitter pass instead retries with reduced
// magnitude and finally falls back to the unjittered shape.
func stoneShape(rng *rand.Rand, cell geom.Polygon, p Params) geom.Polygon {
	shape := geom.Offset(cell, -(p.GapWidth+p.CornerSize)/2, geom.JoinMiter)
	if shape == nil {
		return nil
	}
	if p.CornerSize > 0 {
		out := geom.Offset(shape, p.CornerSize/2, geom.JoinSquare)
		if out == nil {
			return nil
		}
		shape = out
	}
	if p.CornerJitter <= 0 {
		return shape
	}
	mag := p.CornerJitter
	for try := 0; try < jitterRetries; try++ {
		jittered := make(geom.Polygon, len(shape))
		for i, v := range shape {
			jittered[i] = geom.Vec2{
				X: v.X + (rng.Float64()-0.5)*2*mag,
				Y: v.Y + (rng.Float64()-0.5)*2*mag,
			}
		}
		if !jittered.SelfIntersects() && jittered.Area() > 0 {
			return jittered
		}
		mag /= 2
	}
	return shape
}
