package asphalt

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"

	"github.com/stereopair/roadgen/internal/ground/raster"
	"github.com/stereopair/roadgen/pkg/geom"
)

// Walk directions, eight-connected. Diagonal steps are intentionally longer
// than cardinal ones; the wandering this produces is part of the crack look.
var dirVecs = [8]geom.Vec2{
	{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: 0},
}

// branchDirOffsets are the direction deltas a side branch may take relative
// to its parent. Zero is excluded so a branch never shadows the parent.
var branchDirOffsets = [6]int{-3, -2, -1, 1, 2, 3}

// maxNetworkCracks caps the defect crack count per tile.
const maxNetworkCracks = 64

// crackTintAlpha is the per-step texture tint opacity. Steps overlap about
// five to one along the walk, so the accumulated tint is much darker than a
// single stamp.
const crackTintAlpha = 40.0 / 255.0

// Step is one stamped segment of a crack walk. All coordinates are fractions
// of the tile edge, so the same network rasterizes consistently at any
// resolution.
type Step struct {
	Pos   geom.Vec2
	Quad  geom.Polygon
	Width float64
	// Depth is the height-plane target under the stamp; lower is deeper.
	Depth uint16
	Tint  color.RGBA
}

// Crack is one walk of the network, root to tip. Defect cracks are stamped
// into the defect mask; cosmetic cracks only touch texture and height.
type Crack struct {
	Root   geom.Vec2
	Dir    int
	Steps  []Step
	Defect bool
}

// Network is a grown crack system in normalized tile coordinates.
type Network struct {
	Cracks           []Crack
	DefectsRequested int
	DefectsActual    int
	Clamped          bool
}

// GrowNetwork builds a crack network from the given random stream. Cosmetic
// base cracks come first, then the requested defect cracks; each main crack
// sprouts one to five side branches. The network holds no pixel coordinates,
// so identical rng state and parameters yield an identical network at every
// resolution.
func GrowNetwork(rng *rand.Rand, p Params, defects int) (*Network, error) {
	if p.CrackLength <= 0 || p.CrackWidth <= 0 {
		return nil, fmt.Errorf("crack length %g and width %g must be positive", p.CrackLength, p.CrackWidth)
	}
	if defects < 0 {
		return nil, fmt.Errorf("negative defect count %d", defects)
	}
	actual := defects
	clamped := false
	if actual > maxNetworkCracks {
		actual = maxNetworkCracks
		clamped = true
	}

	n := &Network{
		DefectsRequested: defects,
		DefectsActual:    actual,
		Clamped:          clamped,
	}
	maxSteps := int(math.Round(5 * p.CrackLength / p.CrackWidth))
	if maxSteps < 1 {
		maxSteps = 1
	}
	for i := 0; i < p.BaseCracks+actual; i++ {
		n.growMain(rng, p, maxSteps, i >= p.BaseCracks)
	}
	return n, nil
}

// growMain grows one main crack plus its side branches.
func (n *Network) growMain(rng *rand.Rand, p Params, maxSteps int, defect bool) {
	dir := rng.Intn(8)
	dv := dirVecs[dir]
	// Start half a tile upwind of the drawn area so the crack enters it
	// already grown to width.
	root := geom.Vec2{
		X: rng.Float64()*0.5 - dv.X*0.5,
		Y: rng.Float64()*0.5 - dv.Y*0.5,
	}
	main := growCrack(rng, root, dir, maxSteps, p.CrackWidth, defect)
	n.Cracks = append(n.Cracks, main)
	if len(main.Steps) == 0 {
		return
	}

	branchWidth := p.CrackWidth * 0.3
	branches := 1 + rng.Intn(5)
	for b := 0; b < branches; b++ {
		anchor := main.Steps[rng.Intn(len(main.Steps))].Pos
		sideDir := (dir + branchDirOffsets[rng.Intn(len(branchDirOffsets))] + 8) % 8
		steps := int(math.Round(float64(maxSteps) * (rng.Float64()*0.5 + 0.1)))
		n.Cracks = append(n.Cracks, growCrack(rng, anchor, sideDir, steps, branchWidth, defect))
	}
}

// growCrack performs the biased walk: a persistent start direction with one
// step of angular noise per move, positions wrapped into the unit tile.
func growCrack(rng *rand.Rand, start geom.Vec2, startDir, maxSteps int, width float64, defect bool) Crack {
	c := Crack{Root: start, Dir: startDir, Defect: defect}
	stepSize := width * 0.2
	pos := start
	dir := startDir
	for i := 0; i < maxSteps; i++ {
		pos = pos.Add(dirVecs[dir].Scale(stepSize))
		pos.X = wrapUnit(pos.X)
		pos.Y = wrapUnit(pos.Y)

		lo, hi := stepExtent(width, i, maxSteps)
		depth := stepDepth(i, maxSteps)
		c.Steps = append(c.Steps, Step{
			Pos:   pos,
			Quad:  quadAround(rng, pos, lo, hi),
			Width: hi,
			Depth: depth,
			Tint:  stepTint(rng, depth),
		})
		dir = (startDir + rng.Intn(3) - 1 + 8) % 8
	}
	return c
}

// stepExtent is the width taper: a fifth of the full width over the first and
// last third of the walk, a sine bump up to the full width in the middle.
func stepExtent(width float64, step, total int) (lo, hi float64) {
	minW := width * 0.2
	third := float64(total) / 3
	fi := float64(step)
	if fi <= third || fi > 2*third {
		return minW, minW
	}
	w := math.Abs(math.Sin((fi/float64(total)*3-1)*math.Pi)*(width-minW) + minW)
	return w * 0.5, w
}

// stepDepth maps the walk position to a height target: untouched surface at
// root and tip, deepest at the middle of the crack.
func stepDepth(step, total int) uint16 {
	const maxDepth = 250
	b := 255 - math.Round((-math.Cos(2*math.Pi*float64(step)/float64(total))*0.5+0.5)*maxDepth)
	return uint16(b) * 257
}

// stepTint derives the dark reddish-brown texture tint from the stamp depth.
func stepTint(rng *rand.Rand, depth uint16) color.RGBA {
	h := 0.02 + rng.Float64()*0.08
	l := float64(depth)/65535*0.1 + 0.1
	r, g, b := hlsToRGB(h, l, 0.3)
	return color.RGBA{
		R: uint8(r*255 + 0.5),
		G: uint8(g*255 + 0.5),
		B: uint8(b*255 + 0.5),
		A: 255,
	}
}

// quadAround builds a rough quad around p, each corner pushed diagonally
// outward by a random amount between lo and hi.
func quadAround(rng *rand.Rand, p geom.Vec2, lo, hi float64) geom.Polygon {
	corners := [4]geom.Vec2{{X: -1, Y: -1}, {X: -1, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: -1}}
	q := make(geom.Polygon, 4)
	for i, d := range corners {
		q[i] = geom.Vec2{
			X: p.X + (lo+rng.Float64()*(hi-lo))*d.X,
			Y: p.Y + (lo+rng.Float64()*(hi-lo))*d.Y,
		}
	}
	return q
}

// Render stamps the network into the buffers, scaling the normalized quads to
// the buffer resolution. Stamps wrap toroidally, so cracks leaving one tile
// edge continue on the opposite one.
func (n *Network) Render(b *raster.Buffers) {
	w, h := b.Size()
	fw, fh := float64(w), float64(h)
	for _, c := range n.Cracks {
		for _, s := range c.Steps {
			quad := make(geom.Polygon, len(s.Quad))
			for i, v := range s.Quad {
				quad[i] = geom.Vec2{X: v.X * fw, Y: v.Y * fh}
			}
			b.StampPolygon(quad, s.Tint, crackTintAlpha, s.Depth, c.Defect)
		}
	}
}

func wrapUnit(v float64) float64 {
	v = math.Mod(v, 1)
	if v < 0 {
		v++
	}
	return v
}

// hlsToRGB converts hue, lightness, saturation (all in [0, 1]) to RGB.
func hlsToRGB(h, l, s float64) (r, g, b float64) {
	if s == 0 {
		return l, l, l
	}
	var m2 float64
	if l <= 0.5 {
		m2 = l * (1 + s)
	} else {
		m2 = l + s - l*s
	}
	m1 := 2*l - m2
	return hueValue(m1, m2, h+1.0/3), hueValue(m1, m2, h), hueValue(m1, m2, h-1.0/3)
}

func hueValue(m1, m2, hue float64) float64 {
	hue = math.Mod(hue, 1)
	if hue < 0 {
		hue++
	}
	switch {
	case hue < 1.0/6:
		return m1 + (m2-m1)*hue*6
	case hue < 0.5:
		return m2
	case hue < 2.0/3:
		return m1 + (m2-m1)*(2.0/3-hue)*6
	default:
		return m1
	}
}
