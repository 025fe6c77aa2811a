package ground

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/ojrac/opensimplex-go"

	"github.com/stereopair/roadgen/internal/ground/raster"
	"github.com/stereopair/roadgen/internal/ground/stones"
	"github.com/stereopair/roadgen/pkg/geom"
)

const (
	// mortarGray is the base brightness of the joints between stones.
	mortarGray = 52
	// grainCycles is the surface grain frequency in features per tile edge.
	grainCycles = 24.0
)

// renderStones rasterizes a stone layout into supersampled buffers. The
// mortar background sits at height zero; every intact stone is painted at its
// biased height with a grain-modulated shade, and defect stones leave a hole
// with their mask polygon marked instead.
func renderStones(rng *rand.Rand, l *stones.Layout, w, h int) *raster.Buffers {
	b := raster.New(w, h)
	grain := opensimplex.New(rng.Int63())

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g := float64(mortarGray) * (1 + 0.3*torusNoise(grain, x, y, w, h))
			v := clampChan(g)
			b.Texture.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}

	sx := float64(w) / l.Size
	sy := float64(h) / l.Size
	for _, s := range l.Stones {
		if s.Defect {
			if s.DefectShape != nil {
				b.PaintMask(scalePolygon(s.DefectShape, sx, sy))
			}
			continue
		}
		if s.Shape == nil {
			continue
		}
		top := uint16((1 - s.Height) * 65535)
		base := 100 + s.Shade*70
		b.PaintCell(scalePolygon(s.Shape, sx, sy), top, func(x, y int) color.RGBA {
			g := base * (1 + 0.18*torusNoise(grain, x, y, w, h))
			return color.RGBA{
				R: clampChan(g + 6),
				G: clampChan(g),
				B: clampChan(g - 4),
				A: 255,
			}
		})
	}
	return b
}

// torusNoise samples the simplex field over a torus embedded in 4D, so the
// grain wraps exactly at the tile edges.
func torusNoise(n opensimplex.Noise, x, y, w, h int) float64 {
	u := 2 * math.Pi * float64(x) / float64(w)
	v := 2 * math.Pi * float64(y) / float64(h)
	const r = grainCycles / (2 * math.Pi)
	return n.Eval4(r*math.Cos(u), r*math.Sin(u), r*math.Cos(v), r*math.Sin(v))
}

func scalePolygon(p geom.Polygon, sx, sy float64) geom.Polygon {
	out := make(geom.Polygon, len(p))
	for i, v := range p {
		out[i] = geom.Vec2{X: v.X * sx, Y: v.Y * sy}
	}
	return out
}

func clampChan(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
