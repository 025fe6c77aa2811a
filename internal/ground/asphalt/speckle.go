package asphalt

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"

	"github.com/stereopair/roadgen/internal/ground/raster"
	"github.com/stereopair/roadgen/pkg/geom"
)

// noiseCycles is the number of low-frequency brightness periods per tile
// edge. The periodic blend below makes the field wrap exactly at this domain
// size.
const noiseCycles = 4.0

// grayRamp returns num evenly spaced gray levels from min to max inclusive.
func grayRamp(min, max, num int) []uint8 {
	ramp := make([]uint8, num)
	for i := 0; i < num; i++ {
		ramp[i] = uint8(math.Round(float64(i)*float64(max-min)/float64(num-1)) + float64(min))
	}
	return ramp
}

// grayLevels is the full speckle gray range: a dense dark ramp with a few
// bright outlier levels that read as embedded light aggregate.
var grayLevels = append(grayRamp(0, 98, 40), grayRamp(105, 190, 4)...)

// palette selects the speckle gray levels for an asphalt variant: 1 is worn
// light asphalt, 2 is fresh dark asphalt, anything else is harsh black and
// white salt-and-pepper.
func palette(variant int) []uint8 {
	switch variant {
	case 1:
		return grayLevels[30:]
	case 2:
		return grayLevels[3:44]
	default:
		return []uint8{0, 255}
	}
}

// Speckle paints the asphalt base: per-pixel random grays from the variant
// palette, modulated by a tileable low-frequency brightness field, with inlay
// quads scattered on top as coarse aggregate. The height plane is flooded to
// full surface level.
func Speckle(rng *rand.Rand, b *raster.Buffers, p Params) {
	w, h := b.Size()
	pal := palette(p.Variant)
	noise := perlin.NewPerlin(2, 2, 3, rng.Int63())

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g := float64(pal[rng.Intn(len(pal))])
			g *= 1 + p.NoiseAmount*periodicNoise(noise, x, y, w, h)
			v := uint8(math.Min(math.Max(g, 0), 255))
			b.Texture.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	b.FillHeight(0xffff)

	inlays := int(math.Round(p.InlayDensity * float64(w*h)))
	if w <= 6 || h <= 6 {
		inlays = 0
	}
	for i := 0; i < inlays; i++ {
		paintInlay(rng, b, w, h)
	}
}

// paintInlay stamps one small aggregate quad into the texture. The quad color
// comes from a four-level warm ramp darkened by a random amount, with
// per-channel jitter so the stones are not perfectly gray.
func paintInlay(rng *rand.Rand, b *raster.Buffers, w, h int) {
	center := geom.Vec2{
		X: float64(3 + rng.Intn(w-5)),
		Y: float64(3 + rng.Intn(h-5)),
	}
	darken := rng.Intn(81)
	ramp := grayRamp(169-darken, 220-darken, 4)
	colors := make([]color.RGBA, len(ramp))
	for i, v := range ramp {
		colors[i] = color.RGBA{
			R: clamp8(int(v) + rng.Intn(21) - 10),
			G: clamp8(int(v) + rng.Intn(26) - 15),
			B: clamp8(int(v) + rng.Intn(31) - 20),
			A: 255,
		}
	}
	quad := quadAround(rng, center, 1, 3)
	col := colors[rng.Intn(len(colors))]
	raster.FillSpans(quad, w, h, func(y, x0, x1 int) {
		for x := x0; x <= x1; x++ {
			b.Texture.SetRGBA(x, y, col)
		}
	})
}

// periodicNoise samples the perlin field on a torus by blending four
// domain-shifted samples bilinearly, so opposite tile edges see identical
// values.
func periodicNoise(n *perlin.Perlin, x, y, w, h int) float64 {
	u := float64(x) / float64(w) * noiseCycles
	v := float64(y) / float64(h) * noiseCycles
	const d = noiseCycles
	return (n.Noise2D(u, v)*(d-u)*(d-v) +
		n.Noise2D(u-d, v)*u*(d-v) +
		n.Noise2D(u, v-d)*(d-u)*v +
		n.Noise2D(u-d, v-d)*u*v) / (d * d)
}

func clamp8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
