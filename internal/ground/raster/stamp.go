package raster

import (
	"image/color"
	"math"

	"github.com/stereopair/roadgen/pkg/geom"
)

// stampSubdiv is the per-axis subsample count used for stamp coverage.
const stampSubdiv = 4

// StampPolygon blends a small polygon into the buffers with per-pixel
// coverage anti-aliasing and toroidal wrapping, so stamps crossing a tile
// edge continue on the opposite side. The texture receives col at
// alpha*coverage; the height plane is pulled down toward depth (never
// raised); the defect mask applies the majority-coverage rule when
// markDefect is set.
func (b *Buffers) StampPolygon(p geom.Polygon, col color.RGBA, alpha float64, depth uint16, markDefect bool) {
	if len(p) < 3 {
		return
	}
	w, h := b.Size()
	bounds := p.Bounds()
	x0 := int(math.Floor(bounds.Min.X))
	x1 := int(math.Ceil(bounds.Max.X))
	y0 := int(math.Floor(bounds.Min.Y))
	y1 := int(math.Ceil(bounds.Max.Y))

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			cov := coverage(p, x, y)
			if cov == 0 {
				continue
			}
			ix := wrapIndex(x, w)
			iy := wrapIndex(y, h)

			a := alpha * cov
			t := b.Texture.RGBAAt(ix, iy)
			t.R = blend8(t.R, col.R, a)
			t.G = blend8(t.G, col.G, a)
			t.B = blend8(t.B, col.B, a)
			b.Texture.SetRGBA(ix, iy, t)

			cur := b.Height.Gray16At(ix, iy).Y
			low := uint16(float64(cur)*(1-cov) + float64(depth)*cov)
			if low < cur {
				b.Height.SetGray16(ix, iy, color.Gray16{Y: low})
			}

			if markDefect && cov > 0.5 {
				b.Defects.SetGray(ix, iy, color.Gray{Y: 255})
			}
		}
	}
}

// coverage returns the fraction of the pixel at (x, y) covered by the
// polygon, from a stampSubdiv x stampSubdiv point grid.
func coverage(p geom.Polygon, x, y int) float64 {
	hits := 0
	for sy := 0; sy < stampSubdiv; sy++ {
		for sx := 0; sx < stampSubdiv; sx++ {
			pt := geom.Vec2{
				X: float64(x) + (float64(sx)+0.5)/stampSubdiv,
				Y: float64(y) + (float64(sy)+0.5)/stampSubdiv,
			}
			if p.ContainsPoint(pt) {
				hits++
			}
		}
	}
	return float64(hits) / (stampSubdiv * stampSubdiv)
}

func wrapIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

func blend8(dst, src uint8, a float64) uint8 {
	v := float64(dst)*(1-a) + float64(src)*a
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
