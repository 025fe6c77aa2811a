package raster

import (
	"image/color"
	"math"
	"sort"

	"github.com/stereopair/roadgen/pkg/geom"
)

// FillSpans scan-converts the polygon with the even-odd rule and invokes fn
// for every covered horizontal pixel span, clamped to the w x h grid. Pixels
// are sampled at their centers.
func FillSpans(p geom.Polygon, w, h int, fn func(y, x0, x1 int)) {
	if len(p) < 3 {
		return
	}
	b := p.Bounds()
	y0 := int(math.Floor(b.Min.Y))
	y1 := int(math.Ceil(b.Max.Y))
	if y0 < 0 {
		y0 = 0
	}
	if y1 > h {
		y1 = h
	}
	xs := make([]float64, 0, 8)
	for y := y0; y < y1; y++ {
		yc := float64(y) + 0.5
		xs = xs[:0]
		for i, a := range p {
			c := p[(i+1)%len(p)]
			if (a.Y <= yc) == (c.Y <= yc) {
				continue
			}
			xs = append(xs, a.X+(yc-a.Y)/(c.Y-a.Y)*(c.X-a.X))
		}
		sort.Float64s(xs)
		for k := 0; k+1 < len(xs); k += 2 {
			x0 := int(math.Ceil(xs[k] - 0.5))
			x1 := int(math.Ceil(xs[k+1]-0.5)) - 1
			if x0 < 0 {
				x0 = 0
			}
			if x1 >= w {
				x1 = w - 1
			}
			if x0 <= x1 {
				fn(y, x0, x1)
			}
		}
	}
}

// PaintCell fills the polygon into the texture and height planes. The shade
// callback supplies the per-pixel texture color; the height value is held
// constant across the cell.
func (b *Buffers) PaintCell(p geom.Polygon, height uint16, shade func(x, y int) color.RGBA) {
	w, h := b.Size()
	hv := color.Gray16{Y: height}
	FillSpans(p, w, h, func(y, x0, x1 int) {
		for x := x0; x <= x1; x++ {
			b.Texture.SetRGBA(x, y, shade(x, y))
			b.Height.SetGray16(x, y, hv)
		}
	})
}

// PaintMask fills the polygon into the defect mask only.
func (b *Buffers) PaintMask(p geom.Polygon) {
	w, h := b.Size()
	white := color.Gray{Y: 255}
	FillSpans(p, w, h, func(y, x0, x1 int) {
		for x := x0; x <= x1; x++ {
			b.Defects.SetGray(x, y, white)
		}
	})
}
