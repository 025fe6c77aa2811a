package raster

import (
	"errors"
	"fmt"
	"math"
)

// ErrSeam reports a discontinuity across the wrap boundary of a tile.
var ErrSeam = errors.New("seam discontinuity")

// SeamReport compares the wrap boundary of a tile against its interior. The
// X values compare the first and last column (toroidally adjacent), the Y
// values the first and last row; the Base values are the mean delta between
// interior adjacent column or row pairs. For a properly periodic tile the
// wrap deltas match the interior baseline, whatever structure the surface
// has.
type SeamReport struct {
	TextureX, TextureY         float64 // mean per-channel delta, 0..255
	HeightX, HeightY           float64 // mean delta, 0..65535
	TextureBaseX, TextureBaseY float64
	HeightBaseX, HeightBaseY   float64
}

// SeamReport measures value continuity across the wrap boundaries and the
// interior baselines they are judged against.
func (b *Buffers) SeamReport() SeamReport {
	w, h := b.Size()
	var r SeamReport

	r.TextureX, r.HeightX = b.columnDelta(w-1, 0)
	r.TextureY, r.HeightY = b.rowDelta(h-1, 0)

	for x := 0; x < w-1; x++ {
		t, hh := b.columnDelta(x, x+1)
		r.TextureBaseX += t
		r.HeightBaseX += hh
	}
	r.TextureBaseX /= float64(w - 1)
	r.HeightBaseX /= float64(w - 1)

	for y := 0; y < h-1; y++ {
		t, hh := b.rowDelta(y, y+1)
		r.TextureBaseY += t
		r.HeightBaseY += hh
	}
	r.TextureBaseY /= float64(h - 1)
	r.HeightBaseY /= float64(h - 1)

	return r
}

// columnDelta returns the mean texture and height deltas between two columns.
func (b *Buffers) columnDelta(x0, x1 int) (tex, height float64) {
	_, h := b.Size()
	for y := 0; y < h; y++ {
		a := b.Texture.RGBAAt(x0, y)
		z := b.Texture.RGBAAt(x1, y)
		tex += (math.Abs(float64(a.R)-float64(z.R)) +
			math.Abs(float64(a.G)-float64(z.G)) +
			math.Abs(float64(a.B)-float64(z.B))) / 3
		height += math.Abs(float64(b.Height.Gray16At(x0, y).Y) - float64(b.Height.Gray16At(x1, y).Y))
	}
	return tex / float64(h), height / float64(h)
}

// rowDelta returns the mean texture and height deltas between two rows.
func (b *Buffers) rowDelta(y0, y1 int) (tex, height float64) {
	w, _ := b.Size()
	for x := 0; x < w; x++ {
		a := b.Texture.RGBAAt(x, y0)
		z := b.Texture.RGBAAt(x, y1)
		tex += (math.Abs(float64(a.R)-float64(z.R)) +
			math.Abs(float64(a.G)-float64(z.G)) +
			math.Abs(float64(a.B)-float64(z.B))) / 3
		height += math.Abs(float64(b.Height.Gray16At(x, y0).Y) - float64(b.Height.Gray16At(x, y1).Y))
	}
	return tex / float64(w), height / float64(w)
}

// Seam acceptance: the wrap delta may exceed the interior baseline by at most
// this factor, plus an absolute slack that covers near-flat tiles.
const (
	seamFactor       = 3.0
	seamTextureSlack = 8.0
	seamHeightSlack  = 2000.0
)

// VerifySeams checks value continuity across the wrap boundaries against the
// tile's own interior statistics. It is a debug assertion on the periodic
// construction, not a runtime recovery path: a failure means a generator bug.
func (b *Buffers) VerifySeams() error {
	r := b.SeamReport()
	if r.TextureX > seamFactor*r.TextureBaseX+seamTextureSlack ||
		r.TextureY > seamFactor*r.TextureBaseY+seamTextureSlack {
		return fmt.Errorf("%w: texture deltas x=%.2f y=%.2f against baseline x=%.2f y=%.2f",
			ErrSeam, r.TextureX, r.TextureY, r.TextureBaseX, r.TextureBaseY)
	}
	if r.HeightX > seamFactor*r.HeightBaseX+seamHeightSlack ||
		r.HeightY > seamFactor*r.HeightBaseY+seamHeightSlack {
		return fmt.Errorf("%w: height deltas x=%.1f y=%.1f against baseline x=%.1f y=%.1f",
			ErrSeam, r.HeightX, r.HeightY, r.HeightBaseX, r.HeightBaseY)
	}
	return nil
}
