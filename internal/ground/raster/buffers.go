// Package raster converts vector ground layouts into the three co-registered
// output buffers: color texture, height map and binary defect mask.
package raster

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// Buffers holds the three pixel-co-registered output planes of one ground
// tile. For every (x, y), Texture, Height and Defects refer to the same
// physical surface point. Height is brighter for higher surface; Defects is
// strictly binary (0 or 255).
type Buffers struct {
	Texture *image.RGBA
	Height  *image.Gray16
	Defects *image.Gray
}

// New allocates zeroed buffers at the given resolution.
func New(w, h int) *Buffers {
	r := image.Rect(0, 0, w, h)
	return &Buffers{
		Texture: image.NewRGBA(r),
		Height:  image.NewGray16(r),
		Defects: image.NewGray(r),
	}
}

// Size returns the buffer resolution.
func (b *Buffers) Size() (w, h int) {
	return b.Texture.Rect.Dx(), b.Texture.Rect.Dy()
}

// FillTexture floods the texture plane with one opaque color.
func (b *Buffers) FillTexture(c color.RGBA) {
	w, h := b.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			b.Texture.SetRGBA(x, y, c)
		}
	}
}

// FillHeight floods the height plane with one value.
func (b *Buffers) FillHeight(v uint16) {
	w, h := b.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			b.Height.SetGray16(x, y, color.Gray16{Y: v})
		}
	}
}

// Downsample reduces supersampled buffers by an integer factor. The texture
// is resampled with a Catmull-Rom kernel for smooth anti-aliased edges, the
// height plane is box-averaged, and the defect mask applies the
// majority-coverage rule: an output pixel is a defect only if more than half
// of its subpixels are.
func Downsample(src *Buffers, factor int) *Buffers {
	if factor <= 1 {
		return src
	}
	sw, sh := src.Size()
	w, h := sw/factor, sh/factor
	dst := New(w, h)

	xdraw.CatmullRom.Scale(dst.Texture, dst.Texture.Rect, src.Texture, src.Texture.Rect, xdraw.Src, nil)

	sub := factor * factor
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var hsum uint64
			defects := 0
			for sy := 0; sy < factor; sy++ {
				for sx := 0; sx < factor; sx++ {
					hsum += uint64(src.Height.Gray16At(x*factor+sx, y*factor+sy).Y)
					if src.Defects.GrayAt(x*factor+sx, y*factor+sy).Y > 127 {
						defects++
					}
				}
			}
			dst.Height.SetGray16(x, y, color.Gray16{Y: uint16(hsum / uint64(sub))})
			if defects*2 > sub {
				dst.Defects.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return dst
}
