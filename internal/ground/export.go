package ground

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/stereopair/roadgen/internal/ground/raster"
)

// Output file suffixes, shared with the batch tooling.
const (
	TextureSuffix = "_texture"
	DepthSuffix   = "_depth"
	DefectsSuffix = "_defects"
)

// WritePNGs writes the three buffers as prefix_texture.png, prefix_depth.png
// and prefix_defects.png. heightBits selects 16-bit grayscale output or an
// 8-bit quantization of the height plane.
func (r *Result) WritePNGs(prefix string, heightBits int) error {
	if heightBits != 8 && heightBits != 16 {
		return fmt.Errorf("%w: height depth %d bits, want 8 or 16", ErrInvalidConfig, heightBits)
	}
	if err := writePNG(prefix+TextureSuffix+".png", r.Buffers.Texture); err != nil {
		return err
	}
	var height image.Image = r.Buffers.Height
	if heightBits == 8 {
		height = quantizeHeight(r.Buffers)
	}
	if err := writePNG(prefix+DepthSuffix+".png", height); err != nil {
		return err
	}
	return writePNG(prefix+DefectsSuffix+".png", r.Buffers.Defects)
}

func quantizeHeight(b *raster.Buffers) *image.Gray {
	w, h := b.Size()
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.SetGray(x, y, color.Gray{Y: uint8(b.Height.Gray16At(x, y).Y >> 8)})
		}
	}
	return out
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
