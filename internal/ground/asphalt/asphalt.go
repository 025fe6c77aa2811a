// Package asphalt generates tileable asphalt ground tiles: a speckled
// aggregate base with a branching crack network grown by a biased random
// walk. Cracks darken the texture, depress the height plane and, when grown
// as defects, mark the defect mask.
package asphalt

import (
	"fmt"
	"math/rand"

	"github.com/stereopair/roadgen/internal/ground/raster"
)

// Params controls the asphalt generator. Crack measures are fractions of the
// tile edge; inlay density is in quads per pixel.
type Params struct {
	// Variant selects the speckle palette, see palette().
	Variant int
	// CrackLength is the main crack path length.
	CrackLength float64
	// CrackWidth is the peak crack width at the middle of a main crack.
	CrackWidth float64
	// BaseCracks is the number of cosmetic cracks drawn regardless of the
	// requested defect count. They never touch the defect mask.
	BaseCracks int
	// InlayDensity scatters aggregate quads over the base speckle.
	InlayDensity float64
	// NoiseAmount is the amplitude of the low-frequency brightness
	// modulation over the speckle.
	NoiseAmount float64
}

// Generate produces one asphalt tile at the given resolution. The crack
// network is grown in normalized coordinates on its own random substream, so
// the same seed yields the same network topology at every resolution; only
// the raster sampling differs.
func Generate(rng *rand.Rand, p Params, defects, w, h int) (*raster.Buffers, *Network, error) {
	if w <= 0 || h <= 0 {
		return nil, nil, fmt.Errorf("invalid resolution %dx%d", w, h)
	}
	speckleRng := rand.New(rand.NewSource(rng.Int63()))
	crackRng := rand.New(rand.NewSource(rng.Int63()))

	n, err := GrowNetwork(crackRng, p, defects)
	if err != nil {
		return nil, nil, fmt.Errorf("grow crack network: %w", err)
	}
	b := raster.New(w, h)
	Speckle(speckleRng, b, p)
	n.Render(b)
	return b, n, nil
}
