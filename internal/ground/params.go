package ground

import (
	"github.com/stereopair/roadgen/internal/ground/asphalt"
	"github.com/stereopair/roadgen/internal/ground/stones"
)

// Style presets. Measures are fractions of the stone spacing (stones) or of
// the tile edge (asphalt); height ranges are fractions of the full height
// scale.

func cobblestoneParams() stones.Params {
	return stones.Params{
		GridSize:    10,
		Distortion:  0.2,
		GapWidth:    0.08,
		CornerSize:  0.3,
		HeightRange: 130.0 / 255.0,
	}
}

func slateParams() stones.Params {
	return stones.Params{
		GridSize:    7,
		Distortion:  0.5,
		GapWidth:    0.04,
		CornerSize:  0.3,
		HeightRange: 150.0 / 255.0,
	}
}

func asphaltParams() asphalt.Params {
	return asphalt.Params{
		Variant:      1,
		CrackLength:  0.8,
		CrackWidth:   10.0 / 1024.0,
		BaseCracks:   2,
		InlayDensity: 6000.0 / (1024.0 * 1024.0),
		NoiseAmount:  0.1,
	}
}
