// Package ground generates tileable road-surface tiles for stereo training
// data: a color texture, a height map and a binary defect mask, co-registered
// pixel for pixel. Cobblestone and slate run through the Voronoi stone
// pipeline, asphalt through the crack-network generator.
package ground

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"go.uber.org/zap"

	"github.com/stereopair/roadgen/internal/config"
	"github.com/stereopair/roadgen/internal/ground/asphalt"
	"github.com/stereopair/roadgen/internal/ground/raster"
	"github.com/stereopair/roadgen/internal/ground/stones"
	"github.com/stereopair/roadgen/internal/logger"
)

// ErrInvalidConfig reports generation parameters rejected before any work is
// done.
var ErrInvalidConfig = errors.New("invalid generation config")

// Style selects the surface family.
type Style int

const (
	Asphalt Style = iota
	Cobblestone
	Slate
)

func (s Style) String() string {
	switch s {
	case Asphalt:
		return "asphalt"
	case Cobblestone:
		return "cobblestone"
	case Slate:
		return "slate"
	}
	return fmt.Sprintf("style(%d)", int(s))
}

// ParseStyle maps a style name to its Style value.
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "asphalt":
		return Asphalt, nil
	case "cobblestone":
		return Cobblestone, nil
	case "slate":
		return Slate, nil
	}
	return 0, fmt.Errorf("%w: unknown style %q", ErrInvalidConfig, name)
}

// Styles lists all surface families.
func Styles() []Style {
	return []Style{Asphalt, Cobblestone, Slate}
}

// Result is one generated ground tile with its provenance. Fewer defects than
// requested (Clamped) is reported data, not an error.
type Result struct {
	Style   Style
	Seed    int64
	Buffers *raster.Buffers

	DefectsRequested int
	DefectsActual    int
	Clamped          bool

	// Layout is set for stone styles, Network for asphalt.
	Layout  *stones.Layout
	Network *asphalt.Network

	Seams raster.SeamReport
}

// Generate produces one ground tile. The seed fully determines the output:
// identical cfg, style and seed yield byte-identical buffers.
func Generate(cfg config.Generation, style Style, seed int64) (*Result, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(seed))
	res := &Result{Style: style, Seed: seed}

	switch style {
	case Asphalt:
		b, n, err := asphalt.Generate(rng, asphaltParams(), cfg.Defects, cfg.Width, cfg.Height)
		if err != nil {
			return nil, fmt.Errorf("generate asphalt: %w", err)
		}
		res.Buffers = b
		res.Network = n
		res.DefectsRequested = n.DefectsRequested
		res.DefectsActual = n.DefectsActual
		res.Clamped = n.Clamped

	case Cobblestone, Slate:
		p := cobblestoneParams()
		if style == Slate {
			p = slateParams()
		}
		l, err := stones.Synthesize(rng, p, cfg.Defects)
		if err != nil {
			return nil, fmt.Errorf("synthesize %s layout: %w", style, err)
		}
		ss := cfg.Supersample
		if ss < 1 {
			ss = 1
		}
		big := renderStones(rng, l, cfg.Width*ss, cfg.Height*ss)
		res.Buffers = raster.Downsample(big, ss)
		res.Layout = l
		res.DefectsRequested = l.DefectsRequested
		res.DefectsActual = l.DefectsActual
		res.Clamped = l.Clamped

	default:
		return nil, fmt.Errorf("%w: unknown style %d", ErrInvalidConfig, int(style))
	}

	res.Seams = res.Buffers.SeamReport()
	if err := res.Buffers.VerifySeams(); err != nil {
		if cfg.StrictSeams {
			return nil, fmt.Errorf("%s tile: %w", style, err)
		}
		logger.Log.Error("seam check failed",
			zap.Stringer("style", style),
			zap.Int64("seed", seed),
			zap.Error(err))
	}
	if res.Clamped {
		logger.Log.Warn("defect count clamped",
			zap.Stringer("style", style),
			zap.Int("requested", res.DefectsRequested),
			zap.Int("actual", res.DefectsActual))
	}
	return res, nil
}

func validate(cfg config.Generation) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("%w: resolution %dx%d", ErrInvalidConfig, cfg.Width, cfg.Height)
	}
	if cfg.Width > 1<<14 || cfg.Height > 1<<14 {
		return fmt.Errorf("%w: resolution %dx%d too large", ErrInvalidConfig, cfg.Width, cfg.Height)
	}
	if cfg.Supersample < 0 || cfg.Supersample > 8 {
		return fmt.Errorf("%w: supersample factor %d", ErrInvalidConfig, cfg.Supersample)
	}
	if cfg.Defects < 0 {
		return fmt.Errorf("%w: negative defect count %d", ErrInvalidConfig, cfg.Defects)
	}
	return nil
}
