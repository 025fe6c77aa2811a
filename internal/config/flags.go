package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagOutput     = flag.String("o", "", "Output directory")
	flagStyles     = flag.String("g", "", "Comma-separated ground styles (asphalt,cobblestone,slate)")
	flagDefects    = flag.Int("d", -1, "Defects per tile")
	flagCount      = flag.Int("n", 0, "Tiles per style")
	flagResolution = flag.String("r", "", "Tile resolution as WxH, e.g. 1024x1024")
	flagSeed       = flag.Int64("seed", 0, "Base random seed (0 derives one from the clock)")
	flagWorkers    = flag.Int("workers", 0, "Parallel tile generations (0 = GOMAXPROCS)")
	flagSVG        = flag.Bool("svg", false, "Also write vector stone layouts")
	flagStrict     = flag.Bool("strict-seams", false, "Fail generation on seam discontinuities")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagOutput != "" {
		cfg.Output.Dir = *flagOutput
	}
	if *flagStyles != "" {
		cfg.Generation.Styles = strings.Split(*flagStyles, ",")
	}
	if *flagDefects >= 0 {
		cfg.Generation.Defects = *flagDefects
	}
	if *flagCount > 0 {
		cfg.Generation.Count = *flagCount
	}
	if *flagResolution != "" {
		w, h, err := parseResolution(*flagResolution)
		if err != nil {
			return err
		}
		cfg.Generation.Width = w
		cfg.Generation.Height = h
	}
	if *flagSeed != 0 {
		cfg.Generation.Seed = *flagSeed
	}
	if *flagWorkers > 0 {
		cfg.Generation.Workers = *flagWorkers
	}
	if *flagSVG {
		cfg.Output.SVG = true
	}
	if *flagStrict {
		cfg.Generation.StrictSeams = true
	}
	return nil
}

// parseResolution parses a "WxH" string into a width and height.
func parseResolution(s string) (w, h int, err error) {
	parts := strings.SplitN(strings.ToLower(s), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("resolution %q: want WxH", s)
	}
	w, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("resolution %q: %w", s, err)
	}
	h, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("resolution %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("resolution %q: dimensions must be positive", s)
	}
	return w, h, nil
}
