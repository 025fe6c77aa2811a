// Package config handles generator configuration loading and management.
package config

// Config holds all generator settings.
type Config struct {
	Generation Generation    `yaml:"generation"`
	Output     OutputConfig  `yaml:"output"`
	Logging    LoggingConfig `yaml:"logging"`
}

// Generation holds the per-tile generation parameters.
type Generation struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// Defects is the number of defects per tile: missing stones for the
	// stone styles, defect cracks for asphalt.
	Defects int `yaml:"defects"`
	// Supersample is the anti-aliasing factor for the stone rasterizer.
	Supersample int `yaml:"supersample"`
	// StrictSeams turns the wrap-boundary continuity check from a logged
	// warning into a generation error.
	StrictSeams bool `yaml:"strict_seams"`
	// Seed is the base random seed; tile i of a batch uses Seed+i. Zero
	// derives a seed from the clock at startup.
	Seed int64 `yaml:"seed"`
	// Count is the number of tiles generated per style.
	Count int `yaml:"count"`
	// Styles lists the surface families to generate.
	Styles []string `yaml:"styles"`
	// Workers bounds parallel tile generation; zero means GOMAXPROCS.
	Workers int `yaml:"workers"`
}

// OutputConfig holds output locations and formats.
type OutputConfig struct {
	Dir string `yaml:"dir"`
	// SVG additionally writes the vector stone layout per tile.
	SVG bool `yaml:"svg"`
	// HeightBits selects 8 or 16 bit grayscale height PNGs.
	HeightBits int `yaml:"height_bits"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Generation: Generation{
			Width:       1024,
			Height:      1024,
			Defects:     0,
			Supersample: 4,
			StrictSeams: false,
			Seed:        0,
			Count:       1,
			Styles:      []string{"asphalt", "cobblestone", "slate"},
			Workers:     0,
		},
		Output: OutputConfig{
			Dir:        "output/road_textures",
			SVG:        false,
			HeightBits: 16,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
