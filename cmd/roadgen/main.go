// roadgen generates batches of tileable road-surface ground-truth tiles:
// per tile a color texture, a height map and a binary defect mask, plus a
// metadata.csv describing the batch.
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/stereopair/roadgen/internal/config"
	"github.com/stereopair/roadgen/internal/ground"
	"github.com/stereopair/roadgen/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("batch failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

// record is one metadata.csv row.
type record struct {
	style     ground.Style
	index     int
	seed      int64
	name      string
	requested int
	actual    int
	clamped   bool
}

func run(cfg *config.Config) error {
	styles := make([]ground.Style, 0, len(cfg.Generation.Styles))
	for _, name := range cfg.Generation.Styles {
		s, err := ground.ParseStyle(name)
		if err != nil {
			return err
		}
		styles = append(styles, s)
	}
	if len(styles) == 0 {
		return fmt.Errorf("no styles selected")
	}
	count := cfg.Generation.Count
	if count < 1 {
		count = 1
	}

	baseSeed := cfg.Generation.Seed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
		logger.Info("derived base seed from clock", zap.Int64("seed", baseSeed))
	}
	cfg.Generation.Seed = baseSeed

	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	// Effective config goes next to the outputs so a batch can be redone.
	if err := cfg.SaveTo(filepath.Join(cfg.Output.Dir, "generation.yaml")); err != nil {
		return fmt.Errorf("save effective config: %w", err)
	}

	workers := cfg.Generation.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	logger.Info("starting batch",
		zap.Int("styles", len(styles)),
		zap.Int("count", count),
		zap.Int("workers", workers),
		zap.String("dir", cfg.Output.Dir))

	records := make([]record, len(styles)*count)
	var g errgroup.Group
	g.SetLimit(workers)
	start := time.Now()

	for si, style := range styles {
		for i := 0; i < count; i++ {
			style, i := style, i
			idx := si*count + i
			g.Go(func() error {
				rec, err := generateOne(cfg, style, i, baseSeed+int64(idx))
				if err != nil {
					return err
				}
				records[idx] = rec
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := writeMetadata(filepath.Join(cfg.Output.Dir, "metadata.csv"), records); err != nil {
		return err
	}
	logger.Info("batch complete",
		zap.Int("tiles", len(records)),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

func generateOne(cfg *config.Config, style ground.Style, index int, seed int64) (record, error) {
	r, err := ground.Generate(cfg.Generation, style, seed)
	if err != nil {
		return record{}, err
	}

	name := fmt.Sprintf("%s-%d", style, index)
	prefix := filepath.Join(cfg.Output.Dir, name)
	if err := r.WritePNGs(prefix, cfg.Output.HeightBits); err != nil {
		return record{}, err
	}
	if cfg.Output.SVG && r.Layout != nil {
		if err := writeSVG(prefix+"_layout.svg", r, cfg.Generation.Width); err != nil {
			return record{}, err
		}
	}

	logger.Info("tile generated",
		zap.Stringer("style", style),
		zap.Int("index", index),
		zap.Int64("seed", seed),
		zap.Int("defects", r.DefectsActual))
	return record{
		style:     style,
		index:     index,
		seed:      seed,
		name:      name,
		requested: r.DefectsRequested,
		actual:    r.DefectsActual,
		clamped:   r.Clamped,
	}, nil
}

func writeSVG(path string, r *ground.Result, pixels int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := ground.WriteLayoutSVG(f, r.Layout, pixels); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func writeMetadata(path string, records []record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"name", "style", "index", "seed", "defects_requested", "defects_actual", "clamped"}); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{
			rec.name,
			rec.style.String(),
			strconv.Itoa(rec.index),
			strconv.FormatInt(rec.seed, 10),
			strconv.Itoa(rec.requested),
			strconv.Itoa(rec.actual),
			strconv.FormatBool(rec.clamped),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
