// groundpreview renders one ground tile repeated 2x2 into a single PNG, for
// visual inspection of the wrap seams.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"

	"github.com/stereopair/roadgen/internal/config"
	"github.com/stereopair/roadgen/internal/ground"
)

var (
	flagStyle   = flag.String("g", "cobblestone", "Ground style (asphalt, cobblestone, slate)")
	flagSize    = flag.Int("size", 512, "Tile edge length in pixels")
	flagSeed    = flag.Int64("seed", 42, "Random seed")
	flagDefects = flag.Int("d", 0, "Defects per tile")
	flagOut     = flag.String("o", "preview.png", "Output PNG path")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	style, err := ground.ParseStyle(*flagStyle)
	if err != nil {
		return err
	}
	gen := config.Default().Generation
	gen.Width = *flagSize
	gen.Height = *flagSize
	gen.Defects = *flagDefects

	r, err := ground.Generate(gen, style, *flagSeed)
	if err != nil {
		return err
	}

	w, h := r.Buffers.Size()
	sheet := image.NewRGBA(image.Rect(0, 0, 2*w, 2*h))
	for ty := 0; ty < 2; ty++ {
		for tx := 0; tx < 2; tx++ {
			at := image.Rect(tx*w, ty*h, (tx+1)*w, (ty+1)*h)
			draw.Draw(sheet, at, r.Buffers.Texture, image.Point{}, draw.Src)
		}
	}

	f, err := os.Create(*flagOut)
	if err != nil {
		return fmt.Errorf("create %s: %w", *flagOut, err)
	}
	if err := png.Encode(f, sheet); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", *flagOut, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%dx%d, %s, seed %d)\n", *flagOut, 2*w, 2*h, style, *flagSeed)
	return nil
}
