package ground

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/stereopair/roadgen/internal/ground/stones"
	"github.com/stereopair/roadgen/pkg/geom"
)

// WriteLayoutSVG renders the vector stone layout for inspection: stones
// filled with their height gray, defect mask polygons outlined in red over a
// black mortar background.
func WriteLayoutSVG(w io.Writer, l *stones.Layout, pixels int) error {
	if l == nil {
		return fmt.Errorf("no layout to export")
	}
	if pixels <= 0 {
		return fmt.Errorf("invalid svg size %d", pixels)
	}
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(pixels, pixels)
	canvas.Rect(0, 0, pixels, pixels, "fill:#000")

	scale := float64(pixels) / l.Size
	for _, s := range l.Stones {
		if s.Defect || s.Shape == nil {
			continue
		}
		g := int((1 - s.Height) * 255)
		xs, ys := svgCoords(s.Shape, scale)
		canvas.Polygon(xs, ys, fmt.Sprintf("fill:#%02x%02x%02x", g, g, g))
	}
	for _, s := range l.Stones {
		if !s.Defect || s.DefectShape == nil {
			continue
		}
		xs, ys := svgCoords(s.DefectShape, scale)
		canvas.Polygon(xs, ys, "fill:none;stroke:#f00;stroke-width:2")
	}
	canvas.End()
	return ew.err
}

func svgCoords(p geom.Polygon, scale float64) (xs, ys []int) {
	xs = make([]int, len(p))
	ys = make([]int, len(p))
	for i, v := range p {
		xs[i] = int(v.X*scale + 0.5)
		ys[i] = int(v.Y*scale + 0.5)
	}
	return xs, ys
}

// errWriter keeps the first write error; svgo itself discards them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
