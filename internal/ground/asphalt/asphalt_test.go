package asphalt

import (
	"bytes"
	"math/rand"
	"reflect"
	"testing"

	"github.com/aquilax/go-perlin"
)

func testParams() Params {
	return Params{
		Variant:      1,
		CrackLength:  0.8,
		CrackWidth:   0.08,
		BaseCracks:   2,
		InlayDensity: 0.002,
		NoiseAmount:  0.1,
	}
}

func TestGenerateNoDefectsKeepsMaskEmpty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	b, n, err := Generate(rng, testParams(), 0, 64, 64)
	if err != nil {
		t.Fatal(err)
	}
	if n.DefectsActual != 0 {
		t.Errorf("defects actual = %d, want 0", n.DefectsActual)
	}
	for i, v := range b.Defects.Pix {
		if v != 0 {
			t.Fatalf("defect mask set at pixel %d with zero defects requested", i)
		}
	}
	// Cosmetic cracks must still depress the height plane.
	depressed := false
	for y := 0; y < 64 && !depressed; y++ {
		for x := 0; x < 64; x++ {
			if b.Height.Gray16At(x, y).Y < 0xffff {
				depressed = true
				break
			}
		}
	}
	if !depressed {
		t.Error("no crack depression found in height plane")
	}
}

func TestGenerateDefectsMarkMask(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	b, n, err := Generate(rng, testParams(), 2, 64, 64)
	if err != nil {
		t.Fatal(err)
	}
	if n.DefectsActual != 2 || n.Clamped {
		t.Errorf("defects actual = %d clamped = %v", n.DefectsActual, n.Clamped)
	}
	marked := 0
	for _, v := range b.Defects.Pix {
		if v == 255 {
			marked++
		} else if v != 0 {
			t.Fatalf("defect mask value %d is not binary", v)
		}
	}
	if marked == 0 {
		t.Error("no defect pixels marked for 2 defect cracks")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, _, err := Generate(rand.New(rand.NewSource(7)), testParams(), 1, 48, 48)
	if err != nil {
		t.Fatal(err)
	}
	b, _, err := Generate(rand.New(rand.NewSource(7)), testParams(), 1, 48, 48)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Texture.Pix, b.Texture.Pix) {
		t.Error("texture differs between identically seeded runs")
	}
	if !bytes.Equal(a.Height.Pix, b.Height.Pix) {
		t.Error("height differs between identically seeded runs")
	}
	if !bytes.Equal(a.Defects.Pix, b.Defects.Pix) {
		t.Error("defect mask differs between identically seeded runs")
	}
}

// The crack network lives in normalized coordinates: doubling the resolution
// must not move a single branch point.
func TestNetworkResolutionIndependent(t *testing.T) {
	_, small, err := Generate(rand.New(rand.NewSource(5)), testParams(), 1, 32, 32)
	if err != nil {
		t.Fatal(err)
	}
	_, large, err := Generate(rand.New(rand.NewSource(5)), testParams(), 1, 64, 64)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(small, large) {
		t.Error("crack network changed with raster resolution")
	}
}

func TestGenerateSeamContinuity(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	b, _, err := Generate(rng, testParams(), 1, 64, 64)
	if err != nil {
		t.Fatal(err)
	}
	// The speckle base is stationary noise; the wrap columns must look
	// statistically like any interior column pair.
	if err := b.VerifySeams(); err != nil {
		t.Errorf("seam discontinuity: %v", err)
	}
}

func TestGrowNetworkClamp(t *testing.T) {
	n, err := GrowNetwork(rand.New(rand.NewSource(1)), testParams(), 1000)
	if err != nil {
		t.Fatal(err)
	}
	if !n.Clamped || n.DefectsActual != maxNetworkCracks {
		t.Errorf("actual = %d clamped = %v, want clamp to %d", n.DefectsActual, n.Clamped, maxNetworkCracks)
	}
	if n.DefectsRequested != 1000 {
		t.Errorf("requested = %d, want 1000", n.DefectsRequested)
	}
}

func TestGrowNetworkInvalidParams(t *testing.T) {
	p := testParams()
	p.CrackWidth = 0
	if _, err := GrowNetwork(rand.New(rand.NewSource(1)), p, 0); err == nil {
		t.Error("expected error for zero crack width")
	}
	if _, err := GrowNetwork(rand.New(rand.NewSource(1)), testParams(), -1); err == nil {
		t.Error("expected error for negative defects")
	}
}

func TestGrowNetworkBranches(t *testing.T) {
	n, err := GrowNetwork(rand.New(rand.NewSource(9)), testParams(), 0)
	if err != nil {
		t.Fatal(err)
	}
	// Two base cracks, each with one to five branches.
	if got := len(n.Cracks); got < 4 || got > 12 {
		t.Errorf("network has %d cracks, want 4..12 for two mains", got)
	}
	for i, c := range n.Cracks {
		if c.Defect {
			t.Errorf("crack %d marked defect with zero defects requested", i)
		}
		for _, s := range c.Steps {
			if s.Pos.X < 0 || s.Pos.X >= 1 || s.Pos.Y < 0 || s.Pos.Y >= 1 {
				t.Fatalf("crack %d step at %v escapes the unit tile", i, s.Pos)
			}
		}
	}
}

func TestPeriodicNoiseWraps(t *testing.T) {
	n := perlin.NewPerlin(2, 2, 3, 77)
	for y := 0; y < 64; y += 7 {
		a := periodicNoise(n, 0, y, 64, 64)
		b := periodicNoise(n, 64, y, 64, 64)
		if diff := a - b; diff > 1e-12 || diff < -1e-12 {
			t.Fatalf("noise not periodic at y=%d: %g vs %g", y, a, b)
		}
	}
}

func TestPaletteVariants(t *testing.T) {
	if got := palette(3); len(got) != 2 || got[0] != 0 || got[1] != 255 {
		t.Errorf("fallback palette = %v, want black and white", got)
	}
	p1, p2 := palette(1), palette(2)
	if p1[0] <= p2[0] {
		t.Errorf("worn palette starts at %d, darker than fresh palette %d", p1[0], p2[0])
	}
	if len(p2) <= len(p1) {
		t.Errorf("fresh palette has %d levels, want more than worn %d", len(p2), len(p1))
	}
}
