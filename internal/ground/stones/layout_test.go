package stones

import (
	"math/rand"
	"testing"
)

func testParams() Params {
	return Params{
		GridSize:    5,
		Distortion:  0.2,
		GapWidth:    0.08,
		CornerSize:  0.3,
		HeightRange: 0.5,
	}
}

func ownerDefects(l *Layout) map[int]bool {
	owners := map[int]bool{}
	for _, s := range l.Stones {
		if s.Defect {
			owners[s.Cell.Owner] = true
		}
	}
	return owners
}

func TestSynthesizeDefectCount(t *testing.T) {
	for _, want := range []int{0, 1, 3} {
		rng := rand.New(rand.NewSource(42))
		l, err := Synthesize(rng, testParams(), want)
		if err != nil {
			t.Fatalf("defects=%d: %v", want, err)
		}
		if l.DefectsActual != want || l.Clamped {
			t.Errorf("defects=%d: actual=%d clamped=%v", want, l.DefectsActual, l.Clamped)
		}
		if got := len(ownerDefects(l)); got != want {
			t.Errorf("defects=%d: %d distinct defect stones", want, got)
		}
	}
}

func TestSynthesizeDefectClamp(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	l, err := Synthesize(rng, testParams(), 1000)
	if err != nil {
		t.Fatal(err)
	}
	if !l.Clamped {
		t.Error("expected clamp flag for excessive defect request")
	}
	if l.DefectsActual != 25 {
		t.Errorf("clamped count = %d, want 25 (5x5 grid)", l.DefectsActual)
	}
	if l.DefectsRequested != 1000 {
		t.Errorf("requested count = %d, want 1000", l.DefectsRequested)
	}
}

func TestSynthesizeDeterministic(t *testing.T) {
	a, err := Synthesize(rand.New(rand.NewSource(11)), testParams(), 3)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Synthesize(rand.New(rand.NewSource(11)), testParams(), 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(a.Stones) != len(b.Stones) {
		t.Fatalf("stone count differs: %d vs %d", len(a.Stones), len(b.Stones))
	}
	for i := range a.Stones {
		sa, sb := a.Stones[i], b.Stones[i]
		if sa.Height != sb.Height || sa.Shade != sb.Shade || sa.Defect != sb.Defect {
			t.Fatalf("stone %d attributes differ between runs", i)
		}
		if len(sa.Shape) != len(sb.Shape) {
			t.Fatalf("stone %d shape differs between runs", i)
		}
	}
}

// Wrapped mirror copies must carry the same attributes and congruent shapes
// as their primary stone.
func TestSynthesizeMirrorsConsistent(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	l, err := Synthesize(rng, testParams(), 4)
	if err != nil {
		t.Fatal(err)
	}
	primaries := map[int]Stone{}
	for _, s := range l.Stones {
		if s.Cell.Primary() {
			primaries[s.Cell.Owner] = s
		}
	}
	mirrors := 0
	for _, s := range l.Stones {
		if s.Cell.Primary() {
			continue
		}
		p, ok := primaries[s.Cell.Owner]
		if !ok {
			continue
		}
		if s.Defect != p.Defect || s.Height != p.Height || s.Shade != p.Shade {
			t.Errorf("owner %d: mirror attributes diverge", s.Cell.Owner)
		}
		if len(s.Shape) != len(p.Shape) {
			t.Errorf("owner %d: mirror shape has %d vertices, primary %d",
				s.Cell.Owner, len(s.Shape), len(p.Shape))
			continue
		}
		for i := range s.Shape {
			want := p.Shape[i].Add(s.Cell.Offset)
			if s.Shape[i].Distance(want) > 1e-9 {
				t.Errorf("owner %d vertex %d: mirror not congruent", s.Cell.Owner, i)
				break
			}
		}
		mirrors++
	}
	if mirrors == 0 {
		t.Error("no mirror stones found")
	}
}

func TestSynthesizeShapesInset(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	l, err := Synthesize(rng, testParams(), 0)
	if err != nil {
		t.Fatal(err)
	}
	shaped := 0
	for _, s := range l.Stones {
		if s.Shape == nil {
			continue
		}
		shaped++
		if s.Shape.AbsArea() >= s.Cell.Polygon.AbsArea() {
			t.Error("stone shape not smaller than its cell")
		}
		if s.Shape.SelfIntersects() {
			t.Error("stone shape self-intersects")
		}
	}
	if shaped == 0 {
		t.Fatal("no stone shapes survived offsetting")
	}
}

func TestSynthesizeJitterValidation(t *testing.T) {
	p := testParams()
	p.CornerJitter = 0.05
	rng := rand.New(rand.NewSource(9))
	l, err := Synthesize(rng, p, 0)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range l.Stones {
		if s.Shape != nil && s.Shape.SelfIntersects() {
			t.Fatal("jittered shape self-intersects; validation failed")
		}
	}
}

func TestSynthesizeInvalidParams(t *testing.T) {
	if _, err := Synthesize(rand.New(rand.NewSource(1)), Params{GridSize: 1}, 0); err == nil {
		t.Error("expected error for tiny grid")
	}
	if _, err := Synthesize(rand.New(rand.NewSource(1)), testParams(), -1); err == nil {
		t.Error("expected error for negative defects")
	}
}
