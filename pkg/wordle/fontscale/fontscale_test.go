package fontscale

import (
	"math"
	"testing"

	"github.com/matzehuels/shapewordle/pkg/glyph"
	"github.com/matzehuels/shapewordle/pkg/wordle"
)

func words(n int, weight float64) wordle.Words {
	ws := make(wordle.Words, n)
	for i := range ws {
		ws[i] = wordle.Word{Name: "abcd", Weight: weight, RegionID: 0}
	}
	return ws
}

func TestSize(t *testing.T) {
	tests := []struct {
		weight float64
		want   float64
	}{
		{0, 2},
		{0.25, 51},
		{1, 100},
	}
	for _, tt := range tests {
		if got := Size(tt.weight, 100, 2); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Size(%v) = %v, want %v", tt.weight, got, tt.want)
		}
	}
}

func TestFillRatios(t *testing.T) {
	regions := []wordle.Region{{ID: 0, Area: 1000}, {ID: 1, Area: 500}}
	ws := words(1, 1)
	ws = append(ws, wordle.Word{Name: "skip", Weight: 1, RegionID: wordle.Unassigned})

	ratios, err := FillRatios(regions, ws, 10, 2, glyph.NewMonoProvider())
	if err != nil {
		t.Fatalf("FillRatios() error: %v", err)
	}
	// (10+1) * (0.6*10*4 + 4) / 1000
	if math.Abs(ratios[0]-0.308) > 1e-9 {
		t.Errorf("ratios[0] = %v, want 0.308", ratios[0])
	}
	if ratios[1] != 0 {
		t.Errorf("ratios[1] = %v, want 0 for an empty region", ratios[1])
	}
}

func TestSolveMonotoneInWordCount(t *testing.T) {
	p := glyph.NewMonoProvider()
	regions := []wordle.Region{{ID: 0, Area: 100_000}}

	prev := math.MaxInt
	for _, n := range []int{2, 5, 10, 20, 40} {
		got, err := Solve(regions, words(n, 0.5), 100, 2, p)
		if err != nil {
			t.Fatalf("Solve() error: %v", err)
		}
		if got > prev {
			t.Errorf("Solve() with %d words = %d, larger than %d with fewer words", n, got, prev)
		}
		if got > 2 {
			ratios, _ := FillRatios(regions, words(n, 0.5), got, 2, p)
			if ratios[0] > 0.65 {
				t.Errorf("Solve() with %d words = %d leaves ratio %v above 0.65", n, got, ratios[0])
			}
		}
		prev = got
	}
}

func TestSolveFallsBackToMinFont(t *testing.T) {
	regions := []wordle.Region{{ID: 0, Area: 1}}
	got, err := Solve(regions, words(3, 1), 100, 4, glyph.NewMonoProvider())
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if got != 4 {
		t.Errorf("Solve() = %d, want min font 4", got)
	}
}

func TestSolveMaxMatch(t *testing.T) {
	p := glyph.NewMonoProvider()

	tests := []struct {
		name string
		area int
		want int
	}{
		// Ratios stay far below the band, so growth stops at 4×10.
		{"clamped growth", 1_000_000, 40},
		// 10 gives 0.733 and 11 gives 0.869: the walk oscillates and the
		// largest size not above 0.80 wins.
		{"oscillation", 420, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			regions := []wordle.Region{{ID: 0, Area: tt.area}}
			got, err := SolveMaxMatch(regions, words(1, 1), 10, 2, p)
			if err != nil {
				t.Fatalf("SolveMaxMatch() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("SolveMaxMatch() = %d, want %d", got, tt.want)
			}
		})
	}
}
