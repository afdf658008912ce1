package distfield

import (
	"context"
	"math"
	"testing"

	"github.com/matzehuels/shapewordle/pkg/errors"
	"github.com/matzehuels/shapewordle/pkg/wordle"
)

func TestSmoothUniformIsStable(t *testing.T) {
	g := wordle.NewGrid(20, 15, -3)
	for range 3 {
		Smooth(g)
	}
	for x := 0; x < g.W; x++ {
		for y := 0; y < g.H; y++ {
			if got := g.At(x, y); math.Abs(got+3) > 1e-12 {
				t.Fatalf("At(%d, %d) = %v, want -3", x, y, got)
			}
		}
	}
}

func TestSmoothLeavesBorder(t *testing.T) {
	g := wordle.NewGrid(5, 5, 1)
	g.Set(0, 0, 9)
	g.Set(2, 2, -15)
	Smooth(g)

	if got := g.At(0, 0); got != 9 {
		t.Errorf("border At(0, 0) = %v, want 9", got)
	}
	if got := g.At(2, 2); got >= 0 {
		t.Errorf("center At(2, 2) = %v, want negative", got)
	}
}

func TestExtremesStrictMinimum(t *testing.T) {
	g := wordle.NewGrid(12, 12, 1)
	g.Set(4, 4, -2)
	g.Set(8, 8, -5)
	// A plateau is not a strict minimum.
	g.Set(4, 8, -1)
	g.Set(5, 8, -1)

	points, minD, center := Extremes(g, 0)
	if minD != -5 {
		t.Errorf("minD = %v, want -5", minD)
	}
	if center.X != 8 || center.Y != 8 || center.Value != 5 {
		t.Errorf("center = %+v, want (8,8) value 5", center)
	}
	if len(points) != 2 {
		t.Fatalf("len(points) = %d, want 2", len(points))
	}
	for _, p := range points {
		if p.Value <= 0 {
			t.Errorf("point %+v should carry an absolute value", p)
		}
	}
}

func TestFindAnchorsFoldsNearCenter(t *testing.T) {
	g := wordle.NewGrid(300, 100, 1)
	g.Set(50, 50, -10)  // global minimum
	g.Set(60, 50, -5)   // within 100: folded into the minimum
	g.Set(70, 50, -4)   // within 100: dropped, previous already at center
	g.Set(250, 50, -3)  // far away: kept

	anchors := FindAnchors(g, 0)
	if len(anchors) != 2 {
		t.Fatalf("len(anchors) = %d, want 2: %+v", len(anchors), anchors)
	}
	if anchors[0].X != 50 || anchors[0].Y != 50 || anchors[0].Value != 10 {
		t.Errorf("anchors[0] = %+v, want center (50,50) value 10", anchors[0])
	}
	if anchors[1].X != 250 || anchors[1].Value != 3 {
		t.Errorf("anchors[1] = %+v, want (250,50) value 3", anchors[1])
	}
}

func TestFindAnchorsAppendsUnconsumedCenter(t *testing.T) {
	g := wordle.NewGrid(300, 100, 1)
	g.Set(50, 50, -10)
	g.Set(250, 50, -3)

	anchors := FindAnchors(g, 0)
	if len(anchors) != 2 {
		t.Fatalf("len(anchors) = %d, want 2: %+v", len(anchors), anchors)
	}
	last := anchors[len(anchors)-1]
	if last.X != 50 || last.Y != 50 || last.Value != 10 {
		t.Errorf("last anchor = %+v, want appended center (50,50)", last)
	}
}

func TestMergeAnchorsKeepsStronger(t *testing.T) {
	regions := []wordle.Region{
		{ID: 0, Anchors: []wordle.AnchorPoint{{X: 10, Y: 10, Value: 5, RegionID: 0}}},
		{ID: 1, Anchors: []wordle.AnchorPoint{
			{X: 40, Y: 10, Value: 8, RegionID: 1},
			{X: 200, Y: 10, Value: 2, RegionID: 1},
		}},
	}

	merged := MergeAnchors(regions)
	if len(merged) != 2 {
		t.Fatalf("len(merged) = %d, want 2: %+v", len(merged), merged)
	}
	if merged[0].RegionID != 1 || merged[0].Value != 8 {
		t.Errorf("merged[0] = %+v, want the stronger region 1 anchor", merged[0])
	}

	AssignRatios(regions, merged)
	if len(regions[0].Anchors) != 1 || regions[0].Anchors[0].Value != 5 {
		t.Errorf("region 0 anchors = %+v, want its own anchor restored", regions[0].Anchors)
	}
	if regions[0].Anchors[0].Ratio != 1 {
		t.Errorf("region 0 ratio = %v, want 1", regions[0].Anchors[0].Ratio)
	}
}

func TestAssignRatios(t *testing.T) {
	regions := []wordle.Region{{ID: 0}}
	merged := []wordle.AnchorPoint{
		{X: 0, Y: 0, Value: 3, RegionID: 0},
		{X: 100, Y: 0, Value: 4, RegionID: 0},
	}
	AssignRatios(regions, merged)

	a := regions[0].Anchors
	if len(a) != 2 {
		t.Fatalf("len(anchors) = %d, want 2", len(a))
	}
	if a[0].Value != 4 || a[1].Value != 3 {
		t.Errorf("anchors not sorted descending: %+v", a)
	}
	if math.Abs(a[0].Ratio-16.0/25) > 1e-12 || math.Abs(a[1].Ratio-9.0/25) > 1e-12 {
		t.Errorf("ratios = %v, %v, want 0.64, 0.36", a[0].Ratio, a[1].Ratio)
	}
}

// disk returns samples of a signed distance disk: negative inside.
func disk(cx, cy, r int) []Sample {
	var s []Sample
	for x := cx - r; x <= cx+r; x++ {
		for y := cy - r; y <= cy+r; y++ {
			d := math.Hypot(float64(x-cx), float64(y-cy))
			if d <= float64(r) {
				s = append(s, Sample{X: x, Y: y, Value: d - float64(r)})
			}
		}
	}
	return s
}

func TestProcessSingleDisk(t *testing.T) {
	f := Field{
		Boundaries: [][]wordle.Point{{{X: 60, Y: 100}}},
		Samples:    [][]Sample{disk(100, 100, 40)},
	}

	regions, err := Process(context.Background(), f, 300, 200)
	if err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	if len(regions) != 1 {
		t.Fatalf("len(regions) = %d, want 1", len(regions))
	}

	r := regions[0]
	if len(r.Anchors) == 0 {
		t.Fatal("region should have at least one anchor")
	}
	top := r.Anchors[0]
	if math.Abs(float64(top.X-100)) > 2 || math.Abs(float64(top.Y-100)) > 2 {
		t.Errorf("peak anchor at (%d, %d), want near (100, 100)", top.X, top.Y)
	}
	sum := 0.0
	for _, a := range r.Anchors {
		sum += a.Ratio
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("anchor ratios sum to %v, want 1", sum)
	}
}

func TestProcessErrors(t *testing.T) {
	tests := []struct {
		name string
		f    Field
		code errors.Code
	}{
		{
			name: "sample outside canvas",
			f: Field{
				Boundaries: [][]wordle.Point{{}},
				Samples:    [][]Sample{{{X: 500, Y: 5, Value: -1}}},
			},
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "missing boundary",
			f: Field{
				Boundaries: [][]wordle.Point{{}},
				Samples:    [][]Sample{{}, {}},
			},
			code: errors.ErrCodeInvalidRegion,
		},
		{
			name: "no regions",
			f:    Field{},
			code: errors.ErrCodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Process(context.Background(), tt.f, 100, 100)
			if !errors.Is(err, tt.code) {
				t.Errorf("Process() error = %v, want code %v", err, tt.code)
			}
		})
	}
}
