package heatmap

import (
	"math"
	"testing"
)

func TestRankToColor_Boundaries(t *testing.T) {
	best, ok := RankToColor(1)
	if !ok || best.Hue != 120 {
		t.Fatalf("unexpected rank 1 color: %+v ok=%t", best, ok)
	}
	worst, ok := RankToColor(20)
	if !ok || worst.Hue != 0 {
		t.Fatalf("unexpected rank 20 color: %+v ok=%t", worst, ok)
	}

	for _, rank := range []int{0, 21, -3} {
		if _, ok := RankToColor(rank); ok {
			t.Fatalf("expected no color for rank %d", rank)
		}
	}
	if _, ok := FromOptional(nil); ok {
		t.Fatalf("expected no color for absent rank")
	}
}

func TestRankToColor_LinearAndMonotonic(t *testing.T) {
	step := 120.0 / 19.0
	prev := math.Inf(1)
	for rank := MinRank; rank <= MaxRank; rank++ {
		color, ok := RankToColor(rank)
		if !ok {
			t.Fatalf("expected color for rank %d", rank)
		}
		want := 120 - float64(rank-1)*step
		if math.Abs(color.Hue-want) > 1e-9 {
			t.Fatalf("rank %d: hue=%v want=%v", rank, color.Hue, want)
		}
		if color.Hue >= prev {
			t.Fatalf("hue not strictly decreasing at rank %d", rank)
		}
		prev = color.Hue
	}
}

func TestColor_Render(t *testing.T) {
	color, _ := RankToColor(1)
	if got := color.Background(); got != "hsl(120, 70%, 85%)" {
		t.Fatalf("unexpected background: %q", got)
	}
	if got := color.Foreground(); got != "#333" {
		t.Fatalf("unexpected foreground: %q", got)
	}

	rank := 20
	color, ok := FromOptional(&rank)
	if !ok || color.Background() != "hsl(0, 70%, 85%)" {
		t.Fatalf("unexpected rank 20 background: %q", color.Background())
	}
}

func TestLegend(t *testing.T) {
	legend := Legend()
	if len(legend) != 20 {
		t.Fatalf("expected 20 legend entries, got %d", len(legend))
	}
	if legend[0].Hue != 120 || legend[19].Hue != 0 {
		t.Fatalf("unexpected legend bounds: first=%v last=%v", legend[0].Hue, legend[19].Hue)
	}
}
