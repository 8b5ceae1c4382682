// Package heatmap colors 1..20 category ranks on a green-to-red gradient.
package heatmap

import (
	"fmt"
	"strconv"
)

const (
	MinRank = 1
	MaxRank = 20

	maxHue     = 120.0
	Saturation = 70
	Lightness  = 85
	Foreground = "#333"
)

// Color is a pastel HSL background paired with a fixed dark foreground.
type Color struct {
	Hue float64
}

// RankToColor maps rank 1 to hue 120 and rank 20 to hue 0. Ranks outside
// 1..20 have no color.
func RankToColor(rank int) (Color, bool) {
	if rank < MinRank || rank > MaxRank {
		return Color{}, false
	}
	hue := maxHue - float64(rank-MinRank)*maxHue/float64(MaxRank-MinRank)
	if hue < 0 {
		hue = 0
	}
	return Color{Hue: hue}, true
}

// FromOptional is RankToColor for a rank that may be absent.
func FromOptional(rank *int) (Color, bool) {
	if rank == nil {
		return Color{}, false
	}
	return RankToColor(*rank)
}

func (c Color) Background() string {
	return fmt.Sprintf("hsl(%s, %d%%, %d%%)", strconv.FormatFloat(c.Hue, 'f', -1, 64), Saturation, Lightness)
}

func (c Color) Foreground() string {
	return Foreground
}

// Legend returns one color per rank, best first.
func Legend() []Color {
	out := make([]Color, 0, MaxRank-MinRank+1)
	for rank := MinRank; rank <= MaxRank; rank++ {
		color, _ := RankToColor(rank)
		out = append(out, color)
	}
	return out
}
