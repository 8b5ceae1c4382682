// Package backtoback flags start days that fall on consecutive days of a Monday-first week.
package backtoback

import "strings"

// Week is the canonical day order. Sun and Mon are not adjacent.
var Week = [...]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

var dayIndex = func() map[string]int {
	out := make(map[string]int, len(Week))
	for i, day := range Week {
		out[day] = i
	}
	return out
}()

type DayMark struct {
	Day        string
	Emphasized bool
}

// Mark emphasizes each day whose canonical neighbour is also present. The
// result has the same length and order as days.
func Mark(days []string) []DayMark {
	out := make([]DayMark, len(days))
	for i, day := range days {
		out[i] = DayMark{Day: day}
	}
	if len(days) < 2 {
		return out
	}

	var present [len(Week)]bool
	for _, day := range days {
		if idx, ok := dayIndex[day]; ok {
			present[idx] = true
		}
	}

	for i, day := range days {
		idx, ok := dayIndex[day]
		if !ok {
			continue
		}
		before := idx > 0 && present[idx-1]
		after := idx < len(Week)-1 && present[idx+1]
		out[i].Emphasized = before || after
	}
	return out
}

// ParseDays splits the upstream "Mon, Tue" form, dropping blanks.
func ParseDays(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		day := strings.TrimSpace(part)
		if day == "" {
			continue
		}
		out = append(out, day)
	}
	return out
}
