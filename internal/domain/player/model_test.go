package player

import "testing"

func TestParsePositions(t *testing.T) {
	got := ParsePositions(" c, LW ,,C, g ")
	if len(got) != 3 {
		t.Fatalf("expected 3 positions, got %v", got)
	}
	if got.String() != "C, LW, G" {
		t.Fatalf("unexpected display form: %q", got.String())
	}
	if !got.IsGoalie() {
		t.Fatalf("expected goalie tag to be detected")
	}
	if ParsePositions("").String() != "" {
		t.Fatalf("expected empty positions for blank input")
	}
}

func TestParseAvailability(t *testing.T) {
	tests := map[string]Availability{
		"FA":         AvailabilityFA,
		"free_agent": AvailabilityFA,
		"W":          AvailabilityWaivers,
		"Rostered":   AvailabilityRostered,
	}
	for raw, want := range tests {
		got, err := ParseAvailability(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got != want {
			t.Fatalf("parse %q: got=%s want=%s", raw, got, want)
		}
	}

	if _, err := ParseAvailability("traded"); err == nil {
		t.Fatalf("expected error for unknown availability")
	}
}

func TestRecord_CategoryRank(t *testing.T) {
	r := Record{Name: "x"}
	if _, ok := r.CategoryRank(StatGoals); ok {
		t.Fatalf("expected no rank for absent per-game projections")
	}

	r.PerGameProjections = map[string]float64{"g_cat_rank": 4, "g": 0.41}
	rank, ok := r.CategoryRank(StatGoals)
	if !ok || rank != 4 {
		t.Fatalf("unexpected rank: rank=%d ok=%t", rank, ok)
	}
}

func TestRecord_RoleStats(t *testing.T) {
	goalie := Record{Positions: NewPositions("G")}
	if got := goalie.RoleStats(); len(got) != len(GoalieStats) || got[0] != StatWins {
		t.Fatalf("unexpected goalie stats: %v", got)
	}
	skater := Record{Positions: NewPositions("C", "RW")}
	if got := skater.RoleStats(); len(got) != len(SkaterStats) || got[0] != StatGoals {
		t.Fatalf("unexpected skater stats: %v", got)
	}
}
