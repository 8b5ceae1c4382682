package rosterapi

import (
	"math"
	"testing"

	"github.com/riskibarqy/rosterview/internal/domain/player"
)

func TestNumberMap(t *testing.T) {
	if numberMap(nil) != nil {
		t.Fatalf("expected nil for absent object")
	}
	if numberMap("nope") != nil {
		t.Fatalf("expected nil for non-object value")
	}

	got := numberMap(map[string]any{
		"g":       0.4,
		"a":       "0.6",
		"team":    "TOR",
		"flag":    true,
		"bad":     "n/a",
		"inf":     math.Inf(1),
		"g_rank":  int64(4),
		"missing": nil,
	})
	if len(got) != 3 || got["a"] != 0.6 || got["g_rank"] != 4 {
		t.Fatalf("unexpected numeric map: %v", got)
	}
	if empty := numberMap(map[string]any{}); empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil map, got %v", empty)
	}
}

func TestNormalizeRecord_Availability(t *testing.T) {
	record, err := normalizeRecord(map[string]any{"name": "Waiver Wire", "status": "W"}, player.AvailabilityFA)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if record.Availability != player.AvailabilityWaivers {
		t.Fatalf("expected waivers, got %s", record.Availability)
	}

	record, err = normalizeRecord(map[string]any{"player_name": "Fallback", "availability": "owned", "games_this_week": -2}, player.AvailabilityFA)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if record.Name != "Fallback" || record.Availability != player.AvailabilityRostered || record.GamesThisWeek != 0 {
		t.Fatalf("unexpected record: %+v", record)
	}

	if _, err := normalizeRecord(map[string]any{"team": "TOR"}, player.AvailabilityFA); err == nil {
		t.Fatalf("expected nameless record to be rejected")
	}
}

func TestBuildURL_SortsQuery(t *testing.T) {
	got := buildURL("http://upstream", "/api/free-agents", map[string][]string{
		"week":    {"7"},
		"my_team": {"Team A"},
		"start":   {"0"},
	})
	want := "http://upstream/api/free-agents?my_team=Team+A&start=0&week=7"
	if got != want {
		t.Fatalf("unexpected url:\nwant: %s\ngot:  %s", want, got)
	}
}
