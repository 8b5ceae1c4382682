package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/rosterview/internal/domain/player"
	playermock "github.com/riskibarqy/rosterview/internal/mocks/domain/player"
	basecache "github.com/riskibarqy/rosterview/internal/platform/cache"
	"github.com/stretchr/testify/mock"
)

func newTestSource(t *testing.T) (*RosterSource, *playermock.Source, *basecache.Store) {
	t.Helper()
	next := playermock.NewSource(t)
	store := basecache.NewStore(time.Minute)
	return NewRosterSource(next, basecache.NewLoader(store, nil)), next, store
}

func TestRosterSource_WeekRostersLoadsOnce(t *testing.T) {
	t.Parallel()

	source, next, _ := newTestSource(t)
	rosters := []player.TeamRoster{{
		Team: "Team A",
		Players: []player.Record{{
			Name:               "Aho",
			Positions:          player.NewPositions("C", "LW"),
			Availability:       player.AvailabilityRostered,
			WeeklyProjections:  map[string]float64{"pts": 4.2},
			PerGameProjections: map[string]float64{"g_cat_rank": 3},
		}},
	}}
	next.On("WeekRosters", mock.Anything, 7).Return(rosters, nil).Once()

	for i := 0; i < 3; i++ {
		got, err := source.WeekRosters(context.Background(), 7)
		if err != nil {
			t.Fatalf("week rosters: %v", err)
		}
		if len(got) != 1 || len(got[0].Players) != 1 {
			t.Fatalf("unexpected rosters: %+v", got)
		}
		aho := got[0].Players[0]
		if aho.Positions.String() != "C, LW" || aho.WeeklyProjections["pts"] != 4.2 {
			t.Fatalf("unexpected cached record: %+v", aho)
		}
		if rank, ok := aho.CategoryRank(player.StatGoals); !ok || rank != 3 {
			t.Fatalf("unexpected cached rank: %d %v", rank, ok)
		}
	}
}

func TestRosterSource_ErrorsPassThrough(t *testing.T) {
	t.Parallel()

	source, next, store := newTestSource(t)
	upstreamErr := errors.New("upstream down")
	next.On("TeamUtilization", mock.Anything, 2, "Team A").Return(nil, upstreamErr).Once()

	_, err := source.TeamUtilization(context.Background(), 2, "Team A")
	if !errors.Is(err, upstreamErr) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("errors must not be cached")
	}
}

func TestRosterSource_InvalidateWeek(t *testing.T) {
	t.Parallel()

	source, next, store := newTestSource(t)
	query := player.FreeAgentQuery{Week: 4, MyTeam: "Team A", Opponent: "Team B"}
	next.On("FreeAgentPages", mock.Anything, query, 0, 1).
		Return([]player.FreeAgentPage{{Start: 0, Players: []player.Record{{Name: "FA"}}}}, nil).
		Twice()
	next.On("WeekRosters", mock.Anything, 5).Return([]player.TeamRoster{{Team: "Team A"}}, nil).Once()

	if _, err := source.FreeAgentPages(context.Background(), query, 0, 1); err != nil {
		t.Fatalf("free agents: %v", err)
	}
	if _, err := source.WeekRosters(context.Background(), 5); err != nil {
		t.Fatalf("week rosters: %v", err)
	}
	if err := source.InvalidateWeek(context.Background(), 4); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("only week 5 should remain cached, got %d entries", store.Len())
	}
	if _, err := source.FreeAgentPages(context.Background(), query, 0, 1); err != nil {
		t.Fatalf("free agents after invalidate: %v", err)
	}
}

func TestRosterSource_WeekRostersFreshOnlyOnUpstreamLoad(t *testing.T) {
	t.Parallel()

	source, next, _ := newTestSource(t)
	next.On("WeekRosters", mock.Anything, 3).Return([]player.TeamRoster{{Team: "Team A"}}, nil).Once()

	_, fresh, err := source.WeekRostersFresh(context.Background(), 3)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	if !fresh {
		t.Fatalf("first load should reach upstream")
	}

	got, fresh, err := source.WeekRostersFresh(context.Background(), 3)
	if err != nil {
		t.Fatalf("cached load: %v", err)
	}
	if fresh {
		t.Fatalf("cache hit must not be reported as fresh")
	}
	if len(got) != 1 || got[0].Team != "Team A" {
		t.Fatalf("unexpected cached rosters: %+v", got)
	}
}

func TestRosterSource_FreeAgentKeysEscapeTeamNames(t *testing.T) {
	t.Parallel()

	source, next, store := newTestSource(t)
	first := player.FreeAgentQuery{Week: 4, MyTeam: "a:opp:b", Opponent: "c"}
	second := player.FreeAgentQuery{Week: 4, MyTeam: "a", Opponent: "b:opp:c"}
	next.On("FreeAgentPages", mock.Anything, first, 0, 1).
		Return([]player.FreeAgentPage{{Players: []player.Record{{Name: "First"}}}}, nil).
		Once()
	next.On("FreeAgentPages", mock.Anything, second, 0, 1).
		Return([]player.FreeAgentPage{{Players: []player.Record{{Name: "Second"}}}}, nil).
		Once()

	if _, err := source.FreeAgentPages(context.Background(), first, 0, 1); err != nil {
		t.Fatalf("first query: %v", err)
	}
	got, err := source.FreeAgentPages(context.Background(), second, 0, 1)
	if err != nil {
		t.Fatalf("second query: %v", err)
	}
	if len(got) != 1 || got[0].Players[0].Name != "Second" {
		t.Fatalf("second query served another matchup's entry: %+v", got)
	}
	if store.Len() != 2 {
		t.Fatalf("expected two distinct cache entries, got %d", store.Len())
	}
}
