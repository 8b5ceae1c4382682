package player

import "context"

// FreeAgentQuery identifies a free-agent listing for a matchup week.
type FreeAgentQuery struct {
	Week     int
	MyTeam   string
	Opponent string
}

// FreeAgentPageSize is the upstream paginator's page length. Offsets step by
// it and a page shorter than it is the last one.
const FreeAgentPageSize = 20

// FreeAgentPage is one upstream page of free agents starting at Start.
type FreeAgentPage struct {
	Start           int
	Players         []Record
	CategoryWeights map[string]float64
}

// Source describes the remote roster API needs from use cases.
type Source interface {
	WeekRosters(ctx context.Context, week int) ([]TeamRoster, error)
	TeamUtilization(ctx context.Context, week int, team string) ([]Record, error)
	FreeAgentPages(ctx context.Context, query FreeAgentQuery, start, pages int) ([]FreeAgentPage, error)
}

// FreshnessSource is implemented by sources that may answer WeekRosters from
// a cache. fresh is true only when the rosters were fetched from upstream by
// this call.
type FreshnessSource interface {
	WeekRostersFresh(ctx context.Context, week int) (rosters []TeamRoster, fresh bool, err error)
}

// SnapshotRepository keeps the last successfully fetched week rosters.
type SnapshotRepository interface {
	SaveWeekRosters(ctx context.Context, week int, rosters []TeamRoster) error
	LoadWeekRosters(ctx context.Context, week int) ([]TeamRoster, bool, error)
}
