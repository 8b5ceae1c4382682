package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/rosterview/internal/domain/player"
)

type SnapshotRepository struct {
	mu     sync.RWMutex
	byWeek map[int][]player.TeamRoster
}

var _ player.SnapshotRepository = (*SnapshotRepository)(nil)

func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{byWeek: make(map[int][]player.TeamRoster)}
}

func (r *SnapshotRepository) SaveWeekRosters(_ context.Context, week int, rosters []player.TeamRoster) error {
	if len(rosters) == 0 {
		return nil
	}

	copied := cloneRosters(rosters)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byWeek[week] = copied
	return nil
}

func (r *SnapshotRepository) LoadWeekRosters(_ context.Context, week int) ([]player.TeamRoster, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rosters, ok := r.byWeek[week]
	if !ok {
		return nil, false, nil
	}
	return cloneRosters(rosters), true, nil
}

// cloneRosters copies down to the record slices. Records themselves are
// treated as immutable so their maps are shared.
func cloneRosters(rosters []player.TeamRoster) []player.TeamRoster {
	out := make([]player.TeamRoster, 0, len(rosters))
	for _, roster := range rosters {
		out = append(out, player.TeamRoster{
			Team:    roster.Team,
			Players: append([]player.Record(nil), roster.Players...),
		})
	}
	return out
}
