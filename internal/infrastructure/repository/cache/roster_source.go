package cache

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/riskibarqy/rosterview/internal/domain/player"
	basecache "github.com/riskibarqy/rosterview/internal/platform/cache"
)

// RosterSource caches raw upstream records. Shaping happens per request, so
// cached entries are independent of sort state.
type RosterSource struct {
	next   player.Source
	loader *basecache.Loader
}

func NewRosterSource(next player.Source, loader *basecache.Loader) *RosterSource {
	return &RosterSource{next: next, loader: loader}
}

var _ player.FreshnessSource = (*RosterSource)(nil)

func (s *RosterSource) WeekRosters(ctx context.Context, week int) ([]player.TeamRoster, error) {
	rosters, _, err := s.WeekRostersFresh(ctx, week)
	return rosters, err
}

// WeekRostersFresh reports fresh=true only to the caller whose load reached
// upstream. Cache hits and callers joining an in-flight load see false.
func (s *RosterSource) WeekRostersFresh(ctx context.Context, week int) ([]player.TeamRoster, bool, error) {
	fresh := false
	rosters, err := basecache.GetOrLoadJSON(ctx, s.loader, weekRostersKey(week), func(ctx context.Context) ([]player.TeamRoster, error) {
		loaded, err := s.next.WeekRosters(ctx, week)
		fresh = err == nil
		return loaded, err
	})
	return rosters, fresh && err == nil, err
}

func (s *RosterSource) TeamUtilization(ctx context.Context, week int, team string) ([]player.Record, error) {
	key := "utilization:week:" + strconv.Itoa(week) + ":" + keyPart(strings.ToLower(team))
	return basecache.GetOrLoadJSON(ctx, s.loader, key, func(ctx context.Context) ([]player.Record, error) {
		return s.next.TeamUtilization(ctx, week, team)
	})
}

func (s *RosterSource) FreeAgentPages(ctx context.Context, query player.FreeAgentQuery, start, pages int) ([]player.FreeAgentPage, error) {
	key := strings.Join([]string{
		"free-agents",
		"week", strconv.Itoa(query.Week),
		"team", keyPart(query.MyTeam),
		"opp", keyPart(query.Opponent),
		"start", strconv.Itoa(start),
		"pages", strconv.Itoa(pages),
	}, ":")
	return basecache.GetOrLoadJSON(ctx, s.loader, key, func(ctx context.Context) ([]player.FreeAgentPage, error) {
		return s.next.FreeAgentPages(ctx, query, start, pages)
	})
}

// InvalidateWeek drops every cached entry for week.
func (s *RosterSource) InvalidateWeek(ctx context.Context, week int) error {
	w := strconv.Itoa(week)
	for _, prefix := range []string{
		"rosters:week:" + w + ":",
		"utilization:week:" + w + ":",
		"free-agents:week:" + w + ":",
	} {
		if err := s.loader.Invalidate(ctx, prefix); err != nil {
			return err
		}
	}
	return nil
}

// keyPart escapes user-supplied names so they cannot contain the ':' separator.
func keyPart(raw string) string {
	return url.QueryEscape(strings.TrimSpace(raw))
}

func weekRostersKey(week int) string {
	return "rosters:week:" + strconv.Itoa(week) + ":all"
}
