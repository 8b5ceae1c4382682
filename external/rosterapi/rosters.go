package rosterapi

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/rosterview/internal/domain/player"
	"github.com/riskibarqy/rosterview/internal/usecase"
)

var _ player.Source = (*Client)(nil)

type freeAgentsEnvelope struct {
	FreeAgents []map[string]any `json:"free_agents"`
	Context    struct {
		CategoryWeights map[string]any `json:"category_weights"`
	} `json:"context"`
}

type utilizationEnvelope struct {
	RosterUtilization []map[string]any `json:"roster_utilization"`
	OpenSlots         map[string]any   `json:"open_slots"`
}

// WeekRosters returns every fantasy team's roster for the week, ordered by team name.
func (c *Client) WeekRosters(ctx context.Context, week int) ([]player.TeamRoster, error) {
	if week <= 0 {
		return nil, fmt.Errorf("%w: week must be greater than zero", usecase.ErrInvalidInput)
	}

	var payload map[string][]map[string]any
	path := "/api/rosters/week/" + strconv.Itoa(week)
	if err := c.doJSON(ctx, path, nil, &payload); err != nil {
		return nil, fmt.Errorf("fetch rosters week=%d: %w", week, err)
	}

	teams := make([]string, 0, len(payload))
	for team := range payload {
		if strings.TrimSpace(team) == "" || team == "error" {
			continue
		}
		teams = append(teams, team)
	}
	sort.Strings(teams)

	out := make([]player.TeamRoster, 0, len(teams))
	for _, team := range teams {
		out = append(out, player.TeamRoster{
			Team:    team,
			Players: c.normalizeRecords(ctx, payload[team], player.AvailabilityRostered),
		})
	}
	return out, nil
}

// TeamUtilization returns the team's players annotated with the days they start.
func (c *Client) TeamUtilization(ctx context.Context, week int, team string) ([]player.Record, error) {
	team = strings.TrimSpace(team)
	if week <= 0 || team == "" {
		return nil, fmt.Errorf("%w: week and team are required", usecase.ErrInvalidInput)
	}

	query := url.Values{}
	query.Set("team", team)
	query.Set("week", strconv.Itoa(week))

	var payload utilizationEnvelope
	if err := c.doJSON(ctx, "/api/weekly-optimizer", query, &payload); err != nil {
		return nil, fmt.Errorf("fetch utilization week=%d team=%s: %w", week, team, err)
	}
	return c.normalizeRecords(ctx, payload.RosterUtilization, player.AvailabilityRostered), nil
}

// FreeAgentPages fetches pages consecutive upstream pages starting at start.
// Pages are fetched concurrently and returned in offset order.
func (c *Client) FreeAgentPages(ctx context.Context, query player.FreeAgentQuery, start, pages int) ([]player.FreeAgentPage, error) {
	if query.Week <= 0 || strings.TrimSpace(query.MyTeam) == "" || strings.TrimSpace(query.Opponent) == "" {
		return nil, fmt.Errorf("%w: week, my team and opponent are required", usecase.ErrInvalidInput)
	}
	if start < 0 {
		return nil, fmt.Errorf("%w: start must be >= 0", usecase.ErrInvalidInput)
	}
	if pages < 1 {
		pages = 1
	}

	pool, err := ants.NewPool(min(pages, c.workerCount))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	out := make([]player.FreeAgentPage, pages)
	errs := make([]error, pages)

	var workers sync.WaitGroup
	for i := 0; i < pages; i++ {
		idx := i
		offset := start + idx*player.FreeAgentPageSize
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			out[idx], errs[idx] = c.freeAgentPage(ctx, query, offset)
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit page to worker pool: %w", err)
		}
	}
	workers.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c *Client) freeAgentPage(ctx context.Context, query player.FreeAgentQuery, offset int) (player.FreeAgentPage, error) {
	values := url.Values{}
	values.Set("my_team", strings.TrimSpace(query.MyTeam))
	values.Set("opponent", strings.TrimSpace(query.Opponent))
	values.Set("week", strconv.Itoa(query.Week))
	values.Set("start", strconv.Itoa(offset))

	var payload freeAgentsEnvelope
	if err := c.doJSON(ctx, "/api/free-agents", values, &payload); err != nil {
		return player.FreeAgentPage{}, fmt.Errorf("fetch free agents week=%d start=%d: %w", query.Week, offset, err)
	}

	return player.FreeAgentPage{
		Start:           offset,
		Players:         c.normalizeRecords(ctx, payload.FreeAgents, player.AvailabilityFA),
		CategoryWeights: numberMap(payload.Context.CategoryWeights),
	}, nil
}

func (c *Client) normalizeRecords(ctx context.Context, items []map[string]any, availability player.Availability) []player.Record {
	out := make([]player.Record, 0, len(items))
	for _, item := range items {
		record, err := normalizeRecord(item, availability)
		if err != nil {
			c.logger.DebugContext(ctx, "skip malformed roster api player", "error", err)
			continue
		}
		out = append(out, record)
	}
	return out
}
