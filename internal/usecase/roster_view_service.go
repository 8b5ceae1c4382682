package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/riskibarqy/rosterview/internal/domain/backtoback"
	"github.com/riskibarqy/rosterview/internal/domain/heatmap"
	"github.com/riskibarqy/rosterview/internal/domain/player"
	"github.com/riskibarqy/rosterview/internal/domain/rosterview"
	"github.com/riskibarqy/rosterview/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
)

const defaultFreeAgentMaxLimit = 100

// RosterViewConfig bounds free-agent listings. Page length is fixed by the
// upstream paginator (player.FreeAgentPageSize).
type RosterViewConfig struct {
	FreeAgentMaxLimit int
}

// RosterViewService fetches raw player records and shapes them into
// render-ready tables. It holds no per-view state; sort state travels with
// every request.
type RosterViewService struct {
	source    player.Source
	snapshots player.SnapshotRepository
	logger    *logging.Logger
	maxLimit  int
}

// NewRosterViewService accepts a nil snapshot repository, which disables
// stale fallback.
func NewRosterViewService(source player.Source, snapshots player.SnapshotRepository, cfg RosterViewConfig, logger *logging.Logger) *RosterViewService {
	if logger == nil {
		logger = logging.Default()
	}
	maxLimit := cfg.FreeAgentMaxLimit
	if maxLimit < player.FreeAgentPageSize {
		maxLimit = defaultFreeAgentMaxLimit
	}
	return &RosterViewService{
		source:    source,
		snapshots: snapshots,
		logger:    logger,
		maxLimit:  maxLimit,
	}
}

type TeamRosterInput struct {
	Week   int
	Team   string
	Sort   *rosterview.SortState
	Toggle string
}

type FreeAgentInput struct {
	Week     int
	MyTeam   string
	Opponent string
	Start    int
	Limit    int
	Sort     *rosterview.SortState
	Toggle   string
}

type ShapeInput struct {
	Records []player.Record
	Sort    *rosterview.SortState
	Toggle  string
}

// StatCell is one heatmap-decorated stat column of a row.
type StatCell struct {
	Stat     string
	Value    float64
	HasValue bool
	Rank     int
	HasRank  bool
	Color    heatmap.Color
	HasColor bool
}

type DecoratedRow struct {
	rosterview.Row
	Cells     []StatCell
	StartDays []backtoback.DayMark
}

type TableView struct {
	Rows []DecoratedRow
	Sort rosterview.SortState
}

type TeamRosterResult struct {
	Week  int
	Team  string
	Table TableView
	Stale bool
}

type FreeAgentResult struct {
	Week            int
	Table           TableView
	Start           int
	Limit           int
	NextStart       int
	HasMore         bool
	CategoryWeights map[string]float64
}

type LegendEntry struct {
	Rank  int
	Color heatmap.Color
}

func (s *RosterViewService) TeamRoster(ctx context.Context, input TeamRosterInput) (result TeamRosterResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterViewService.TeamRoster",
		attribute.Int("week", input.Week),
		attribute.String("team", input.Team),
	)
	defer func() { endSpan(span, err) }()

	team := strings.TrimSpace(input.Team)
	if input.Week <= 0 {
		return TeamRosterResult{}, fmt.Errorf("%w: week must be greater than zero", ErrInvalidInput)
	}
	if team == "" {
		return TeamRosterResult{}, fmt.Errorf("%w: team is required", ErrInvalidInput)
	}

	var (
		rosters     []player.TeamRoster
		fresh       bool
		utilization []player.Record
		utilErr     error
	)
	p := pool.New().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		var fetchErr error
		rosters, fresh, fetchErr = s.fetchWeekRosters(ctx, input.Week)
		return fetchErr
	})
	p.Go(func(ctx context.Context) error {
		utilization, utilErr = s.source.TeamUtilization(ctx, input.Week, team)
		return nil
	})
	fetchErr := p.Wait()

	stale := false
	if fetchErr != nil {
		rosters, stale, err = s.fallbackRosters(ctx, input.Week, fetchErr)
		if err != nil {
			return TeamRosterResult{}, err
		}
	} else if fresh {
		s.saveSnapshot(ctx, input.Week, rosters)
	}

	records, ok := findTeam(rosters, team)
	if !ok {
		return TeamRosterResult{}, fmt.Errorf("%w: team=%s week=%d", ErrNotFound, team, input.Week)
	}

	if utilErr != nil {
		s.logger.WarnContext(ctx, "team utilization unavailable, start days omitted", "week", input.Week, "team", team, "error", utilErr)
	} else {
		records = mergeStartDays(records, utilization)
	}

	return TeamRosterResult{
		Week:  input.Week,
		Team:  team,
		Table: shapeTable(records, input.Sort, input.Toggle),
		Stale: stale,
	}, nil
}

func (s *RosterViewService) FreeAgents(ctx context.Context, input FreeAgentInput) (result FreeAgentResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterViewService.FreeAgents",
		attribute.Int("week", input.Week),
		attribute.Int("start", input.Start),
		attribute.Int("limit", input.Limit),
	)
	defer func() { endSpan(span, err) }()

	query := player.FreeAgentQuery{
		Week:     input.Week,
		MyTeam:   strings.TrimSpace(input.MyTeam),
		Opponent: strings.TrimSpace(input.Opponent),
	}
	if query.Week <= 0 {
		return FreeAgentResult{}, fmt.Errorf("%w: week must be greater than zero", ErrInvalidInput)
	}
	if query.MyTeam == "" || query.Opponent == "" {
		return FreeAgentResult{}, fmt.Errorf("%w: my team and opponent are required", ErrInvalidInput)
	}
	if input.Start < 0 {
		return FreeAgentResult{}, fmt.Errorf("%w: start must be >= 0", ErrInvalidInput)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = player.FreeAgentPageSize
	}
	if limit > s.maxLimit {
		return FreeAgentResult{}, fmt.Errorf("%w: limit must be <= %d", ErrInvalidInput, s.maxLimit)
	}
	pages := (limit + player.FreeAgentPageSize - 1) / player.FreeAgentPageSize

	fetched, err := s.source.FreeAgentPages(ctx, query, input.Start, pages)
	if err != nil {
		return FreeAgentResult{}, fmt.Errorf("fetch free agents: %w", err)
	}

	var all []player.Record
	var weights map[string]float64
	lastPageFull := false
	for i, page := range fetched {
		if i == 0 {
			weights = page.CategoryWeights
		}
		all = append(all, page.Players...)
		lastPageFull = len(page.Players) >= player.FreeAgentPageSize
	}

	records := slices.Clone(all[:min(limit, len(all))])
	for i := range records {
		if records[i].Availability != player.AvailabilityWaivers {
			records[i].Availability = player.AvailabilityFA
		}
	}

	return FreeAgentResult{
		Week:            query.Week,
		Table:           shapeTable(records, input.Sort, input.Toggle),
		Start:           input.Start,
		Limit:           limit,
		NextStart:       input.Start + len(records),
		HasMore:         len(all) > limit || lastPageFull,
		CategoryWeights: weights,
	}, nil
}

// Shape re-sorts records the caller already holds without refetching.
func (s *RosterViewService) Shape(ctx context.Context, input ShapeInput) (view TableView, err error) {
	_, span := startUsecaseSpan(ctx, "usecase.RosterViewService.Shape", attribute.Int("records", len(input.Records)))
	defer func() { endSpan(span, err) }()

	for i, record := range input.Records {
		if validateErr := record.Validate(); validateErr != nil {
			return TableView{}, fmt.Errorf("%w: record %d: %v", ErrInvalidInput, i, validateErr)
		}
	}
	return shapeTable(input.Records, input.Sort, input.Toggle), nil
}

func (s *RosterViewService) HeatmapLegend(ctx context.Context) []LegendEntry {
	_, span := startUsecaseSpan(ctx, "usecase.RosterViewService.HeatmapLegend")
	defer span.End()

	colors := heatmap.Legend()
	out := make([]LegendEntry, 0, len(colors))
	for i, color := range colors {
		out = append(out, LegendEntry{Rank: heatmap.MinRank + i, Color: color})
	}
	return out
}

func (s *RosterViewService) fallbackRosters(ctx context.Context, week int, cause error) ([]player.TeamRoster, bool, error) {
	if s.snapshots == nil || !errors.Is(cause, ErrDependencyUnavailable) {
		return nil, false, fmt.Errorf("fetch week rosters: %w", cause)
	}

	rosters, found, err := s.snapshots.LoadWeekRosters(ctx, week)
	if err != nil {
		s.logger.ErrorContext(ctx, "load roster snapshot failed", "week", week, "error", err)
		return nil, false, fmt.Errorf("fetch week rosters: %w", cause)
	}
	if !found {
		return nil, false, fmt.Errorf("fetch week rosters: %w", cause)
	}

	s.logger.WarnContext(ctx, "serving stale roster snapshot", "week", week, "cause", cause)
	return rosters, true, nil
}

func (s *RosterViewService) saveSnapshot(ctx context.Context, week int, rosters []player.TeamRoster) {
	if s.snapshots == nil || len(rosters) == 0 {
		return
	}
	if err := s.snapshots.SaveWeekRosters(ctx, week, rosters); err != nil {
		s.logger.WarnContext(ctx, "save roster snapshot failed", "week", week, "error", err)
	}
}

// fetchWeekRosters reports whether the rosters came from upstream. Sources
// without a cache always fetch.
func (s *RosterViewService) fetchWeekRosters(ctx context.Context, week int) ([]player.TeamRoster, bool, error) {
	if fs, ok := s.source.(player.FreshnessSource); ok {
		return fs.WeekRostersFresh(ctx, week)
	}
	rosters, err := s.source.WeekRosters(ctx, week)
	return rosters, err == nil, err
}

func findTeam(rosters []player.TeamRoster, team string) ([]player.Record, bool) {
	for _, roster := range rosters {
		if roster.Team == team {
			return roster.Players, true
		}
	}
	for _, roster := range rosters {
		if strings.EqualFold(roster.Team, team) {
			return roster.Players, true
		}
	}
	return nil, false
}

// mergeStartDays copies start days from utilization rows onto matching
// players. The roster slice itself is not modified.
func mergeStartDays(records, utilization []player.Record) []player.Record {
	days := make(map[string][]string, len(utilization))
	for _, item := range utilization {
		days[item.Name] = item.StartDays
	}

	out := make([]player.Record, len(records))
	copy(out, records)
	for i := range out {
		if d, ok := days[out[i].Name]; ok {
			out[i].StartDays = d
		}
	}
	return out
}

func resolveSort(state *rosterview.SortState, toggle string) (rosterview.SortState, bool) {
	toggle = strings.TrimSpace(toggle)
	if state == nil && toggle == "" {
		return rosterview.DefaultSortState(), false
	}
	current := rosterview.DefaultSortState()
	if state != nil {
		current = state.Normalize()
	}
	if toggle != "" {
		current = rosterview.ToggleSort(current, toggle)
	}
	return current, true
}

func shapeTable(records []player.Record, state *rosterview.SortState, toggle string) TableView {
	var view rosterview.View
	if resolved, explicit := resolveSort(state, toggle); explicit {
		view = rosterview.View{Rows: rosterview.BuildRows(records)}.WithSort(resolved)
	} else {
		view = rosterview.NewView(records)
	}

	rows := make([]DecoratedRow, 0, len(view.Rows))
	for _, row := range view.Rows {
		rows = append(rows, decorateRow(row))
	}
	return TableView{Rows: rows, Sort: view.Sort}
}

func decorateRow(row rosterview.Row) DecoratedRow {
	stats := row.RoleStats()
	cells := make([]StatCell, 0, len(stats))
	for _, stat := range stats {
		cell := StatCell{Stat: stat}
		if v, ok := row.WeeklyProjections[stat]; ok {
			cell.Value = v
			cell.HasValue = true
		}
		if rank, ok := row.CategoryRank(stat); ok {
			cell.Rank = rank
			cell.HasRank = true
			cell.Color, cell.HasColor = heatmap.RankToColor(rank)
		}
		cells = append(cells, cell)
	}

	return DecoratedRow{
		Row:       row,
		Cells:     cells,
		StartDays: backtoback.Mark(row.StartDays),
	}
}
