package httpapi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/riskibarqy/rosterview/internal/domain/player"
	"github.com/riskibarqy/rosterview/internal/domain/rosterview"
	"github.com/riskibarqy/rosterview/internal/usecase"
)

type sortQuery struct {
	Key       string `validate:"omitempty,max=64"`
	Direction string `validate:"omitempty,oneof=asc desc"`
	Toggle    string `validate:"omitempty,max=64"`
}

func parseSortQuery(values map[string][]string) sortQuery {
	get := func(name string) string {
		if v := values[name]; len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
		return ""
	}
	return sortQuery{
		Key:       get("sort"),
		Direction: strings.ToLower(get("dir")),
		Toggle:    get("toggle"),
	}
}

// state returns nil when the caller asked for nothing, so the default
// ordering applies.
func (q sortQuery) state() *rosterview.SortState {
	if q.Key == "" && q.Direction == "" {
		return nil
	}
	return &rosterview.SortState{Key: q.Key, Direction: rosterview.Direction(q.Direction)}
}

type teamRosterRequest struct {
	Week int    `validate:"min=1"`
	Team string `validate:"required,max=100"`
	Sort sortQuery
}

type freeAgentRequest struct {
	Week     int    `validate:"min=1"`
	MyTeam   string `validate:"required,max=100"`
	Opponent string `validate:"required,max=100"`
	Start    int    `validate:"min=0"`
	Limit    int    `validate:"min=0"`
	Sort     sortQuery
}

type shapeRowsRequest struct {
	Players []playerRecordRequest `json:"players" validate:"required,max=2000,dive"`
	Sort    *sortRequest          `json:"sort"`
	Toggle  string                `json:"toggle" validate:"omitempty,max=64"`
}

type sortRequest struct {
	Key       string `json:"key" validate:"omitempty,max=64"`
	Direction string `json:"direction" validate:"omitempty,oneof=asc desc"`
}

type playerRecordRequest struct {
	Name               string             `json:"name" validate:"required,max=200"`
	Team               string             `json:"team" validate:"max=100"`
	Positions          []string           `json:"positions" validate:"max=8,dive,max=8"`
	Availability       string             `json:"availability" validate:"omitempty,max=32"`
	Status             string             `json:"status" validate:"max=32"`
	GamesThisWeek      int                `json:"games_this_week" validate:"min=0,max=7"`
	WeeklyProjections  map[string]float64 `json:"weekly_projections"`
	PerGameProjections map[string]float64 `json:"per_game_projections"`
	StartDays          []string           `json:"start_days" validate:"max=7"`
	ImpactScore        float64            `json:"weekly_impact_score"`
	SuggestedDrop      string             `json:"suggested_drop" validate:"max=200"`
}

func (p playerRecordRequest) toRecord() (player.Record, error) {
	record := player.Record{
		Name:               strings.TrimSpace(p.Name),
		Team:               strings.TrimSpace(p.Team),
		Positions:          player.NewPositions(p.Positions...),
		Status:             p.Status,
		GamesThisWeek:      p.GamesThisWeek,
		WeeklyProjections:  p.WeeklyProjections,
		PerGameProjections: p.PerGameProjections,
		StartDays:          p.StartDays,
		ImpactScore:        p.ImpactScore,
		SuggestedDrop:      p.SuggestedDrop,
	}
	if strings.TrimSpace(p.Availability) != "" {
		availability, err := player.ParseAvailability(p.Availability)
		if err != nil {
			return player.Record{}, err
		}
		record.Availability = availability
	}
	return record, nil
}

func (r shapeRowsRequest) sortState() *rosterview.SortState {
	if r.Sort == nil || (r.Sort.Key == "" && r.Sort.Direction == "") {
		return nil
	}
	return &rosterview.SortState{Key: strings.TrimSpace(r.Sort.Key), Direction: rosterview.Direction(r.Sort.Direction)}
}

func parseIntParam(raw, name string, fallback int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, name)
	}
	return v, nil
}

type healthDTO struct {
	Status   string      `json:"status"`
	Upstream *breakerDTO `json:"upstream,omitempty"`
}

type breakerDTO struct {
	State               string `json:"state"`
	ConsecutiveFailures int    `json:"consecutive_failures"`
	Trips               int    `json:"trips"`
}

type sortDTO struct {
	Key       string `json:"key"`
	Direction string `json:"direction"`
}

type colorDTO struct {
	Hue        float64 `json:"hue"`
	Background string  `json:"background"`
	Foreground string  `json:"foreground"`
}

type statCellDTO struct {
	Stat  string    `json:"stat"`
	Value *float64  `json:"value"`
	Rank  *int      `json:"rank"`
	Color *colorDTO `json:"color,omitempty"`
}

type dayMarkDTO struct {
	Day        string `json:"day"`
	Emphasized bool   `json:"emphasized"`
}

type rowDTO struct {
	Name               string             `json:"name"`
	Team               string             `json:"team"`
	Positions          []string           `json:"positions"`
	PositionsLabel     string             `json:"positions_label"`
	Availability       string             `json:"availability"`
	Status             string             `json:"status,omitempty"`
	GamesThisWeek      int                `json:"games_this_week"`
	WeeklyProjections  map[string]float64 `json:"weekly_projections"`
	PerGameProjections map[string]float64 `json:"per_game_projections,omitempty"`
	CoverageRank       *int               `json:"cat_coverage_rank"`
	ImpactScore        float64            `json:"weekly_impact_score"`
	SuggestedDrop      string             `json:"suggested_drop,omitempty"`
	Cells              []statCellDTO      `json:"cells"`
	StartDays          []dayMarkDTO       `json:"start_days"`
}

type tableDTO struct {
	Sort sortDTO  `json:"sort"`
	Rows []rowDTO `json:"rows"`
}

type teamRosterDTO struct {
	Week  int      `json:"week"`
	Team  string   `json:"team"`
	Stale bool     `json:"stale"`
	Table tableDTO `json:"table"`
}

type freeAgentsDTO struct {
	Week            int                `json:"week"`
	Start           int                `json:"start"`
	Limit           int                `json:"limit"`
	NextStart       int                `json:"next_start"`
	HasMore         bool               `json:"has_more"`
	CategoryWeights map[string]float64 `json:"category_weights,omitempty"`
	Table           tableDTO           `json:"table"`
}

type refreshDTO struct {
	Week        int  `json:"week"`
	Invalidated bool `json:"invalidated"`
}

type legendEntryDTO struct {
	Rank  int      `json:"rank"`
	Color colorDTO `json:"color"`
}

func tableToDTO(view usecase.TableView) tableDTO {
	rows := make([]rowDTO, 0, len(view.Rows))
	for _, row := range view.Rows {
		rows = append(rows, rowToDTO(row))
	}
	return tableDTO{
		Sort: sortDTO{Key: view.Sort.Key, Direction: string(view.Sort.Direction)},
		Rows: rows,
	}
}

func rowToDTO(row usecase.DecoratedRow) rowDTO {
	positions := make([]string, 0, len(row.Positions))
	for _, pos := range row.Positions {
		positions = append(positions, string(pos))
	}

	cells := make([]statCellDTO, 0, len(row.Cells))
	for _, cell := range row.Cells {
		item := statCellDTO{Stat: cell.Stat}
		if cell.HasValue {
			v := cell.Value
			item.Value = &v
		}
		if cell.HasRank {
			rank := cell.Rank
			item.Rank = &rank
		}
		if cell.HasColor {
			item.Color = &colorDTO{
				Hue:        cell.Color.Hue,
				Background: cell.Color.Background(),
				Foreground: cell.Color.Foreground(),
			}
		}
		cells = append(cells, item)
	}

	days := make([]dayMarkDTO, 0, len(row.StartDays))
	for _, mark := range row.StartDays {
		days = append(days, dayMarkDTO{Day: mark.Day, Emphasized: mark.Emphasized})
	}

	out := rowDTO{
		Name:               row.Name,
		Team:               row.Team,
		Positions:          positions,
		PositionsLabel:     row.Positions.String(),
		Availability:       string(row.Availability),
		Status:             row.Status,
		GamesThisWeek:      row.GamesThisWeek,
		WeeklyProjections:  row.WeeklyProjections,
		PerGameProjections: row.PerGameProjections,
		ImpactScore:        row.ImpactScore,
		SuggestedDrop:      row.SuggestedDrop,
		Cells:              cells,
		StartDays:          days,
	}
	if row.HasCoverageRank {
		rank := row.CoverageRank
		out.CoverageRank = &rank
	}
	return out
}

func legendToDTO(entries []usecase.LegendEntry) []legendEntryDTO {
	out := make([]legendEntryDTO, 0, len(entries))
	for _, entry := range entries {
		out = append(out, legendEntryDTO{
			Rank: entry.Rank,
			Color: colorDTO{
				Hue:        entry.Color.Hue,
				Background: entry.Color.Background(),
				Foreground: entry.Color.Foreground(),
			},
		})
	}
	return out
}
