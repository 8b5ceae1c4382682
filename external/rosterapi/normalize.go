package rosterapi

import (
	"math"
	"strconv"
	"strings"

	"github.com/riskibarqy/rosterview/internal/domain/backtoback"
	"github.com/riskibarqy/rosterview/internal/domain/player"
)

// normalizeRecord converts one loosely typed upstream player. Only the name is
// mandatory; every other field falls back to its zero value.
func normalizeRecord(item map[string]any, fallback player.Availability) (player.Record, error) {
	record := player.Record{
		Name:               getString(item, "name"),
		Team:               strings.ToUpper(getString(item, "team")),
		Positions:          parsePositions(item["positions"]),
		Availability:       fallback,
		Status:             getString(item, "status"),
		GamesThisWeek:      max(getInt(item, "games_this_week"), 0),
		WeeklyProjections:  numberMap(item["weekly_projections"]),
		PerGameProjections: numberMap(item["per_game_projections"]),
		StartDays:          parseStartDays(item["start_days"]),
		SuggestedDrop:      getString(item, "suggested_drop"),
	}
	if record.WeeklyProjections == nil {
		record.WeeklyProjections = map[string]float64{}
	}
	if v, ok := asFloat64(item["weekly_impact_score"]); ok {
		record.ImpactScore = v
	}
	if raw := getString(item, "availability"); raw != "" {
		if availability, err := player.ParseAvailability(raw); err == nil {
			record.Availability = availability
		}
	}
	if strings.EqualFold(record.Status, "W") {
		record.Availability = player.AvailabilityWaivers
	}
	if record.Name == "" {
		if name := getString(item, "player_name"); name != "" {
			record.Name = name
		}
	}

	if err := record.Validate(); err != nil {
		return player.Record{}, err
	}
	return record, nil
}

func parsePositions(raw any) player.Positions {
	switch typed := raw.(type) {
	case string:
		return player.ParsePositions(typed)
	case []any:
		items := make([]string, 0, len(typed))
		for _, v := range typed {
			if s, ok := v.(string); ok {
				items = append(items, s)
			}
		}
		return player.NewPositions(items...)
	default:
		return player.Positions{}
	}
}

func parseStartDays(raw any) []string {
	switch typed := raw.(type) {
	case string:
		return backtoback.ParseDays(typed)
	case []any:
		out := make([]string, 0, len(typed))
		for _, v := range typed {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	default:
		return []string{}
	}
}

// numberMap keeps the numeric entries of an object. A missing or non-object
// value returns nil so callers can tell absence from emptiness.
func numberMap(raw any) map[string]float64 {
	src, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]float64, len(src))
	for key, value := range src {
		if v, ok := asFloat64(value); ok {
			out[key] = v
		}
	}
	return out
}

func getString(src map[string]any, key string) string {
	if src == nil {
		return ""
	}
	value, ok := src[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

func getInt(src map[string]any, key string) int {
	v, ok := asFloat64(src[key])
	if !ok {
		return 0
	}
	return int(v)
}

func asFloat64(value any) (float64, bool) {
	var out float64
	switch typed := value.(type) {
	case float64:
		out = typed
	case float32:
		out = float64(typed)
	case int:
		out = float64(typed)
	case int64:
		out = float64(typed)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0, false
		}
		out = parsed
	default:
		return 0, false
	}
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return 0, false
	}
	return out, true
}
