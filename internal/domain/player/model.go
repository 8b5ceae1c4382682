package player

import (
	"fmt"
	"strings"
)

// Position is a fantasy hockey eligibility tag (C, LW, RW, D, G, IR...).
type Position string

const (
	PositionCenter      Position = "C"
	PositionLeftWing    Position = "LW"
	PositionRightWing   Position = "RW"
	PositionDefense     Position = "D"
	PositionGoalie      Position = "G"
	PositionInjured     Position = "IR"
	PositionInjuredPlus Position = "IR+"
)

// Stat codes shared by weekly and per-game projections.
const (
	StatGoals        = "g"
	StatAssists      = "a"
	StatPoints       = "pts"
	StatPowerPlayPts = "ppp"
	StatShotsOnGoal  = "sog"
	StatHits         = "hit"
	StatBlocks       = "blk"
	StatWins         = "w"
	StatShutouts     = "so"
	StatSavePct      = "svpct"
	StatGAA          = "gaa"
)

// CategoryRankSuffix is appended to a stat code to address its per-game category rank.
const CategoryRankSuffix = "_cat_rank"

var (
	SkaterStats = []string{StatGoals, StatAssists, StatPoints, StatPowerPlayPts, StatHits, StatBlocks, StatShotsOnGoal}
	GoalieStats = []string{StatWins, StatShutouts, StatSavePct, StatGAA}
)

// CategoryRankKey returns the per-game projection key holding the rank for stat.
func CategoryRankKey(stat string) string {
	return stat + CategoryRankSuffix
}

// Availability describes where a player currently sits in the league pool.
type Availability string

const (
	AvailabilityRostered Availability = "Rostered"
	AvailabilityFA       Availability = "FA"
	AvailabilityWaivers  Availability = "Waivers"
)

func ParseAvailability(raw string) (Availability, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "rostered", "owned", "team":
		return AvailabilityRostered, nil
	case "fa", "free_agent", "free-agent", "freeagent":
		return AvailabilityFA, nil
	case "w", "waivers", "waiver":
		return AvailabilityWaivers, nil
	default:
		return "", fmt.Errorf("unknown availability %q", raw)
	}
}

// Positions is an insertion-ordered set of eligibility tags.
type Positions []Position

// ParsePositions accepts the upstream "C, LW" form and drops blanks and duplicates.
func ParsePositions(raw string) Positions {
	return NewPositions(strings.Split(raw, ",")...)
}

func NewPositions(items ...string) Positions {
	out := make(Positions, 0, len(items))
	seen := make(map[Position]struct{}, len(items))
	for _, item := range items {
		pos := Position(strings.ToUpper(strings.TrimSpace(item)))
		if pos == "" {
			continue
		}
		if _, ok := seen[pos]; ok {
			continue
		}
		seen[pos] = struct{}{}
		out = append(out, pos)
	}
	return out
}

func (p Positions) Has(pos Position) bool {
	for _, item := range p {
		if item == pos {
			return true
		}
	}
	return false
}

func (p Positions) IsGoalie() bool {
	return p.Has(PositionGoalie)
}

// String renders the display form used by tables and text sorting.
func (p Positions) String() string {
	parts := make([]string, 0, len(p))
	for _, item := range p {
		parts = append(parts, string(item))
	}
	return strings.Join(parts, ", ")
}

// Record is one player as delivered by the roster API for a given fantasy week.
// Callers treat it as immutable within a render cycle.
type Record struct {
	Name               string
	Team               string
	Positions          Positions
	Availability       Availability
	Status             string
	GamesThisWeek      int
	WeeklyProjections  map[string]float64
	PerGameProjections map[string]float64
	StartDays          []string
	ImpactScore        float64
	SuggestedDrop      string
}

// CategoryRank reports the per-game category rank for stat, if present.
func (r Record) CategoryRank(stat string) (int, bool) {
	if r.PerGameProjections == nil {
		return 0, false
	}
	v, ok := r.PerGameProjections[CategoryRankKey(stat)]
	if !ok {
		return 0, false
	}
	return int(v), true
}

// RoleStats returns the category set that applies to the record's role.
func (r Record) RoleStats() []string {
	if r.Positions.IsGoalie() {
		return GoalieStats
	}
	return SkaterStats
}

func (r Record) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if r.GamesThisWeek < 0 {
		return fmt.Errorf("games this week must be >= 0")
	}
	return nil
}

// TeamRoster groups records under the fantasy team that rosters them.
type TeamRoster struct {
	Team    string
	Players []Record
}
