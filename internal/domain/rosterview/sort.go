package rosterview

import (
	"cmp"
	"slices"
	"strings"

	"github.com/riskibarqy/rosterview/internal/domain/player"
)

// Direction is the ordering applied on top of a key's comparator.
type Direction string

const (
	DirectionAsc  Direction = "asc"
	DirectionDesc Direction = "desc"
)

func (d Direction) Valid() bool {
	return d == DirectionAsc || d == DirectionDesc
}

func (d Direction) Flip() Direction {
	if d == DirectionAsc {
		return DirectionDesc
	}
	return DirectionAsc
}

// Sortable column keys that are not plain stat codes.
const (
	KeyCoverageRank = "cat_coverage_rank"
	KeyName         = "name"
	KeyTeam         = "team"
	KeyPositions    = "positions"
	KeyAvailability = "availability"
	KeyImpactScore  = "weekly_impact_score"
)

// SortState is UI-owned ordering state. It is passed in and returned, never stored here.
type SortState struct {
	Key       string
	Direction Direction
}

func DefaultSortState() SortState {
	return SortState{Key: KeyCoverageRank, Direction: DirectionAsc}
}

// Normalize fills an empty key with the default key and an invalid direction
// with the key's default direction.
func (s SortState) Normalize() SortState {
	s.Key = strings.TrimSpace(s.Key)
	if s.Key == "" {
		s.Key = KeyCoverageRank
	}
	if !s.Direction.Valid() {
		s.Direction = DefaultDirection(s.Key)
	}
	return s
}

type comparatorKind uint8

const (
	kindNumeric comparatorKind = iota
	kindNumericInverse
	kindCoverage
	kindText
)

var comparatorKinds = map[string]comparatorKind{
	KeyCoverageRank: kindCoverage,
	KeyName:         kindText,
	KeyTeam:         kindText,
	KeyPositions:    kindText,
	KeyAvailability: kindText,
	player.StatGAA:  kindNumericInverse,
}

var textFields = map[string]func(Row) string{
	KeyName:         func(r Row) string { return r.Name },
	KeyTeam:         func(r Row) string { return r.Team },
	KeyPositions:    func(r Row) string { return r.Positions.String() },
	KeyAvailability: func(r Row) string { return string(r.Availability) },
}

// Keys whose first click sorts ascending. Everything else starts descending.
var ascendingByDefault = map[string]struct{}{
	KeyCoverageRank: {},
	KeyName:         {},
	KeyTeam:         {},
	KeyPositions:    {},
	KeyAvailability: {},
	player.StatGAA:  {},
}

func kindFor(key string) comparatorKind {
	if kind, ok := comparatorKinds[key]; ok {
		return kind
	}
	return kindNumeric
}

func DefaultDirection(key string) Direction {
	if _, ok := ascendingByDefault[key]; ok {
		return DirectionAsc
	}
	return DirectionDesc
}

func comparatorFor(key string) func(a, b Row) int {
	switch kindFor(key) {
	case kindCoverage:
		return func(a, b Row) int {
			return cmp.Compare(a.coverageSortValue(), b.coverageSortValue())
		}
	case kindNumericInverse:
		return func(a, b Row) int {
			return -cmp.Compare(a.numericSortValue(key), b.numericSortValue(key))
		}
	case kindText:
		field := textFields[key]
		return func(a, b Row) int {
			return strings.Compare(field(a), field(b))
		}
	default:
		return func(a, b Row) int {
			return cmp.Compare(a.numericSortValue(key), b.numericSortValue(key))
		}
	}
}

// Sort returns a stably ordered copy of rows. The input slice is left untouched.
func Sort(rows []Row, state SortState) []Row {
	state = state.Normalize()
	compare := comparatorFor(state.Key)
	desc := state.Direction == DirectionDesc

	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b Row) int {
		c := compare(a, b)
		if desc {
			return -c
		}
		return c
	})
	return out
}

// ToggleSort applies a header click: the active key flips direction, any other
// key becomes active with its default direction.
func ToggleSort(current SortState, clickedKey string) SortState {
	clickedKey = strings.TrimSpace(clickedKey)
	if clickedKey == "" {
		return current
	}
	if clickedKey == current.Key {
		return SortState{Key: clickedKey, Direction: current.Direction.Flip()}
	}
	return SortState{Key: clickedKey, Direction: DefaultDirection(clickedKey)}
}
