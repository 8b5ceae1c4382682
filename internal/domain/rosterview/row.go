// Package rosterview turns fetched player records into ordered, ranked table rows.
package rosterview

import "github.com/riskibarqy/rosterview/internal/domain/player"

// Defaults substituted for absent or malformed inputs. Every one of them is
// observable through CoverageRank or Sort.
const (
	MissingRankTerm     = 0
	MissingCoverageRank = 999
	MissingStatValue    = -1.0
	MissingText         = ""
)

// Row is a player record plus its derived category coverage rank.
// Rows are rebuilt on every data refresh.
type Row struct {
	player.Record
	CoverageRank    int
	HasCoverageRank bool
}

// CoverageRank sums the per-game category ranks of the stat set matching the
// record's role. Goalies use w/so/svpct/gaa; everyone else uses the skater set.
// Lower is better.
func CoverageRank(record player.Record) int {
	total := 0
	for _, stat := range record.RoleStats() {
		rank, ok := record.CategoryRank(stat)
		if !ok {
			rank = MissingRankTerm
		}
		total += rank
	}
	return total
}

func NewRow(record player.Record) Row {
	return Row{
		Record:          record,
		CoverageRank:    CoverageRank(record),
		HasCoverageRank: record.PerGameProjections != nil,
	}
}

func BuildRows(records []player.Record) []Row {
	out := make([]Row, 0, len(records))
	for _, record := range records {
		out = append(out, NewRow(record))
	}
	return out
}

func (r Row) coverageSortValue() int {
	if !r.HasCoverageRank {
		return MissingCoverageRank
	}
	return r.CoverageRank
}

func (r Row) numericSortValue(key string) float64 {
	if key == KeyImpactScore {
		return r.ImpactScore
	}
	if v, ok := r.WeeklyProjections[key]; ok {
		return v
	}
	return MissingStatValue
}
