package postgres

import "time"

const rosterSnapshotsTable = "roster_snapshots"

type rosterSnapshotTableModel struct {
	Week      int       `db:"week"`
	Team      string    `db:"team"`
	Ordinal   int       `db:"ordinal"`
	Players   string    `db:"players"`
	FetchedAt time.Time `db:"fetched_at"`
}
