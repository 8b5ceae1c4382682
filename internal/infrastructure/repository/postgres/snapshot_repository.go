package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/rosterview/internal/domain/player"
	qb "github.com/riskibarqy/rosterview/internal/platform/querybuilder"
)

// SnapshotRepository stores one row per (week, team) with the team's records
// as JSONB. Ordinal keeps the upstream team order.
type SnapshotRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

var _ player.SnapshotRepository = (*SnapshotRepository)(nil)

func NewSnapshotRepository(db *sqlx.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db, now: time.Now}
}

func (r *SnapshotRepository) SaveWeekRosters(ctx context.Context, week int, rosters []player.TeamRoster) error {
	if len(rosters) == 0 {
		return nil
	}

	statements, err := buildSaveStatements(week, rosters, r.now().UTC())
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save roster snapshot tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt.query, stmt.args...); err != nil {
			return fmt.Errorf("save roster snapshot week=%d: %w", week, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit roster snapshot week=%d: %w", week, err)
	}
	return nil
}

func (r *SnapshotRepository) LoadWeekRosters(ctx context.Context, week int) ([]player.TeamRoster, bool, error) {
	query, args, err := buildLoadQuery(week)
	if err != nil {
		return nil, false, err
	}

	var rows []rosterSnapshotTableModel
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if isUnnamedPreparedStatementMissing(err) {
		rows = nil
		err = r.db.SelectContext(ctx, &rows, query, args...)
	}
	if err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("load roster snapshot week=%d: %w", week, err)
	}
	if len(rows) == 0 {
		return nil, false, nil
	}

	out := make([]player.TeamRoster, 0, len(rows))
	for _, row := range rows {
		var players []player.Record
		if err := sonic.UnmarshalString(row.Players, &players); err != nil {
			return nil, false, fmt.Errorf("decode roster snapshot week=%d team=%s: %w", week, row.Team, err)
		}
		out = append(out, player.TeamRoster{Team: row.Team, Players: players})
	}
	return out, true, nil
}

type statement struct {
	query string
	args  []any
}

// buildSaveStatements upserts every team of the week and removes teams that
// are no longer present upstream.
func buildSaveStatements(week int, rosters []player.TeamRoster, fetchedAt time.Time) ([]statement, error) {
	out := make([]statement, 0, len(rosters)+1)
	teams := make([]string, 0, len(rosters))
	for i, roster := range rosters {
		players := roster.Players
		if players == nil {
			players = []player.Record{}
		}
		encoded, err := sonic.MarshalString(players)
		if err != nil {
			return nil, fmt.Errorf("encode roster snapshot team=%s: %w", roster.Team, err)
		}

		query, args, err := qb.UpsertModel(rosterSnapshotsTable, rosterSnapshotTableModel{
			Week:      week,
			Team:      roster.Team,
			Ordinal:   i,
			Players:   encoded,
			FetchedAt: fetchedAt,
		}, "week", "team")
		if err != nil {
			return nil, fmt.Errorf("build upsert roster snapshot query: %w", err)
		}
		out = append(out, statement{query: query, args: args})
		teams = append(teams, roster.Team)
	}

	query, args, err := qb.DeleteFrom(rosterSnapshotsTable).
		Where(
			qb.Eq("week", week),
			qb.NotAny("team", pq.Array(teams)),
		).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build prune roster snapshot query: %w", err)
	}
	out = append(out, statement{query: query, args: args})
	return out, nil
}

func buildLoadQuery(week int) (string, []any, error) {
	cols, err := qb.Columns(rosterSnapshotTableModel{})
	if err != nil {
		return "", nil, err
	}
	query, args, err := qb.Select(cols...).
		From(rosterSnapshotsTable).
		Where(qb.Eq("week", week)).
		OrderBy("ordinal", "team").
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build load roster snapshot query: %w", err)
	}
	return query, args, nil
}
