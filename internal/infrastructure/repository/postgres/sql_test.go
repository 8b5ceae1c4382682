package postgres

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/rosterview/internal/domain/player"
)

func TestIsUnnamedPreparedStatementMissing(t *testing.T) {
	t.Run("matches statement missing message", func(t *testing.T) {
		err := fakeErr("pq: unnamed prepared statement does not exist (26000)")
		if !isUnnamedPreparedStatementMissing(err) {
			t.Fatalf("expected true for statement missing error")
		}
	})

	t.Run("matches by 26000 code", func(t *testing.T) {
		err := fakeErr("pq: prepared statement missing (26000)")
		if !isUnnamedPreparedStatementMissing(err) {
			t.Fatalf("expected true for 26000 prepared statement error")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		err := fakeErr("pq: relation roster_snapshots does not exist")
		if isUnnamedPreparedStatementMissing(err) {
			t.Fatalf("expected false for unrelated error")
		}
		if isUnnamedPreparedStatementMissing(nil) {
			t.Fatalf("expected false for nil error")
		}
	})
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("wrapped: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to match")
	}
	if isNotFound(fakeErr("boom")) {
		t.Fatalf("expected unrelated error not to match")
	}
}

func TestBuildSaveStatements(t *testing.T) {
	fetchedAt := time.Date(2026, time.October, 12, 10, 0, 0, 0, time.UTC)
	rosters := []player.TeamRoster{
		{Team: "Team B", Players: []player.Record{{Name: "Igor", Positions: player.NewPositions("G")}}},
		{Team: "Team A"},
	}

	statements, err := buildSaveStatements(7, rosters, fetchedAt)
	if err != nil {
		t.Fatalf("build save statements: %v", err)
	}
	if len(statements) != 3 {
		t.Fatalf("unexpected statement count: got=%d want=3", len(statements))
	}

	wantUpsert := "INSERT INTO roster_snapshots (week, team, ordinal, players, fetched_at) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (week, team) DO UPDATE SET ordinal = EXCLUDED.ordinal, players = EXCLUDED.players, fetched_at = EXCLUDED.fetched_at"
	if statements[0].query != wantUpsert {
		t.Fatalf("unexpected upsert:\nwant: %s\ngot:  %s", wantUpsert, statements[0].query)
	}
	first := statements[0].args
	if first[0] != 7 || first[1] != "Team B" || first[2] != 0 || first[4] != fetchedAt {
		t.Fatalf("unexpected upsert args: %+v", first)
	}

	var decoded []player.Record
	if err := sonic.UnmarshalString(first[3].(string), &decoded); err != nil {
		t.Fatalf("decode players arg: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Name != "Igor" || !decoded[0].Positions.IsGoalie() {
		t.Fatalf("unexpected encoded players: %+v", decoded)
	}
	if statements[1].args[2] != 1 || statements[1].args[3] != "[]" {
		t.Fatalf("empty roster should encode as []: %+v", statements[1].args)
	}

	wantPrune := "DELETE FROM roster_snapshots WHERE week = $1 AND NOT (team = ANY($2))"
	if statements[2].query != wantPrune {
		t.Fatalf("unexpected prune:\nwant: %s\ngot:  %s", wantPrune, statements[2].query)
	}
}

func TestBuildLoadQuery(t *testing.T) {
	query, args, err := buildLoadQuery(3)
	if err != nil {
		t.Fatalf("build load query: %v", err)
	}
	want := "SELECT week, team, ordinal, players, fetched_at FROM roster_snapshots WHERE week = $1 ORDER BY ordinal, team"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 1 || args[0] != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
