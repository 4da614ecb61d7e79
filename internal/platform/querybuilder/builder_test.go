package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelectWithConditions(t *testing.T) {
	sql, args, err := Select("id", "week_id", "status").
		From("lineups").
		Where(Eq("week_id", "w1"), Expr("status <> ?", "scored")).
		OrderBy("id ASC").
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL: %v", err)
	}

	want := "SELECT id, week_id, status FROM lineups WHERE week_id = $1 AND status <> $2 ORDER BY id ASC"
	if sql != want {
		t.Fatalf("sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"w1", "scored"}) {
		t.Fatalf("args = %v", args)
	}
}

func TestSelectInEmptyValues(t *testing.T) {
	sql, args, err := Select("player_id").
		From("stat_records").
		Where(In("game_id", nil)).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL: %v", err)
	}

	want := "SELECT player_id FROM stat_records WHERE 1=0"
	if sql != want {
		t.Fatalf("sql = %q, want %q", sql, want)
	}
	if len(args) != 0 {
		t.Fatalf("args = %v, want none", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	sql, args, err := Update("lineups").
		Set("total_points", 31.0).
		Set("status", "scored").
		Where(Eq("id", "l1")).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL: %v", err)
	}

	want := "UPDATE lineups SET total_points = $1, status = $2 WHERE id = $3"
	if sql != want {
		t.Fatalf("sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{31.0, "scored", "l1"}) {
		t.Fatalf("args = %v", args)
	}
}

func TestInsertModelWithConflictSuffix(t *testing.T) {
	type row struct {
		ID        string `db:"id"`
		SlotID    string `db:"slot_id"`
		Satisfied bool   `db:"satisfied"`
		ignored   string `db:"nope"`
		Skipped   string `db:"-"`
	}
	_ = row{}.ignored

	sql, args, err := InsertModel("token_evaluations", row{ID: "e1", SlotID: "s1", Satisfied: true},
		"ON CONFLICT (slot_id, token_type_id) DO UPDATE SET satisfied = EXCLUDED.satisfied")
	if err != nil {
		t.Fatalf("InsertModel: %v", err)
	}

	want := "INSERT INTO token_evaluations (id, slot_id, satisfied) VALUES ($1, $2, $3) " +
		"ON CONFLICT (slot_id, token_type_id) DO UPDATE SET satisfied = EXCLUDED.satisfied"
	if sql != want {
		t.Fatalf("sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"e1", "s1", true}) {
		t.Fatalf("args = %v", args)
	}
}
