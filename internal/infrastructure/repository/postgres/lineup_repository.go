package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/gridironhq/gridiron/internal/domain/lineup"
	"github.com/gridironhq/gridiron/internal/domain/token"
	qb "github.com/gridironhq/gridiron/internal/platform/querybuilder"
)

type LineupRepository struct {
	db *sqlx.DB
}

var _ lineup.Repository = (*LineupRepository)(nil)

func NewLineupRepository(db *sqlx.DB) *LineupRepository {
	return &LineupRepository{db: db}
}

func (r *LineupRepository) ListByWeek(ctx context.Context, weekID string) ([]lineup.Lineup, error) {
	query, args, err := qb.Select("*").
		From("lineups").
		Where(
			qb.Eq("week_id", weekID),
			qb.Expr("status IN (?, ?, ?)",
				string(lineup.StatusSubmitted),
				string(lineup.StatusLocked),
				string(lineup.StatusScored),
			),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list lineups query: %w", err)
	}

	var rows []lineupTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list lineups: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	lineupIDs := make([]any, 0, len(rows))
	for _, row := range rows {
		lineupIDs = append(lineupIDs, row.ID)
	}

	slotsQuery, slotsArgs, err := qb.Select("*").
		From("lineup_slots").
		Where(
			qb.In("lineup_id", lineupIDs),
			qb.IsNull("deleted_at"),
		).
		OrderBy("lineup_id", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list lineup slots query: %w", err)
	}

	var slotRows []lineupSlotTableModel
	if err := r.db.SelectContext(ctx, &slotRows, slotsQuery, slotsArgs...); err != nil {
		return nil, fmt.Errorf("list lineup slots: %w", err)
	}

	slotsByLineup := make(map[string][]lineup.Slot, len(rows))
	for _, row := range slotRows {
		slot, err := slotFromRow(row)
		if err != nil {
			return nil, err
		}
		slotsByLineup[row.LineupID] = append(slotsByLineup[row.LineupID], slot)
	}

	out := make([]lineup.Lineup, 0, len(rows))
	for _, row := range rows {
		out = append(out, lineup.Lineup{
			ID:          row.ID,
			TeamID:      row.TeamID,
			WeekID:      row.WeekID,
			Status:      lineup.Status(row.Status),
			TotalPoints: row.TotalPoints,
			Slots:       slotsByLineup[row.ID],
			UpdatedAt:   row.UpdatedAt,
		})
	}
	return out, nil
}

func (r *LineupRepository) UpdateScore(ctx context.Context, lineupID string, totalPoints float64) error {
	query, args, err := qb.Update("lineups").
		Set("total_points", totalPoints).
		Set("status", string(lineup.StatusScored)).
		Set("updated_at", time.Now().UTC()).
		Where(
			qb.Eq("id", lineupID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update lineup score query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update lineup score: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update lineup score rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update lineup score: lineup %s not found", lineupID)
	}
	return nil
}

func slotFromRow(row lineupSlotTableModel) (lineup.Slot, error) {
	slot := lineup.Slot{
		ID:          row.ID,
		LineupID:    row.LineupID,
		Label:       row.Label,
		PlayerID:    row.PlayerID,
		CardID:      row.CardID,
		TokenTypeID: row.TokenTypeID,
	}
	if len(row.TokenRule) > 0 {
		var rule token.Rule
		if err := sonic.Unmarshal(row.TokenRule, &rule); err != nil {
			return lineup.Slot{}, fmt.Errorf("decode token rule slot=%s: %w", row.ID, err)
		}
		slot.TokenRule = &rule
	}
	return slot, nil
}
