package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/gridironhq/gridiron/internal/domain/game"
	qb "github.com/gridironhq/gridiron/internal/platform/querybuilder"
)

type gameTableModel struct {
	ID        string     `db:"id"`
	WeekID    string     `db:"week_id"`
	HomeTeam  string     `db:"home_team"`
	AwayTeam  string     `db:"away_team"`
	StartsAt  time.Time  `db:"starts_at"`
	Status    string     `db:"status"`
	CreatedAt time.Time  `db:"created_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type GameRepository struct {
	db *sqlx.DB
}

var _ game.Repository = (*GameRepository)(nil)

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) ListByWeek(ctx context.Context, weekID string) ([]game.Game, error) {
	query, args, err := qb.Select("*").
		From("games").
		Where(
			qb.Eq("week_id", weekID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("starts_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list games query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, game.Game{
			ID:       row.ID,
			WeekID:   row.WeekID,
			HomeTeam: row.HomeTeam,
			AwayTeam: row.AwayTeam,
			StartsAt: row.StartsAt,
			Status:   row.Status,
		})
	}
	return out, nil
}
