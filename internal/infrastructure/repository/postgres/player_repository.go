package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/gridironhq/gridiron/internal/domain/player"
	qb "github.com/gridironhq/gridiron/internal/platform/querybuilder"
)

type playerTableModel struct {
	ID          string     `db:"id"`
	Name        string     `db:"name"`
	Position    string     `db:"position"`
	ExternalRef string     `db:"external_ref"`
	CreatedAt   time.Time  `db:"created_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

type PlayerRepository struct {
	db *sqlx.DB
}

var _ player.Repository = (*PlayerRepository)(nil)

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select("*").
		From("players").
		Where(qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, player.Player{
			ID:          row.ID,
			Name:        row.Name,
			Position:    player.Position(row.Position),
			ExternalRef: row.ExternalRef,
		})
	}
	return out, nil
}
