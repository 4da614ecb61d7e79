package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/gridironhq/gridiron/internal/domain/stats"
	qb "github.com/gridironhq/gridiron/internal/platform/querybuilder"
)

type statRecordTableModel struct {
	ID        string     `db:"id"`
	PlayerID  string     `db:"player_id"`
	GameID    string     `db:"game_id"`
	Finalized bool       `db:"finalized"`
	Line      []byte     `db:"line"`
	CreatedAt time.Time  `db:"created_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type StatsRepository struct {
	db *sqlx.DB
}

var _ stats.Repository = (*StatsRepository)(nil)

func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) ListFinalizedByGames(ctx context.Context, gameIDs []string) ([]stats.Record, error) {
	if len(gameIDs) == 0 {
		return nil, nil
	}

	ids := make([]any, 0, len(gameIDs))
	for _, id := range gameIDs {
		ids = append(ids, id)
	}

	query, args, err := qb.Select("*").
		From("stat_records").
		Where(
			qb.In("game_id", ids),
			qb.Eq("finalized", true),
			qb.IsNull("deleted_at"),
		).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list finalized stats query: %w", err)
	}

	var rows []statRecordTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list finalized stats: %w", err)
	}

	out := make([]stats.Record, 0, len(rows))
	for _, row := range rows {
		line := stats.StatLine{}
		if len(row.Line) > 0 {
			if err := sonic.Unmarshal(row.Line, &line); err != nil {
				return nil, fmt.Errorf("decode stat line player=%s game=%s: %w", row.PlayerID, row.GameID, err)
			}
		}
		out = append(out, stats.Record{
			PlayerID:  row.PlayerID,
			GameID:    row.GameID,
			Finalized: row.Finalized,
			Line:      line,
		})
	}
	return out, nil
}
