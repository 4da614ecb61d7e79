package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gridironhq/gridiron/internal/domain/week"
	qb "github.com/gridironhq/gridiron/internal/platform/querybuilder"
)

type WeekRepository struct {
	db *sqlx.DB
}

var _ week.Repository = (*WeekRepository)(nil)

func NewWeekRepository(db *sqlx.DB) *WeekRepository {
	return &WeekRepository{db: db}
}

func (r *WeekRepository) GetByID(ctx context.Context, weekID string) (week.Week, bool, error) {
	query, args, err := qb.Select("*").
		From("weeks").
		Where(
			qb.Eq("id", weekID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return week.Week{}, false, fmt.Errorf("build get week query: %w", err)
	}

	var row weekTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return week.Week{}, false, nil
		}
		return week.Week{}, false, fmt.Errorf("get week: %w", err)
	}

	return weekFromRow(row), true, nil
}

func (r *WeekRepository) GetSeasonByYear(ctx context.Context, league string, year int) (week.Season, bool, error) {
	query, args, err := qb.Select("*").
		From("seasons").
		Where(
			qb.Eq("league", league),
			qb.Eq("year", year),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return week.Season{}, false, fmt.Errorf("build get season query: %w", err)
	}

	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return week.Season{}, false, nil
		}
		return week.Season{}, false, fmt.Errorf("get season: %w", err)
	}

	return week.Season{ID: row.ID, League: row.League, Year: row.Year}, true, nil
}

func (r *WeekRepository) GetBySeasonAndNumber(ctx context.Context, seasonID string, number int) (week.Week, bool, error) {
	query, args, err := qb.Select("*").
		From("weeks").
		Where(
			qb.Eq("season_id", seasonID),
			qb.Eq("number", number),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return week.Week{}, false, fmt.Errorf("build get week by number query: %w", err)
	}

	var row weekTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return week.Week{}, false, nil
		}
		return week.Week{}, false, fmt.Errorf("get week by number: %w", err)
	}

	return weekFromRow(row), true, nil
}

func (r *WeekRepository) GetLatestCompleted(ctx context.Context) (week.Week, bool, error) {
	query, args, err := qb.Select("*").
		From("weeks").
		Where(
			qb.Eq("status", string(week.StatusCompleted)),
			qb.IsNull("deleted_at"),
		).
		OrderBy("number DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return week.Week{}, false, fmt.Errorf("build latest completed week query: %w", err)
	}

	var row weekTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return week.Week{}, false, nil
		}
		return week.Week{}, false, fmt.Errorf("get latest completed week: %w", err)
	}

	return weekFromRow(row), true, nil
}

func weekFromRow(row weekTableModel) week.Week {
	return week.Week{
		ID:       row.ID,
		SeasonID: row.SeasonID,
		Number:   row.Number,
		Status:   week.Status(row.Status),
		LocksAt:  row.LocksAt,
	}
}
