package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/gridironhq/gridiron/internal/domain/week"
)

// WeekSelector names the week a scoring run targets. All fields optional;
// see Resolve for precedence.
type WeekSelector struct {
	WeekID     string
	WeekNumber *int
}

// WeekResolver turns a selector into exactly one week.
type WeekResolver struct {
	weekRepo week.Repository
	now      func() time.Time
}

func NewWeekResolver(weekRepo week.Repository) *WeekResolver {
	return &WeekResolver{
		weekRepo: weekRepo,
		now:      time.Now,
	}
}

// Resolve picks the target week. Precedence: explicit week ID, then
// (current season, week number), then the most recently completed week.
func (r *WeekResolver) Resolve(ctx context.Context, sel WeekSelector) (week.Week, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WeekResolver.Resolve")
	defer span.End()

	if sel.WeekID != "" {
		item, exists, err := r.weekRepo.GetByID(ctx, sel.WeekID)
		if err != nil {
			return week.Week{}, fmt.Errorf("%w: get week by id: %v", ErrDependencyUnavailable, err)
		}
		if !exists {
			return week.Week{}, fmt.Errorf("%w: id=%s", ErrWeekNotFound, sel.WeekID)
		}
		return item, nil
	}

	if sel.WeekNumber != nil {
		number := *sel.WeekNumber
		if number < 1 {
			return week.Week{}, fmt.Errorf("%w: week number must be greater than zero", ErrInvalidInput)
		}

		year := SeasonYear(r.now().UTC())
		season, exists, err := r.weekRepo.GetSeasonByYear(ctx, week.LeagueNFL, year)
		if err != nil {
			return week.Week{}, fmt.Errorf("%w: get season year=%d: %v", ErrDependencyUnavailable, year, err)
		}
		if !exists {
			return week.Week{}, fmt.Errorf("%w: season year=%d", ErrWeekNotFound, year)
		}

		item, exists, err := r.weekRepo.GetBySeasonAndNumber(ctx, season.ID, number)
		if err != nil {
			return week.Week{}, fmt.Errorf("%w: get week number=%d: %v", ErrDependencyUnavailable, number, err)
		}
		if !exists {
			return week.Week{}, fmt.Errorf("%w: season=%s number=%d", ErrWeekNotFound, season.ID, number)
		}
		return item, nil
	}

	item, exists, err := r.weekRepo.GetLatestCompleted(ctx)
	if err != nil {
		return week.Week{}, fmt.Errorf("%w: get latest completed week: %v", ErrDependencyUnavailable, err)
	}
	if !exists {
		return week.Week{}, fmt.Errorf("%w: no completed weeks", ErrWeekNotFound)
	}
	return item, nil
}

// Current returns the most recently completed week, the default scoring
// target.
func (r *WeekResolver) Current(ctx context.Context) (week.Week, error) {
	return r.Resolve(ctx, WeekSelector{})
}

// SeasonYear maps a point in time to the NFL season it belongs to. A season
// is named for the calendar year it starts in; January through July still
// belong to the previous year's season.
func SeasonYear(now time.Time) int {
	if now.Month() >= time.August {
		return now.Year()
	}
	return now.Year() - 1
}
