package memory

import (
	"context"
	"sync"

	"github.com/gridironhq/gridiron/internal/domain/week"
)

type WeekRepository struct {
	mu      sync.RWMutex
	weeks   map[string]week.Week
	seasons map[string]week.Season
}

var _ week.Repository = (*WeekRepository)(nil)

func NewWeekRepository() *WeekRepository {
	return &WeekRepository{
		weeks:   make(map[string]week.Week),
		seasons: make(map[string]week.Season),
	}
}

func (r *WeekRepository) PutSeason(item week.Season) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seasons[item.ID] = item
}

func (r *WeekRepository) PutWeek(item week.Week) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.weeks[item.ID] = item
}

func (r *WeekRepository) GetByID(_ context.Context, weekID string) (week.Week, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.weeks[weekID]
	return item, ok, nil
}

func (r *WeekRepository) GetSeasonByYear(_ context.Context, league string, year int) (week.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.seasons {
		if item.League == league && item.Year == year {
			return item, true, nil
		}
	}
	return week.Season{}, false, nil
}

func (r *WeekRepository) GetBySeasonAndNumber(_ context.Context, seasonID string, number int) (week.Week, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.weeks {
		if item.SeasonID == seasonID && item.Number == number {
			return item, true, nil
		}
	}
	return week.Week{}, false, nil
}

func (r *WeekRepository) GetLatestCompleted(_ context.Context) (week.Week, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	best := week.Week{}
	found := false
	for _, item := range r.weeks {
		if item.Status != week.StatusCompleted {
			continue
		}
		if !found || item.Number > best.Number {
			best = item
			found = true
		}
	}
	return best, found, nil
}
