package cache

import (
	"context"
	"strconv"

	"github.com/gridironhq/gridiron/internal/domain/player"
	"github.com/gridironhq/gridiron/internal/domain/week"
	basecache "github.com/gridironhq/gridiron/internal/platform/cache"
)

// WeekRepository caches week and season lookups. Weeks are immutable once
// created, so short TTLs are purely a memory bound.
type WeekRepository struct {
	next  week.Repository
	cache *basecache.Store
}

var _ week.Repository = (*WeekRepository)(nil)

func NewWeekRepository(next week.Repository, cache *basecache.Store) *WeekRepository {
	return &WeekRepository{next: next, cache: cache}
}

func (r *WeekRepository) GetByID(ctx context.Context, weekID string) (week.Week, bool, error) {
	key := "week:id:" + weekID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, weekID)
		if err != nil {
			return nil, err
		}
		return cachedWeek{value: item, exists: exists}, nil
	})
	if err != nil {
		return week.Week{}, false, err
	}

	cached, _ := v.(cachedWeek)
	return cached.value, cached.exists, nil
}

func (r *WeekRepository) GetSeasonByYear(ctx context.Context, league string, year int) (week.Season, bool, error) {
	key := "season:" + league + ":" + strconv.Itoa(year)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetSeasonByYear(ctx, league, year)
		if err != nil {
			return nil, err
		}
		return cachedSeason{value: item, exists: exists}, nil
	})
	if err != nil {
		return week.Season{}, false, err
	}

	cached, _ := v.(cachedSeason)
	return cached.value, cached.exists, nil
}

func (r *WeekRepository) GetBySeasonAndNumber(ctx context.Context, seasonID string, number int) (week.Week, bool, error) {
	key := "week:season:" + seasonID + ":" + strconv.Itoa(number)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetBySeasonAndNumber(ctx, seasonID, number)
		if err != nil {
			return nil, err
		}
		return cachedWeek{value: item, exists: exists}, nil
	})
	if err != nil {
		return week.Week{}, false, err
	}

	cached, _ := v.(cachedWeek)
	return cached.value, cached.exists, nil
}

// GetLatestCompleted is never cached: week status changes as games finish,
// and a stale answer here would score the wrong week.
func (r *WeekRepository) GetLatestCompleted(ctx context.Context) (week.Week, bool, error) {
	return r.next.GetLatestCompleted(ctx)
}

type cachedWeek struct {
	value  week.Week
	exists bool
}

type cachedSeason struct {
	value  week.Season
	exists bool
}

// PlayerRepository caches the full player list, the largest read of every
// scoring run.
type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

var _ player.Repository = (*PlayerRepository)(nil)

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	v, err := r.cache.GetOrLoad(ctx, "player:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}
