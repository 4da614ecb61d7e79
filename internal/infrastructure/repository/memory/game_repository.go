package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/gridironhq/gridiron/internal/domain/game"
)

type GameRepository struct {
	mu    sync.RWMutex
	items map[string]game.Game
}

var _ game.Repository = (*GameRepository)(nil)

func NewGameRepository() *GameRepository {
	return &GameRepository{items: make(map[string]game.Game)}
}

func (r *GameRepository) Put(item game.Game) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
}

func (r *GameRepository) ListByWeek(_ context.Context, weekID string) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0)
	for _, item := range r.items {
		if item.WeekID != weekID {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
