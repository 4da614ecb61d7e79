package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/gridironhq/gridiron/internal/domain/player"
)

type PlayerRepository struct {
	mu    sync.RWMutex
	items map[string]player.Player
}

var _ player.Repository = (*PlayerRepository)(nil)

func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{items: make(map[string]player.Player)}
}

func (r *PlayerRepository) Put(item player.Player) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
