package memory

import (
	"context"
	"sync"

	"github.com/gridironhq/gridiron/internal/domain/stats"
)

type StatsRepository struct {
	mu    sync.RWMutex
	items []stats.Record
}

var _ stats.Repository = (*StatsRepository)(nil)

func NewStatsRepository() *StatsRepository {
	return &StatsRepository{}
}

func (r *StatsRepository) Put(item stats.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, cloneRecord(item))
}

func (r *StatsRepository) ListFinalizedByGames(_ context.Context, gameIDs []string) ([]stats.Record, error) {
	wanted := make(map[string]struct{}, len(gameIDs))
	for _, id := range gameIDs {
		wanted[id] = struct{}{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]stats.Record, 0)
	for _, item := range r.items {
		if !item.Finalized {
			continue
		}
		if _, ok := wanted[item.GameID]; !ok {
			continue
		}
		out = append(out, cloneRecord(item))
	}
	return out, nil
}

func cloneRecord(item stats.Record) stats.Record {
	copied := item
	if item.Line != nil {
		line := make(stats.StatLine, len(item.Line))
		for k, v := range item.Line {
			line[k] = v
		}
		copied.Line = line
	}
	return copied
}
