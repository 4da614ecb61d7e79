package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/gridironhq/gridiron/internal/domain/lineup"
)

type LineupRepository struct {
	mu    sync.RWMutex
	items map[string]lineup.Lineup
}

var _ lineup.Repository = (*LineupRepository)(nil)

func NewLineupRepository() *LineupRepository {
	return &LineupRepository{items: make(map[string]lineup.Lineup)}
}

func (r *LineupRepository) Put(item lineup.Lineup) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = cloneLineup(item)
}

func (r *LineupRepository) ListByWeek(_ context.Context, weekID string) ([]lineup.Lineup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]lineup.Lineup, 0)
	for _, item := range r.items {
		if item.WeekID != weekID || !scorableStatus(item.Status) {
			continue
		}
		out = append(out, cloneLineup(item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *LineupRepository) UpdateScore(_ context.Context, lineupID string, totalPoints float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[lineupID]
	if !ok {
		return fmt.Errorf("lineup %s not found", lineupID)
	}
	points := totalPoints
	item.TotalPoints = &points
	item.Status = lineup.StatusScored
	r.items[lineupID] = item
	return nil
}

// scorableStatus mirrors the status filter of the database-backed listing:
// drafts never enter a scoring run.
func scorableStatus(status lineup.Status) bool {
	switch status {
	case lineup.StatusSubmitted, lineup.StatusLocked, lineup.StatusScored:
		return true
	default:
		return false
	}
}

func cloneLineup(item lineup.Lineup) lineup.Lineup {
	copied := item
	copied.Slots = append([]lineup.Slot(nil), item.Slots...)
	if item.TotalPoints != nil {
		points := *item.TotalPoints
		copied.TotalPoints = &points
	}
	return copied
}
