package memory

import (
	"context"
	"sync"

	"github.com/gridironhq/gridiron/internal/domain/token"
)

type TokenRepository struct {
	mu    sync.RWMutex
	items map[string]token.Evaluation
}

var _ token.Repository = (*TokenRepository)(nil)

func NewTokenRepository() *TokenRepository {
	return &TokenRepository{items: make(map[string]token.Evaluation)}
}

func (r *TokenRepository) UpsertEvaluation(_ context.Context, ev token.Evaluation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[evaluationKey(ev.SlotID, ev.TokenTypeID)] = ev
	return nil
}

// Evaluations returns every stored record, for inspection in tests and the
// seeded development mode.
func (r *TokenRepository) Evaluations() []token.Evaluation {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]token.Evaluation, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	return out
}

func evaluationKey(slotID, tokenTypeID string) string {
	return slotID + "::" + tokenTypeID
}
