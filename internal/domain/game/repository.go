package game

import "context"

// Repository exposes game schedule reads.
type Repository interface {
	ListByWeek(ctx context.Context, weekID string) ([]Game, error)
}
