package lineup

import "context"

// Repository exposes lineup reads and score writes.
type Repository interface {
	// ListByWeek returns every lineup submitted for the week, slots
	// included, ordered by lineup ID for deterministic runs.
	ListByWeek(ctx context.Context, weekID string) ([]Lineup, error)
	// UpdateScore stores the final point total and moves the lineup to
	// StatusScored. It is a single-row write; no surrounding transaction.
	UpdateScore(ctx context.Context, lineupID string, totalPoints float64) error
}
