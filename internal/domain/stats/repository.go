package stats

import "context"

// Repository exposes finalized stat record reads.
type Repository interface {
	ListFinalizedByGames(ctx context.Context, gameIDs []string) ([]Record, error)
}
