package player

import "context"

// Repository exposes player reads.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
}
