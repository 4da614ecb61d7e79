package week

import "context"

// Repository exposes week and season lookups.
type Repository interface {
	GetByID(ctx context.Context, weekID string) (Week, bool, error)
	GetSeasonByYear(ctx context.Context, league string, year int) (Season, bool, error)
	GetBySeasonAndNumber(ctx context.Context, seasonID string, number int) (Week, bool, error)
	// GetLatestCompleted returns the completed week with the highest number.
	GetLatestCompleted(ctx context.Context) (Week, bool, error)
}
