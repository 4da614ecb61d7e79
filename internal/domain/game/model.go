package game

import "time"

// Game is one scheduled matchup within a week.
type Game struct {
	ID       string
	WeekID   string
	HomeTeam string
	AwayTeam string
	StartsAt time.Time
	Status   string
}
