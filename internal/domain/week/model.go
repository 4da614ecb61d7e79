package week

import "time"

type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Week is one scheduling period of a season. Immutable once created; this
// subsystem only reads it.
type Week struct {
	ID       string
	SeasonID string
	Number   int
	Status   Status
	LocksAt  time.Time
}

// Season groups weeks under a league year.
type Season struct {
	ID     string
	League string
	Year   int
}

const LeagueNFL = "NFL"
