package lineup

import (
	"time"

	"github.com/gridironhq/gridiron/internal/domain/token"
)

type Status string

const (
	StatusSubmitted Status = "submitted"
	StatusLocked    Status = "locked"
	StatusScored    Status = "scored"
)

// Lineup is a team's weekly submission. TotalPoints is nil until the lineup
// has been scored at least once.
type Lineup struct {
	ID          string
	TeamID      string
	WeekID      string
	Status      Status
	TotalPoints *float64
	Slots       []Slot
	UpdatedAt   time.Time
}

// Slot is one roster position within a lineup. PlayerID is nil for an empty
// slot. TokenTypeID and TokenRule are set together when a bonus token was
// attached at submission; TokenRule is the snapshot taken at that moment,
// not a live reference into the token catalog.
type Slot struct {
	ID          string
	LineupID    string
	Label       string
	PlayerID    *string
	CardID      *string
	TokenTypeID *string
	TokenRule   *token.Rule
}

// Scored reports whether the lineup already carries a score from an earlier
// run.
func (l Lineup) Scored() bool {
	return l.Status == StatusScored
}
