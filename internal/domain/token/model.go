package token

import "time"

// Type is a catalog entry for a bonus token. The authoritative rule lives
// here; slots carry a snapshot taken at lineup submission.
type Type struct {
	ID          string
	Name        string
	Description string
	Rule        *Rule
}

// Evaluation is the audit record of one token evaluation against one slot.
// Keyed by (SlotID, TokenTypeID); repeated runs overwrite in place. Rule is
// the snapshot the evaluation actually ran against, kept for disputes.
type Evaluation struct {
	ID          string
	SlotID      string
	TokenTypeID string
	Satisfied   bool
	BonusPoints float64
	Rule        *Rule
	EvaluatedAt time.Time
}
