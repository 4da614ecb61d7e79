package token

import "context"

// Repository persists token evaluation audit records.
type Repository interface {
	// UpsertEvaluation inserts or overwrites the record for
	// (SlotID, TokenTypeID). Stale records from earlier runs with other
	// keys are left untouched.
	UpsertEvaluation(ctx context.Context, ev Evaluation) error
}
