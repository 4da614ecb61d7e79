package postgres

import "time"

type lineupTableModel struct {
	ID          string     `db:"id"`
	TeamID      string     `db:"team_id"`
	WeekID      string     `db:"week_id"`
	Status      string     `db:"status"`
	TotalPoints *float64   `db:"total_points"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

type lineupSlotTableModel struct {
	ID          string     `db:"id"`
	LineupID    string     `db:"lineup_id"`
	Label       string     `db:"label"`
	PlayerID    *string    `db:"player_id"`
	CardID      *string    `db:"card_id"`
	TokenTypeID *string    `db:"token_type_id"`
	TokenRule   []byte     `db:"token_rule"`
	CreatedAt   time.Time  `db:"created_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

type tokenEvaluationInsertModel struct {
	ID          string    `db:"id"`
	SlotID      string    `db:"slot_id"`
	TokenTypeID string    `db:"token_type_id"`
	Satisfied   bool      `db:"satisfied"`
	BonusPoints float64   `db:"bonus_points"`
	Rule        []byte    `db:"rule"`
	EvaluatedAt time.Time `db:"evaluated_at"`
}
