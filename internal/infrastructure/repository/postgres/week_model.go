package postgres

import "time"

type seasonTableModel struct {
	ID        string     `db:"id"`
	League    string     `db:"league"`
	Year      int        `db:"year"`
	CreatedAt time.Time  `db:"created_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type weekTableModel struct {
	ID        string     `db:"id"`
	SeasonID  string     `db:"season_id"`
	Number    int        `db:"number"`
	Status    string     `db:"status"`
	LocksAt   time.Time  `db:"locks_at"`
	CreatedAt time.Time  `db:"created_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}
