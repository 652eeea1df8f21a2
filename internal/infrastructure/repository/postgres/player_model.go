package postgres

import "time"

type playerTableModel struct {
	ID            string    `db:"id"`
	Name          string    `db:"name"`
	Team          string    `db:"team"`
	Position      string    `db:"position"`
	Price         int64     `db:"price"`
	IsActive      bool      `db:"is_active"`
	MinutesPlayed int       `db:"minutes_played"`
	Goals         int       `db:"goals"`
	Assists       int       `db:"assists"`
	CleanSheets   int       `db:"clean_sheets"`
	YellowCards   int       `db:"yellow_cards"`
	RedCards      int       `db:"red_cards"`
	Saves         int       `db:"saves"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}
