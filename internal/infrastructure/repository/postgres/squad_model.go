package postgres

import "time"

type squadTableModel struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	LeagueID    string    `db:"league_id"`
	Name        string    `db:"name"`
	TotalBudget int64     `db:"total_budget"`
	Points      int       `db:"points"`
	Rank        int       `db:"rank"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type squadMemberTableModel struct {
	SquadID       string `db:"squad_id"`
	PlayerID      string `db:"player_id"`
	Position      string `db:"position"`
	Price         int64  `db:"price"`
	IsCaptain     bool   `db:"is_captain"`
	IsViceCaptain bool   `db:"is_vice_captain"`
	AddedMatchday int    `db:"added_matchday"`
}
