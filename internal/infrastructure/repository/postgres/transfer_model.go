package postgres

import "time"

type offerTableModel struct {
	ID              string     `db:"id"`
	LeagueID        string     `db:"league_id"`
	FromSquadID     string     `db:"from_squad_id"`
	ToSquadID       string     `db:"to_squad_id"`
	PlayerID        string     `db:"player_id"`
	Kind            string     `db:"kind"`
	MoneyOffered    int64      `db:"money_offered"`
	OfferedPlayerID string     `db:"offered_player_id"`
	DropPlayerID    string     `db:"drop_player_id"`
	Status          string     `db:"status"`
	CreatedAt       time.Time  `db:"created_at"`
	ExpiresAt       time.Time  `db:"expires_at"`
	RespondedAt     *time.Time `db:"responded_at"`
}

type historyTableModel struct {
	ID             string    `db:"id"`
	LeagueID       string    `db:"league_id"`
	SquadID        string    `db:"squad_id"`
	MatchdayNumber int       `db:"matchday_number"`
	Type           string    `db:"type"`
	PlayerInID     string    `db:"player_in_id"`
	PlayerOutID    string    `db:"player_out_id"`
	Cost           int64     `db:"cost"`
	CounterpartyID string    `db:"counterparty_id"`
	OfferID        string    `db:"offer_id"`
	IsFreeTransfer bool      `db:"is_free_transfer"`
	CreatedAt      time.Time `db:"created_at"`
}
