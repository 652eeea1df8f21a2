package player

import "fmt"

// Position represents football position categories used by scoring and
// formation rules.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

// SeasonTotals accumulates a player's raw season statistics. Owned by the
// external ingestion pipeline; the engine only reads it.
type SeasonTotals struct {
	MinutesPlayed int
	Goals         int
	Assists       int
	CleanSheets   int
	YellowCards   int
	RedCards      int
	Saves         int
}

// Player is an athlete in the shared competition pool. Price is expressed in
// tenths of a million so all budget arithmetic stays integral.
type Player struct {
	ID       string
	Name     string
	Team     string
	Position Position
	Price    int64
	Totals   SeasonTotals
	IsActive bool
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.Team == "" {
		return fmt.Errorf("player team is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	if p.Price <= 0 {
		return fmt.Errorf("player price must be greater than zero")
	}

	return nil
}
