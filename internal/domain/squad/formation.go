package squad

import (
	"fmt"

	"github.com/jmlarios/fantasy-football-tracker/internal/domain/player"
)

// FormationRules bounds squad composition per position. The zero value is
// useless; use DefaultFormationRules.
type FormationRules struct {
	SquadSize int
	Limits    map[player.Position]PositionLimit
}

type PositionLimit struct {
	Min int
	Max int
}

func DefaultFormationRules() FormationRules {
	return FormationRules{
		SquadSize: 11,
		Limits: map[player.Position]PositionLimit{
			player.PositionGoalkeeper: {Min: 1, Max: 1},
			player.PositionDefender:   {Min: 3, Max: 5},
			player.PositionMidfielder: {Min: 2, Max: 5},
			player.PositionForward:    {Min: 1, Max: 3},
		},
	}
}

// FormationCheck is the outcome of validating a squad's composition. Errors
// lists every violated rule, not only the first.
type FormationCheck struct {
	Valid          bool
	Errors         []string
	PositionCounts map[player.Position]int
	TotalPlayers   int
}

// ValidateFormation checks member composition against rules. All violations
// are collected so callers can show the complete picture to the user.
func ValidateFormation(members []Member, rules FormationRules) FormationCheck {
	counts := map[player.Position]int{
		player.PositionGoalkeeper: 0,
		player.PositionDefender:   0,
		player.PositionMidfielder: 0,
		player.PositionForward:    0,
	}
	for _, m := range members {
		if _, ok := player.AllPositions[m.Position]; ok {
			counts[m.Position]++
		}
	}

	check := FormationCheck{
		Valid:          true,
		PositionCounts: counts,
		TotalPlayers:   len(members),
	}

	if check.TotalPlayers != rules.SquadSize {
		check.Valid = false
		check.Errors = append(check.Errors,
			fmt.Sprintf("squad must have exactly %d players, found %d", rules.SquadSize, check.TotalPlayers))
	}

	for _, pos := range []player.Position{
		player.PositionGoalkeeper,
		player.PositionDefender,
		player.PositionMidfielder,
		player.PositionForward,
	} {
		limit := rules.Limits[pos]
		count := counts[pos]
		if count < limit.Min {
			check.Valid = false
			check.Errors = append(check.Errors,
				fmt.Sprintf("need at least %d %s, found %d", limit.Min, pos, count))
		} else if count > limit.Max {
			check.Valid = false
			check.Errors = append(check.Errors,
				fmt.Sprintf("maximum %d %s allowed, found %d", limit.Max, pos, count))
		}
	}

	return check
}
