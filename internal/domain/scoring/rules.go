package scoring

import (
	"github.com/jmlarios/fantasy-football-tracker/internal/domain/player"
	"github.com/jmlarios/fantasy-football-tracker/internal/domain/stats"
)

// Breakdown category keys, stable across storage and API payloads.
const (
	CategoryAppearance         = "appearance"
	CategoryGoals              = "goals"
	CategoryAssists            = "assists"
	CategoryAssistsWithoutGoal = "assists_without_goal"
	CategoryCleanSheet         = "clean_sheet"
	CategoryGoalsConceded      = "goals_conceded"
	CategoryYellowCards        = "yellow_cards"
	CategoryRedCards           = "red_cards"
	CategorySaves              = "saves"
	CategoryPenaltiesSaved     = "penalties_saved"
	CategoryPenaltiesWon       = "penalties_won"
	CategoryPenaltiesMissed    = "penalties_missed"
	CategoryPenaltiesConceded  = "penalties_conceded"
	CategoryOwnGoals           = "own_goals"
	CategoryBallsRecovered     = "balls_recovered"
	CategoryClearances         = "clearances"
	CategoryShotsOnTarget      = "shots_on_target"
	CategoryDribbles           = "dribbles"
	CategoryEntriesIntoBox     = "entries_into_box"
)

// RuleTable holds every point weight and ratio used by the engine. The
// table is an immutable value: callers copy it, never mutate a shared one.
type RuleTable struct {
	Appearance int

	GoalByPosition       map[player.Position]int
	Assist               int
	AssistWithoutGoal    int
	CleanSheetByPosition map[player.Position]int
	CleanSheetMinMinutes int

	// GoalsConcededPenalty applies to GK and DEF only, once per
	// GoalsConcededPer goals let in.
	GoalsConcededPenalty int
	GoalsConcededPer     int

	YellowCard int
	RedCard    int

	SavesPer    int
	SavesPoints int

	PenaltySaved    int
	PenaltyWon      int
	PenaltyMissed   int
	PenaltyConceded int
	OwnGoal         int

	BallsRecoveredPer    int
	BallsRecoveredPoints int
	ClearancesPer        int
	ClearancesPoints     int
	ShotsOnTargetPer     int
	ShotsOnTargetPoints  int
	DribblesPer          int
	DribblesPoints       int
	EntriesIntoBoxPer    int
	EntriesIntoBoxPoints int
}

func DefaultRuleTable() RuleTable {
	return RuleTable{
		Appearance: 1,
		GoalByPosition: map[player.Position]int{
			player.PositionGoalkeeper: 6,
			player.PositionDefender:   6,
			player.PositionMidfielder: 5,
			player.PositionForward:    4,
		},
		Assist:            3,
		AssistWithoutGoal: 1,
		CleanSheetByPosition: map[player.Position]int{
			player.PositionGoalkeeper: 4,
			player.PositionDefender:   4,
			player.PositionMidfielder: 1,
			player.PositionForward:    0,
		},
		CleanSheetMinMinutes: 60,
		GoalsConcededPenalty: -1,
		GoalsConcededPer:     2,
		YellowCard:           -1,
		RedCard:              -3,
		SavesPer:             3,
		SavesPoints:          1,
		PenaltySaved:         5,
		PenaltyWon:           2,
		PenaltyMissed:        -2,
		PenaltyConceded:      -1,
		OwnGoal:              -2,
		BallsRecoveredPer:    5,
		BallsRecoveredPoints: 1,
		ClearancesPer:        3,
		ClearancesPoints:     1,
		ShotsOnTargetPer:     2,
		ShotsOnTargetPoints:  1,
		DribblesPer:          2,
		DribblesPoints:       1,
		EntriesIntoBoxPer:    2,
		EntriesIntoBoxPoints: 1,
	}
}

// Breakdown is the per-category outcome for one player in one match.
// Categories that scored zero are omitted from the map.
type Breakdown struct {
	Categories map[string]int
	Total      int
}

// ComputePoints scores one stat line. goalsConceded is the number of goals
// the player's real-world team let in; it only matters for GK and DEF.
// A player with zero minutes scores nothing. The total is never clamped.
func ComputePoints(table RuleTable, line stats.PlayerMatchStats, position player.Position, goalsConceded int) Breakdown {
	out := Breakdown{Categories: make(map[string]int)}
	if line.MinutesPlayed <= 0 {
		return out
	}

	add := func(category string, points int) {
		if points == 0 {
			return
		}
		out.Categories[category] += points
		out.Total += points
	}

	add(CategoryAppearance, table.Appearance)
	add(CategoryGoals, line.Goals*table.GoalByPosition[position])
	add(CategoryAssists, line.GoalAssists*table.Assist)
	add(CategoryAssistsWithoutGoal, line.AssistsWithoutGoal*table.AssistWithoutGoal)

	if line.CleanSheet && line.MinutesPlayed >= table.CleanSheetMinMinutes && goalsConceded == 0 {
		add(CategoryCleanSheet, table.CleanSheetByPosition[position])
	}

	defensive := position == player.PositionGoalkeeper || position == player.PositionDefender
	if defensive && table.GoalsConcededPer > 0 {
		add(CategoryGoalsConceded, (goalsConceded/table.GoalsConcededPer)*table.GoalsConcededPenalty)
	}

	add(CategoryYellowCards, line.YellowCards*table.YellowCard)
	add(CategoryRedCards, line.RedCards*table.RedCard)

	if position == player.PositionGoalkeeper {
		if table.SavesPer > 0 {
			add(CategorySaves, (line.Saves/table.SavesPer)*table.SavesPoints)
		}
		add(CategoryPenaltiesSaved, line.PenaltiesSaved*table.PenaltySaved)
	} else {
		add(CategoryPenaltiesMissed, line.PenaltiesMissed*table.PenaltyMissed)
	}

	add(CategoryPenaltiesWon, line.PenaltiesWon*table.PenaltyWon)
	add(CategoryPenaltiesConceded, line.PenaltiesConceded*table.PenaltyConceded)
	add(CategoryOwnGoals, line.OwnGoals*table.OwnGoal)

	if table.BallsRecoveredPer > 0 {
		add(CategoryBallsRecovered, (line.BallsRecovered/table.BallsRecoveredPer)*table.BallsRecoveredPoints)
	}
	if table.ClearancesPer > 0 {
		add(CategoryClearances, (line.Clearances/table.ClearancesPer)*table.ClearancesPoints)
	}
	if table.ShotsOnTargetPer > 0 {
		add(CategoryShotsOnTarget, (line.ShotsOnTarget/table.ShotsOnTargetPer)*table.ShotsOnTargetPoints)
	}
	if table.DribblesPer > 0 {
		add(CategoryDribbles, (line.SuccessfulDribbles/table.DribblesPer)*table.DribblesPoints)
	}
	if table.EntriesIntoBoxPer > 0 {
		add(CategoryEntriesIntoBox, (line.EntriesIntoBox/table.EntriesIntoBoxPer)*table.EntriesIntoBoxPoints)
	}

	return out
}
