package scoring

import (
	"testing"

	"github.com/jmlarios/fantasy-football-tracker/internal/domain/player"
	"github.com/jmlarios/fantasy-football-tracker/internal/domain/stats"
)

func TestComputePoints(t *testing.T) {
	table := DefaultRuleTable()

	tests := []struct {
		name          string
		line          stats.PlayerMatchStats
		position      player.Position
		goalsConceded int
		wantTotal     int
		wantCategory  map[string]int
	}{
		{
			name:      "zero minutes scores nothing",
			line:      stats.PlayerMatchStats{MinutesPlayed: 0, Goals: 2},
			position:  player.PositionForward,
			wantTotal: 0,
		},
		{
			name:      "forward brace",
			line:      stats.PlayerMatchStats{MinutesPlayed: 90, Goals: 2, GoalAssists: 1},
			position:  player.PositionForward,
			wantTotal: 1 + 2*4 + 3,
			wantCategory: map[string]int{
				CategoryAppearance: 1,
				CategoryGoals:      8,
				CategoryAssists:    3,
			},
		},
		{
			name:          "midfielder goal worth five",
			line:          stats.PlayerMatchStats{MinutesPlayed: 70, Goals: 1},
			position:      player.PositionMidfielder,
			wantTotal:     1 + 5,
			wantCategory:  map[string]int{CategoryGoals: 5},
			goalsConceded: 3,
		},
		{
			name: "goalkeeper clean sheet with saves and penalty save",
			line: stats.PlayerMatchStats{
				MinutesPlayed:  90,
				CleanSheet:     true,
				Saves:          7,
				PenaltiesSaved: 1,
			},
			position:  player.PositionGoalkeeper,
			wantTotal: 1 + 4 + 2 + 5,
			wantCategory: map[string]int{
				CategoryCleanSheet:     4,
				CategorySaves:          2,
				CategoryPenaltiesSaved: 5,
			},
		},
		{
			name:          "clean sheet denied below sixty minutes",
			line:          stats.PlayerMatchStats{MinutesPlayed: 45, CleanSheet: true},
			position:      player.PositionDefender,
			goalsConceded: 0,
			wantTotal:     1,
		},
		{
			name:          "clean sheet denied when team conceded",
			line:          stats.PlayerMatchStats{MinutesPlayed: 90, CleanSheet: true},
			position:      player.PositionDefender,
			goalsConceded: 2,
			wantTotal:     1 - 1,
			wantCategory:  map[string]int{CategoryGoalsConceded: -1},
		},
		{
			name:          "conceded penalty applies per two goals",
			line:          stats.PlayerMatchStats{MinutesPlayed: 90},
			position:      player.PositionGoalkeeper,
			goalsConceded: 5,
			wantTotal:     1 - 2,
			wantCategory:  map[string]int{CategoryGoalsConceded: -2},
		},
		{
			name:          "conceded penalty skipped for midfielders",
			line:          stats.PlayerMatchStats{MinutesPlayed: 90},
			position:      player.PositionMidfielder,
			goalsConceded: 4,
			wantTotal:     1,
		},
		{
			name: "cards and own goal",
			line: stats.PlayerMatchStats{
				MinutesPlayed: 80,
				YellowCards:   1,
				RedCards:      1,
				OwnGoals:      1,
			},
			position:  player.PositionDefender,
			wantTotal: 1 - 1 - 3 - 2,
			wantCategory: map[string]int{
				CategoryYellowCards: -1,
				CategoryRedCards:    -3,
				CategoryOwnGoals:    -2,
			},
		},
		{
			name:      "penalty missed hits outfield players",
			line:      stats.PlayerMatchStats{MinutesPlayed: 90, PenaltiesMissed: 1, PenaltiesWon: 1},
			position:  player.PositionForward,
			wantTotal: 1 - 2 + 2,
			wantCategory: map[string]int{
				CategoryPenaltiesMissed: -2,
				CategoryPenaltiesWon:    2,
			},
		},
		{
			name:      "penalty missed ignored for goalkeepers",
			line:      stats.PlayerMatchStats{MinutesPlayed: 90, PenaltiesMissed: 1},
			position:  player.PositionGoalkeeper,
			wantTotal: 1 + 4,
		},
		{
			name: "volume stats accrue per ratio",
			line: stats.PlayerMatchStats{
				MinutesPlayed:      90,
				BallsRecovered:     11,
				Clearances:         7,
				ShotsOnTarget:      3,
				SuccessfulDribbles: 4,
				EntriesIntoBox:     5,
			},
			position:      player.PositionMidfielder,
			goalsConceded: 1,
			wantTotal:     1 + 2 + 2 + 1 + 2 + 2,
			wantCategory: map[string]int{
				CategoryBallsRecovered: 2,
				CategoryClearances:     2,
				CategoryShotsOnTarget:  1,
				CategoryDribbles:       2,
				CategoryEntriesIntoBox: 2,
			},
		},
		{
			name:      "negative total stays negative",
			line:      stats.PlayerMatchStats{MinutesPlayed: 30, RedCards: 1, OwnGoals: 1},
			position:  player.PositionForward,
			wantTotal: 1 - 3 - 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputePoints(table, tt.line, tt.position, tt.goalsConceded)
			if got.Total != tt.wantTotal {
				t.Fatalf("total = %d, want %d (breakdown %v)", got.Total, tt.wantTotal, got.Categories)
			}
			for category, want := range tt.wantCategory {
				if got.Categories[category] != want {
					t.Fatalf("category %s = %d, want %d", category, got.Categories[category], want)
				}
			}
		})
	}
}

func TestComputePointsZeroCategoriesOmitted(t *testing.T) {
	got := ComputePoints(DefaultRuleTable(), stats.PlayerMatchStats{MinutesPlayed: 90}, player.PositionForward, 0)
	if len(got.Categories) != 1 {
		t.Fatalf("expected only the appearance category, got %v", got.Categories)
	}
	if got.Categories[CategoryAppearance] != 1 {
		t.Fatalf("appearance = %d, want 1", got.Categories[CategoryAppearance])
	}
}
