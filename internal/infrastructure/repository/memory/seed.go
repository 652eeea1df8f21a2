package memory

import (
	"time"

	"github.com/jmlarios/fantasy-football-tracker/internal/domain/matchday"
	"github.com/jmlarios/fantasy-football-tracker/internal/domain/player"
	"github.com/jmlarios/fantasy-football-tracker/internal/domain/squad"
	"github.com/jmlarios/fantasy-football-tracker/internal/domain/stats"
)

const (
	SeedLeagueID = "laliga-open-2025"
	SeedSeason   = "2025/2026"
)

// Prices are tenths of a million.
func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "pl-gk-01", Name: "Unai Simon", Team: "Athletic Club", Position: player.PositionGoalkeeper, Price: 55, IsActive: true},
		{ID: "pl-gk-02", Name: "Thibaut Courtois", Team: "Real Madrid", Position: player.PositionGoalkeeper, Price: 60, IsActive: true},
		{ID: "pl-def-01", Name: "Jules Kounde", Team: "Barcelona", Position: player.PositionDefender, Price: 58, IsActive: true},
		{ID: "pl-def-02", Name: "Antonio Rudiger", Team: "Real Madrid", Position: player.PositionDefender, Price: 57, IsActive: true},
		{ID: "pl-def-03", Name: "Robin Le Normand", Team: "Atletico Madrid", Position: player.PositionDefender, Price: 52, IsActive: true},
		{ID: "pl-def-04", Name: "Dani Vivian", Team: "Athletic Club", Position: player.PositionDefender, Price: 48, IsActive: true},
		{ID: "pl-def-05", Name: "Alejandro Balde", Team: "Barcelona", Position: player.PositionDefender, Price: 50, IsActive: true},
		{ID: "pl-mid-01", Name: "Pedri", Team: "Barcelona", Position: player.PositionMidfielder, Price: 85, IsActive: true},
		{ID: "pl-mid-02", Name: "Jude Bellingham", Team: "Real Madrid", Position: player.PositionMidfielder, Price: 110, IsActive: true},
		{ID: "pl-mid-03", Name: "Mikel Merino", Team: "Real Sociedad", Position: player.PositionMidfielder, Price: 62, IsActive: true},
		{ID: "pl-mid-04", Name: "Pablo Barrios", Team: "Atletico Madrid", Position: player.PositionMidfielder, Price: 54, IsActive: true},
		{ID: "pl-mid-05", Name: "Isco", Team: "Real Betis", Position: player.PositionMidfielder, Price: 66, IsActive: true},
		{ID: "pl-fwd-01", Name: "Robert Lewandowski", Team: "Barcelona", Position: player.PositionForward, Price: 95, IsActive: true},
		{ID: "pl-fwd-02", Name: "Vinicius Junior", Team: "Real Madrid", Position: player.PositionForward, Price: 120, IsActive: true},
		{ID: "pl-fwd-03", Name: "Antoine Griezmann", Team: "Atletico Madrid", Position: player.PositionForward, Price: 88, IsActive: true},
		{ID: "pl-fwd-04", Name: "Ayoze Perez", Team: "Villarreal", Position: player.PositionForward, Price: 58, IsActive: true},
		{ID: "pl-fwd-05", Name: "Kike Garcia", Team: "Alaves", Position: player.PositionForward, Price: 42, IsActive: true},
	}
}

func SeedMatchdays() []matchday.Matchday {
	return []matchday.Matchday{
		{
			ID:         "md-01",
			Number:     1,
			Season:     SeedSeason,
			StartDate:  time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2025, 8, 18, 0, 0, 0, 0, time.UTC),
			Deadline:   time.Date(2025, 8, 15, 18, 0, 0, 0, time.UTC),
			IsFinished: true,
		},
		{
			ID:        "md-02",
			Number:    2,
			Season:    SeedSeason,
			StartDate: time.Date(2025, 8, 22, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC),
			Deadline:  time.Date(2025, 8, 22, 18, 0, 0, 0, time.UTC),
			IsActive:  true,
		},
		{
			ID:        "md-03",
			Number:    3,
			Season:    SeedSeason,
			StartDate: time.Date(2025, 8, 29, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
			Deadline:  time.Date(2025, 8, 29, 18, 0, 0, 0, time.UTC),
		},
	}
}

func SeedSquads() []squad.Squad {
	memberA := []squad.Member{
		{PlayerID: "pl-gk-01", Position: player.PositionGoalkeeper, Price: 55},
		{PlayerID: "pl-def-01", Position: player.PositionDefender, Price: 58},
		{PlayerID: "pl-def-03", Position: player.PositionDefender, Price: 52},
		{PlayerID: "pl-def-04", Position: player.PositionDefender, Price: 48},
		{PlayerID: "pl-mid-01", Position: player.PositionMidfielder, Price: 85, IsCaptain: true},
		{PlayerID: "pl-mid-03", Position: player.PositionMidfielder, Price: 62},
		{PlayerID: "pl-fwd-01", Position: player.PositionForward, Price: 95, IsViceCaptain: true},
		{PlayerID: "pl-fwd-04", Position: player.PositionForward, Price: 58},
	}
	memberB := []squad.Member{
		{PlayerID: "pl-gk-02", Position: player.PositionGoalkeeper, Price: 60},
		{PlayerID: "pl-def-02", Position: player.PositionDefender, Price: 57},
		{PlayerID: "pl-def-05", Position: player.PositionDefender, Price: 50},
		{PlayerID: "pl-mid-02", Position: player.PositionMidfielder, Price: 110, IsCaptain: true},
		{PlayerID: "pl-mid-04", Position: player.PositionMidfielder, Price: 54},
		{PlayerID: "pl-fwd-02", Position: player.PositionForward, Price: 120, IsViceCaptain: true},
	}

	return []squad.Squad{
		{ID: "usq-alice", UserID: "user-alice", Name: "Alice FC", TotalBudget: 1000, Members: append([]squad.Member(nil), memberA...)},
		{ID: "usq-bruno", UserID: "user-bruno", Name: "Bruno CF", TotalBudget: 1000, Members: append([]squad.Member(nil), memberB...)},
		{ID: "lsq-alice", UserID: "user-alice", LeagueID: SeedLeagueID, Name: "Alice FC", TotalBudget: 1000, Members: append([]squad.Member(nil), memberA...)},
		{ID: "lsq-bruno", UserID: "user-bruno", LeagueID: SeedLeagueID, Name: "Bruno CF", TotalBudget: 1000, Members: append([]squad.Member(nil), memberB...)},
	}
}

func SeedMatches() []stats.Match {
	home := 2
	away := 0
	return []stats.Match{
		{
			ID:             "match-001",
			Season:         SeedSeason,
			MatchdayNumber: 1,
			HomeTeam:       "Barcelona",
			AwayTeam:       "Real Madrid",
			HomeScore:      &home,
			AwayScore:      &away,
			KickoffAt:      time.Date(2025, 8, 16, 19, 0, 0, 0, time.UTC),
			Status:         stats.MatchStatusFinished,
		},
	}
}

func SeedStatLines() []stats.PlayerMatchStats {
	return []stats.PlayerMatchStats{
		{PlayerID: "pl-mid-01", MatchID: "match-001", MinutesPlayed: 90, Goals: 1, GoalAssists: 1, CleanSheet: true},
		{PlayerID: "pl-fwd-01", MatchID: "match-001", MinutesPlayed: 85, Goals: 1, ShotsOnTarget: 3},
		{PlayerID: "pl-def-01", MatchID: "match-001", MinutesPlayed: 90, CleanSheet: true, Clearances: 6},
		{PlayerID: "pl-gk-02", MatchID: "match-001", MinutesPlayed: 90, Saves: 4},
		{PlayerID: "pl-mid-02", MatchID: "match-001", MinutesPlayed: 90, YellowCards: 1},
		{PlayerID: "pl-fwd-02", MatchID: "match-001", MinutesPlayed: 90, PenaltiesMissed: 1},
	}
}

// SeedStore builds a fully seeded store for local runs and tests.
func SeedStore() *Store {
	store := NewStore()
	for _, p := range SeedPlayers() {
		store.PutPlayer(p)
	}
	for _, md := range SeedMatchdays() {
		store.PutMatchday(md)
	}
	for _, sq := range SeedSquads() {
		store.PutSquad(sq)
	}
	for _, m := range SeedMatches() {
		store.PutMatch(m)
	}
	for _, line := range SeedStatLines() {
		store.PutStatLine(line)
	}
	return store
}
