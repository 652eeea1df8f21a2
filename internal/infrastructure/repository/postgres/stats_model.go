package postgres

import "time"

type matchTableModel struct {
	ID             string    `db:"id"`
	Season         string    `db:"season"`
	MatchdayNumber int       `db:"matchday_number"`
	HomeTeam       string    `db:"home_team"`
	AwayTeam       string    `db:"away_team"`
	HomeScore      *int      `db:"home_score"`
	AwayScore      *int      `db:"away_score"`
	KickoffAt      time.Time `db:"kickoff_at"`
	Status         string    `db:"status"`
}

type statLineTableModel struct {
	PlayerID           string `db:"player_id"`
	MatchID            string `db:"match_id"`
	MinutesPlayed      int    `db:"minutes_played"`
	Goals              int    `db:"goals"`
	GoalAssists        int    `db:"goal_assists"`
	AssistsWithoutGoal int    `db:"assists_without_goal"`
	CleanSheet         bool   `db:"clean_sheet"`
	YellowCards        int    `db:"yellow_cards"`
	RedCards           int    `db:"red_cards"`
	Saves              int    `db:"saves"`
	OwnGoals           int    `db:"own_goals"`
	PenaltiesSaved     int    `db:"penalties_saved"`
	PenaltiesMissed    int    `db:"penalties_missed"`
	PenaltiesWon       int    `db:"penalties_won"`
	PenaltiesConceded  int    `db:"penalties_conceded"`
	BallsRecovered     int    `db:"balls_recovered"`
	Clearances         int    `db:"clearances"`
	ShotsOnTarget      int    `db:"shots_on_target"`
	SuccessfulDribbles int    `db:"successful_dribbles"`
	EntriesIntoBox     int    `db:"entries_into_box"`
}

type pointsTableModel struct {
	PlayerID     string    `db:"player_id"`
	MatchID      string    `db:"match_id"`
	Breakdown    []byte    `db:"breakdown"`
	TotalPoints  int       `db:"total_points"`
	CalculatedAt time.Time `db:"calculated_at"`
}
