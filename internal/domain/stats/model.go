package stats

import "time"

const (
	MatchStatusScheduled = "SCHEDULED"
	MatchStatusFinished  = "FINISHED"
)

// Match is one real-world fixture inside a matchday.
type Match struct {
	ID             string
	Season         string
	MatchdayNumber int
	HomeTeam       string
	AwayTeam       string
	HomeScore      *int
	AwayScore      *int
	KickoffAt      time.Time
	Status         string
}

func (m Match) IsFinished() bool {
	return m.Status == MatchStatusFinished
}

// GoalsConcededBy returns how many goals the given real-world team let in
// during this match, and whether the team took part at all.
func (m Match) GoalsConcededBy(team string) (int, bool) {
	if m.HomeScore == nil || m.AwayScore == nil {
		return 0, false
	}
	switch team {
	case m.HomeTeam:
		return *m.AwayScore, true
	case m.AwayTeam:
		return *m.HomeScore, true
	default:
		return 0, false
	}
}

// PlayerMatchStats is one player's raw performance line for one match,
// produced by the external ingestion pipeline.
type PlayerMatchStats struct {
	PlayerID           string
	MatchID            string
	MinutesPlayed      int
	Goals              int
	GoalAssists        int
	AssistsWithoutGoal int
	CleanSheet         bool
	YellowCards        int
	RedCards           int
	Saves              int
	OwnGoals           int
	PenaltiesSaved     int
	PenaltiesMissed    int
	PenaltiesWon       int
	PenaltiesConceded  int
	BallsRecovered     int
	Clearances         int
	ShotsOnTarget      int
	SuccessfulDribbles int
	EntriesIntoBox     int
}

// PlayerMatchPoints is the persisted scoring outcome keyed by
// (player, match); re-running a matchday overwrites it.
type PlayerMatchPoints struct {
	PlayerID     string
	MatchID      string
	Breakdown    map[string]int
	TotalPoints  int
	CalculatedAt time.Time
}
