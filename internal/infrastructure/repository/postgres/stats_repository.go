package postgres

import (
	"context"
	"fmt"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/jmlarios/fantasy-football-tracker/internal/domain/stats"
	qb "github.com/jmlarios/fantasy-football-tracker/internal/platform/querybuilder"
)

type StatsRepository struct {
	db *sqlx.DB
}

var matchSelectColumns = []string{
	"id",
	"season",
	"matchday_number",
	"home_team",
	"away_team",
	"home_score",
	"away_score",
	"kickoff_at",
	"status",
}

var statLineSelectColumns = []string{
	"player_id",
	"match_id",
	"minutes_played",
	"goals",
	"goal_assists",
	"assists_without_goal",
	"clean_sheet",
	"yellow_cards",
	"red_cards",
	"saves",
	"own_goals",
	"penalties_saved",
	"penalties_missed",
	"penalties_won",
	"penalties_conceded",
	"balls_recovered",
	"clearances",
	"shots_on_target",
	"successful_dribbles",
	"entries_into_box",
}

func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) ListFinishedMatches(ctx context.Context, season string, matchdayNumber int) ([]stats.Match, error) {
	query, args, err := qb.Select(matchSelectColumns...).From("matches").
		Where(
			qb.Eq("season", season),
			qb.Eq("matchday_number", matchdayNumber),
			qb.Eq("status", stats.MatchStatusFinished),
		).
		OrderBy("kickoff_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list finished matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list finished matches: %w", err)
	}

	out := make([]stats.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, stats.Match{
			ID:             row.ID,
			Season:         row.Season,
			MatchdayNumber: row.MatchdayNumber,
			HomeTeam:       row.HomeTeam,
			AwayTeam:       row.AwayTeam,
			HomeScore:      row.HomeScore,
			AwayScore:      row.AwayScore,
			KickoffAt:      row.KickoffAt,
			Status:         row.Status,
		})
	}
	return out, nil
}

func (r *StatsRepository) ListStatsByMatch(ctx context.Context, matchID string) ([]stats.PlayerMatchStats, error) {
	query, args, err := qb.Select(statLineSelectColumns...).From("player_match_stats").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list match stats query: %w", err)
	}

	var rows []statLineTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list match stats: %w", err)
	}

	out := make([]stats.PlayerMatchStats, 0, len(rows))
	for _, row := range rows {
		out = append(out, stats.PlayerMatchStats{
			PlayerID:           row.PlayerID,
			MatchID:            row.MatchID,
			MinutesPlayed:      row.MinutesPlayed,
			Goals:              row.Goals,
			GoalAssists:        row.GoalAssists,
			AssistsWithoutGoal: row.AssistsWithoutGoal,
			CleanSheet:         row.CleanSheet,
			YellowCards:        row.YellowCards,
			RedCards:           row.RedCards,
			Saves:              row.Saves,
			OwnGoals:           row.OwnGoals,
			PenaltiesSaved:     row.PenaltiesSaved,
			PenaltiesMissed:    row.PenaltiesMissed,
			PenaltiesWon:       row.PenaltiesWon,
			PenaltiesConceded:  row.PenaltiesConceded,
			BallsRecovered:     row.BallsRecovered,
			Clearances:         row.Clearances,
			ShotsOnTarget:      row.ShotsOnTarget,
			SuccessfulDribbles: row.SuccessfulDribbles,
			EntriesIntoBox:     row.EntriesIntoBox,
		})
	}
	return out, nil
}

func (r *StatsRepository) UpsertPoints(ctx context.Context, points stats.PlayerMatchPoints) error {
	breakdown, err := sonic.Marshal(points.Breakdown)
	if err != nil {
		return fmt.Errorf("marshal points breakdown: %w", err)
	}

	const query = `
INSERT INTO player_match_points (player_id, match_id, breakdown, total_points, calculated_at)
VALUES (:player_id, :match_id, :breakdown, :total_points, :calculated_at)
ON CONFLICT (player_id, match_id)
DO UPDATE SET
    breakdown = EXCLUDED.breakdown,
    total_points = EXCLUDED.total_points,
    calculated_at = EXCLUDED.calculated_at`
	model := pointsTableModel{
		PlayerID:     points.PlayerID,
		MatchID:      points.MatchID,
		Breakdown:    breakdown,
		TotalPoints:  points.TotalPoints,
		CalculatedAt: points.CalculatedAt,
	}
	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("upsert player match points: %w", err)
	}
	return nil
}

func (r *StatsRepository) GetPoints(ctx context.Context, playerID, matchID string) (*stats.PlayerMatchPoints, error) {
	const query = `
SELECT player_id, match_id, breakdown, total_points, calculated_at
FROM player_match_points
WHERE player_id = $1
  AND match_id = $2`

	var row pointsTableModel
	if err := r.db.GetContext(ctx, &row, query, playerID, matchID); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get player match points: %w", err)
	}

	breakdown := map[string]int{}
	if len(row.Breakdown) > 0 {
		if err := sonic.Unmarshal(row.Breakdown, &breakdown); err != nil {
			return nil, fmt.Errorf("unmarshal points breakdown: %w", err)
		}
	}
	return &stats.PlayerMatchPoints{
		PlayerID:     row.PlayerID,
		MatchID:      row.MatchID,
		Breakdown:    breakdown,
		TotalPoints:  row.TotalPoints,
		CalculatedAt: row.CalculatedAt,
	}, nil
}

func (r *StatsRepository) ListPointsByMatchday(ctx context.Context, season string, matchdayNumber int) (map[string]int, error) {
	const query = `
SELECT p.player_id, SUM(p.total_points) AS total
FROM player_match_points p
JOIN matches m ON m.id = p.match_id
WHERE m.season = $1
  AND m.matchday_number = $2
GROUP BY p.player_id`

	var rows []struct {
		PlayerID string `db:"player_id"`
		Total    int    `db:"total"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, season, matchdayNumber); err != nil {
		return nil, fmt.Errorf("list points by matchday: %w", err)
	}

	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.PlayerID] = row.Total
	}
	return out, nil
}
