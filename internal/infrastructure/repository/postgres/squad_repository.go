package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jmlarios/fantasy-football-tracker/internal/domain/player"
	"github.com/jmlarios/fantasy-football-tracker/internal/domain/squad"
	qb "github.com/jmlarios/fantasy-football-tracker/internal/platform/querybuilder"
)

type SquadRepository struct {
	db *sqlx.DB
}

var squadSelectColumns = []string{
	"id",
	"user_id",
	"league_id",
	"name",
	"total_budget",
	"points",
	"rank",
	"created_at",
	"updated_at",
}

func NewSquadRepository(db *sqlx.DB) *SquadRepository {
	return &SquadRepository{db: db}
}

func (r *SquadRepository) GetByID(ctx context.Context, squadID string) (squad.Squad, bool, error) {
	return r.getOne(ctx, qb.Eq("id", squadID))
}

func (r *SquadRepository) GetUserSquad(ctx context.Context, userID string) (squad.Squad, bool, error) {
	// The persistent squad is the one row per user with no league attached.
	return r.getOne(ctx, qb.Eq("user_id", userID), qb.Eq("league_id", ""))
}

func (r *SquadRepository) GetLeagueSquad(ctx context.Context, leagueID, squadID string) (squad.Squad, bool, error) {
	return r.getOne(ctx, qb.Eq("id", squadID), qb.Eq("league_id", leagueID))
}

func (r *SquadRepository) getOne(ctx context.Context, conditions ...qb.Condition) (squad.Squad, bool, error) {
	query, args, err := qb.Select(squadSelectColumns...).From("squads").
		Where(conditions...).
		ToSQL()
	if err != nil {
		return squad.Squad{}, false, fmt.Errorf("build select squad query: %w", err)
	}

	var row squadTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return squad.Squad{}, false, nil
		}
		return squad.Squad{}, false, fmt.Errorf("get squad: %w", err)
	}

	members, err := r.listMembers(ctx, row.ID)
	if err != nil {
		return squad.Squad{}, false, err
	}
	return squadFromRow(row, members), true, nil
}

func (r *SquadRepository) ListByLeague(ctx context.Context, leagueID string) ([]squad.Squad, error) {
	query, args, err := qb.Select(squadSelectColumns...).From("squads").
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list squads query: %w", err)
	}

	var rows []squadTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list squads by league: %w", err)
	}

	out := make([]squad.Squad, 0, len(rows))
	for _, row := range rows {
		members, err := r.listMembers(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, squadFromRow(row, members))
	}
	return out, nil
}

func (r *SquadRepository) FindOwner(ctx context.Context, leagueID, playerID string) (squad.Ownership, bool, error) {
	const query = `
SELECT s.id, s.name
FROM squads s
JOIN squad_members m ON m.squad_id = s.id
WHERE s.league_id = $1
  AND m.player_id = $2`

	var row struct {
		ID   string `db:"id"`
		Name string `db:"name"`
	}
	if err := r.db.GetContext(ctx, &row, query, leagueID, playerID); err != nil {
		if isNotFound(err) {
			return squad.Ownership{}, false, nil
		}
		return squad.Ownership{}, false, fmt.Errorf("find player owner: %w", err)
	}
	return squad.Ownership{SquadID: row.ID, SquadName: row.Name}, true, nil
}

func (r *SquadRepository) ListOwnedPlayerIDs(ctx context.Context, leagueID string) ([]string, error) {
	const query = `
SELECT DISTINCT m.player_id
FROM squad_members m
JOIN squads s ON s.id = m.squad_id
WHERE s.league_id = $1
ORDER BY m.player_id`

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, leagueID); err != nil {
		return nil, fmt.Errorf("list owned player ids: %w", err)
	}
	return ids, nil
}

func (r *SquadRepository) SetMatchdayPoints(ctx context.Context, leagueID, squadID string, matchdayNumber, points int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for matchday points: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const upsertQuery = `
INSERT INTO squad_matchday_points (league_id, squad_id, matchday_number, points)
VALUES ($1, $2, $3, $4)
ON CONFLICT (league_id, squad_id, matchday_number)
DO UPDATE SET points = EXCLUDED.points`
	if _, err := tx.ExecContext(ctx, upsertQuery, leagueID, squadID, matchdayNumber, points); err != nil {
		return fmt.Errorf("upsert squad matchday points: %w", err)
	}

	// Running total is always recomputed from the per-matchday rows, so
	// reprocessing a round replaces its contribution instead of adding to it.
	const totalQuery = `
UPDATE squads
SET points = (
    SELECT COALESCE(SUM(p.points), 0)
    FROM squad_matchday_points p
    WHERE p.league_id = $1
      AND p.squad_id = squads.id
),
    updated_at = NOW()
WHERE id = $2
  AND league_id = $1`
	if _, err := tx.ExecContext(ctx, totalQuery, leagueID, squadID); err != nil {
		return fmt.Errorf("recompute squad total points: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit matchday points tx: %w", err)
	}
	return nil
}

func (r *SquadRepository) UpdateRanks(ctx context.Context, leagueID string) error {
	const query = `
UPDATE squads
SET rank = ranked.new_rank,
    updated_at = NOW()
FROM (
    SELECT id, DENSE_RANK() OVER (ORDER BY points DESC) AS new_rank
    FROM squads
    WHERE league_id = $1
) ranked
WHERE squads.id = ranked.id
  AND squads.league_id = $1`
	if _, err := r.db.ExecContext(ctx, query, leagueID); err != nil {
		return fmt.Errorf("update league ranks: %w", err)
	}
	return nil
}

func (r *SquadRepository) listMembers(ctx context.Context, squadID string) ([]squad.Member, error) {
	const query = `
SELECT squad_id, player_id, position, price, is_captain, is_vice_captain, added_matchday
FROM squad_members
WHERE squad_id = $1
ORDER BY player_id`

	var rows []squadMemberTableModel
	if err := r.db.SelectContext(ctx, &rows, query, squadID); err != nil {
		return nil, fmt.Errorf("list squad members: %w", err)
	}

	members := make([]squad.Member, 0, len(rows))
	for _, row := range rows {
		members = append(members, squad.Member{
			PlayerID:      row.PlayerID,
			Position:      player.Position(row.Position),
			Price:         row.Price,
			IsCaptain:     row.IsCaptain,
			IsViceCaptain: row.IsViceCaptain,
			AddedMatchday: row.AddedMatchday,
		})
	}
	return members, nil
}

func squadFromRow(row squadTableModel, members []squad.Member) squad.Squad {
	return squad.Squad{
		ID:          row.ID,
		UserID:      row.UserID,
		LeagueID:    row.LeagueID,
		Name:        row.Name,
		TotalBudget: row.TotalBudget,
		Members:     members,
		Points:      row.Points,
		Rank:        row.Rank,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
