package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jmlarios/fantasy-football-tracker/internal/domain/matchday"
	qb "github.com/jmlarios/fantasy-football-tracker/internal/platform/querybuilder"
)

type MatchdayRepository struct {
	db *sqlx.DB
}

var matchdaySelectColumns = []string{
	"id",
	"number",
	"season",
	"start_date",
	"end_date",
	"deadline",
	"is_active",
	"is_finished",
	"points_calculated",
}

func NewMatchdayRepository(db *sqlx.DB) *MatchdayRepository {
	return &MatchdayRepository{db: db}
}

func (r *MatchdayRepository) GetByNumber(ctx context.Context, season string, number int) (matchday.Matchday, bool, error) {
	return r.getOne(ctx, nil, qb.Eq("season", season), qb.Eq("number", number))
}

func (r *MatchdayRepository) GetActive(ctx context.Context) (matchday.Matchday, bool, error) {
	return r.getOne(ctx, []string{"start_date"}, qb.Eq("is_active", true))
}

func (r *MatchdayRepository) GetNextUnfinished(ctx context.Context) (matchday.Matchday, bool, error) {
	return r.getOne(ctx, []string{"start_date"}, qb.Eq("is_finished", false))
}

func (r *MatchdayRepository) getOne(ctx context.Context, orderBy []string, conditions ...qb.Condition) (matchday.Matchday, bool, error) {
	builder := qb.Select(matchdaySelectColumns...).From("matchdays").Where(conditions...)
	if len(orderBy) > 0 {
		builder = builder.OrderBy(orderBy...).Limit(1)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return matchday.Matchday{}, false, fmt.Errorf("build select matchday query: %w", err)
	}

	var row matchdayTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return matchday.Matchday{}, false, nil
		}
		return matchday.Matchday{}, false, fmt.Errorf("get matchday: %w", err)
	}
	return matchdayFromRow(row), true, nil
}

func (r *MatchdayRepository) ListBySeason(ctx context.Context, season string) ([]matchday.Matchday, error) {
	query, args, err := qb.Select(matchdaySelectColumns...).From("matchdays").
		Where(qb.Eq("season", season)).
		OrderBy("number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matchdays query: %w", err)
	}

	var rows []matchdayTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matchdays by season: %w", err)
	}

	out := make([]matchday.Matchday, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchdayFromRow(row))
	}
	return out, nil
}

func (r *MatchdayRepository) SetStatus(ctx context.Context, matchdayID string, active, finished bool) error {
	query, args, err := qb.Update("matchdays").
		Set("is_active", active).
		Set("is_finished", finished).
		Where(qb.Eq("id", matchdayID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update matchday status query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update matchday status: %w", err)
	}
	return nil
}

func (r *MatchdayRepository) MarkPointsCalculated(ctx context.Context, matchdayID string) error {
	query, args, err := qb.Update("matchdays").
		Set("points_calculated", true).
		Where(qb.Eq("id", matchdayID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build mark points calculated query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("mark matchday points calculated: %w", err)
	}
	return nil
}

func matchdayFromRow(row matchdayTableModel) matchday.Matchday {
	return matchday.Matchday{
		ID:               row.ID,
		Number:           row.Number,
		Season:           row.Season,
		StartDate:        row.StartDate,
		EndDate:          row.EndDate,
		Deadline:         row.Deadline,
		IsActive:         row.IsActive,
		IsFinished:       row.IsFinished,
		PointsCalculated: row.PointsCalculated,
	}
}
