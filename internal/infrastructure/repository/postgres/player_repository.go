package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/jmlarios/fantasy-football-tracker/internal/domain/player"
	qb "github.com/jmlarios/fantasy-football-tracker/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"name",
	"team",
	"position",
	"price",
	"is_active",
	"minutes_played",
	"goals",
	"assists",
	"clean_sheets",
	"yellow_cards",
	"red_cards",
	"saves",
	"created_at",
	"updated_at",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.Eq("id", playerID)).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}
	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return []player.Player{}, nil
	}

	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.In("id", stringSliceToAny(playerIDs))).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by ids query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by ids: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out, nil
}

func (r *PlayerRepository) ListActive(ctx context.Context, filter player.ListFilter) ([]player.Player, error) {
	conditions := []qb.Condition{qb.Eq("is_active", true)}
	if filter.Position != "" {
		conditions = append(conditions, qb.Eq("position", string(filter.Position)))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		conditions = append(conditions, qb.Expr("name ILIKE ?", "%"+search+"%"))
	}
	if filter.MinPrice != nil {
		conditions = append(conditions, qb.Expr("price >= ?", *filter.MinPrice))
	}
	if filter.MaxPrice != nil {
		conditions = append(conditions, qb.Expr("price <= ?", *filter.MaxPrice))
	}

	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(conditions...).
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list active players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list active players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out, nil
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:       row.ID,
		Name:     row.Name,
		Team:     row.Team,
		Position: player.Position(row.Position),
		Price:    row.Price,
		IsActive: row.IsActive,
		Totals: player.SeasonTotals{
			MinutesPlayed: row.MinutesPlayed,
			Goals:         row.Goals,
			Assists:       row.Assists,
			CleanSheets:   row.CleanSheets,
			YellowCards:   row.YellowCards,
			RedCards:      row.RedCards,
			Saves:         row.Saves,
		},
	}
}
