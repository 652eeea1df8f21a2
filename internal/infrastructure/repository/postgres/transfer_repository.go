package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/jmlarios/fantasy-football-tracker/internal/domain/transfer"
	"github.com/jmlarios/fantasy-football-tracker/internal/platform/id"
	qb "github.com/jmlarios/fantasy-football-tracker/internal/platform/querybuilder"
)

const uniqueViolationCode = "23505"

// TransferRepository persists offers and history, and doubles as the
// transfer ledger: every multi-squad mutation runs in one transaction with
// the contended player rows locked up front, so racing acquisitions
// serialize on the database instead of on application memory.
type TransferRepository struct {
	db    *sqlx.DB
	idGen id.Generator
}

var offerSelectColumns = []string{
	"id",
	"league_id",
	"from_squad_id",
	"to_squad_id",
	"player_id",
	"kind",
	"money_offered",
	"offered_player_id",
	"drop_player_id",
	"status",
	"created_at",
	"expires_at",
	"responded_at",
}

var historySelectColumns = []string{
	"id",
	"league_id",
	"squad_id",
	"matchday_number",
	"type",
	"player_in_id",
	"player_out_id",
	"cost",
	"counterparty_id",
	"offer_id",
	"is_free_transfer",
	"created_at",
}

func NewTransferRepository(db *sqlx.DB, idGen id.Generator) *TransferRepository {
	return &TransferRepository{db: db, idGen: idGen}
}

func (r *TransferRepository) CreateOffer(ctx context.Context, offer transfer.Offer) error {
	const query = `
INSERT INTO transfer_offers (
    id, league_id, from_squad_id, to_squad_id, player_id,
    kind, money_offered, offered_player_id, drop_player_id,
    status, created_at, expires_at
) VALUES (
    :id, :league_id, :from_squad_id, :to_squad_id, :player_id,
    :kind, :money_offered, :offered_player_id, :drop_player_id,
    :status, :created_at, :expires_at
)`
	model := offerTableModel{
		ID:              offer.ID,
		LeagueID:        offer.LeagueID,
		FromSquadID:     offer.FromSquadID,
		ToSquadID:       offer.ToSquadID,
		PlayerID:        offer.PlayerID,
		Kind:            string(offer.Kind),
		MoneyOffered:    offer.MoneyOffered,
		OfferedPlayerID: offer.OfferedPlayer,
		DropPlayerID:    offer.DropPlayer,
		Status:          string(offer.Status),
		CreatedAt:       offer.CreatedAt,
		ExpiresAt:       offer.ExpiresAt,
	}
	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		// A partial unique index on pending (from, to, player) triples turns
		// the duplicate check into a constraint instead of a read-then-write.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolationCode {
			return transfer.ErrDuplicatePending
		}
		return fmt.Errorf("insert transfer offer: %w", err)
	}
	return nil
}

func (r *TransferRepository) GetOffer(ctx context.Context, offerID string) (transfer.Offer, bool, error) {
	query, args, err := qb.Select(offerSelectColumns...).From("transfer_offers").
		Where(qb.Eq("id", offerID)).
		ToSQL()
	if err != nil {
		return transfer.Offer{}, false, fmt.Errorf("build select offer query: %w", err)
	}

	var row offerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return transfer.Offer{}, false, nil
		}
		return transfer.Offer{}, false, fmt.Errorf("get transfer offer: %w", err)
	}
	return offerFromRow(row), true, nil
}

func (r *TransferRepository) ListPendingOffers(ctx context.Context, leagueID, squadID string, direction transfer.OfferDirection) ([]transfer.Offer, error) {
	sideColumn := "to_squad_id"
	if direction == transfer.DirectionSent {
		sideColumn = "from_squad_id"
	}

	query, args, err := qb.Select(offerSelectColumns...).From("transfer_offers").
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq(sideColumn, squadID),
			qb.Eq("status", string(transfer.StatusPending)),
		).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list pending offers query: %w", err)
	}

	var rows []offerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list pending offers: %w", err)
	}

	out := make([]transfer.Offer, 0, len(rows))
	for _, row := range rows {
		out = append(out, offerFromRow(row))
	}
	return out, nil
}

func (r *TransferRepository) UpdateOfferStatus(ctx context.Context, offerID string, status transfer.OfferStatus, respondedAt *time.Time) error {
	const query = `
UPDATE transfer_offers
SET status = $1,
    responded_at = $2
WHERE id = $3
  AND status = $4`
	res, err := r.db.ExecContext(ctx, query, string(status), respondedAt, offerID, string(transfer.StatusPending))
	if err != nil {
		return fmt.Errorf("update offer status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update offer status rows affected: %w", err)
	}
	if affected == 0 {
		var exists bool
		if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM transfer_offers WHERE id = $1)`, offerID); err != nil {
			return fmt.Errorf("check offer existence: %w", err)
		}
		if !exists {
			return fmt.Errorf("offer %s not found", offerID)
		}
		return transfer.ErrNotPending
	}
	return nil
}

func (r *TransferRepository) ListHistoryBySquad(ctx context.Context, leagueID, squadID string) ([]transfer.History, error) {
	query, args, err := qb.Select(historySelectColumns...).From("transfer_history").
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("squad_id", squadID),
		).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list transfer history query: %w", err)
	}

	var rows []historyTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list transfer history: %w", err)
	}

	out := make([]transfer.History, 0, len(rows))
	for _, row := range rows {
		out = append(out, transfer.History{
			ID:             row.ID,
			LeagueID:       row.LeagueID,
			SquadID:        row.SquadID,
			MatchdayNumber: row.MatchdayNumber,
			Type:           row.Type,
			PlayerInID:     row.PlayerInID,
			PlayerOutID:    row.PlayerOutID,
			Cost:           row.Cost,
			CounterpartyID: row.CounterpartyID,
			OfferID:        row.OfferID,
			IsFreeTransfer: row.IsFreeTransfer,
			CreatedAt:      row.CreatedAt,
		})
	}
	return out, nil
}

func (r *TransferRepository) ApplyFreeAgent(ctx context.Context, app transfer.FreeAgentApplication) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for free agent: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Lock the incoming player's row first: two squads racing for the same
	// free agent serialize here, and the loser sees the winner's membership.
	if err := lockPlayerRows(ctx, tx, app.PlayerInID); err != nil {
		return err
	}

	var ownerCount int
	const ownedQuery = `
SELECT COUNT(*)
FROM squad_members m
JOIN squads s ON s.id = m.squad_id
WHERE s.league_id = $1
  AND m.player_id = $2`
	if err := tx.GetContext(ctx, &ownerCount, ownedQuery, app.LeagueID, app.PlayerInID); err != nil {
		return fmt.Errorf("check player ownership: %w", err)
	}
	if ownerCount > 0 {
		return transfer.ErrPlayerOwned
	}

	if app.PlayerOutID != "" {
		if err := removeMemberTx(ctx, tx, app.SquadID, app.PlayerOutID); err != nil {
			return err
		}
		if err := removeMemberTx(ctx, tx, app.UserSquadID, app.PlayerOutID); err != nil {
			return err
		}
	}

	for _, squadID := range []string{app.SquadID, app.UserSquadID} {
		if err := insertMemberTx(ctx, tx, squadID, app.PlayerInID, app.MatchdayNumber); err != nil {
			return err
		}
	}

	if err := assertNonNegativeBudget(ctx, tx, app.SquadID); err != nil {
		return err
	}

	historyID, err := r.idGen.NewID()
	if err != nil {
		return fmt.Errorf("generate history id: %w", err)
	}
	if err := insertHistoryTx(ctx, tx, historyTableModel{
		ID:             historyID,
		LeagueID:       app.LeagueID,
		SquadID:        app.SquadID,
		MatchdayNumber: app.MatchdayNumber,
		Type:           transfer.HistoryTypeFreeAgent,
		PlayerInID:     app.PlayerInID,
		PlayerOutID:    app.PlayerOutID,
		Cost:           app.Cost,
		IsFreeTransfer: app.Cost <= 0,
		CreatedAt:      time.Now().UTC(),
	}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit free agent tx: %w", err)
	}
	return nil
}

func (r *TransferRepository) SettleOffer(ctx context.Context, settlement transfer.OfferSettlement) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for offer settlement: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	offer := settlement.Offer

	var status string
	if err := tx.GetContext(ctx, &status, `SELECT status FROM transfer_offers WHERE id = $1 FOR UPDATE`, offer.ID); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("offer %s not found", offer.ID)
		}
		return fmt.Errorf("lock offer row: %w", err)
	}
	if status != string(transfer.StatusPending) {
		return transfer.ErrNotPending
	}

	outgoing := offer.DropPlayer
	historyType := transfer.HistoryTypeUserToUser
	if offer.Kind == transfer.KindPlayerExchange {
		outgoing = offer.OfferedPlayer
		historyType = transfer.HistoryTypePlayerExchange
	}
	if err := lockPlayerRows(ctx, tx, offer.PlayerID, outgoing); err != nil {
		return err
	}

	if owned, err := squadOwnsPlayerTx(ctx, tx, offer.ToSquadID, offer.PlayerID); err != nil {
		return err
	} else if !owned {
		return fmt.Errorf("player %s is no longer owned by squad %s", offer.PlayerID, offer.ToSquadID)
	}
	if owned, err := squadOwnsPlayerTx(ctx, tx, offer.FromSquadID, outgoing); err != nil {
		return err
	} else if !owned {
		return fmt.Errorf("player %s is no longer owned by squad %s", outgoing, offer.FromSquadID)
	}

	if err := movePlayerTx(ctx, tx, offer.ToSquadID, offer.FromSquadID, offer.PlayerID, settlement.MatchdayNumber); err != nil {
		return err
	}
	if err := movePlayerTx(ctx, tx, offer.FromSquadID, offer.ToSquadID, outgoing, settlement.MatchdayNumber); err != nil {
		return err
	}

	// Mirror the membership moves into both owners' persistent squads so the
	// user squads never drift from their league variants.
	if err := movePlayerTx(ctx, tx, settlement.ToUserSquadID, settlement.FromUserSquadID, offer.PlayerID, settlement.MatchdayNumber); err != nil {
		return err
	}
	if err := movePlayerTx(ctx, tx, settlement.FromUserSquadID, settlement.ToUserSquadID, outgoing, settlement.MatchdayNumber); err != nil {
		return err
	}

	if offer.Kind == transfer.KindMoney {
		// The negotiated amount moves between total budgets, zero-sum.
		if err := shiftBudgetTx(ctx, tx, offer.FromSquadID, -offer.MoneyOffered); err != nil {
			return err
		}
		if err := shiftBudgetTx(ctx, tx, offer.ToSquadID, offer.MoneyOffered); err != nil {
			return err
		}
	}

	for _, squadID := range []string{offer.FromSquadID, offer.ToSquadID} {
		if err := assertNonNegativeBudget(ctx, tx, squadID); err != nil {
			return err
		}
	}

	respondedAt := settlement.SettledAt
	res, err := tx.ExecContext(ctx,
		`UPDATE transfer_offers SET status = $1, responded_at = $2 WHERE id = $3 AND status = $4`,
		string(transfer.StatusAccepted), respondedAt, offer.ID, string(transfer.StatusPending))
	if err != nil {
		return fmt.Errorf("accept offer: %w", err)
	}
	if affected, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("accept offer rows affected: %w", err)
	} else if affected == 0 {
		return transfer.ErrNotPending
	}

	rows := []historyTableModel{
		{
			LeagueID:       offer.LeagueID,
			SquadID:        offer.FromSquadID,
			MatchdayNumber: settlement.MatchdayNumber,
			Type:           historyType,
			PlayerInID:     offer.PlayerID,
			PlayerOutID:    outgoing,
			Cost:           offer.MoneyOffered,
			CounterpartyID: offer.ToSquadID,
			OfferID:        offer.ID,
			CreatedAt:      settlement.SettledAt,
		},
		{
			LeagueID:       offer.LeagueID,
			SquadID:        offer.ToSquadID,
			MatchdayNumber: settlement.MatchdayNumber,
			Type:           historyType,
			PlayerInID:     outgoing,
			PlayerOutID:    offer.PlayerID,
			Cost:           -offer.MoneyOffered,
			CounterpartyID: offer.FromSquadID,
			OfferID:        offer.ID,
			CreatedAt:      settlement.SettledAt,
		},
	}
	for _, row := range rows {
		historyID, err := r.idGen.NewID()
		if err != nil {
			return fmt.Errorf("generate history id: %w", err)
		}
		row.ID = historyID
		if err := insertHistoryTx(ctx, tx, row); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit offer settlement tx: %w", err)
	}
	return nil
}

// lockPlayerRows takes row locks on the player catalog in a stable order so
// concurrent settlements touching the same players cannot deadlock.
func lockPlayerRows(ctx context.Context, tx *sqlx.Tx, playerIDs ...string) error {
	ids := make([]string, 0, len(playerIDs))
	for _, playerID := range playerIDs {
		if playerID != "" {
			ids = append(ids, playerID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	if _, err := tx.ExecContext(ctx,
		`SELECT id FROM players WHERE id = ANY($1) ORDER BY id FOR UPDATE`,
		pq.Array(ids)); err != nil {
		return fmt.Errorf("lock player rows: %w", err)
	}
	return nil
}

func squadOwnsPlayerTx(ctx context.Context, tx *sqlx.Tx, squadID, playerID string) (bool, error) {
	var owned bool
	const query = `
SELECT EXISTS (
    SELECT 1 FROM squad_members WHERE squad_id = $1 AND player_id = $2
)`
	if err := tx.GetContext(ctx, &owned, query, squadID, playerID); err != nil {
		return false, fmt.Errorf("check squad membership: %w", err)
	}
	return owned, nil
}

func removeMemberTx(ctx context.Context, tx *sqlx.Tx, squadID, playerID string) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM squad_members WHERE squad_id = $1 AND player_id = $2`,
		squadID, playerID); err != nil {
		return fmt.Errorf("remove member %s from squad %s: %w", playerID, squadID, err)
	}
	return nil
}

// insertMemberTx adds a membership row, refreshing position and price from
// the player catalog.
func insertMemberTx(ctx context.Context, tx *sqlx.Tx, squadID, playerID string, matchdayNumber int) error {
	const query = `
INSERT INTO squad_members (squad_id, player_id, position, price, added_matchday)
SELECT $1, p.id, p.position, p.price, $3
FROM players p
WHERE p.id = $2`
	res, err := tx.ExecContext(ctx, query, squadID, playerID, matchdayNumber)
	if err != nil {
		return fmt.Errorf("insert member %s into squad %s: %w", playerID, squadID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert member rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("player %s not found", playerID)
	}
	return nil
}

func movePlayerTx(ctx context.Context, tx *sqlx.Tx, sourceSquadID, targetSquadID, playerID string, matchdayNumber int) error {
	if err := removeMemberTx(ctx, tx, sourceSquadID, playerID); err != nil {
		return err
	}
	return insertMemberTx(ctx, tx, targetSquadID, playerID, matchdayNumber)
}

func shiftBudgetTx(ctx context.Context, tx *sqlx.Tx, squadID string, delta int64) error {
	if _, err := tx.ExecContext(ctx,
		`UPDATE squads SET total_budget = total_budget + $1, updated_at = NOW() WHERE id = $2`,
		delta, squadID); err != nil {
		return fmt.Errorf("shift budget for squad %s: %w", squadID, err)
	}
	return nil
}

func assertNonNegativeBudget(ctx context.Context, tx *sqlx.Tx, squadID string) error {
	var remaining int64
	const query = `
SELECT s.total_budget - COALESCE(SUM(m.price), 0)
FROM squads s
LEFT JOIN squad_members m ON m.squad_id = s.id
WHERE s.id = $1
GROUP BY s.total_budget`
	if err := tx.GetContext(ctx, &remaining, query, squadID); err != nil {
		return fmt.Errorf("compute remaining budget: %w", err)
	}
	if remaining < 0 {
		return fmt.Errorf("transfer would leave squad %s with negative budget", squadID)
	}
	return nil
}

func insertHistoryTx(ctx context.Context, tx *sqlx.Tx, row historyTableModel) error {
	const query = `
INSERT INTO transfer_history (
    id, league_id, squad_id, matchday_number, type,
    player_in_id, player_out_id, cost, counterparty_id,
    offer_id, is_free_transfer, created_at
) VALUES (
    :id, :league_id, :squad_id, :matchday_number, :type,
    :player_in_id, :player_out_id, :cost, :counterparty_id,
    :offer_id, :is_free_transfer, :created_at
)`
	if _, err := tx.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("insert transfer history: %w", err)
	}
	return nil
}

func offerFromRow(row offerTableModel) transfer.Offer {
	return transfer.Offer{
		ID:            row.ID,
		LeagueID:      row.LeagueID,
		FromSquadID:   row.FromSquadID,
		ToSquadID:     row.ToSquadID,
		PlayerID:      row.PlayerID,
		Kind:          transfer.OfferKind(row.Kind),
		MoneyOffered:  row.MoneyOffered,
		OfferedPlayer: row.OfferedPlayerID,
		DropPlayer:    row.DropPlayerID,
		Status:        transfer.OfferStatus(row.Status),
		CreatedAt:     row.CreatedAt,
		ExpiresAt:     row.ExpiresAt,
		RespondedAt:   row.RespondedAt,
	}
}
