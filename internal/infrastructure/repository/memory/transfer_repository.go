package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jmlarios/fantasy-football-tracker/internal/domain/squad"
	"github.com/jmlarios/fantasy-football-tracker/internal/domain/transfer"
)

// TransferRepository persists offers and history and implements the ledger.
// All ledger mutations run under the store's single write lock, so ownership
// re-checks and multi-squad changes are atomic: two racing acquisitions of
// one player serialize here and exactly one wins.
type TransferRepository struct {
	store *Store
}

func NewTransferRepository(store *Store) *TransferRepository {
	return &TransferRepository{store: store}
}

func (r *TransferRepository) CreateOffer(_ context.Context, offer transfer.Offer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.offers {
		if existing.Status != transfer.StatusPending {
			continue
		}
		if existing.FromSquadID == offer.FromSquadID &&
			existing.ToSquadID == offer.ToSquadID &&
			existing.PlayerID == offer.PlayerID {
			return transfer.ErrDuplicatePending
		}
	}

	r.store.offers[offer.ID] = offer
	return nil
}

func (r *TransferRepository) GetOffer(_ context.Context, offerID string) (transfer.Offer, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	offer, ok := r.store.offers[offerID]
	if !ok {
		return transfer.Offer{}, false, nil
	}
	return offer, true, nil
}

func (r *TransferRepository) ListPendingOffers(_ context.Context, leagueID, squadID string, direction transfer.OfferDirection) ([]transfer.Offer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]transfer.Offer, 0)
	for _, offer := range r.store.offers {
		if offer.LeagueID != leagueID || offer.Status != transfer.StatusPending {
			continue
		}
		switch direction {
		case transfer.DirectionReceived:
			if offer.ToSquadID != squadID {
				continue
			}
		case transfer.DirectionSent:
			if offer.FromSquadID != squadID {
				continue
			}
		default:
			continue
		}
		out = append(out, offer)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *TransferRepository) UpdateOfferStatus(_ context.Context, offerID string, status transfer.OfferStatus, respondedAt *time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return updateOfferStatusLocked(r.store, offerID, status, respondedAt)
}

func (r *TransferRepository) ListHistoryBySquad(_ context.Context, leagueID, squadID string) ([]transfer.History, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]transfer.History, 0)
	for _, row := range r.store.history {
		if row.LeagueID == leagueID && row.SquadID == squadID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *TransferRepository) ApplyFreeAgent(_ context.Context, app transfer.FreeAgentApplication) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	// Ownership re-check under the lock: the validation that ran before us
	// may have raced another acquisition.
	if _, owned := findOwnerLocked(r.store, app.LeagueID, app.PlayerInID); owned {
		return transfer.ErrPlayerOwned
	}

	leagueSquad, ok := r.store.squads[app.SquadID]
	if !ok || leagueSquad.LeagueID != app.LeagueID {
		return fmt.Errorf("league squad %s not found", app.SquadID)
	}
	userSquad, ok := r.store.squads[app.UserSquadID]
	if !ok {
		return fmt.Errorf("user squad %s not found", app.UserSquadID)
	}
	playerIn, ok := r.store.players[app.PlayerInID]
	if !ok {
		return fmt.Errorf("player %s not found", app.PlayerInID)
	}

	if app.PlayerOutID != "" {
		if !leagueSquad.HasPlayer(app.PlayerOutID) {
			return fmt.Errorf("player %s is not in squad %s", app.PlayerOutID, app.SquadID)
		}
		leagueSquad = removeMember(leagueSquad, app.PlayerOutID)
		userSquad = removeMember(userSquad, app.PlayerOutID)
	}

	member := squad.Member{
		PlayerID:      playerIn.ID,
		Position:      playerIn.Position,
		Price:         playerIn.Price,
		AddedMatchday: app.MatchdayNumber,
	}
	leagueSquad.Members = append(leagueSquad.Members, member)
	userSquad.Members = append(userSquad.Members, member)

	if leagueSquad.RemainingBudget() < 0 {
		return fmt.Errorf("transfer would leave squad %s with negative budget", app.SquadID)
	}

	historyID, err := r.store.idGen.NewID()
	if err != nil {
		return fmt.Errorf("generate history id: %w", err)
	}

	r.store.squads[leagueSquad.ID] = leagueSquad
	r.store.squads[userSquad.ID] = userSquad
	r.store.history = append(r.store.history, transfer.History{
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
	})
	return nil
}

func (r *TransferRepository) SettleOffer(_ context.Context, settlement transfer.OfferSettlement) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	offer := settlement.Offer
	stored, ok := r.store.offers[offer.ID]
	if !ok {
		return fmt.Errorf("offer %s not found", offer.ID)
	}
	if stored.Status != transfer.StatusPending {
		return transfer.ErrNotPending
	}

	fromSquad, ok := r.store.squads[offer.FromSquadID]
	if !ok || fromSquad.LeagueID != offer.LeagueID {
		return fmt.Errorf("squad %s not found in league %s", offer.FromSquadID, offer.LeagueID)
	}
	toSquad, ok := r.store.squads[offer.ToSquadID]
	if !ok || toSquad.LeagueID != offer.LeagueID {
		return fmt.Errorf("squad %s not found in league %s", offer.ToSquadID, offer.LeagueID)
	}
	fromUserSquad, ok := r.store.squads[settlement.FromUserSquadID]
	if !ok {
		return fmt.Errorf("user squad %s not found", settlement.FromUserSquadID)
	}
	toUserSquad, ok := r.store.squads[settlement.ToUserSquadID]
	if !ok {
		return fmt.Errorf("user squad %s not found", settlement.ToUserSquadID)
	}
	if !toSquad.HasPlayer(offer.PlayerID) {
		return fmt.Errorf("player %s is no longer owned by squad %s", offer.PlayerID, offer.ToSquadID)
	}

	var historyType string
	switch offer.Kind {
	case transfer.KindMoney:
		if !fromSquad.HasPlayer(offer.DropPlayer) {
			return fmt.Errorf("drop player %s is no longer owned by squad %s", offer.DropPlayer, offer.FromSquadID)
		}
		historyType = transfer.HistoryTypeUserToUser

		toSquad, fromSquad = movePlayer(r.store, toSquad, fromSquad, offer.PlayerID, settlement.MatchdayNumber)
		fromSquad, toSquad = movePlayer(r.store, fromSquad, toSquad, offer.DropPlayer, settlement.MatchdayNumber)

		// The negotiated amount moves between total budgets, zero-sum.
		fromSquad.TotalBudget -= offer.MoneyOffered
		toSquad.TotalBudget += offer.MoneyOffered
	case transfer.KindPlayerExchange:
		if !fromSquad.HasPlayer(offer.OfferedPlayer) {
			return fmt.Errorf("offered player %s is no longer owned by squad %s", offer.OfferedPlayer, offer.FromSquadID)
		}
		historyType = transfer.HistoryTypePlayerExchange

		toSquad, fromSquad = movePlayer(r.store, toSquad, fromSquad, offer.PlayerID, settlement.MatchdayNumber)
		fromSquad, toSquad = movePlayer(r.store, fromSquad, toSquad, offer.OfferedPlayer, settlement.MatchdayNumber)
	default:
		return fmt.Errorf("unknown offer kind %q", offer.Kind)
	}

	playerOutFrom := offer.DropPlayer
	if offer.Kind == transfer.KindPlayerExchange {
		playerOutFrom = offer.OfferedPlayer
	}
	cost := offer.MoneyOffered

	// The persistent squads mirror every membership move so they never drift
	// from their league variants.
	toUserSquad, fromUserSquad = movePlayer(r.store, toUserSquad, fromUserSquad, offer.PlayerID, settlement.MatchdayNumber)
	fromUserSquad, toUserSquad = movePlayer(r.store, fromUserSquad, toUserSquad, playerOutFrom, settlement.MatchdayNumber)

	if fromSquad.RemainingBudget() < 0 || toSquad.RemainingBudget() < 0 {
		return fmt.Errorf("settlement would leave a squad with negative budget")
	}

	// Everything fallible runs before the first store write, so the status
	// flip, history rows and squad writes land together or not at all.
	historyIDs := make([]string, 2)
	for i := range historyIDs {
		historyID, err := r.store.idGen.NewID()
		if err != nil {
			return fmt.Errorf("generate history id: %w", err)
		}
		historyIDs[i] = historyID
	}

	respondedAt := settlement.SettledAt
	if err := updateOfferStatusLocked(r.store, offer.ID, transfer.StatusAccepted, &respondedAt); err != nil {
		return err
	}

	rows := []transfer.History{
		{
			ID:             historyIDs[0],
			LeagueID:       offer.LeagueID,
			SquadID:        offer.FromSquadID,
			MatchdayNumber: settlement.MatchdayNumber,
			Type:           historyType,
			PlayerInID:     offer.PlayerID,
			PlayerOutID:    playerOutFrom,
			Cost:           cost,
			CounterpartyID: offer.ToSquadID,
			OfferID:        offer.ID,
			CreatedAt:      settlement.SettledAt,
		},
		{
			ID:             historyIDs[1],
			LeagueID:       offer.LeagueID,
			SquadID:        offer.ToSquadID,
			MatchdayNumber: settlement.MatchdayNumber,
			Type:           historyType,
			PlayerInID:     playerOutFrom,
			PlayerOutID:    offer.PlayerID,
			Cost:           -cost,
			CounterpartyID: offer.FromSquadID,
			OfferID:        offer.ID,
			CreatedAt:      settlement.SettledAt,
		},
	}
	r.store.history = append(r.store.history, rows...)

	r.store.squads[fromSquad.ID] = fromSquad
	r.store.squads[toSquad.ID] = toSquad
	r.store.squads[fromUserSquad.ID] = fromUserSquad
	r.store.squads[toUserSquad.ID] = toUserSquad
	return nil
}

// updateOfferStatusLocked requires the write lock. Pending is the only state
// a transition may leave from.
func updateOfferStatusLocked(s *Store, offerID string, status transfer.OfferStatus, respondedAt *time.Time) error {
	offer, ok := s.offers[offerID]
	if !ok {
		return fmt.Errorf("offer %s not found", offerID)
	}
	if offer.Status != transfer.StatusPending {
		return transfer.ErrNotPending
	}
	offer.Status = status
	offer.RespondedAt = respondedAt
	s.offers[offerID] = offer
	return nil
}

func removeMember(sq squad.Squad, playerID string) squad.Squad {
	members := make([]squad.Member, 0, len(sq.Members))
	for _, m := range sq.Members {
		if m.PlayerID != playerID {
			members = append(members, m)
		}
	}
	sq.Members = members
	return sq
}

// movePlayer transfers one membership between squads, refreshing price and
// position from the player catalog.
func movePlayer(s *Store, source, target squad.Squad, playerID string, matchdayNumber int) (squad.Squad, squad.Squad) {
	source = removeMember(source, playerID)
	member := squad.Member{PlayerID: playerID, AddedMatchday: matchdayNumber}
	if p, ok := s.players[playerID]; ok {
		member.Position = p.Position
		member.Price = p.Price
	}
	target.Members = append(target.Members, member)
	return source, target
}
