package memory

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jmlarios/fantasy-football-tracker/internal/domain/transfer"
	"github.com/jmlarios/fantasy-football-tracker/internal/platform/id"
)

type brokenIDGenerator struct {
	calls     int
	failAfter int
}

func (g *brokenIDGenerator) NewID() (string, error) {
	g.calls++
	if g.calls > g.failAfter {
		return "", errors.New("entropy source exhausted")
	}
	return fmt.Sprintf("hist-%d", g.calls), nil
}

func pendingExchangeOffer() transfer.Offer {
	return transfer.Offer{
		ID:            "offer-ex-01",
		LeagueID:      SeedLeagueID,
		FromSquadID:   "lsq-alice",
		ToSquadID:     "lsq-bruno",
		PlayerID:      "pl-def-05",
		Kind:          transfer.KindPlayerExchange,
		OfferedPlayer: "pl-def-04",
		Status:        transfer.StatusPending,
		CreatedAt:     time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC),
		ExpiresAt:     time.Date(2025, 8, 22, 18, 0, 0, 0, time.UTC),
	}
}

func TestTransferRepository_SettleOffer_AllOrNothing(t *testing.T) {
	store := SeedStore()
	repo := NewTransferRepository(store)

	offer := pendingExchangeOffer()
	if err := repo.CreateOffer(t.Context(), offer); err != nil {
		t.Fatalf("create offer failed: %v", err)
	}

	// The second history row's ID generation fails mid-settlement.
	store.idGen = &brokenIDGenerator{failAfter: 1}

	settlement := transfer.OfferSettlement{
		Offer:           offer,
		FromUserSquadID: "usq-alice",
		ToUserSquadID:   "usq-bruno",
		MatchdayNumber:  2,
		SettledAt:       time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC),
	}
	if err := repo.SettleOffer(t.Context(), settlement); err == nil {
		t.Fatalf("expected settlement to fail")
	}

	stored, _, err := repo.GetOffer(t.Context(), offer.ID)
	if err != nil {
		t.Fatalf("get offer: %v", err)
	}
	if stored.Status != transfer.StatusPending {
		t.Fatalf("failed settlement must leave the offer pending, got %s", stored.Status)
	}

	history, err := repo.ListHistoryBySquad(t.Context(), SeedLeagueID, "lsq-alice")
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("failed settlement must write no history, got %d rows", len(history))
	}

	for squadID, playerID := range map[string]string{
		"lsq-alice": "pl-def-04",
		"lsq-bruno": "pl-def-05",
		"usq-alice": "pl-def-04",
		"usq-bruno": "pl-def-05",
	} {
		sq, ok := store.squads[squadID]
		if !ok || !sq.HasPlayer(playerID) {
			t.Fatalf("failed settlement must leave squad %s unchanged", squadID)
		}
	}

	// With a working generator the same settlement goes through whole.
	store.idGen = id.NewRandomGenerator()
	if err := repo.SettleOffer(t.Context(), settlement); err != nil {
		t.Fatalf("settle after recovery failed: %v", err)
	}
	if !store.squads["usq-alice"].HasPlayer("pl-def-05") || !store.squads["usq-bruno"].HasPlayer("pl-def-04") {
		t.Fatalf("expected the swap mirrored into both persistent squads")
	}
	history, _ = repo.ListHistoryBySquad(t.Context(), SeedLeagueID, "lsq-alice")
	if len(history) != 1 {
		t.Fatalf("expected one history row for the sender, got %d", len(history))
	}
}
