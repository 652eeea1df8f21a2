package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/jmlarios/fantasy-football-tracker/internal/domain/transfer"
	"github.com/jmlarios/fantasy-football-tracker/internal/infrastructure/repository/memory"
	"github.com/jmlarios/fantasy-football-tracker/internal/platform/id"
)

func newOfferFixture(t *testing.T) (*OfferService, *memory.Store) {
	t.Helper()

	store := memory.SeedStore()
	openNow := func() time.Time { return time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC) }

	matchdaySvc := NewMatchdayService(memory.NewMatchdayRepository(store))
	matchdaySvc.now = openNow

	transferRepo := memory.NewTransferRepository(store)
	service := NewOfferService(
		memory.NewSquadRepository(store),
		transferRepo,
		transferRepo,
		matchdaySvc,
		id.NewRandomGenerator(),
	)
	service.now = openNow
	return service, store
}

func moneyOfferCommand() CreateOfferCommand {
	return CreateOfferCommand{
		LeagueID:     memory.SeedLeagueID,
		FromSquadID:  "lsq-alice",
		ToSquadID:    "lsq-bruno",
		PlayerID:     "pl-mid-04",
		Kind:         "money",
		MoneyOffered: 30,
		DropPlayerID: "pl-fwd-04",
		ActingUserID: "user-alice",
	}
}

func TestOfferService_CreateMoneyOffer(t *testing.T) {
	service, _ := newOfferFixture(t)

	offer, err := service.CreateOffer(t.Context(), moneyOfferCommand())
	if err != nil {
		t.Fatalf("create offer failed: %v", err)
	}
	if offer.Status != transfer.StatusPending {
		t.Fatalf("expected pending offer, got %s", offer.Status)
	}
	wantExpiry := time.Date(2025, 8, 22, 18, 0, 0, 0, time.UTC)
	if !offer.ExpiresAt.Equal(wantExpiry) {
		t.Fatalf("expected expiry at the matchday deadline %v, got %v", wantExpiry, offer.ExpiresAt)
	}
}

func TestOfferService_CreateOffer_DuplicatePending(t *testing.T) {
	service, _ := newOfferFixture(t)

	if _, err := service.CreateOffer(t.Context(), moneyOfferCommand()); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	_, err := service.CreateOffer(t.Context(), moneyOfferCommand())
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on duplicate pending offer, got %v", err)
	}
}

func TestOfferService_CreateOffer_Validation(t *testing.T) {
	service, _ := newOfferFixture(t)

	tests := []struct {
		name      string
		mutate    func(*CreateOfferCommand)
		targetErr error
	}{
		{
			name:      "same squad both sides",
			mutate:    func(c *CreateOfferCommand) { c.ToSquadID = c.FromSquadID },
			targetErr: ErrInvalidInput,
		},
		{
			name:      "unknown kind",
			mutate:    func(c *CreateOfferCommand) { c.Kind = "barter" },
			targetErr: ErrInvalidInput,
		},
		{
			name:      "not the from-squad owner",
			mutate:    func(c *CreateOfferCommand) { c.ActingUserID = "user-bruno" },
			targetErr: ErrUnauthorized,
		},
		{
			name:      "player not owned by receiving squad",
			mutate:    func(c *CreateOfferCommand) { c.PlayerID = "pl-fwd-05" },
			targetErr: ErrInvalidInput,
		},
		{
			name:      "zero money",
			mutate:    func(c *CreateOfferCommand) { c.MoneyOffered = 0 },
			targetErr: ErrInvalidInput,
		},
		{
			name:      "money above remaining budget",
			mutate:    func(c *CreateOfferCommand) { c.MoneyOffered = 5000 },
			targetErr: ErrInvalidInput,
		},
		{
			name:      "money offer without drop player",
			mutate:    func(c *CreateOfferCommand) { c.DropPlayerID = "" },
			targetErr: ErrInvalidInput,
		},
		{
			name:      "drop player not owned by buyer",
			mutate:    func(c *CreateOfferCommand) { c.DropPlayerID = "pl-mid-02" },
			targetErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := moneyOfferCommand()
			tt.mutate(&cmd)
			_, err := service.CreateOffer(t.Context(), cmd)
			if !errors.Is(err, tt.targetErr) {
				t.Fatalf("expected %v, got %v", tt.targetErr, err)
			}
		})
	}
}

func TestOfferService_AcceptMoneyOffer_SettlesSymmetrically(t *testing.T) {
	service, store := newOfferFixture(t)

	offer, err := service.CreateOffer(t.Context(), moneyOfferCommand())
	if err != nil {
		t.Fatalf("create offer failed: %v", err)
	}

	result, err := service.Accept(t.Context(), offer.ID, "user-bruno")
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected settlement success")
	}

	squadRepo := memory.NewSquadRepository(store)
	alice, _, _ := squadRepo.GetLeagueSquad(t.Context(), memory.SeedLeagueID, "lsq-alice")
	bruno, _, _ := squadRepo.GetLeagueSquad(t.Context(), memory.SeedLeagueID, "lsq-bruno")

	if !alice.HasPlayer("pl-mid-04") || alice.HasPlayer("pl-fwd-04") {
		t.Fatalf("expected requested player with buyer and drop player gone")
	}
	if !bruno.HasPlayer("pl-fwd-04") || bruno.HasPlayer("pl-mid-04") {
		t.Fatalf("expected drop player with seller and requested player gone")
	}
	if alice.TotalBudget != 970 || bruno.TotalBudget != 1030 {
		t.Fatalf("expected symmetric budget movement, got buyer=%d seller=%d", alice.TotalBudget, bruno.TotalBudget)
	}

	aliceUser, _, _ := squadRepo.GetUserSquad(t.Context(), "user-alice")
	brunoUser, _, _ := squadRepo.GetUserSquad(t.Context(), "user-bruno")
	if !aliceUser.HasPlayer("pl-mid-04") || aliceUser.HasPlayer("pl-fwd-04") {
		t.Fatalf("expected the buy mirrored into the buyer's persistent squad")
	}
	if !brunoUser.HasPlayer("pl-fwd-04") || brunoUser.HasPlayer("pl-mid-04") {
		t.Fatalf("expected the sale mirrored into the seller's persistent squad")
	}

	transferRepo := memory.NewTransferRepository(store)
	stored, _, _ := transferRepo.GetOffer(t.Context(), offer.ID)
	if stored.Status != transfer.StatusAccepted || stored.RespondedAt == nil {
		t.Fatalf("expected accepted offer with responded timestamp, got %+v", stored)
	}

	aliceHistory, _ := transferRepo.ListHistoryBySquad(t.Context(), memory.SeedLeagueID, "lsq-alice")
	brunoHistory, _ := transferRepo.ListHistoryBySquad(t.Context(), memory.SeedLeagueID, "lsq-bruno")
	if len(aliceHistory) != 1 || len(brunoHistory) != 1 {
		t.Fatalf("expected one history row per side, got %d and %d", len(aliceHistory), len(brunoHistory))
	}
	if aliceHistory[0].Cost != 30 || brunoHistory[0].Cost != -30 {
		t.Fatalf("expected mirrored costs, got %d and %d", aliceHistory[0].Cost, brunoHistory[0].Cost)
	}

	// Terminal states are reachable exactly once.
	if _, err := service.Accept(t.Context(), offer.ID, "user-bruno"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on second accept, got %v", err)
	}
}

func TestOfferService_AcceptExchangeOffer_SwapsPlayers(t *testing.T) {
	service, store := newOfferFixture(t)

	offer, err := service.CreateOffer(t.Context(), CreateOfferCommand{
		LeagueID:        memory.SeedLeagueID,
		FromSquadID:     "lsq-alice",
		ToSquadID:       "lsq-bruno",
		PlayerID:        "pl-def-05",
		Kind:            "player_exchange",
		OfferedPlayerID: "pl-def-04",
		ActingUserID:    "user-alice",
	})
	if err != nil {
		t.Fatalf("create exchange offer failed: %v", err)
	}

	if _, err := service.Accept(t.Context(), offer.ID, "user-bruno"); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	squadRepo := memory.NewSquadRepository(store)
	alice, _, _ := squadRepo.GetLeagueSquad(t.Context(), memory.SeedLeagueID, "lsq-alice")
	bruno, _, _ := squadRepo.GetLeagueSquad(t.Context(), memory.SeedLeagueID, "lsq-bruno")

	if !alice.HasPlayer("pl-def-05") || alice.HasPlayer("pl-def-04") {
		t.Fatalf("expected players swapped on the offering side")
	}
	if !bruno.HasPlayer("pl-def-04") || bruno.HasPlayer("pl-def-05") {
		t.Fatalf("expected players swapped on the receiving side")
	}
	if alice.TotalBudget != 1000 || bruno.TotalBudget != 1000 {
		t.Fatalf("exchange must not move money, got %d and %d", alice.TotalBudget, bruno.TotalBudget)
	}
}

func TestOfferService_Accept_SyncsUserSquads(t *testing.T) {
	service, store := newOfferFixture(t)

	offer, err := service.CreateOffer(t.Context(), CreateOfferCommand{
		LeagueID:        memory.SeedLeagueID,
		FromSquadID:     "lsq-alice",
		ToSquadID:       "lsq-bruno",
		PlayerID:        "pl-def-05",
		Kind:            "player_exchange",
		OfferedPlayerID: "pl-def-04",
		ActingUserID:    "user-alice",
	})
	if err != nil {
		t.Fatalf("create exchange offer failed: %v", err)
	}
	if _, err := service.Accept(t.Context(), offer.ID, "user-bruno"); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	squadRepo := memory.NewSquadRepository(store)
	aliceUser, _, err := squadRepo.GetUserSquad(t.Context(), "user-alice")
	if err != nil {
		t.Fatalf("get user squad: %v", err)
	}
	brunoUser, _, err := squadRepo.GetUserSquad(t.Context(), "user-bruno")
	if err != nil {
		t.Fatalf("get user squad: %v", err)
	}

	if !aliceUser.HasPlayer("pl-def-05") || aliceUser.HasPlayer("pl-def-04") {
		t.Fatalf("expected the swap mirrored into the sender's persistent squad, members: %+v", aliceUser.Members)
	}
	if !brunoUser.HasPlayer("pl-def-04") || brunoUser.HasPlayer("pl-def-05") {
		t.Fatalf("expected the swap mirrored into the receiver's persistent squad, members: %+v", brunoUser.Members)
	}
}

func TestOfferService_Accept_OnlyReceiverMayAccept(t *testing.T) {
	service, _ := newOfferFixture(t)

	offer, err := service.CreateOffer(t.Context(), moneyOfferCommand())
	if err != nil {
		t.Fatalf("create offer failed: %v", err)
	}
	if _, err := service.Accept(t.Context(), offer.ID, "user-alice"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestOfferService_Accept_ExpiredOfferFlipsLazily(t *testing.T) {
	service, store := newOfferFixture(t)

	offer, err := service.CreateOffer(t.Context(), moneyOfferCommand())
	if err != nil {
		t.Fatalf("create offer failed: %v", err)
	}

	service.now = func() time.Time { return offer.ExpiresAt.Add(time.Minute) }
	if _, err := service.Accept(t.Context(), offer.ID, "user-bruno"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for expired offer, got %v", err)
	}

	stored, _, _ := memory.NewTransferRepository(store).GetOffer(t.Context(), offer.ID)
	if stored.Status != transfer.StatusExpired {
		t.Fatalf("expected stored status expired, got %s", stored.Status)
	}
}

func TestOfferService_RejectAndCancel(t *testing.T) {
	service, store := newOfferFixture(t)
	transferRepo := memory.NewTransferRepository(store)

	offer, err := service.CreateOffer(t.Context(), moneyOfferCommand())
	if err != nil {
		t.Fatalf("create offer failed: %v", err)
	}

	if err := service.Cancel(t.Context(), offer.ID, "user-bruno"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("only the sender may cancel, got %v", err)
	}
	if err := service.Reject(t.Context(), offer.ID, "user-alice"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("only the receiver may reject, got %v", err)
	}

	if err := service.Reject(t.Context(), offer.ID, "user-bruno"); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	stored, _, _ := transferRepo.GetOffer(t.Context(), offer.ID)
	if stored.Status != transfer.StatusRejected {
		t.Fatalf("expected rejected, got %s", stored.Status)
	}

	// A rejected offer is terminal for every lifecycle action.
	if err := service.Cancel(t.Context(), offer.ID, "user-alice"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on cancelling a terminal offer, got %v", err)
	}

	second, err := service.CreateOffer(t.Context(), moneyOfferCommand())
	if err != nil {
		t.Fatalf("recreate after reject failed: %v", err)
	}
	if err := service.Cancel(t.Context(), second.ID, "user-alice"); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	stored, _, _ = transferRepo.GetOffer(t.Context(), second.ID)
	if stored.Status != transfer.StatusCancelled {
		t.Fatalf("expected cancelled, got %s", stored.Status)
	}
}

func TestOfferService_ListOffers_FlagsExpired(t *testing.T) {
	service, _ := newOfferFixture(t)

	offer, err := service.CreateOffer(t.Context(), moneyOfferCommand())
	if err != nil {
		t.Fatalf("create offer failed: %v", err)
	}

	service.now = func() time.Time { return offer.ExpiresAt.Add(time.Hour) }
	received, err := service.ListOffers(t.Context(), memory.SeedLeagueID, "lsq-bruno", transfer.DirectionReceived)
	if err != nil {
		t.Fatalf("list offers failed: %v", err)
	}
	if len(received) != 1 || !received[0].Expired {
		t.Fatalf("expected one functionally expired offer, got %+v", received)
	}

	sent, err := service.ListOffers(t.Context(), memory.SeedLeagueID, "lsq-alice", transfer.DirectionSent)
	if err != nil {
		t.Fatalf("list sent offers failed: %v", err)
	}
	if len(sent) != 1 {
		t.Fatalf("expected the offer in the sender's view, got %d", len(sent))
	}
}
