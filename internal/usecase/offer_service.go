package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmlarios/fantasy-football-tracker/internal/domain/squad"
	"github.com/jmlarios/fantasy-football-tracker/internal/domain/transfer"
	"github.com/jmlarios/fantasy-football-tracker/internal/platform/id"
)

const defaultOfferTTL = 7 * 24 * time.Hour

// OfferService runs the bilateral offer lifecycle: create, list, accept,
// reject, cancel. Acceptance settles through the ledger so membership changes,
// budget movement and the status flip land as one unit.
type OfferService struct {
	squadRepo    squad.Repository
	transferRepo transfer.Repository
	ledger       transfer.Ledger
	matchdaySvc  *MatchdayService
	idGen        id.Generator
	now          func() time.Time
}

func NewOfferService(
	squadRepo squad.Repository,
	transferRepo transfer.Repository,
	ledger transfer.Ledger,
	matchdaySvc *MatchdayService,
	idGen id.Generator,
) *OfferService {
	return &OfferService{
		squadRepo:    squadRepo,
		transferRepo: transferRepo,
		ledger:       ledger,
		matchdaySvc:  matchdaySvc,
		idGen:        idGen,
		now:          time.Now,
	}
}

type CreateOfferCommand struct {
	LeagueID     string
	FromSquadID  string
	ToSquadID    string
	PlayerID     string
	Kind         string
	MoneyOffered int64
	// OfferedPlayerID is the player the offering squad gives up in an
	// exchange offer.
	OfferedPlayerID string
	// DropPlayerID is the player the buyer sends back in a money offer.
	DropPlayerID string
	ActingUserID string
}

// OfferView is an offer as presented to clients: stored state plus the lazy
// expiry flag.
type OfferView struct {
	Offer   transfer.Offer
	Expired bool
}

func (c *CreateOfferCommand) clean() {
	c.LeagueID = strings.TrimSpace(c.LeagueID)
	c.FromSquadID = strings.TrimSpace(c.FromSquadID)
	c.ToSquadID = strings.TrimSpace(c.ToSquadID)
	c.PlayerID = strings.TrimSpace(c.PlayerID)
	c.Kind = strings.TrimSpace(c.Kind)
	c.OfferedPlayerID = strings.TrimSpace(c.OfferedPlayerID)
	c.DropPlayerID = strings.TrimSpace(c.DropPlayerID)
	c.ActingUserID = strings.TrimSpace(c.ActingUserID)
}

func (s *OfferService) CreateOffer(ctx context.Context, cmd CreateOfferCommand) (transfer.Offer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OfferService.CreateOffer")
	defer span.End()

	cmd.clean()
	if cmd.LeagueID == "" || cmd.FromSquadID == "" || cmd.ToSquadID == "" || cmd.PlayerID == "" {
		return transfer.Offer{}, fmt.Errorf("%w: league, both squads and player are required", ErrInvalidInput)
	}
	if cmd.FromSquadID == cmd.ToSquadID {
		return transfer.Offer{}, fmt.Errorf("%w: an offer cannot target the offering squad", ErrInvalidInput)
	}
	kind, err := transfer.ParseOfferKind(cmd.Kind)
	if err != nil {
		return transfer.Offer{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	fromSquad, found, err := s.squadRepo.GetLeagueSquad(ctx, cmd.LeagueID, cmd.FromSquadID)
	if err != nil {
		return transfer.Offer{}, fmt.Errorf("get offering squad: %w", err)
	}
	if !found {
		return transfer.Offer{}, fmt.Errorf("%w: squad %s not found in league %s", ErrNotFound, cmd.FromSquadID, cmd.LeagueID)
	}
	if fromSquad.UserID != cmd.ActingUserID {
		return transfer.Offer{}, fmt.Errorf("%w: user does not own squad %s", ErrUnauthorized, cmd.FromSquadID)
	}

	toSquad, found, err := s.squadRepo.GetLeagueSquad(ctx, cmd.LeagueID, cmd.ToSquadID)
	if err != nil {
		return transfer.Offer{}, fmt.Errorf("get receiving squad: %w", err)
	}
	if !found {
		return transfer.Offer{}, fmt.Errorf("%w: squad %s not found in league %s", ErrNotFound, cmd.ToSquadID, cmd.LeagueID)
	}

	now := s.now()
	window, werr := s.matchdaySvc.CurrentWindow(ctx)
	haveWindow := werr == nil
	if werr != nil && !errors.Is(werr, ErrNotFound) {
		return transfer.Offer{}, werr
	}
	if haveWindow && window.Locked(now) {
		return transfer.Offer{}, fmt.Errorf("%w: transfer window is locked for matchday %d", ErrConflict, window.Number)
	}

	if !toSquad.HasPlayer(cmd.PlayerID) {
		return transfer.Offer{}, fmt.Errorf("%w: player %s is not owned by squad %s", ErrInvalidInput, cmd.PlayerID, cmd.ToSquadID)
	}

	switch kind {
	case transfer.KindMoney:
		if cmd.MoneyOffered <= 0 {
			return transfer.Offer{}, fmt.Errorf("%w: money offered must be greater than zero", ErrInvalidInput)
		}
		if cmd.MoneyOffered > fromSquad.RemainingBudget() {
			return transfer.Offer{}, fmt.Errorf("%w: offered amount %d exceeds remaining budget %d", ErrInvalidInput, cmd.MoneyOffered, fromSquad.RemainingBudget())
		}
		if cmd.DropPlayerID == "" {
			return transfer.Offer{}, fmt.Errorf("%w: money offers must name a player to drop", ErrInvalidInput)
		}
		if !fromSquad.HasPlayer(cmd.DropPlayerID) {
			return transfer.Offer{}, fmt.Errorf("%w: drop player %s is not owned by squad %s", ErrInvalidInput, cmd.DropPlayerID, cmd.FromSquadID)
		}
	case transfer.KindPlayerExchange:
		if cmd.OfferedPlayerID == "" {
			return transfer.Offer{}, fmt.Errorf("%w: exchange offers must name an offered player", ErrInvalidInput)
		}
		if !fromSquad.HasPlayer(cmd.OfferedPlayerID) {
			return transfer.Offer{}, fmt.Errorf("%w: offered player %s is not owned by squad %s", ErrInvalidInput, cmd.OfferedPlayerID, cmd.FromSquadID)
		}
	}

	offerID, err := s.idGen.NewID()
	if err != nil {
		return transfer.Offer{}, fmt.Errorf("generate offer id: %w", err)
	}

	expiresAt := now.Add(defaultOfferTTL)
	if haveWindow && !window.Deadline.IsZero() && window.Deadline.After(now) {
		expiresAt = window.Deadline
	}

	offer := transfer.Offer{
		ID:            offerID,
		LeagueID:      cmd.LeagueID,
		FromSquadID:   cmd.FromSquadID,
		ToSquadID:     cmd.ToSquadID,
		PlayerID:      cmd.PlayerID,
		Kind:          kind,
		MoneyOffered:  cmd.MoneyOffered,
		OfferedPlayer: cmd.OfferedPlayerID,
		DropPlayer:    cmd.DropPlayerID,
		Status:        transfer.StatusPending,
		CreatedAt:     now,
		ExpiresAt:     expiresAt,
	}

	if err := s.transferRepo.CreateOffer(ctx, offer); err != nil {
		if errors.Is(err, transfer.ErrDuplicatePending) {
			return transfer.Offer{}, fmt.Errorf("%w: a pending offer for this player already exists", ErrConflict)
		}
		return transfer.Offer{}, fmt.Errorf("create offer: %w", err)
	}

	return offer, nil
}

// ListOffers returns the pending offers a squad has received or sent,
// flagging the ones whose expiry has already passed.
func (s *OfferService) ListOffers(ctx context.Context, leagueID, squadID string, direction transfer.OfferDirection) ([]OfferView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OfferService.ListOffers")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	squadID = strings.TrimSpace(squadID)
	if leagueID == "" || squadID == "" {
		return nil, fmt.Errorf("%w: league id and squad id are required", ErrInvalidInput)
	}
	if direction != transfer.DirectionReceived && direction != transfer.DirectionSent {
		return nil, fmt.Errorf("%w: direction must be %q or %q", ErrInvalidInput, transfer.DirectionReceived, transfer.DirectionSent)
	}

	offers, err := s.transferRepo.ListPendingOffers(ctx, leagueID, squadID, direction)
	if err != nil {
		return nil, fmt.Errorf("list pending offers: %w", err)
	}

	now := s.now()
	views := make([]OfferView, 0, len(offers))
	for _, offer := range offers {
		views = append(views, OfferView{
			Offer:   offer,
			Expired: offer.FunctionallyExpired(now),
		})
	}
	return views, nil
}

// Accept settles a pending offer. Only the receiving squad's owner may accept,
// and an offer whose expiry already passed is flipped to expired instead.
func (s *OfferService) Accept(ctx context.Context, offerID, actingUserID string) (ExecutionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OfferService.Accept")
	defer span.End()

	offer, err := s.loadPendingOffer(ctx, offerID)
	if err != nil {
		return ExecutionResult{}, err
	}

	toSquad, found, err := s.squadRepo.GetLeagueSquad(ctx, offer.LeagueID, offer.ToSquadID)
	if err != nil {
		return ExecutionResult{}, fmt.Errorf("get receiving squad: %w", err)
	}
	if !found {
		return ExecutionResult{}, fmt.Errorf("%w: squad %s not found in league %s", ErrNotFound, offer.ToSquadID, offer.LeagueID)
	}
	if toSquad.UserID != strings.TrimSpace(actingUserID) {
		return ExecutionResult{}, fmt.Errorf("%w: only the receiving squad owner can accept", ErrUnauthorized)
	}

	now := s.now()
	if offer.FunctionallyExpired(now) {
		if err := s.transferRepo.UpdateOfferStatus(ctx, offer.ID, transfer.StatusExpired, &now); err != nil && !errors.Is(err, transfer.ErrNotPending) {
			return ExecutionResult{}, fmt.Errorf("expire offer: %w", err)
		}
		return ExecutionResult{}, fmt.Errorf("%w: offer has expired", ErrConflict)
	}

	fromSquad, found, err := s.squadRepo.GetLeagueSquad(ctx, offer.LeagueID, offer.FromSquadID)
	if err != nil {
		return ExecutionResult{}, fmt.Errorf("get offering squad: %w", err)
	}
	if !found {
		return ExecutionResult{}, fmt.Errorf("%w: squad %s not found in league %s", ErrNotFound, offer.FromSquadID, offer.LeagueID)
	}

	// Settlement mirrors the membership moves into both owners' persistent
	// squads, so both must be resolved up front.
	fromUserSquad, found, err := s.squadRepo.GetUserSquad(ctx, fromSquad.UserID)
	if err != nil {
		return ExecutionResult{}, fmt.Errorf("get offering user squad: %w", err)
	}
	if !found {
		return ExecutionResult{}, fmt.Errorf("%w: user squad for user %s not found", ErrNotFound, fromSquad.UserID)
	}
	toUserSquad, found, err := s.squadRepo.GetUserSquad(ctx, toSquad.UserID)
	if err != nil {
		return ExecutionResult{}, fmt.Errorf("get receiving user squad: %w", err)
	}
	if !found {
		return ExecutionResult{}, fmt.Errorf("%w: user squad for user %s not found", ErrNotFound, toSquad.UserID)
	}

	window, err := s.matchdaySvc.CurrentWindow(ctx)
	matchdayNumber := 0
	if err == nil {
		matchdayNumber = window.Number
	} else if !errors.Is(err, ErrNotFound) {
		return ExecutionResult{}, err
	}

	err = s.ledger.SettleOffer(ctx, transfer.OfferSettlement{
		Offer:           offer,
		FromUserSquadID: fromUserSquad.ID,
		ToUserSquadID:   toUserSquad.ID,
		MatchdayNumber:  matchdayNumber,
		SettledAt:       now,
	})
	if err != nil {
		if errors.Is(err, transfer.ErrNotPending) {
			return ExecutionResult{}, fmt.Errorf("%w: offer is no longer pending", ErrConflict)
		}
		return ExecutionResult{}, fmt.Errorf("settle offer: %w", err)
	}

	return ExecutionResult{
		Success:        true,
		Message:        fmt.Sprintf("offer %s accepted", offer.ID),
		MatchdayNumber: matchdayNumber,
	}, nil
}

// Reject declines a pending offer. Only the receiving squad's owner may
// reject; no squad state changes.
func (s *OfferService) Reject(ctx context.Context, offerID, actingUserID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.OfferService.Reject")
	defer span.End()

	offer, err := s.loadPendingOffer(ctx, offerID)
	if err != nil {
		return err
	}
	return s.respond(ctx, offer, offer.ToSquadID, actingUserID, transfer.StatusRejected)
}

// Cancel withdraws a pending offer. Only the offering squad's owner may
// cancel; no squad state changes.
func (s *OfferService) Cancel(ctx context.Context, offerID, actingUserID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.OfferService.Cancel")
	defer span.End()

	offer, err := s.loadPendingOffer(ctx, offerID)
	if err != nil {
		return err
	}
	return s.respond(ctx, offer, offer.FromSquadID, actingUserID, transfer.StatusCancelled)
}

func (s *OfferService) respond(ctx context.Context, offer transfer.Offer, ownerSquadID, actingUserID string, status transfer.OfferStatus) error {
	ownerSquad, found, err := s.squadRepo.GetLeagueSquad(ctx, offer.LeagueID, ownerSquadID)
	if err != nil {
		return fmt.Errorf("get squad for offer response: %w", err)
	}
	if !found {
		return fmt.Errorf("%w: squad %s not found in league %s", ErrNotFound, ownerSquadID, offer.LeagueID)
	}
	if ownerSquad.UserID != strings.TrimSpace(actingUserID) {
		return fmt.Errorf("%w: user does not own squad %s", ErrUnauthorized, ownerSquadID)
	}

	now := s.now()
	if err := s.transferRepo.UpdateOfferStatus(ctx, offer.ID, status, &now); err != nil {
		if errors.Is(err, transfer.ErrNotPending) {
			return fmt.Errorf("%w: offer is no longer pending", ErrConflict)
		}
		return fmt.Errorf("update offer status: %w", err)
	}
	return nil
}

func (s *OfferService) loadPendingOffer(ctx context.Context, offerID string) (transfer.Offer, error) {
	offerID = strings.TrimSpace(offerID)
	if offerID == "" {
		return transfer.Offer{}, fmt.Errorf("%w: offer id is required", ErrInvalidInput)
	}

	offer, found, err := s.transferRepo.GetOffer(ctx, offerID)
	if err != nil {
		return transfer.Offer{}, fmt.Errorf("get offer: %w", err)
	}
	if !found {
		return transfer.Offer{}, fmt.Errorf("%w: offer %s not found", ErrNotFound, offerID)
	}
	if offer.Status != transfer.StatusPending {
		return transfer.Offer{}, fmt.Errorf("%w: offer is %s", ErrConflict, offer.Status)
	}
	return offer, nil
}
