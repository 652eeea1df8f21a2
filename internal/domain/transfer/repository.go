package transfer

import (
	"context"
	"time"
)

// OfferDirection selects which side of an offer listing to return.
type OfferDirection string

const (
	DirectionReceived OfferDirection = "received"
	DirectionSent     OfferDirection = "sent"
)

// Repository persists offers and transfer history.
type Repository interface {
	// CreateOffer persists a pending offer. Returns ErrDuplicatePending when a
	// pending offer for the same (from, to, player) triple already exists.
	CreateOffer(ctx context.Context, offer Offer) error
	GetOffer(ctx context.Context, offerID string) (Offer, bool, error)
	ListPendingOffers(ctx context.Context, leagueID, squadID string, direction OfferDirection) ([]Offer, error)
	// UpdateOfferStatus transitions a pending offer to a terminal status.
	// Returns ErrNotPending if the offer already left pending, so terminal
	// states are reachable exactly once.
	UpdateOfferStatus(ctx context.Context, offerID string, status OfferStatus, respondedAt *time.Time) error

	ListHistoryBySquad(ctx context.Context, leagueID, squadID string) ([]History, error)
}

// FreeAgentApplication is the atomic mutation unit for a free-agent
// acquisition: drop (optional) and acquire applied to both the league squad
// and its persistent parent, plus one history row.
type FreeAgentApplication struct {
	LeagueID       string
	SquadID        string
	UserSquadID    string
	PlayerInID     string
	PlayerOutID    string
	Cost           int64
	MatchdayNumber int
}

// OfferSettlement is the atomic mutation unit for an accepted offer: both
// league squads' membership changes mirrored into each owner's persistent
// squad, any budget movement, the status flip to accepted, and two history
// rows.
type OfferSettlement struct {
	Offer Offer
	// FromUserSquadID and ToUserSquadID are the persistent squads of the two
	// owners; membership moves apply to them as well so the user squads never
	// drift from their league variants.
	FromUserSquadID string
	ToUserSquadID   string
	MatchdayNumber  int
	SettledAt       time.Time
}

// Ledger applies transfer mutations as single atomic units. Implementations
// must serialize on the contended player so two racing acquisitions cannot
// both succeed: exactly one wins, the other gets ErrPlayerOwned.
type Ledger interface {
	ApplyFreeAgent(ctx context.Context, app FreeAgentApplication) error
	SettleOffer(ctx context.Context, settlement OfferSettlement) error
}
