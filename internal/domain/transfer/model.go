package transfer

import (
	"errors"
	"fmt"
	"time"
)

// OfferKind is a closed set: adding a variant means touching every switch over
// it, which is the point.
type OfferKind string

const (
	KindMoney          OfferKind = "money"
	KindPlayerExchange OfferKind = "player_exchange"
)

func ParseOfferKind(value string) (OfferKind, error) {
	switch OfferKind(value) {
	case KindMoney:
		return KindMoney, nil
	case KindPlayerExchange:
		return KindPlayerExchange, nil
	default:
		return "", fmt.Errorf("invalid offer kind %q, must be %q or %q", value, KindMoney, KindPlayerExchange)
	}
}

type OfferStatus string

const (
	StatusPending   OfferStatus = "pending"
	StatusAccepted  OfferStatus = "accepted"
	StatusRejected  OfferStatus = "rejected"
	StatusCancelled OfferStatus = "cancelled"
	StatusExpired   OfferStatus = "expired"
)

// ErrNotPending signals a lifecycle action on an offer already in a terminal
// state.
var ErrNotPending = errors.New("offer is not pending")

// ErrPlayerOwned signals an acquisition that lost the race for a contended
// player.
var ErrPlayerOwned = errors.New("player already owned in this league")

// ErrDuplicatePending signals a second pending offer for the same
// (from, to, player) triple.
var ErrDuplicatePending = errors.New("pending offer already exists for this player")

// Offer is a directed trade proposal between two league squads. Pending is the
// only non-terminal status; expiry is evaluated lazily, so a stored pending
// offer may already be functionally expired.
type Offer struct {
	ID            string
	LeagueID      string
	FromSquadID   string
	ToSquadID     string
	PlayerID      string
	Kind          OfferKind
	MoneyOffered  int64
	OfferedPlayer string
	DropPlayer    string
	Status        OfferStatus
	CreatedAt     time.Time
	ExpiresAt     time.Time
	RespondedAt   *time.Time
}

// FunctionallyExpired reports whether a pending offer's expiry has passed even
// though its stored status has not caught up yet.
func (o Offer) FunctionallyExpired(now time.Time) bool {
	return o.Status == StatusPending && !now.UTC().Before(o.ExpiresAt.UTC())
}

// History is the immutable audit record written once per completed transfer
// side. Never mutated after creation.
type History struct {
	ID             string
	LeagueID       string
	SquadID        string
	MatchdayNumber int
	Type           string
	PlayerInID     string
	PlayerOutID    string
	Cost           int64
	CounterpartyID string
	OfferID        string
	IsFreeTransfer bool
	CreatedAt      time.Time
}

const (
	HistoryTypeFreeAgent      = "free_agent"
	HistoryTypeUserToUser     = "user_to_user"
	HistoryTypePlayerExchange = "player_exchange"
)
