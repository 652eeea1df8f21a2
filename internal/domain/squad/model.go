package squad

import (
	"fmt"
	"time"

	"github.com/jmlarios/fantasy-football-tracker/internal/domain/player"
)

// Member is one squad-membership join row: a player held by a squad together
// with its role flags and bookkeeping.
type Member struct {
	PlayerID      string
	Position      player.Position
	Price         int64
	IsCaptain     bool
	IsViceCaptain bool
	AddedMatchday int
}

// Squad is a user's collection of owned players. The same shape backs both the
// persistent per-user squad and its per-league variant; league squads carry a
// non-empty LeagueID plus running points and rank.
type Squad struct {
	ID          string
	UserID      string
	LeagueID    string
	Name        string
	TotalBudget int64
	Members     []Member
	Points      int
	Rank        int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BudgetUsed is the sum of current member prices.
func (s Squad) BudgetUsed() int64 {
	var used int64
	for _, m := range s.Members {
		used += m.Price
	}
	return used
}

// RemainingBudget is TotalBudget minus BudgetUsed. Transfer validation must
// keep this non-negative; a negative value here means an invariant was broken.
func (s Squad) RemainingBudget() int64 {
	return s.TotalBudget - s.BudgetUsed()
}

func (s Squad) HasPlayer(playerID string) bool {
	for _, m := range s.Members {
		if m.PlayerID == playerID {
			return true
		}
	}
	return false
}

// Captain returns the designated captain, if any.
func (s Squad) Captain() (Member, bool) {
	for _, m := range s.Members {
		if m.IsCaptain {
			return m, true
		}
	}
	return Member{}, false
}

func (s Squad) ValidateBasic() error {
	if s.ID == "" {
		return fmt.Errorf("squad id is required")
	}
	if s.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if s.Name == "" {
		return fmt.Errorf("squad name is required")
	}
	if s.TotalBudget <= 0 {
		return fmt.Errorf("total budget must be greater than zero")
	}

	seen := make(map[string]struct{}, len(s.Members))
	captains := 0
	vices := 0
	for _, m := range s.Members {
		if m.PlayerID == "" {
			return fmt.Errorf("member player id is required")
		}
		if _, dup := seen[m.PlayerID]; dup {
			return fmt.Errorf("duplicate player in squad: %s", m.PlayerID)
		}
		seen[m.PlayerID] = struct{}{}
		if m.IsCaptain && m.IsViceCaptain {
			return fmt.Errorf("player %s cannot be both captain and vice-captain", m.PlayerID)
		}
		if m.IsCaptain {
			captains++
		}
		if m.IsViceCaptain {
			vices++
		}
	}
	if captains > 1 {
		return fmt.Errorf("squad has %d captains, at most 1 allowed", captains)
	}
	if vices > 1 {
		return fmt.Errorf("squad has %d vice-captains, at most 1 allowed", vices)
	}

	return nil
}
