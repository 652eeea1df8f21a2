package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmlarios/fantasy-football-tracker/internal/domain/player"
	"github.com/jmlarios/fantasy-football-tracker/internal/domain/squad"
	"github.com/jmlarios/fantasy-football-tracker/internal/domain/transfer"
)

// FreeAgentService acquires unowned players for a league squad. Every
// acquisition runs the same validation twice: once standalone for preview and
// once inside Execute right before the atomic apply.
type FreeAgentService struct {
	playerRepo  player.Repository
	squadRepo   squad.Repository
	ledger      transfer.Ledger
	matchdaySvc *MatchdayService
	rules       squad.FormationRules
	now         func() time.Time
}

func NewFreeAgentService(
	playerRepo player.Repository,
	squadRepo squad.Repository,
	ledger transfer.Ledger,
	matchdaySvc *MatchdayService,
) *FreeAgentService {
	return &FreeAgentService{
		playerRepo:  playerRepo,
		squadRepo:   squadRepo,
		ledger:      ledger,
		matchdaySvc: matchdaySvc,
		rules:       squad.DefaultFormationRules(),
		now:         time.Now,
	}
}

// FreeAgentCommand describes one requested acquisition. PlayerOutID is empty
// when nothing is dropped.
type FreeAgentCommand struct {
	LeagueID     string
	SquadID      string
	ActingUserID string
	PlayerInID   string
	PlayerOutID  string
}

// CostBreakdown itemizes the money side of a transfer.
type CostBreakdown struct {
	PlayerInPrice  int64
	PlayerOutPrice int64
	NetCost        int64
	BudgetBefore   int64
	BudgetAfter    int64
}

// ValidationResult reports every failed rule, not just the first one, so a
// client can show the full list.
type ValidationResult struct {
	Valid    bool
	Errors   []string
	Warnings []string
	Cost     CostBreakdown
}

type ExecutionResult struct {
	Success        bool
	Message        string
	Errors         []string
	MatchdayNumber int
	Cost           CostBreakdown
}

// PlayerAvailability reports whether a player can be signed in a league and,
// when not, which squad holds them.
type PlayerAvailability struct {
	PlayerID  string
	Available bool
	OwnedBy   string
}

func (c *FreeAgentCommand) clean() {
	c.LeagueID = strings.TrimSpace(c.LeagueID)
	c.SquadID = strings.TrimSpace(c.SquadID)
	c.ActingUserID = strings.TrimSpace(c.ActingUserID)
	c.PlayerInID = strings.TrimSpace(c.PlayerInID)
	c.PlayerOutID = strings.TrimSpace(c.PlayerOutID)
}

// Validate checks a command without mutating anything.
func (s *FreeAgentService) Validate(ctx context.Context, cmd FreeAgentCommand) (ValidationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FreeAgentService.Validate")
	defer span.End()

	cmd.clean()
	if cmd.LeagueID == "" || cmd.SquadID == "" || cmd.PlayerInID == "" {
		return ValidationResult{}, fmt.Errorf("%w: league id, squad id and player id are required", ErrInvalidInput)
	}

	result, _, err := s.validate(ctx, cmd)
	return result, err
}

// Execute re-validates and applies the acquisition atomically. Only the squad
// owner may execute.
func (s *FreeAgentService) Execute(ctx context.Context, cmd FreeAgentCommand) (ExecutionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FreeAgentService.Execute")
	defer span.End()

	cmd.clean()
	if cmd.LeagueID == "" || cmd.SquadID == "" || cmd.PlayerInID == "" {
		return ExecutionResult{}, fmt.Errorf("%w: league id, squad id and player id are required", ErrInvalidInput)
	}
	if cmd.ActingUserID == "" {
		return ExecutionResult{}, fmt.Errorf("%w: acting user is required", ErrUnauthorized)
	}

	leagueSquad, found, err := s.squadRepo.GetLeagueSquad(ctx, cmd.LeagueID, cmd.SquadID)
	if err != nil {
		return ExecutionResult{}, fmt.Errorf("get league squad: %w", err)
	}
	if !found {
		return ExecutionResult{}, fmt.Errorf("%w: squad %s not found in league %s", ErrNotFound, cmd.SquadID, cmd.LeagueID)
	}
	if leagueSquad.UserID != cmd.ActingUserID {
		return ExecutionResult{}, fmt.Errorf("%w: user does not own squad %s", ErrUnauthorized, cmd.SquadID)
	}

	validation, windowNumber, err := s.validate(ctx, cmd)
	if err != nil {
		return ExecutionResult{}, err
	}
	if !validation.Valid {
		return ExecutionResult{
			Success: false,
			Message: "transfer validation failed",
			Errors:  validation.Errors,
			Cost:    validation.Cost,
		}, nil
	}

	userSquad, found, err := s.squadRepo.GetUserSquad(ctx, leagueSquad.UserID)
	if err != nil {
		return ExecutionResult{}, fmt.Errorf("get user squad: %w", err)
	}
	if !found {
		return ExecutionResult{}, fmt.Errorf("%w: user squad for user %s not found", ErrNotFound, leagueSquad.UserID)
	}

	err = s.ledger.ApplyFreeAgent(ctx, transfer.FreeAgentApplication{
		LeagueID:       cmd.LeagueID,
		SquadID:        cmd.SquadID,
		UserSquadID:    userSquad.ID,
		PlayerInID:     cmd.PlayerInID,
		PlayerOutID:    cmd.PlayerOutID,
		Cost:           validation.Cost.NetCost,
		MatchdayNumber: windowNumber,
	})
	if err != nil {
		if errors.Is(err, transfer.ErrPlayerOwned) {
			return ExecutionResult{
				Success: false,
				Message: "transfer failed",
				Errors:  []string{"player was signed by another squad first"},
				Cost:    validation.Cost,
			}, nil
		}
		return ExecutionResult{}, fmt.Errorf("apply free agent transfer: %w", err)
	}

	return ExecutionResult{
		Success:        true,
		Message:        fmt.Sprintf("player %s signed", cmd.PlayerInID),
		MatchdayNumber: windowNumber,
		Cost:           validation.Cost,
	}, nil
}

// ListAvailable returns the active players not owned by any squad in the
// league, narrowed by the filter.
func (s *FreeAgentService) ListAvailable(ctx context.Context, leagueID string, filter player.ListFilter) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FreeAgentService.ListAvailable")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	players, err := s.playerRepo.ListActive(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list active players: %w", err)
	}

	ownedIDs, err := s.squadRepo.ListOwnedPlayerIDs(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list owned players: %w", err)
	}
	owned := make(map[string]struct{}, len(ownedIDs))
	for _, id := range ownedIDs {
		owned[id] = struct{}{}
	}

	available := make([]player.Player, 0, len(players))
	for _, p := range players {
		if _, taken := owned[p.ID]; taken {
			continue
		}
		available = append(available, p)
	}
	return available, nil
}

// CheckAvailability reports a single player's free-agent status in a league.
func (s *FreeAgentService) CheckAvailability(ctx context.Context, leagueID, playerID string) (PlayerAvailability, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FreeAgentService.CheckAvailability")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	playerID = strings.TrimSpace(playerID)
	if leagueID == "" || playerID == "" {
		return PlayerAvailability{}, fmt.Errorf("%w: league id and player id are required", ErrInvalidInput)
	}

	if _, found, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
		return PlayerAvailability{}, fmt.Errorf("get player: %w", err)
	} else if !found {
		return PlayerAvailability{}, fmt.Errorf("%w: player %s not found", ErrNotFound, playerID)
	}

	owner, owned, err := s.squadRepo.FindOwner(ctx, leagueID, playerID)
	if err != nil {
		return PlayerAvailability{}, fmt.Errorf("find player owner: %w", err)
	}
	if owned {
		return PlayerAvailability{PlayerID: playerID, Available: false, OwnedBy: owner.SquadName}, nil
	}
	return PlayerAvailability{PlayerID: playerID, Available: true}, nil
}

func (s *FreeAgentService) validate(ctx context.Context, cmd FreeAgentCommand) (ValidationResult, int, error) {
	result := ValidationResult{
		Errors:   []string{},
		Warnings: []string{},
	}

	leagueSquad, found, err := s.squadRepo.GetLeagueSquad(ctx, cmd.LeagueID, cmd.SquadID)
	if err != nil {
		return ValidationResult{}, 0, fmt.Errorf("get league squad: %w", err)
	}
	if !found {
		result.Errors = append(result.Errors, fmt.Sprintf("squad %s is not part of league %s", cmd.SquadID, cmd.LeagueID))
		return result, 0, nil
	}

	if len(leagueSquad.Members) >= s.rules.SquadSize && cmd.PlayerOutID == "" {
		result.Errors = append(result.Errors,
			fmt.Sprintf("squad is full (%d/%d): a player must be dropped to sign a new one", len(leagueSquad.Members), s.rules.SquadSize))
	}
	if cmd.PlayerOutID != "" && len(leagueSquad.Members) < s.rules.SquadSize {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("dropping a player leaves the squad below %d members", s.rules.SquadSize))
	}

	// No scheduled matchday (pre-season, season over) means nothing to lock:
	// the window stays open and the transfer attributes to matchday 0.
	windowNumber := 0
	window, err := s.matchdaySvc.CurrentWindow(ctx)
	switch {
	case err == nil:
		windowNumber = window.Number
		if window.Locked(s.now()) {
			result.Errors = append(result.Errors,
				fmt.Sprintf("transfer window is locked for matchday %d", window.Number))
		}
	case !errors.Is(err, ErrNotFound):
		return ValidationResult{}, 0, err
	}

	playerIn, found, err := s.playerRepo.GetByID(ctx, cmd.PlayerInID)
	if err != nil {
		return ValidationResult{}, 0, fmt.Errorf("get incoming player: %w", err)
	}
	if !found {
		result.Errors = append(result.Errors, fmt.Sprintf("player %s does not exist", cmd.PlayerInID))
		result.Valid = len(result.Errors) == 0
		return result, windowNumber, nil
	}

	if owner, owned, err := s.squadRepo.FindOwner(ctx, cmd.LeagueID, cmd.PlayerInID); err != nil {
		return ValidationResult{}, 0, fmt.Errorf("find incoming player owner: %w", err)
	} else if owned {
		result.Errors = append(result.Errors,
			fmt.Sprintf("player %s is already owned by squad %q", playerIn.Name, owner.SquadName))
	}

	var outPrice int64
	if cmd.PlayerOutID != "" {
		member, holds := memberOf(leagueSquad, cmd.PlayerOutID)
		if !holds {
			result.Errors = append(result.Errors,
				fmt.Sprintf("player %s is not in squad %s and cannot be dropped", cmd.PlayerOutID, cmd.SquadID))
		} else {
			outPrice = member.Price
		}
	}

	cost := CostBreakdown{
		PlayerInPrice:  playerIn.Price,
		PlayerOutPrice: outPrice,
		NetCost:        playerIn.Price - outPrice,
		BudgetBefore:   leagueSquad.RemainingBudget(),
	}
	cost.BudgetAfter = cost.BudgetBefore - cost.NetCost
	result.Cost = cost

	if cost.NetCost > cost.BudgetBefore {
		result.Errors = append(result.Errors,
			fmt.Sprintf("insufficient budget: net cost %d exceeds remaining %d", cost.NetCost, cost.BudgetBefore))
	}

	result.Valid = len(result.Errors) == 0
	return result, windowNumber, nil
}

func memberOf(s squad.Squad, playerID string) (squad.Member, bool) {
	for _, m := range s.Members {
		if m.PlayerID == playerID {
			return m, true
		}
	}
	return squad.Member{}, false
}
