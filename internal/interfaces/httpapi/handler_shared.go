package httpapi

import (
	"time"

	"github.com/jmlarios/fantasy-football-tracker/internal/domain/player"
	"github.com/jmlarios/fantasy-football-tracker/internal/domain/squad"
	"github.com/jmlarios/fantasy-football-tracker/internal/domain/stats"
	"github.com/jmlarios/fantasy-football-tracker/internal/domain/transfer"
	"github.com/jmlarios/fantasy-football-tracker/internal/usecase"
)

type freeAgentRequest struct {
	SquadID     string `json:"squad_id" validate:"required"`
	PlayerInID  string `json:"player_in_id" validate:"required"`
	PlayerOutID string `json:"player_out_id" validate:"omitempty"`
}

type createOfferRequest struct {
	FromSquadID     string `json:"from_squad_id" validate:"required"`
	ToSquadID       string `json:"to_squad_id" validate:"required"`
	PlayerID        string `json:"player_id" validate:"required"`
	Kind            string `json:"kind" validate:"required,oneof=money player_exchange"`
	MoneyOffered    int64  `json:"money_offered" validate:"omitempty,min=0"`
	OfferedPlayerID string `json:"offered_player_id" validate:"omitempty"`
	DropPlayerID    string `json:"drop_player_id" validate:"omitempty"`
}

type processPointsRequest struct {
	LeagueID       string `json:"league_id" validate:"required"`
	Season         string `json:"season" validate:"required"`
	MatchdayNumber int    `json:"matchday_number" validate:"required,min=1"`
}

type matchdayStatusDTO struct {
	Number           int       `json:"number"`
	Season           string    `json:"season"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	Deadline         time.Time `json:"deadline"`
	IsActive         bool      `json:"is_active"`
	IsFinished       bool      `json:"is_finished"`
	PointsCalculated bool      `json:"points_calculated"`
	TransfersOpen    bool      `json:"transfers_open"`
	Countdown        string    `json:"countdown"`
}

func matchdayStatusToDTO(status usecase.MatchdayStatus) matchdayStatusDTO {
	return matchdayStatusDTO{
		Number:           status.Matchday.Number,
		Season:           status.Matchday.Season,
		StartDate:        status.Matchday.StartDate,
		EndDate:          status.Matchday.EndDate,
		Deadline:         status.Matchday.Deadline,
		IsActive:         status.Matchday.IsActive,
		IsFinished:       status.Matchday.IsFinished,
		PointsCalculated: status.Matchday.PointsCalculated,
		TransfersOpen:    status.TransfersOpen,
		Countdown:        status.Countdown,
	}
}

type playerDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Team     string `json:"team"`
	Position string `json:"position"`
	Price    int64  `json:"price"`
	IsActive bool   `json:"is_active"`
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		ID:       p.ID,
		Name:     p.Name,
		Team:     p.Team,
		Position: string(p.Position),
		Price:    p.Price,
		IsActive: p.IsActive,
	}
}

type availabilityDTO struct {
	PlayerID  string `json:"player_id"`
	Available bool   `json:"available"`
	OwnedBy   string `json:"owned_by,omitempty"`
}

type costBreakdownDTO struct {
	PlayerInPrice  int64 `json:"player_in_price"`
	PlayerOutPrice int64 `json:"player_out_price"`
	NetCost        int64 `json:"net_cost"`
	BudgetBefore   int64 `json:"budget_before"`
	BudgetAfter    int64 `json:"budget_after"`
}

func costToDTO(cost usecase.CostBreakdown) costBreakdownDTO {
	return costBreakdownDTO{
		PlayerInPrice:  cost.PlayerInPrice,
		PlayerOutPrice: cost.PlayerOutPrice,
		NetCost:        cost.NetCost,
		BudgetBefore:   cost.BudgetBefore,
		BudgetAfter:    cost.BudgetAfter,
	}
}

type validationResultDTO struct {
	Valid    bool             `json:"valid"`
	Errors   []string         `json:"errors,omitempty"`
	Warnings []string         `json:"warnings,omitempty"`
	Cost     costBreakdownDTO `json:"cost"`
}

type executionResultDTO struct {
	Success        bool             `json:"success"`
	Message        string           `json:"message,omitempty"`
	Errors         []string         `json:"errors,omitempty"`
	MatchdayNumber int              `json:"matchday_number,omitempty"`
	Cost           costBreakdownDTO `json:"cost"`
}

func executionToDTO(result usecase.ExecutionResult) executionResultDTO {
	return executionResultDTO{
		Success:        result.Success,
		Message:        result.Message,
		Errors:         result.Errors,
		MatchdayNumber: result.MatchdayNumber,
		Cost:           costToDTO(result.Cost),
	}
}

type offerDTO struct {
	ID              string     `json:"id"`
	LeagueID        string     `json:"league_id"`
	FromSquadID     string     `json:"from_squad_id"`
	ToSquadID       string     `json:"to_squad_id"`
	PlayerID        string     `json:"player_id"`
	Kind            string     `json:"kind"`
	MoneyOffered    int64      `json:"money_offered,omitempty"`
	OfferedPlayerID string     `json:"offered_player_id,omitempty"`
	DropPlayerID    string     `json:"drop_player_id,omitempty"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	ExpiresAt       time.Time  `json:"expires_at"`
	RespondedAt     *time.Time `json:"responded_at,omitempty"`
	Expired         bool       `json:"expired"`
}

func offerToDTO(offer transfer.Offer, expired bool) offerDTO {
	return offerDTO{
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
		RespondedAt:     offer.RespondedAt,
		Expired:         expired,
	}
}

type squadMemberDTO struct {
	PlayerID      string `json:"player_id"`
	Position      string `json:"position"`
	Price         int64  `json:"price"`
	IsCaptain     bool   `json:"is_captain,omitempty"`
	IsViceCaptain bool   `json:"is_vice_captain,omitempty"`
	AddedMatchday int    `json:"added_matchday,omitempty"`
}

type formationDTO struct {
	Valid          bool           `json:"valid"`
	Errors         []string       `json:"errors,omitempty"`
	PositionCounts map[string]int `json:"position_counts"`
	TotalPlayers   int            `json:"total_players"`
}

type squadDetailDTO struct {
	ID              string           `json:"id"`
	UserID          string           `json:"user_id"`
	LeagueID        string           `json:"league_id"`
	Name            string           `json:"name"`
	TotalBudget     int64            `json:"total_budget"`
	BudgetUsed      int64            `json:"budget_used"`
	RemainingBudget int64            `json:"remaining_budget"`
	Points          int              `json:"points"`
	Rank            int              `json:"rank"`
	Members         []squadMemberDTO `json:"members"`
	Formation       formationDTO     `json:"formation"`
}

func squadDetailToDTO(detail usecase.SquadDetail) squadDetailDTO {
	members := make([]squadMemberDTO, 0, len(detail.Squad.Members))
	for _, m := range detail.Squad.Members {
		members = append(members, squadMemberDTO{
			PlayerID:      m.PlayerID,
			Position:      string(m.Position),
			Price:         m.Price,
			IsCaptain:     m.IsCaptain,
			IsViceCaptain: m.IsViceCaptain,
			AddedMatchday: m.AddedMatchday,
		})
	}

	counts := make(map[string]int, len(detail.Formation.PositionCounts))
	for pos, count := range detail.Formation.PositionCounts {
		counts[string(pos)] = count
	}

	return squadDetailDTO{
		ID:              detail.Squad.ID,
		UserID:          detail.Squad.UserID,
		LeagueID:        detail.Squad.LeagueID,
		Name:            detail.Squad.Name,
		TotalBudget:     detail.Squad.TotalBudget,
		BudgetUsed:      detail.BudgetUsed,
		RemainingBudget: detail.RemainingBudget,
		Points:          detail.Squad.Points,
		Rank:            detail.Squad.Rank,
		Members:         members,
		Formation: formationDTO{
			Valid:          detail.Formation.Valid,
			Errors:         detail.Formation.Errors,
			PositionCounts: counts,
			TotalPlayers:   detail.Formation.TotalPlayers,
		},
	}
}

type standingDTO struct {
	SquadID string `json:"squad_id"`
	Name    string `json:"name"`
	Points  int    `json:"points"`
	Rank    int    `json:"rank"`
}

func standingsToDTO(squads []squad.Squad) []standingDTO {
	out := make([]standingDTO, 0, len(squads))
	for _, sq := range squads {
		out = append(out, standingDTO{
			SquadID: sq.ID,
			Name:    sq.Name,
			Points:  sq.Points,
			Rank:    sq.Rank,
		})
	}
	return out
}

type historyDTO struct {
	ID             string    `json:"id"`
	MatchdayNumber int       `json:"matchday_number"`
	Type           string    `json:"type"`
	PlayerInID     string    `json:"player_in_id,omitempty"`
	PlayerOutID    string    `json:"player_out_id,omitempty"`
	Cost           int64     `json:"cost"`
	CounterpartyID string    `json:"counterparty_id,omitempty"`
	OfferID        string    `json:"offer_id,omitempty"`
	IsFreeTransfer bool      `json:"is_free_transfer"`
	CreatedAt      time.Time `json:"created_at"`
}

func historyToDTO(rows []transfer.History) []historyDTO {
	out := make([]historyDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, historyDTO{
			ID:             row.ID,
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
	return out
}

type playerPointsDTO struct {
	PlayerID     string         `json:"player_id"`
	MatchID      string         `json:"match_id"`
	Breakdown    map[string]int `json:"breakdown"`
	TotalPoints  int            `json:"total_points"`
	CalculatedAt time.Time      `json:"calculated_at"`
}

func playerPointsToDTO(points stats.PlayerMatchPoints) playerPointsDTO {
	return playerPointsDTO{
		PlayerID:     points.PlayerID,
		MatchID:      points.MatchID,
		Breakdown:    points.Breakdown,
		TotalPoints:  points.TotalPoints,
		CalculatedAt: points.CalculatedAt,
	}
}
