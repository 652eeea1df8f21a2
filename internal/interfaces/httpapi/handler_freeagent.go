package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/jmlarios/fantasy-football-tracker/internal/domain/player"
	"github.com/jmlarios/fantasy-football-tracker/internal/usecase"
)

func (h *Handler) ListAvailablePlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAvailablePlayers")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	filter, err := playerFilterFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	players, err := h.freeAgentService.ListAvailable(ctx, leagueID, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list available players failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CheckPlayerAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CheckPlayerAvailability")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	playerID := r.PathValue("playerID")

	availability, err := h.freeAgentService.CheckAvailability(ctx, leagueID, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "check player availability failed", "league_id", leagueID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, availabilityDTO{
		PlayerID:  availability.PlayerID,
		Available: availability.Available,
		OwnedBy:   availability.OwnedBy,
	})
}

func (h *Handler) ValidateFreeAgentTransfer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ValidateFreeAgentTransfer")
	defer span.End()

	cmd, ok := h.freeAgentCommandFromRequest(w, r)
	if !ok {
		return
	}

	result, err := h.freeAgentService.Validate(ctx, cmd)
	if err != nil {
		h.logger.WarnContext(ctx, "validate transfer failed", "league_id", cmd.LeagueID, "squad_id", cmd.SquadID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, validationResultDTO{
		Valid:    result.Valid,
		Errors:   result.Errors,
		Warnings: result.Warnings,
		Cost:     costToDTO(result.Cost),
	})
}

func (h *Handler) ExecuteFreeAgentTransfer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExecuteFreeAgentTransfer")
	defer span.End()

	cmd, ok := h.freeAgentCommandFromRequest(w, r)
	if !ok {
		return
	}

	result, err := h.freeAgentService.Execute(ctx, cmd)
	if err != nil {
		h.logger.WarnContext(ctx, "execute transfer failed", "league_id", cmd.LeagueID, "squad_id", cmd.SquadID, "error", err)
		writeError(ctx, w, err)
		return
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       executionToDTO(result),
	})
}

func (h *Handler) freeAgentCommandFromRequest(w http.ResponseWriter, r *http.Request) (usecase.FreeAgentCommand, bool) {
	ctx := r.Context()

	actingUserID, ok := actingUserFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: acting user is missing from request context", usecase.ErrUnauthorized))
		return usecase.FreeAgentCommand{}, false
	}

	var req freeAgentRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return usecase.FreeAgentCommand{}, false
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return usecase.FreeAgentCommand{}, false
	}

	return usecase.FreeAgentCommand{
		LeagueID:     r.PathValue("leagueID"),
		SquadID:      req.SquadID,
		ActingUserID: actingUserID,
		PlayerInID:   req.PlayerInID,
		PlayerOutID:  req.PlayerOutID,
	}, true
}

func playerFilterFromQuery(r *http.Request) (player.ListFilter, error) {
	query := r.URL.Query()
	filter := player.ListFilter{
		Position: player.Position(strings.TrimSpace(query.Get("position"))),
		Search:   strings.TrimSpace(query.Get("search")),
	}

	for _, bound := range []struct {
		name   string
		target **int64
	}{
		{name: "min_price", target: &filter.MinPrice},
		{name: "max_price", target: &filter.MaxPrice},
	} {
		raw := strings.TrimSpace(query.Get(bound.name))
		if raw == "" {
			continue
		}
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return player.ListFilter{}, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, bound.name)
		}
		*bound.target = &value
	}

	return filter, nil
}
