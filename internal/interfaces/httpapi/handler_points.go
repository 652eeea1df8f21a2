package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/jmlarios/fantasy-football-tracker/internal/usecase"
)

func (h *Handler) ProcessMatchdayPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ProcessMatchdayPoints")
	defer span.End()

	var req processPointsRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.pointsService.ProcessMatchday(ctx, req.LeagueID, req.Season, req.MatchdayNumber)
	if err != nil {
		h.logger.ErrorContext(ctx, "process matchday points failed",
			"league_id", req.LeagueID, "season", req.Season, "matchday", req.MatchdayNumber, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summary)
}

func (h *Handler) GetMatchdayPlayerPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchdayPlayerPoints")
	defer span.End()

	number, err := strconv.Atoi(r.PathValue("number"))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: matchday number must be an integer", usecase.ErrInvalidInput))
		return
	}
	season := strings.TrimSpace(r.URL.Query().Get("season"))
	if season == "" {
		writeError(ctx, w, fmt.Errorf("%w: season query parameter is required", usecase.ErrInvalidInput))
		return
	}

	points, err := h.pointsService.MatchdayPlayerPoints(ctx, season, number)
	if err != nil {
		h.logger.WarnContext(ctx, "get matchday player points failed", "season", season, "number", number, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, points)
}

func (h *Handler) GetPlayerMatchBreakdown(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerMatchBreakdown")
	defer span.End()

	playerID := r.PathValue("playerID")
	matchID := r.PathValue("matchID")

	points, err := h.pointsService.PlayerMatchBreakdown(ctx, playerID, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player match breakdown failed", "player_id", playerID, "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerPointsToDTO(points))
}
