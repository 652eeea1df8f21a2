package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/jmlarios/fantasy-football-tracker/internal/usecase"
)

func (h *Handler) GetCurrentMatchday(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentMatchday")
	defer span.End()

	status, err := h.matchdayService.CurrentStatus(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get current matchday failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchdayStatusToDTO(status))
}

func (h *Handler) GetMatchdayStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchdayStatus")
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

	status, err := h.matchdayService.Status(ctx, season, number)
	if err != nil {
		h.logger.WarnContext(ctx, "get matchday status failed", "season", season, "number", number, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchdayStatusToDTO(status))
}

func (h *Handler) RefreshMatchdayStatuses(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshMatchdayStatuses")
	defer span.End()

	season := strings.TrimSpace(r.URL.Query().Get("season"))
	if season == "" {
		writeError(ctx, w, fmt.Errorf("%w: season query parameter is required", usecase.ErrInvalidInput))
		return
	}

	changes, err := h.matchdayService.RefreshStatuses(ctx, season)
	if err != nil {
		h.logger.ErrorContext(ctx, "refresh matchday statuses failed", "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	type changeDTO struct {
		Number      int  `json:"number"`
		WasActive   bool `json:"was_active"`
		NowActive   bool `json:"now_active"`
		WasFinished bool `json:"was_finished"`
		NowFinished bool `json:"now_finished"`
	}
	items := make([]changeDTO, 0, len(changes))
	for _, change := range changes {
		items = append(items, changeDTO{
			Number:      change.Number,
			WasActive:   change.WasActive,
			NowActive:   change.NowActive,
			WasFinished: change.WasFinished,
			NowFinished: change.NowFinished,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
