package httpapi

import "net/http"

func (h *Handler) GetSquadDetail(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSquadDetail")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	squadID := r.PathValue("squadID")

	detail, err := h.squadService.Get(ctx, leagueID, squadID)
	if err != nil {
		h.logger.WarnContext(ctx, "get squad detail failed", "league_id", leagueID, "squad_id", squadID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadDetailToDTO(detail))
}

func (h *Handler) ListLeagueStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagueStandings")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	squads, err := h.squadService.Standings(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list standings failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(squads))
}

func (h *Handler) GetSquadTransferHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSquadTransferHistory")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	squadID := r.PathValue("squadID")

	rows, err := h.squadService.History(ctx, leagueID, squadID)
	if err != nil {
		h.logger.WarnContext(ctx, "get transfer history failed", "league_id", leagueID, "squad_id", squadID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, historyToDTO(rows))
}
