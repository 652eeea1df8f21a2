package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/jmlarios/fantasy-football-tracker/internal/domain/transfer"
	"github.com/jmlarios/fantasy-football-tracker/internal/usecase"
)

func (h *Handler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateOffer")
	defer span.End()

	actingUserID, ok := actingUserFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: acting user is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req createOfferRequest
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

	offer, err := h.offerService.CreateOffer(ctx, usecase.CreateOfferCommand{
		LeagueID:        r.PathValue("leagueID"),
		FromSquadID:     req.FromSquadID,
		ToSquadID:       req.ToSquadID,
		PlayerID:        req.PlayerID,
		Kind:            req.Kind,
		MoneyOffered:    req.MoneyOffered,
		OfferedPlayerID: req.OfferedPlayerID,
		DropPlayerID:    req.DropPlayerID,
		ActingUserID:    actingUserID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create offer failed", "user_id", actingUserID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, offerToDTO(offer, false))
}

func (h *Handler) ListOffers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListOffers")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	squadID := r.PathValue("squadID")
	direction := transfer.OfferDirection(strings.TrimSpace(r.URL.Query().Get("direction")))
	if direction == "" {
		direction = transfer.DirectionReceived
	}

	views, err := h.offerService.ListOffers(ctx, leagueID, squadID, direction)
	if err != nil {
		h.logger.WarnContext(ctx, "list offers failed", "league_id", leagueID, "squad_id", squadID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]offerDTO, 0, len(views))
	for _, view := range views {
		items = append(items, offerToDTO(view.Offer, view.Expired))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) AcceptOffer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AcceptOffer")
	defer span.End()

	actingUserID, ok := actingUserFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: acting user is missing from request context", usecase.ErrUnauthorized))
		return
	}

	offerID := r.PathValue("offerID")
	result, err := h.offerService.Accept(ctx, offerID, actingUserID)
	if err != nil {
		h.logger.WarnContext(ctx, "accept offer failed", "offer_id", offerID, "user_id", actingUserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, executionToDTO(result))
}

func (h *Handler) RejectOffer(w http.ResponseWriter, r *http.Request) {
	h.respondToOffer(w, r, "httpapi.Handler.RejectOffer", h.offerService.Reject)
}

func (h *Handler) CancelOffer(w http.ResponseWriter, r *http.Request) {
	h.respondToOffer(w, r, "httpapi.Handler.CancelOffer", h.offerService.Cancel)
}

func (h *Handler) respondToOffer(
	w http.ResponseWriter,
	r *http.Request,
	spanName string,
	respond func(ctx context.Context, offerID, actingUserID string) error,
) {
	ctx, span := startSpan(r.Context(), spanName)
	defer span.End()

	actingUserID, ok := actingUserFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: acting user is missing from request context", usecase.ErrUnauthorized))
		return
	}

	offerID := r.PathValue("offerID")
	if err := respond(ctx, offerID, actingUserID); err != nil {
		h.logger.WarnContext(ctx, "offer response failed", "offer_id", offerID, "user_id", actingUserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"offer_id": offerID, "status": "done"})
}
