package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matchdays/current", handler.GetCurrentMatchday)
	mux.HandleFunc("GET /v1/matchdays/{number}", handler.GetMatchdayStatus)
	mux.HandleFunc("GET /v1/matchdays/{number}/points", handler.GetMatchdayPlayerPoints)
	mux.HandleFunc("GET /v1/players/{playerID}/matches/{matchID}/points", handler.GetPlayerMatchBreakdown)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/players", handler.ListAvailablePlayers)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/players/{playerID}/availability", handler.CheckPlayerAvailability)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/standings", handler.ListLeagueStandings)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/squads/{squadID}", handler.GetSquadDetail)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/squads/{squadID}/transfers", handler.GetSquadTransferHistory)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/squads/{squadID}/offers", handler.ListOffers)
}

func registerUserRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("POST /v1/leagues/{leagueID}/transfers/validate", RequireUser(http.HandlerFunc(handler.ValidateFreeAgentTransfer)))
	mux.Handle("POST /v1/leagues/{leagueID}/transfers", RequireUser(http.HandlerFunc(handler.ExecuteFreeAgentTransfer)))
	mux.Handle("POST /v1/leagues/{leagueID}/offers", RequireUser(http.HandlerFunc(handler.CreateOffer)))
	mux.Handle("POST /v1/offers/{offerID}/accept", RequireUser(http.HandlerFunc(handler.AcceptOffer)))
	mux.Handle("POST /v1/offers/{offerID}/reject", RequireUser(http.HandlerFunc(handler.RejectOffer)))
	mux.Handle("POST /v1/offers/{offerID}/cancel", RequireUser(http.HandlerFunc(handler.CancelOffer)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/points/process", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.ProcessMatchdayPoints)))
	mux.Handle("POST /v1/internal/matchdays/refresh", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RefreshMatchdayStatuses)))
}
