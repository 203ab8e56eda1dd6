package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}/events", handler.ListMatchEvents)
	mux.HandleFunc("POST /v1/matches/{matchID}/events", handler.SubmitMatchEvent)
}

func registerCompetitionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/competitions/{competitionID}", handler.GetCompetition)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/standings", handler.GetStandings)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/rounds/{roundNumber}/standings", handler.GetRoundStandings)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/bracket", handler.GetKnockoutBracket)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/stats/players", handler.ListPlayerStats)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/stats/teams", handler.ListTeamStats)
	mux.HandleFunc("POST /v1/competitions/{competitionID}/rounds/{roundNumber}/matches", handler.AssignMatchesToRound)
}
