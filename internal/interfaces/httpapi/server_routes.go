package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

// Public reads go through OptionalAuth: anonymous works for public leagues,
// while owners and share-token holders can reach private ones.
func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	optional := func(h http.HandlerFunc) http.Handler {
		return OptionalAuth(verifier, h)
	}

	mux.Handle("GET /v1/leagues", optional(handler.ListLeagues))
	mux.Handle("GET /v1/leagues/{leagueID}", optional(handler.GetLeague))
	mux.Handle("GET /v1/leagues/{leagueID}/teams", optional(handler.ListTeams))
	mux.Handle("GET /v1/leagues/{leagueID}/teams/{teamID}", optional(handler.GetTeam))
	mux.Handle("GET /v1/leagues/{leagueID}/teams/{teamID}/stats", optional(handler.GetTeamDetail))
	mux.Handle("GET /v1/leagues/{leagueID}/matches", optional(handler.ListMatches))
	mux.Handle("GET /v1/leagues/{leagueID}/matches/{matchID}", optional(handler.GetMatch))
	mux.Handle("GET /v1/leagues/{leagueID}/standings", optional(handler.GetStandings))
	mux.Handle("GET /v1/leagues/{leagueID}/standings/groups", optional(handler.GetAllGroupStandings))
	mux.Handle("GET /v1/leagues/{leagueID}/standings/groups/{group}", optional(handler.GetGroupStandings))
	mux.Handle("GET /v1/leagues/{leagueID}/summary", optional(handler.GetLeagueSummary))
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	authed := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, h)
	}

	mux.Handle("POST /v1/leagues", authed(handler.CreateLeague))
	mux.Handle("GET /v1/leagues/me", authed(handler.ListMyLeagues))
	mux.Handle("PUT /v1/leagues/{leagueID}", authed(handler.UpdateLeague))
	mux.Handle("DELETE /v1/leagues/{leagueID}", authed(handler.DeleteLeague))

	mux.Handle("POST /v1/leagues/{leagueID}/teams", authed(handler.AddTeam))
	mux.Handle("PUT /v1/leagues/{leagueID}/teams/{teamID}", authed(handler.UpdateTeam))
	mux.Handle("DELETE /v1/leagues/{leagueID}/teams/{teamID}", authed(handler.RemoveTeam))
	mux.Handle("POST /v1/leagues/{leagueID}/groups/assign", authed(handler.AssignGroups))
	mux.Handle("POST /v1/leagues/{leagueID}/groups/reset", authed(handler.ResetGroups))

	mux.Handle("POST /v1/leagues/{leagueID}/schedule", authed(handler.GenerateSchedule))
	mux.Handle("DELETE /v1/leagues/{leagueID}/schedule", authed(handler.DeleteSchedule))

	mux.Handle("PUT /v1/leagues/{leagueID}/matches/{matchID}", authed(handler.UpdateMatchInfo))
	mux.Handle("PUT /v1/leagues/{leagueID}/matches/{matchID}/status", authed(handler.UpdateMatchStatus))
	mux.Handle("PUT /v1/leagues/{leagueID}/matches/{matchID}/result", authed(handler.SubmitResult))
	mux.Handle("DELETE /v1/leagues/{leagueID}/matches/{matchID}/result", authed(handler.ResetResult))
	mux.Handle("PUT /v1/leagues/{leagueID}/matches/{matchID}/video", authed(handler.SetMatchVideo))
	mux.Handle("POST /v1/leagues/{leagueID}/matches/{matchID}/photos", authed(handler.AddMatchPhotos))
	mux.Handle("POST /v1/leagues/{leagueID}/matches/{matchID}/highlights", authed(handler.AddMatchHighlights))
	mux.Handle("DELETE /v1/leagues/{leagueID}/matches/{matchID}/highlights/{highlightID}", authed(handler.RemoveMatchHighlight))

	mux.Handle("POST /v1/leagues/{leagueID}/reset", authed(handler.ResetLeague))
	mux.Handle("POST /v1/leagues/{leagueID}/rebuild-forms", authed(handler.RebuildForms))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/sweep-status", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.SweepStatuses)))
}
