package httpapi

import "net/http"

type routes struct {
	mux          *http.ServeMux
	instrumenter RouteInstrumenter
}

func (rt routes) handle(pattern string, next http.Handler) {
	if rt.instrumenter != nil {
		next = rt.instrumenter.InstrumentRoute(pattern, next)
	}
	rt.mux.Handle(pattern, next)
}

func (rt routes) handleFunc(pattern string, next http.HandlerFunc) {
	rt.handle(pattern, next)
}

func (rt routes) handleAuth(verifier TokenVerifier, pattern string, next http.HandlerFunc) {
	rt.handle(pattern, RequireAuth(verifier, next))
}

func registerSystemRoutes(rt routes, handler *Handler) {
	rt.mux.HandleFunc("GET /healthz", handler.Healthz)
	if handler.metrics != nil {
		rt.mux.Handle("GET /metrics", handler.metrics)
	}
}

func registerPublicLeagueRoutes(rt routes, handler *Handler) {
	rt.handleFunc("GET /v1/leagues", handler.ListLeagues)
	rt.handleFunc("GET /v1/leagues/{leagueID}", handler.GetLeague)
	rt.handleFunc("GET /v1/leagues/{leagueID}/teams", handler.ListTeams)
	rt.handleFunc("GET /v1/leagues/{leagueID}/fixtures", handler.ListFixtures)
	rt.handleFunc("GET /v1/leagues/{leagueID}/fixtures/{fixtureID}", handler.GetFixture)
}

func registerAuthorizedRoutes(rt routes, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedLeagueRoutes(rt, handler, verifier)
	registerAuthorizedTeamRoutes(rt, handler, verifier)
	registerAuthorizedFixtureRoutes(rt, handler, verifier)
}

func registerAuthorizedLeagueRoutes(rt routes, handler *Handler, verifier TokenVerifier) {
	rt.handleAuth(verifier, "GET /v1/leagues/me", handler.ListMyLeagues)
	rt.handleAuth(verifier, "POST /v1/leagues", handler.CreateLeague)
	rt.handleAuth(verifier, "PATCH /v1/leagues/{leagueID}", handler.RenameLeague)
	rt.handleAuth(verifier, "DELETE /v1/leagues/{leagueID}", handler.DeleteLeague)
}

func registerAuthorizedTeamRoutes(rt routes, handler *Handler, verifier TokenVerifier) {
	rt.handleAuth(verifier, "POST /v1/leagues/{leagueID}/teams", handler.CreateTeam)
	rt.handleAuth(verifier, "PATCH /v1/leagues/{leagueID}/teams/{teamID}", handler.RenameTeam)
	rt.handleAuth(verifier, "DELETE /v1/leagues/{leagueID}/teams/{teamID}", handler.DeleteTeam)
}

func registerAuthorizedFixtureRoutes(rt routes, handler *Handler, verifier TokenVerifier) {
	rt.handleAuth(verifier, "POST /v1/leagues/{leagueID}/fixtures", handler.CreateFixture)
	rt.handleAuth(verifier, "PATCH /v1/leagues/{leagueID}/fixtures/{fixtureID}", handler.UpdateFixture)
	rt.handleAuth(verifier, "DELETE /v1/leagues/{leagueID}/fixtures/{fixtureID}", handler.DeleteFixture)
}
