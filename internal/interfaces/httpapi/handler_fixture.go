package httpapi

import (
	"net/http"

	"github.com/riskibarqy/league-manager/internal/usecase"
)

func (h *Handler) ListFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixtures")
	defer span.End()

	leagueID := pathValue(r, "leagueID")
	fixtures, err := h.fixtureService.ListByLeague(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list fixtures failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fixturesToDTO(fixtures))
}

func (h *Handler) GetFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFixture")
	defer span.End()

	leagueID := pathValue(r, "leagueID")
	fixtureID := pathValue(r, "fixtureID")
	item, err := h.fixtureService.GetFixture(ctx, leagueID, fixtureID)
	if err != nil {
		h.logger.WarnContext(ctx, "get fixture failed", "league_id", leagueID, "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fixtureToDTO(item))
}

func (h *Handler) CreateFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateFixture")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createFixtureRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := pathValue(r, "leagueID")
	item, err := h.fixtureService.CreateFixture(ctx, principal.UserID, leagueID, usecase.CreateFixtureInput{
		Gameweek:   req.Gameweek,
		HomeTeamID: req.HomeTeamID,
		AwayTeamID: req.AwayTeamID,
		KickoffAt:  req.KickoffAt,
		Venue:      req.Venue,
		Status:     req.Status,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create fixture failed", "user_id", principal.UserID, "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, fixtureToDTO(item))
}

func (h *Handler) UpdateFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateFixture")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateFixtureRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := pathValue(r, "leagueID")
	fixtureID := pathValue(r, "fixtureID")
	item, err := h.fixtureService.UpdateFixture(ctx, principal.UserID, leagueID, fixtureID, usecase.UpdateFixtureInput{
		Gameweek:   req.Gameweek,
		HomeTeamID: req.HomeTeamID,
		AwayTeamID: req.AwayTeamID,
		KickoffAt:  req.KickoffAt,
		Venue:      req.Venue,
		HomeScore:  req.HomeScore,
		AwayScore:  req.AwayScore,
		Status:     req.Status,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update fixture failed", "user_id", principal.UserID, "league_id", leagueID, "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fixtureToDTO(item))
}

func (h *Handler) DeleteFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteFixture")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := pathValue(r, "leagueID")
	fixtureID := pathValue(r, "fixtureID")
	if err := h.fixtureService.DeleteFixture(ctx, principal.UserID, leagueID, fixtureID); err != nil {
		h.logger.WarnContext(ctx, "delete fixture failed", "user_id", principal.UserID, "league_id", leagueID, "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"id": fixtureID})
}
