package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/league-manager/internal/domain/user"
	"github.com/riskibarqy/league-manager/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/league-manager/internal/platform/id"
	"github.com/riskibarqy/league-manager/internal/platform/logging"
	"github.com/riskibarqy/league-manager/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ownerToken    = "owner-token"
	strangerToken = "stranger-token"
)

type staticVerifier map[string]user.Principal

func (v staticVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	p, ok := v[token]
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthorized)
	}
	return p, nil
}

type recordingInstrumenter struct {
	routes []string
}

func (i *recordingInstrumenter) InstrumentRoute(route string, next http.Handler) http.Handler {
	i.routes = append(i.routes, route)
	return next
}

func newTestRouter(t *testing.T) (http.Handler, *recordingInstrumenter) {
	t.Helper()

	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues())
	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	fixtureRepo := memory.NewFixtureRepository(memory.SeedFixtures())
	logger := logging.NewNop()

	handler := NewHandler(
		usecase.NewLeagueService(leagueRepo, teamRepo, idgen.NewUUIDGenerator("lg-"), idgen.NewUUIDGenerator("tm-"), logger),
		usecase.NewTeamService(leagueRepo, teamRepo, idgen.NewUUIDGenerator("tm-")),
		usecase.NewFixtureService(leagueRepo, teamRepo, fixtureRepo, idgen.NewUUIDGenerator("fx-")),
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("# metrics\n"))
		}),
		logger,
	)
	verifier := staticVerifier{
		ownerToken:    {UserID: memory.SeedOwnerUserID},
		strangerToken: {UserID: "user-stranger"},
	}
	instrumenter := &recordingInstrumenter{}

	return NewRouter(handler, verifier, logger, []string{"*"}, instrumenter), instrumenter
}

func doRequest(t *testing.T, router http.Handler, method, path, token, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func dataObject(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	data, ok := body["data"].(map[string]any)
	require.True(t, ok, "expected data object, got %v", body)
	return data
}

func errorStatus(body map[string]any) string {
	errObj, _ := body["error"].(map[string]any)
	status, _ := errObj["status"].(string)
	return status
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, body := doRequest(t, router, http.MethodGet, "/healthz", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", dataObject(t, body)["status"])

	rec, _ = doRequest(t, router, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "# metrics")
}

func TestRouter_InstrumentsRoutePatterns(t *testing.T) {
	_, instrumenter := newTestRouter(t)

	assert.Contains(t, instrumenter.routes, "GET /v1/leagues/{leagueID}")
	assert.Contains(t, instrumenter.routes, "POST /v1/leagues/{leagueID}/teams")
	assert.NotContains(t, instrumenter.routes, "GET /healthz")
}

func TestGetLeague_ReturnsTeams(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, body := doRequest(t, router, http.MethodGet, "/v1/leagues/"+memory.LeagueIDSundayFive, "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	data := dataObject(t, body)
	assert.Equal(t, memory.LeagueIDSundayFive, data["id"])
	assert.Equal(t, "Sunday Five-a-side", data["name"])
	teams, ok := data["teams"].([]any)
	require.True(t, ok)
	assert.Len(t, teams, 3)
}

func TestGetLeague_UnknownReturnsNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, body := doRequest(t, router, http.MethodGet, "/v1/leagues/lg-missing", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errorStatus(body))
}

func TestListMyLeagues_RequiresAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, _ := doRequest(t, router, http.MethodGet, "/v1/leagues/me", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, body := doRequest(t, router, http.MethodGet, "/v1/leagues/me", ownerToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	items, ok := body["data"].([]any)
	require.True(t, ok)
	assert.Len(t, items, 2)
}

func TestCreateLeague(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, body := doRequest(t, router, http.MethodPost, "/v1/leagues", strangerToken, `{"name":"Five Alive","teams":["Reds","Blues"]}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	data := dataObject(t, body)
	assert.Equal(t, "user-stranger", data["owner_user_id"])
	teams, ok := data["teams"].([]any)
	require.True(t, ok)
	assert.Len(t, teams, 2)

	rec, body = doRequest(t, router, http.MethodPost, "/v1/leagues", strangerToken, `{"name":"Solo","teams":["Only"]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_ARGUMENT", errorStatus(body))
}

func TestCreateLeague_RejectsUnknownFields(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, _ := doRequest(t, router, http.MethodPost, "/v1/leagues", ownerToken, `{"name":"X","teams":["A","B"],"extra":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRenameLeague_OwnerOnly(t *testing.T) {
	router, _ := newTestRouter(t)
	path := "/v1/leagues/" + memory.LeagueIDSundayFive

	rec, body := doRequest(t, router, http.MethodPatch, path, strangerToken, `{"name":"Hijacked"}`)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "PERMISSION_DENIED", errorStatus(body))

	rec, body = doRequest(t, router, http.MethodPatch, path, ownerToken, `{"name":"Sunday League"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Sunday League", dataObject(t, body)["name"])
}

func TestTeamLifecycle(t *testing.T) {
	router, _ := newTestRouter(t)
	teamsPath := "/v1/leagues/" + memory.LeagueIDSundayFive + "/teams"

	rec, body := doRequest(t, router, http.MethodPost, teamsPath, ownerToken, `{"name":"Dockside"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := dataObject(t, body)
	newID, _ := created["id"].(string)
	require.NotEmpty(t, newID)
	assert.Equal(t, memory.LeagueIDSundayFive, created["league_id"])

	rec, body = doRequest(t, router, http.MethodPost, teamsPath, ownerToken, `{"name":"dockside"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "ALREADY_EXISTS", errorStatus(body))

	rec, body = doRequest(t, router, http.MethodPatch, teamsPath+"/"+newID, ownerToken, `{"name":"Dockside FC"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Dockside FC", dataObject(t, body)["name"])

	rec, _ = doRequest(t, router, http.MethodDelete, teamsPath+"/"+newID, ownerToken, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body = doRequest(t, router, http.MethodGet, teamsPath, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	items, ok := body["data"].([]any)
	require.True(t, ok)
	assert.Len(t, items, 3)
}

func TestCreateTeam_RequiresOwner(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, _ := doRequest(t, router, http.MethodPost, "/v1/leagues/"+memory.LeagueIDOfficeCup+"/teams", strangerToken, `{"name":"Legal"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestFixtureLifecycle(t *testing.T) {
	router, _ := newTestRouter(t)
	fixturesPath := "/v1/leagues/" + memory.LeagueIDSundayFive + "/fixtures"

	rec, body := doRequest(t, router, http.MethodPost, fixturesPath, ownerToken,
		`{"gameweek":2,"home_team_id":"tm-athletic","away_team_id":"tm-united","kickoff_at":"2026-10-11T09:00:00Z","venue":"Park Lane"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := dataObject(t, body)
	fixtureID, _ := created["id"].(string)
	require.NotEmpty(t, fixtureID)
	assert.Equal(t, "SCHEDULED", created["status"])

	rec, body = doRequest(t, router, http.MethodPatch, fixturesPath+"/"+fixtureID, ownerToken,
		`{"home_score":2,"away_score":1,"status":"finished"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := dataObject(t, body)
	assert.Equal(t, "FINISHED", updated["status"])
	assert.EqualValues(t, 2, updated["home_score"])

	rec, body = doRequest(t, router, http.MethodGet, fixturesPath, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	items, ok := body["data"].([]any)
	require.True(t, ok)
	assert.Len(t, items, 2)

	rec, _ = doRequest(t, router, http.MethodDelete, fixturesPath+"/"+fixtureID, ownerToken, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doRequest(t, router, http.MethodGet, fixturesPath+"/"+fixtureID, "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateFixture_RejectsSameTeams(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, body := doRequest(t, router, http.MethodPost, "/v1/leagues/"+memory.LeagueIDSundayFive+"/fixtures", ownerToken,
		`{"gameweek":2,"home_team_id":"tm-rovers","away_team_id":"tm-rovers","kickoff_at":"2026-10-11T09:00:00Z"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_ARGUMENT", errorStatus(body))
}
