package cli

import (
	"bytes"
	"context"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/league-manager/internal/domain/user"
	"github.com/riskibarqy/league-manager/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/league-manager/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/league-manager/internal/platform/id"
	"github.com/riskibarqy/league-manager/internal/platform/logging"
	"github.com/riskibarqy/league-manager/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ownerToken = "owner-token"

type tokenVerifier struct{}

func (tokenVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	if token != ownerToken {
		return user.Principal{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthorized)
	}
	return user.Principal{UserID: memory.SeedOwnerUserID}, nil
}

func newLeagueServer(t *testing.T) *httptest.Server {
	t.Helper()

	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues())
	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	fixtureRepo := memory.NewFixtureRepository(memory.SeedFixtures())
	logger := logging.NewNop()

	handler := httpapi.NewHandler(
		usecase.NewLeagueService(leagueRepo, teamRepo, idgen.NewUUIDGenerator("lg-"), idgen.NewUUIDGenerator("tm-"), logger),
		usecase.NewTeamService(leagueRepo, teamRepo, idgen.NewUUIDGenerator("tm-")),
		usecase.NewFixtureService(leagueRepo, teamRepo, fixtureRepo, idgen.NewUUIDGenerator("fx-")),
		nil,
		logger,
	)
	srv := httptest.NewServer(httpapi.NewRouter(handler, tokenVerifier{}, logger, []string{"*"}, nil))
	t.Cleanup(srv.Close)
	return srv
}

func runCLI(t *testing.T, srv *httptest.Server, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LEAGUE_API_BASE_URL", "")
	t.Setenv("LEAGUE_API_TOKEN", "")
	t.Setenv("METRICS_PUSHGATEWAY_URL", "")
	t.Setenv("LEAGUECTL_LOG_LEVEL", "error")

	out := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--base-url", srv.URL, "--token", ownerToken}, args...))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "edits.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLeaguesCommand(t *testing.T) {
	srv := newLeagueServer(t)

	out, err := runCLI(t, srv, "", "leagues")
	require.NoError(t, err)
	assert.Contains(t, out, memory.LeagueIDSundayFive)
	assert.Contains(t, out, "Office Cup")
}

func TestShowCommand_JSON(t *testing.T) {
	srv := newLeagueServer(t)

	out, err := runCLI(t, srv, "", "--format", "json", "show", memory.LeagueIDOfficeCup)
	require.NoError(t, err)

	var got leagueOutput
	require.NoError(t, sonic.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Office Cup", got.Name)
	assert.Equal(t, []teamOutput{
		{Index: 0, ID: "tm-finance", Name: "Finance"},
		{Index: 1, ID: "tm-platform", Name: "Platform"},
	}, got.Teams)
}

func TestRootCommand_RejectsUnknownFormat(t *testing.T) {
	srv := newLeagueServer(t)

	_, err := runCLI(t, srv, "", "--format", "xml", "leagues")
	assert.Error(t, err)
}

func TestEditCommand_SavesWholeBatch(t *testing.T) {
	srv := newLeagueServer(t)
	script := writeScript(t, `
rename_league: Sunday League
rename:
  - {index: 0, name: Rovers}
delete: [2]
add: [Dockside]
`)

	out, err := runCLI(t, srv, "", "edit", memory.LeagueIDSundayFive, "-f", script, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "4 operation(s) will be sent.")
	assert.Contains(t, out, "[ok] All changes succeeded")

	out, err = runCLI(t, srv, "", "--format", "json", "show", memory.LeagueIDSundayFive)
	require.NoError(t, err)
	var got leagueOutput
	require.NoError(t, sonic.Unmarshal([]byte(out), &got))

	assert.Equal(t, "Sunday League", got.Name)
	require.Len(t, got.Teams, 3)
	assert.Equal(t, teamOutput{Index: 0, ID: "tm-rovers", Name: "Rovers"}, got.Teams[0])
	assert.Equal(t, "tm-athletic", got.Teams[1].ID)
	assert.Equal(t, "Dockside", got.Teams[2].Name)
	assert.True(t, strings.HasPrefix(got.Teams[2].ID, "tm-"), "expected a server id, got %q", got.Teams[2].ID)
}

func TestEditCommand_PartialFailureIsStale(t *testing.T) {
	srv := newLeagueServer(t)
	script := writeScript(t, `
rename:
  - {index: 0, name: Finance Dept}
add: [platform]
`)

	out, err := runCLI(t, srv, "", "edit", memory.LeagueIDOfficeCup, "-f", script, "--yes")
	require.Error(t, err)
	assert.ErrorIs(t, err, usecase.ErrStaleSession)
	assert.Contains(t, out, "[error] Please reload page")

	out, err = runCLI(t, srv, "", "show", memory.LeagueIDOfficeCup)
	require.NoError(t, err)
	assert.Contains(t, out, "Finance Dept")
}

func TestEditCommand_DeclinedConfirmationSendsNothing(t *testing.T) {
	srv := newLeagueServer(t)
	script := writeScript(t, "rename_league: Renamed\n")

	out, err := runCLI(t, srv, "n\n", "edit", memory.LeagueIDOfficeCup, "-f", script)
	require.NoError(t, err)
	assert.Contains(t, out, "aborted, nothing was sent")

	out, err = runCLI(t, srv, "", "show", memory.LeagueIDOfficeCup)
	require.NoError(t, err)
	assert.Contains(t, out, "Office Cup")
}

func TestEditCommand_InvalidRosterIsRejectedLocally(t *testing.T) {
	srv := newLeagueServer(t)
	script := writeScript(t, "delete: [0]\n")

	_, err := runCLI(t, srv, "", "edit", memory.LeagueIDOfficeCup, "-f", script, "--yes")
	assert.ErrorIs(t, err, usecase.ErrSaveDisabled)
}
