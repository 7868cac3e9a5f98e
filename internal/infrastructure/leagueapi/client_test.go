package leagueapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/league-manager/internal/domain/roster"
	"github.com/riskibarqy/league-manager/internal/platform/logging"
	"github.com/riskibarqy/league-manager/internal/platform/resilience"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(srv *httptest.Server, breaker resilience.CircuitBreakerConfig) *Client {
	return NewClient(Config{
		HTTPClient:     srv.Client(),
		BaseURL:        srv.URL + "/",
		Token:          "tok-123",
		CircuitBreaker: breaker,
		Logger:         logging.NewNop(),
	})
}

func TestClientSend_CreateCapturesRemoteID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/leagues/lg-1/teams", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		raw, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"name":"Greens"}`, string(raw))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"apiVersion":"2.0","data":{"id":"tm-77","league_id":"lg-1","name":"Greens"}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv, resilience.CircuitBreakerConfig{})
	got, err := client.Send(context.Background(), roster.Operation{
		Verb:          roster.VerbCreate,
		Path:          "/v1/leagues/lg-1/teams",
		Payload:       &roster.NamePayload{Name: "Greens"},
		PlaceholderID: "new-abc",
	})
	require.NoError(t, err)
	assert.Equal(t, "tm-77", got.CreatedID)
}

func TestClientSend_VerbsMapToMethods(t *testing.T) {
	var (
		mu      sync.Mutex
		methods []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		methods = append(methods, r.Method)
		mu.Unlock()
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_, _ = w.Write([]byte(`{"apiVersion":"2.0","data":{}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv, resilience.CircuitBreakerConfig{})
	ctx := context.Background()

	_, err := client.Send(ctx, roster.Operation{Verb: roster.VerbUpdate, Path: "/v1/leagues/lg-1", Payload: &roster.NamePayload{Name: "x"}})
	require.NoError(t, err)
	_, err = client.Send(ctx, roster.Operation{Verb: roster.VerbDelete, Path: "/v1/leagues/lg-1/teams/tm-1"})
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{http.MethodPatch, http.MethodDelete}, methods)
}

func TestClientSend_NonSuccessIsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"apiVersion":"2.0","error":{"code":409,"message":"team name taken","status":"ALREADY_EXISTS"}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv, resilience.CircuitBreakerConfig{})
	_, err := client.Send(context.Background(), roster.Operation{
		Verb:    roster.VerbUpdate,
		Path:    "/v1/leagues/lg-1/teams/tm-1",
		Payload: &roster.NamePayload{Name: "Reds"},
	})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr), "expected APIError, got %v", err)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "ALREADY_EXISTS", apiErr.Status)
	assert.False(t, isCircuitFailure(err))
}

func TestClientSend_CreateWithoutIDFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"apiVersion":"2.0","data":{}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv, resilience.CircuitBreakerConfig{})
	_, err := client.Send(context.Background(), roster.Operation{
		Verb:    roster.VerbCreate,
		Path:    "/v1/leagues/lg-1/teams",
		Payload: &roster.NamePayload{Name: "Greens"},
	})
	require.Error(t, err)
}

func TestClientSend_CircuitOpensAfterServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := newTestClient(srv, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})
	op := roster.Operation{Verb: roster.VerbDelete, Path: "/v1/leagues/lg-1/teams/tm-1"}

	for i := 0; i < 2; i++ {
		_, err := client.Send(context.Background(), op)
		require.Error(t, err)
		assert.True(t, isCircuitFailure(err))
	}
	_, err := client.Send(context.Background(), op)
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClientLoadLeague(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/leagues/lg-1", r.URL.Path)

		payload := map[string]any{
			"apiVersion": "2.0",
			"data": map[string]any{
				"id":            "lg-1",
				"owner_user_id": "user-1",
				"name":          "Sunday",
				"created_at":    "2026-09-01T08:00:00Z",
				"updated_at":    "2026-09-02T08:00:00Z",
				"teams": []map[string]any{
					{"id": "tm-1", "league_id": "lg-1", "name": "Reds"},
					{"id": "tm-2", "league_id": "lg-1", "name": "Blues"},
				},
			},
		}
		raw, err := sonic.Marshal(payload)
		assert.NoError(t, err)
		_, _ = w.Write(raw)
	}))
	defer srv.Close()

	client := newTestClient(srv, resilience.CircuitBreakerConfig{})
	got, err := client.LoadLeague(context.Background(), "lg-1")
	require.NoError(t, err)

	assert.Equal(t, roster.Snapshot{
		LeagueID: "lg-1",
		Name:     "Sunday",
		Teams: roster.Roster{
			{ID: "tm-1", Name: "Reds"},
			{ID: "tm-2", Name: "Blues"},
		},
	}, got)
}

func TestClientListMyLeagues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/leagues/me", r.URL.Path)
		_, _ = w.Write([]byte(`{"apiVersion":"2.0","data":[{"id":"lg-1","name":"Sunday","updated_at":"2026-09-02T08:00:00Z"}]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv, resilience.CircuitBreakerConfig{})
	got, err := client.ListMyLeagues(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Sunday", got[0].Name)
	assert.Equal(t, 2026, got[0].UpdatedAt.Year())
}

func TestBuildCurlPreview_MasksToken(t *testing.T) {
	got := buildCurlPreview(http.MethodPatch, "http://api/v1/leagues/o'hara", []byte(`{"name":"x"}`), true)
	assert.Equal(t, `curl -X PATCH 'http://api/v1/leagues/o'"'"'hara' -H 'Authorization: Bearer ***' -H 'Content-Type: application/json' -d '{"name":"x"}'`, got)
}
