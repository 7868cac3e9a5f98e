package leagueapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/league-manager/internal/domain/roster"
	"github.com/riskibarqy/league-manager/internal/platform/logging"
	"github.com/riskibarqy/league-manager/internal/platform/resilience"
	"github.com/riskibarqy/league-manager/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const maxResponseBytes = 1 << 20

var errLeagueAPITransient = crerr.New("league api transient failure")

type Config struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
	Logger         *logging.Logger
}

// Client talks to the league API on behalf of one authenticated user.
// It sends roster operations and loads league snapshots.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	breaker    *resilience.CircuitBreaker
	logger     *logging.Logger
}

func NewClient(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		token:      strings.TrimSpace(cfg.Token),
		breaker:    resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		logger:     logger,
	}
}

// Send performs one roster operation. Any 2xx answer is a success; a create
// reports the remote id from data.id.
func (c *Client) Send(ctx context.Context, op roster.Operation) (roster.SendResult, error) {
	method, err := methodFor(op.Verb)
	if err != nil {
		return roster.SendResult{}, err
	}

	var body []byte
	if op.Payload != nil {
		body, err = sonic.Marshal(op.Payload)
		if err != nil {
			return roster.SendResult{}, crerr.Wrap(err, "marshal operation payload")
		}
	}

	raw, err := c.do(ctx, method, op.Path, body)
	if err != nil {
		return roster.SendResult{}, err
	}
	if op.Verb != roster.VerbCreate {
		return roster.SendResult{}, nil
	}

	var decoded envelope[teamDTO]
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return roster.SendResult{}, crerr.Wrap(err, "decode create team response")
	}
	if strings.TrimSpace(decoded.Data.ID) == "" {
		return roster.SendResult{}, crerr.Newf("create team response for %s has no id", op.Path)
	}

	return roster.SendResult{CreatedID: decoded.Data.ID}, nil
}

// LoadLeague fetches the league name and its persisted roster.
func (c *Client) LoadLeague(ctx context.Context, leagueID string) (roster.Snapshot, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return roster.Snapshot{}, fmt.Errorf("%w: league id is required", usecase.ErrInvalidInput)
	}

	raw, err := c.do(ctx, http.MethodGet, usecase.LeaguePath(leagueID), nil)
	if err != nil {
		return roster.Snapshot{}, err
	}

	var decoded envelope[leagueDetailDTO]
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return roster.Snapshot{}, crerr.Wrap(err, "decode league response")
	}

	return decoded.Data.toSnapshot(), nil
}

// ListMyLeagues returns the leagues owned by the token's user.
func (c *Client) ListMyLeagues(ctx context.Context) ([]LeagueSummary, error) {
	raw, err := c.do(ctx, http.MethodGet, "/v1/leagues/me", nil)
	if err != nil {
		return nil, err
	}

	var decoded envelope[[]leagueDTO]
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return nil, crerr.Wrap(err, "decode leagues response")
	}

	out := make([]LeagueSummary, 0, len(decoded.Data))
	for _, item := range decoded.Data {
		out = append(out, LeagueSummary{ID: item.ID, Name: item.Name, UpdatedAt: item.UpdatedAt})
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "league api circuit breaker rejected request", "method", method, "path", path, "state", c.breaker.State())
		return nil, crerr.Wrapf(err, "%s %s", method, path)
	}

	raw, err := c.execute(ctx, method, path, body)
	c.breaker.Record(err, isCircuitFailure)
	return raw, err
}

func (c *Client) execute(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	fullURL := c.baseURL + path

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("league_api.method", method),
			attribute.String("league_api.path", path),
		)
	}
	c.logger.DebugContext(ctx, "league api request", "curl_preview", buildCurlPreview(method, fullURL, body, c.token != ""))

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, crerr.Wrap(err, "create league api request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, crerr.Mark(crerr.Wrapf(err, "%s %s", method, path), errLeagueAPITransient)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, crerr.Mark(crerr.Wrapf(err, "read %s %s response", method, path), errLeagueAPITransient)
	}

	if resp.StatusCode/100 != 2 {
		apiErr := decodeAPIError(method, path, resp.StatusCode, raw)
		if isRetryableStatus(resp.StatusCode) {
			return nil, crerr.Mark(apiErr, errLeagueAPITransient)
		}
		return nil, apiErr
	}

	return raw, nil
}

func methodFor(verb roster.Verb) (string, error) {
	switch verb {
	case roster.VerbCreate:
		return http.MethodPost, nil
	case roster.VerbUpdate:
		return http.MethodPatch, nil
	case roster.VerbDelete:
		return http.MethodDelete, nil
	default:
		return "", crerr.Newf("unsupported operation verb %q", verb)
	}
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

func isCircuitFailure(err error) bool {
	return crerr.Is(err, errLeagueAPITransient)
}
