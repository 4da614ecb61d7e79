package gridstats

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/gridironhq/gridiron/internal/domain/player"
	"github.com/gridironhq/gridiron/internal/domain/stats"
	"github.com/gridironhq/gridiron/internal/platform/logging"
	"github.com/gridironhq/gridiron/internal/platform/resilience"
	"github.com/gridironhq/gridiron/internal/usecase"
)

const (
	defaultBaseURL     = "https://api.gridstats.io"
	defaultTimeout     = 20 * time.Second
	defaultConcurrency = 4
)

var errGridStatsTransient = crerr.New("gridstats transient failure")

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	Concurrency    int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads finalized stat lines from the GridStats feed. Player
// identities arrive as external refs; the client translates them through
// the player repository so callers only ever see internal IDs.
type Client struct {
	httpClient     *fasthttp.Client
	baseURL        string
	token          string
	timeout        time.Duration
	maxRetries     int
	playerRepo     player.Repository
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
	workers        *ants.Pool
}

var _ stats.Repository = (*Client)(nil)

func NewClient(cfg ClientConfig, playerRepo player.Repository) (*Client, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = defaultConcurrency
	}
	workers, err := ants.NewPool(concurrency)
	if err != nil {
		return nil, fmt.Errorf("create gridstats worker pool: %w", err)
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		timeout:        timeout,
		maxRetries:     cfg.MaxRetries,
		playerRepo:     playerRepo,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		circuitEnabled: cfg.CircuitBreaker.Enabled,
		workers:        workers,
	}, nil
}

func (c *Client) Close() {
	if c.workers != nil {
		c.workers.Release()
	}
}

type statsEnvelope struct {
	Data []statRecordPayload `json:"data"`
}

type statRecordPayload struct {
	PlayerRef string             `json:"player_ref"`
	GameID    string             `json:"game_id"`
	Finalized bool               `json:"finalized"`
	Line      map[string]float64 `json:"line"`
}

// ListFinalizedByGames fetches each game's stat page through the worker
// pool and maps external player refs to internal IDs. Records for players
// the platform does not know are dropped with a log line rather than
// failing the run.
func (c *Client) ListFinalizedByGames(ctx context.Context, gameIDs []string) ([]stats.Record, error) {
	if len(gameIDs) == 0 {
		return nil, nil
	}

	players, err := c.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players for stat mapping: %w", err)
	}
	idByRef := make(map[string]string, len(players))
	for _, item := range players {
		if item.ExternalRef != "" {
			idByRef[item.ExternalRef] = item.ID
		}
	}

	results := make([][]statRecordPayload, len(gameIDs))
	errs := make([]error, len(gameIDs))
	var wg sync.WaitGroup
	for i, gameID := range gameIDs {
		i, gameID := i, gameID
		wg.Add(1)
		submitErr := c.workers.Submit(func() {
			defer wg.Done()
			payloads, err := c.fetchGameStats(ctx, gameID)
			if err != nil {
				errs[i] = fmt.Errorf("fetch stats game=%s: %w", gameID, err)
				return
			}
			results[i] = payloads
		})
		if submitErr != nil {
			wg.Done()
			errs[i] = fmt.Errorf("submit stats fetch game=%s: %w", gameID, submitErr)
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	out := make([]stats.Record, 0, len(gameIDs)*32)
	for _, payloads := range results {
		for _, row := range payloads {
			if !row.Finalized {
				continue
			}
			playerID, ok := idByRef[row.PlayerRef]
			if !ok {
				c.logger.DebugContext(ctx, "drop stat record for unknown player", "player_ref", row.PlayerRef, "game_id", row.GameID)
				continue
			}
			out = append(out, stats.Record{
				PlayerID:  playerID,
				GameID:    row.GameID,
				Finalized: row.Finalized,
				Line:      stats.StatLine(row.Line),
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].GameID != out[j].GameID {
			return out[i].GameID < out[j].GameID
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out, nil
}

func (c *Client) fetchGameStats(ctx context.Context, gameID string) ([]statRecordPayload, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	buf.WriteString(c.baseURL)
	buf.WriteString("/v1/games/")
	buf.WriteString(url.PathEscape(gameID))
	buf.WriteString("/stats?finalized=true")
	fullURL := buf.String()

	var envelope statsEnvelope
	if err := c.doJSON(ctx, fullURL, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

func (c *Client) doJSON(ctx context.Context, fullURL string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "gridstats circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: stat feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && stderrors.Is(reqErr, errGridStatsTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode stat feed payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		raw, status, err := c.send(fullURL)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errGridStatsTransient, err)
		} else if status >= 200 && status < 300 {
			return raw, nil
		} else if isRetryableStatus(status) {
			lastErr = fmt.Errorf("%w: feed status=%d body=%s", errGridStatsTransient, status, abbreviateBody(raw))
		} else {
			return nil, fmt.Errorf("feed status=%d body=%s", status, abbreviateBody(raw))
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("stat feed request failed")
	}
	c.logger.WarnContext(ctx, "gridstats request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func (c *Client) send(fullURL string) ([]byte, int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("accept", "application/json")
	if c.token != "" {
		req.Header.Set("authorization", "Bearer "+c.token)
	}

	if err := c.httpClient.DoTimeout(req, resp, c.timeout); err != nil {
		return nil, 0, err
	}

	raw := append([]byte(nil), resp.Body()...)
	return raw, resp.StatusCode(), nil
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusTooManyRequests || status >= 500
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	if len(raw) <= limit {
		return string(raw)
	}
	return string(raw[:limit]) + "..."
}
