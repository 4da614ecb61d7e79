package gridstats

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gridironhq/gridiron/internal/domain/player"
	"github.com/gridironhq/gridiron/internal/platform/logging"
	"github.com/gridironhq/gridiron/internal/platform/resilience"
	"github.com/gridironhq/gridiron/internal/usecase"
)

type stubPlayerRepo struct {
	players []player.Player
	err     error
}

var _ player.Repository = (*stubPlayerRepo)(nil)

func (s *stubPlayerRepo) List(context.Context) ([]player.Player, error) {
	return s.players, s.err
}

func testPlayers() *stubPlayerRepo {
	return &stubPlayerRepo{players: []player.Player{
		{ID: "player-qb", Name: "Sam Archer", Position: player.PositionQuarterback, ExternalRef: "ext-1001"},
		{ID: "player-wr", Name: "Dre Holloway", Position: player.PositionWideReceiver, ExternalRef: "ext-1003"},
	}}
}

func newTestClient(t *testing.T, baseURL string, cfg ClientConfig) *Client {
	t.Helper()

	cfg.BaseURL = baseURL
	cfg.Logger = logging.NewNop()
	client, err := NewClient(cfg, testPlayers())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(client.Close)
	return client
}

func TestClientMapsFinalizedRecords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/games/game-1/stats" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("content-type", "application/json")
		_, _ = w.Write([]byte(`{"data":[
			{"player_ref":"ext-1001","game_id":"game-1","finalized":true,"line":{"passing_yards":300,"passing_touchdowns":3}},
			{"player_ref":"ext-9999","game_id":"game-1","finalized":true,"line":{"rushing_yards":50}},
			{"player_ref":"ext-1003","game_id":"game-1","finalized":false,"line":{"receiving_yards":40}}
		]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, ClientConfig{Timeout: 2 * time.Second})

	records, err := client.ListFinalizedByGames(context.Background(), []string{"game-1"})
	if err != nil {
		t.Fatalf("ListFinalizedByGames: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record after dropping unknown and unfinalized rows, got %d", len(records))
	}
	got := records[0]
	if got.PlayerID != "player-qb" || got.GameID != "game-1" || !got.Finalized {
		t.Fatalf("unexpected record %+v", got)
	}
	if got.Line.Value("passing_yards") != 300 || got.Line.Value("passing_touchdowns") != 3 {
		t.Fatalf("unexpected stat line %+v", got.Line)
	}
}

func TestClientEmptyGameList(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1", ClientConfig{})

	records, err := client.ListFinalizedByGames(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListFinalizedByGames: %v", err)
	}
	if records != nil {
		t.Fatalf("expected nil records, got %+v", records)
	}
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"error":"unknown game"}`, http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, ClientConfig{Timeout: 2 * time.Second, MaxRetries: 3})

	_, err := client.ListFinalizedByGames(context.Background(), []string{"game-missing"})
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	if errors.Is(err, errGridStatsTransient) {
		t.Fatalf("404 should not be marked transient: %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected a single request, got %d", got)
	}
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "upstream hiccup", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("content-type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"player_ref":"ext-1001","game_id":"game-1","finalized":true,"line":{"passing_yards":100}}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, ClientConfig{Timeout: 2 * time.Second, MaxRetries: 1})

	records, err := client.ListFinalizedByGames(context.Background(), []string{"game-1"})
	if err != nil {
		t.Fatalf("ListFinalizedByGames: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record after retry, got %d", len(records))
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 requests, got %d", got)
	}
}

func TestClientCircuitBreakerRejects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, ClientConfig{
		Timeout: 2 * time.Second,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
		},
	})

	if _, err := client.ListFinalizedByGames(context.Background(), []string{"game-1"}); err == nil {
		t.Fatal("expected error from failing upstream")
	}

	_, err := client.ListFinalizedByGames(context.Background(), []string{"game-1"})
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected dependency unavailable once circuit opened, got %v", err)
	}
}

func TestIsRetryableStatus(t *testing.T) {
	cases := []struct {
		status int
		want   bool
	}{
		{http.StatusOK, false},
		{http.StatusBadRequest, false},
		{http.StatusNotFound, false},
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, true},
		{http.StatusBadGateway, true},
	}
	for _, tc := range cases {
		if got := isRetryableStatus(tc.status); got != tc.want {
			t.Errorf("isRetryableStatus(%d) = %v, want %v", tc.status, got, tc.want)
		}
	}
}
