package lookup

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/Echelon133/sports-live-app-sub002/internal/platform/logging"
	"github.com/Echelon133/sports-live-app-sub002/internal/platform/resilience"
)

// RosterClient fetches match rosters from the roster service and answers
// membership checks for event validation. Rosters are cached per match so
// a burst of events for one match costs a single upstream call.
//
// The client fails open: when the roster service is down or the breaker is
// open, events are accepted rather than rejected. A missing roster must
// never stall live match processing.
type RosterClient struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger

	mu      sync.RWMutex
	rosters map[string]cachedRoster
	ttl     time.Duration
}

type cachedRoster struct {
	players   map[string]struct{}
	fetchedAt time.Time
}

type rosterResponse struct {
	MatchID   string   `json:"matchId"`
	PlayerIDs []string `json:"playerIds"`
}

type RosterClientConfig struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

func NewRosterClient(cfg RosterClientConfig, breaker *resilience.CircuitBreaker, logger *logging.Logger) *RosterClient {
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &RosterClient{
		client: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		baseURL: strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/"),
		timeout: timeout,
		breaker: breaker,
		logger:  logger,
		rosters: make(map[string]cachedRoster),
		ttl:     ttl,
	}
}

// OnMatchRoster reports whether the player belongs to the match roster.
// Unknown rosters allow all players.
func (c *RosterClient) OnMatchRoster(ctx context.Context, matchID, playerID string) (bool, error) {
	if playerID == "" {
		return true, nil
	}

	roster, ok := c.cached(matchID)
	if !ok {
		fetched, err := c.fetch(ctx, matchID)
		if err != nil {
			c.logger.WarnContext(ctx, "roster lookup unavailable, accepting events unchecked",
				"match_id", matchID,
				"error", err,
			)
			return true, nil
		}
		roster = fetched
	}
	if roster == nil {
		return true, nil
	}

	_, found := roster[playerID]
	return found, nil
}

func (c *RosterClient) cached(matchID string) (map[string]struct{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.rosters[matchID]
	if !ok || time.Since(entry.fetchedAt) > c.ttl {
		return nil, false
	}
	return entry.players, true
}

func (c *RosterClient) fetch(ctx context.Context, matchID string) (map[string]struct{}, error) {
	if c.breaker != nil {
		if err := c.breaker.Allow(); err != nil {
			return nil, fmt.Errorf("roster service unavailable: %w", err)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fmt.Sprintf("%s/v1/matches/%s/roster", c.baseURL, matchID))
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
		c.recordFailure()
		return nil, fmt.Errorf("request match roster: %w", err)
	}

	switch resp.StatusCode() {
	case fasthttp.StatusOK:
	case fasthttp.StatusNotFound:
		// No roster published for this match. Cache the absence so we do
		// not hammer the roster service for every event.
		c.recordSuccess()
		c.store(matchID, nil)
		return nil, nil
	default:
		c.recordFailure()
		return nil, fmt.Errorf("roster service returned status %d", resp.StatusCode())
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := buf.Write(resp.Body()); err != nil {
		return nil, fmt.Errorf("buffer roster response: %w", err)
	}

	var decoded rosterResponse
	if err := sonic.Unmarshal(buf.Bytes(), &decoded); err != nil {
		c.recordFailure()
		return nil, fmt.Errorf("unmarshal roster response: %w", err)
	}
	c.recordSuccess()

	players := make(map[string]struct{}, len(decoded.PlayerIDs))
	for _, id := range decoded.PlayerIDs {
		players[id] = struct{}{}
	}
	c.store(matchID, players)
	return players, nil
}

func (c *RosterClient) store(matchID string, players map[string]struct{}) {
	c.mu.Lock()
	c.rosters[matchID] = cachedRoster{players: players, fetchedAt: time.Now()}
	c.mu.Unlock()
}

func (c *RosterClient) recordSuccess() {
	if c.breaker != nil {
		c.breaker.RecordSuccess()
	}
}

func (c *RosterClient) recordFailure() {
	if c.breaker != nil {
		c.breaker.RecordFailure()
	}
}
