package ussr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"oraj-pole/internal/model"
)

const (
	DefaultBaseURL = "https://ussr.pl"
	userAgent      = "oraj-pole"

	// Best-scores listing is always the first page of ten.
	BestScoresPage  = 1
	BestScoresLimit = 10
)

// ErrReplayNotFound is returned when the replay endpoint answers with anything but 200.
var ErrReplayNotFound = errors.New("replay not available")

type Options struct {
	BaseURL string
	// Timeout of zero leaves requests unbounded.
	Timeout time.Duration
	// RequestsPerSecond of zero disables pacing.
	RequestsPerSecond float64
	HTTPClient        *http.Client
	Logger            *slog.Logger
}

type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	log     *slog.Logger
}

type leaderboardResponse struct {
	Users []struct {
		ID int64 `json:"id"`
	} `json:"users"`
}

type bestScoresResponse struct {
	Scores []struct {
		ID int64 `json:"id"`
	} `json:"scores"`
}

func NewClient(opts Options) *Client {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}
	return &Client{
		baseURL: base,
		http:    hc,
		limiter: limiter,
		log:     logger,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListPlayers returns the player ids on one leaderboard page, sorted by pp, in response order.
func (c *Client) ListPlayers(ctx context.Context, mode model.Mode, cmode model.CustomMode, page int) ([]model.PlayerID, error) {
	q := url.Values{}
	q.Set("mode", strconv.Itoa(int(mode)))
	q.Set("sort", "pp")
	q.Set("rx", strconv.Itoa(int(cmode)))
	q.Set("p", strconv.Itoa(page))

	var payload leaderboardResponse
	if err := c.getJSON(ctx, "/api/v1/leaderboard", q, &payload); err != nil {
		return nil, fmt.Errorf("query leaderboard page %d: %w", page, err)
	}

	ids := make([]model.PlayerID, 0, len(payload.Users))
	for _, u := range payload.Users {
		ids = append(ids, model.PlayerID(u.ID))
	}
	return ids, nil
}

// ListBestScores returns up to BestScoresLimit score ids for a player, in response order.
func (c *Client) ListBestScores(ctx context.Context, player model.PlayerID, mode model.Mode, cmode model.CustomMode) ([]model.ScoreID, error) {
	q := url.Values{}
	q.Set("mode", strconv.Itoa(int(mode)))
	q.Set("p", strconv.Itoa(BestScoresPage))
	q.Set("l", strconv.Itoa(BestScoresLimit))
	q.Set("rx", strconv.Itoa(int(cmode)))
	q.Set("id", player.String())

	var payload bestScoresResponse
	if err := c.getJSON(ctx, "/api/v1/users/scores/best", q, &payload); err != nil {
		return nil, fmt.Errorf("query best scores for player %s: %w", player, err)
	}

	scores := payload.Scores
	if len(scores) > BestScoresLimit {
		scores = scores[:BestScoresLimit]
	}
	ids := make([]model.ScoreID, 0, len(scores))
	for _, s := range scores {
		ids = append(ids, model.ScoreID(s.ID))
	}
	return ids, nil
}

// FetchReplay returns the raw replay body for a score.
func (c *Client) FetchReplay(ctx context.Context, score model.ScoreID) ([]byte, error) {
	endpoint := c.baseURL + "/web/replays/" + url.PathEscape(score.String())
	resp, err := c.do(ctx, endpoint, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: score %s (status %d)", ErrReplayNotFound, score, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read replay %s: %w", score, err)
	}
	c.log.Debug("replay fetched", "score_id", score.String(), "bytes", len(data))
	return data, nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}
	resp, err := c.do(ctx, endpoint, "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("api request failed (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parse JSON from %s: %w", path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, endpoint, accept string) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed", "url", endpoint, "error", err)
		return nil, err
	}
	c.log.Debug("request done", "url", endpoint, "status", resp.StatusCode, "elapsed", time.Since(start))
	return resp, nil
}
