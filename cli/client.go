package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Client talks to the ladder HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// APIError is a non-2xx response. Validation failures carry Fields, other
// failures carry Message.
type APIError struct {
	Status  int
	Message string
	Fields  map[string][]string
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		if e.Message == "" {
			return fmt.Sprintf("HTTP %d", e.Status)
		}
		return e.Message
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs := strings.Join(e.Fields[k], " ")
		if k == "_schema" {
			parts = append(parts, msgs)
			continue
		}
		parts = append(parts, k+": "+msgs)
	}
	return strings.Join(parts, "; ")
}

// ServerFault reports whether the failure is the server's, not the request's.
func (e *APIError) ServerFault() bool {
	return e.Status >= http.StatusInternalServerError
}

type errorBody struct {
	Error  string              `json:"error"`
	Errors map[string][]string `json:"errors"`
}

func (c *Client) Do(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		var eb errorBody
		if err := json.Unmarshal(respBody, &eb); err == nil {
			apiErr.Message = eb.Error
			apiErr.Fields = eb.Errors
		} else {
			apiErr.Message = strings.TrimSpace(string(respBody))
		}
		return apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

func (c *Client) Get(ctx context.Context, path string, result any) error {
	return c.Do(ctx, http.MethodGet, path, nil, result)
}

func (c *Client) Post(ctx context.Context, path string, body, result any) error {
	return c.Do(ctx, http.MethodPost, path, body, result)
}

// Players returns the leaderboard.
func (c *Client) Players(ctx context.Context) ([]Player, error) {
	var players []Player
	err := c.Get(ctx, "/players", &players)
	return players, err
}

func (c *Client) Player(ctx context.Context, name string) (*Player, error) {
	var player Player
	if err := c.Get(ctx, "/players/"+url.PathEscape(name), &player); err != nil {
		return nil, err
	}
	return &player, nil
}

// AddPlayer registers name and returns it as stored. A nil rating uses the
// server default.
func (c *Client) AddPlayer(ctx context.Context, name string, rating *int) (string, error) {
	req := map[string]any{"name": name}
	if rating != nil {
		req["rating"] = *rating
	}
	var created string
	err := c.Post(ctx, "/players", req, &created)
	return created, err
}

// Games returns recent games. count <= 0 uses the server default and an
// empty player lists everyone's games.
func (c *Client) Games(ctx context.Context, count int, player string) ([]Game, error) {
	q := url.Values{}
	if count > 0 {
		q.Set("count", strconv.Itoa(count))
	}
	if player != "" {
		q.Set("player", player)
	}
	var games []Game
	err := c.Get(ctx, withQuery("/games", q), &games)
	return games, err
}

func (c *Client) AddGame(ctx context.Context, winner, loser string, winnerScore, loserScore int) (uint, error) {
	req := map[string]any{
		"winner":       winner,
		"loser":        loser,
		"winner_score": winnerScore,
		"loser_score":  loserScore,
	}
	var id uint
	err := c.Post(ctx, "/games", req, &id)
	return id, err
}

func (c *Client) Challenges(ctx context.Context, includeCompleted bool, player string) ([]Challenge, error) {
	q := url.Values{}
	if includeCompleted {
		q.Set("include_completed", "true")
	}
	if player != "" {
		q.Set("player", player)
	}
	var challenges []Challenge
	err := c.Get(ctx, withQuery("/challenges", q), &challenges)
	return challenges, err
}

func (c *Client) AddChallenge(ctx context.Context, challenger, challenged string, gameID *uint) (uint, error) {
	req := map[string]any{
		"challenger": challenger,
		"challenged": challenged,
	}
	if gameID != nil {
		req["game_id"] = *gameID
	}
	var id uint
	err := c.Post(ctx, "/challenges", req, &id)
	return id, err
}

func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	if err := c.Get(ctx, "/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) Health(ctx context.Context) (*Health, error) {
	var health Health
	if err := c.Get(ctx, "/health", &health); err != nil {
		return nil, err
	}
	return &health, nil
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
