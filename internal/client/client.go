package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scrim-scheduler/internal/planner"
	"github.com/mauv0809/scrim-scheduler/internal/roster"
)

// APIClient talks to the scheduler's HTTP API.
type APIClient struct {
	httpClient *http.Client
	BaseURL    string
}

// NewClient creates a client for the scheduler at baseURL.
func NewClient(baseURL string) SchedulerClient {
	return &APIClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		BaseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Ensure APIClient implements the SchedulerClient interface.
var _ SchedulerClient = (*APIClient)(nil)

func (c *APIClient) Health(ctx context.Context) error {
	return c.get(ctx, "/health", nil, nil)
}

func (c *APIClient) Hours(ctx context.Context) (Hours, error) {
	var hours Hours
	err := c.get(ctx, "/hours", nil, &hours)
	return hours, err
}

func (c *APIClient) ListPlayers(ctx context.Context) ([]roster.Player, error) {
	var players []roster.Player
	err := c.get(ctx, "/players", nil, &players)
	return players, err
}

// PlayerGrid fetches a player's week. An empty zone uses the player's own;
// a zero date means the current week.
func (c *APIClient) PlayerGrid(ctx context.Context, playerID, zone string, date time.Time) (*planner.GridResult, error) {
	var res planner.GridResult
	if err := c.get(ctx, "/players/"+url.PathEscape(playerID)+"/availability", gridQuery(zone, date), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *APIClient) TeamGrid(ctx context.Context, teamID, zone string, date time.Time) (*planner.GridResult, error) {
	var res planner.GridResult
	if err := c.get(ctx, "/teams/"+url.PathEscape(teamID)+"/availability", gridQuery(zone, date), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func gridQuery(zone string, date time.Time) url.Values {
	q := url.Values{}
	if zone != "" {
		q.Set("tz", zone)
	}
	if !date.IsZero() {
		q.Set("date", date.Format(time.DateOnly))
	}
	return q
}

// get performs a GET and decodes a JSON body into out when out is non-nil.
func (c *APIClient) get(ctx context.Context, path string, query url.Values, out any) error {
	target := c.BaseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, "GET", target, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	log.Debug("Requesting scheduler API", "url", target)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Error("Received non-OK HTTP status from scheduler", "status", resp.StatusCode, "body", string(body))
		return fmt.Errorf("received non-OK HTTP status: %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
