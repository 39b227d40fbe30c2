/* external.go
 * Contains the logic used to fetch weekly schedule and results data from the
 * results provider api, and return the normalized games to the higher level functions
 * Authors: Zachary Bower
 */

package external

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"pool-bot/api/shared"

	"golang.org/x/time/rate"
)

// Client wraps the results provider api. The limiter keeps us inside the
// provider's documented limit of one request per second with short bursts
type Client struct {
	BaseURL string
	APIKey  string
	client  *http.Client
	limiter *rate.Limiter
}

// NewClient creates a provider client
// Preconditions: Receives the provider base url and api key
// Postconditions: Returns a Client ready for use, or an error if it occurs
func NewClient(baseURL string, apiKey string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("provider base url cannot be empty")
	}

	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
		limiter: rate.NewLimiter(rate.Every(time.Second), 3),
	}, nil
}

// FetchWeekGames gets one week's schedule and results, and returns the normalized games
// Preconditions: Receives a context and the week number
// Postconditions: Returns the week's games sorted by kickoff time, or an error if it occurs
func (c *Client) FetchWeekGames(ctx context.Context, week int) ([]shared.Game, error) {
	if week <= 0 {
		return nil, fmt.Errorf("week must be positive")
	}

	body, err := c.get(ctx, fmt.Sprintf("/schedule/%d", week))
	if err != nil {
		return nil, fmt.Errorf("error fetching schedule from provider: %w", err)
	}

	var response ScheduleResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("error decoding schedule response: %w", err)
	}

	if response.Week != 0 && response.Week != week {
		return nil, fmt.Errorf("provider returned week %d, requested week %d", response.Week, week)
	}

	games, err := NormalizeEvents(response.Events)
	if err != nil {
		return nil, fmt.Errorf("error normalizing provider events: %w", err)
	}

	return games, nil
}

// get performs a rate limited GET against the provider and returns the raw body.
// Handles gzip encoded responses
// Preconditions: Receives a context and the path relative to the base url
// Postconditions: Returns the response body bytes, or an error if it occurs
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter interrupted: %w", err)
	}

	requestUrl, err := url.JoinPath(c.BaseURL, path)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}

	// Create HTTP Request
	request, err := http.NewRequestWithContext(ctx, "GET", requestUrl, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Headers to comply with API requirements
	request.Header.Set("User-Agent", "PoolBotDataFetcher/1.0")
	request.Header.Set("Accept-Encoding", "gzip")
	if c.APIKey != "" {
		request.Header.Set("Authorization", fmt.Sprintf("Apikey %s", c.APIKey))
	}

	response, err := c.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch page, status code: %d", response.StatusCode)
	}

	// Get body from response
	var body []byte
	if response.Header.Get("Content-Encoding") == "gzip" {
		reader, err := gzip.NewReader(response.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer reader.Close()
		body, err = io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}
	} else {
		body, err = io.ReadAll(response.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}
	}

	return body, nil
}
