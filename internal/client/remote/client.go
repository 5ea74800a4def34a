// Package remote provides a client for a running inventory API.
package remote

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"inventory-api/internal/config"
)

// StatusResponse is the body returned by GET /.
type StatusResponse struct {
	Details string `json:"details"`
}

// Client is a client for the inventory API.
type Client struct {
	endpoint   string             // Inventory API endpoint
	timeout    time.Duration      // Request timeout
	retry      config.RetryConfig // Retry configuration
	httpClient *resty.Client      // HTTP client
	logger     zerolog.Logger     // Logger
}

// NewClient creates a new inventory API client.
func NewClient(cfg *config.ClientConfig, logger zerolog.Logger) *Client {
	// Set default timeout if not specified
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	retry := cfg.Retry
	if retry.BaseDelay == 0 {
		retry.BaseDelay = 500 * time.Millisecond
	}

	httpClient := resty.New().
		SetBaseURL(cfg.Endpoint).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(retry.MaxRetries).
		SetRetryWaitTime(retry.BaseDelay).
		SetRetryMaxWaitTime(retry.BaseDelay * 8). // Max wait time for exponential backoff
		AddRetryCondition(retryCondition)

	return &Client{
		endpoint:   cfg.Endpoint,
		timeout:    timeout,
		retry:      retry,
		httpClient: httpClient,
		logger:     logger.With().Str("component", "inventory-client").Logger(),
	}
}

// retryCondition determines whether a request should be retried.
// Only retry on timeout, 5xx errors, or connection failures.
func retryCondition(resp *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	return resp != nil && resp.StatusCode() >= 500
}

// Status returns the status line of the API.
func (c *Client) Status(ctx context.Context) (string, error) {
	var result StatusResponse
	if err := c.get(ctx, "/", nil, nil, &result); err != nil {
		return "", err
	}
	return result.Details, nil
}

// Groups returns all group names as served by GET /search.
func (c *Client) Groups(ctx context.Context) ([]string, error) {
	var result []string
	if err := c.get(ctx, "/search", nil, nil, &result); err != nil {
		return nil, err
	}
	return nonNil(result), nil
}

// Hosts returns the hosts of group as served by GET /query/{group}.
// Servers without enrichment support ignore the enrich flag.
func (c *Client) Hosts(ctx context.Context, group string, enrich bool) ([]string, error) {
	var result []string
	pathParams := map[string]string{"group": group}
	queryParams := map[string]string{"enrich": strconv.FormatBool(enrich)}
	if err := c.get(ctx, "/query/{group}", pathParams, queryParams, &result); err != nil {
		return nil, err
	}
	return nonNil(result), nil
}

// AllHosts returns the hosts of every group as served by GET /query.
func (c *Client) AllHosts(ctx context.Context, enrich bool) ([]string, error) {
	var result []string
	queryParams := map[string]string{"enrich": strconv.FormatBool(enrich)}
	if err := c.get(ctx, "/query", nil, queryParams, &result); err != nil {
		return nil, err
	}
	return nonNil(result), nil
}

// get performs a GET request and decodes a 200 response into result.
func (c *Client) get(ctx context.Context, path string, pathParams, queryParams map[string]string, result any) error {
	c.logger.Debug().Str("path", path).Interface("path_params", pathParams).Msg("querying inventory API")

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetPathParams(pathParams).
		SetQueryParams(queryParams).
		SetResult(result).
		Get(path)

	if err != nil {
		c.logger.Error().Err(err).Str("path", path).Msg("inventory API request failed")
		return fmt.Errorf("failed to query %s: %w", path, err)
	}

	// Check HTTP status code
	if resp.StatusCode() != http.StatusOK {
		c.logger.Error().
			Int("status_code", resp.StatusCode()).
			Str("path", path).
			Str("body", string(resp.Body())).
			Msg("inventory API returned non-200 status")
		return fmt.Errorf("inventory API returned status %d for %s: %s", resp.StatusCode(), resp.Request.URL, string(resp.Body()))
	}

	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
