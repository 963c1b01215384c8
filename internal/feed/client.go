// Package feed fetches raw price observations from the collaborator feed
// endpoint.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tokenfolio/swapdesk/internal/domain"
)

// Client is an HTTP client for the price feed with retry on 429 and 5xx.
type Client struct {
	url        string
	httpClient *http.Client
	maxRetries int
	baseDelay  time.Duration
}

// NewClient creates a new feed client.
func NewClient(url string, maxRetries int, baseDelay time.Duration) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
	}
}

// FetchObservations retrieves the current raw feed. The wire format is a
// JSON array of {currency, price, date} records; price and date stay as
// strings so the normalizer owns malformed-record handling.
func (c *Client) FetchObservations(ctx context.Context) ([]domain.PriceObservation, error) {
	body, err := getWithRetry(ctx, c.httpClient, c.url, c.maxRetries, c.baseDelay)
	if err != nil {
		return nil, fmt.Errorf("fetching price feed: %w", err)
	}

	var observations []domain.PriceObservation
	if err := json.Unmarshal(body, &observations); err != nil {
		return nil, fmt.Errorf("parsing price feed: %w", err)
	}
	return observations, nil
}

// getWithRetry performs a GET request, retrying retriable statuses with
// exponential backoff.
func getWithRetry(ctx context.Context, client *http.Client, url string, maxRetries int, baseDelay time.Duration) ([]byte, error) {
	var lastErr error
	for attempt := range maxRetries + 1 {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}

		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("executing request: %w", err)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("reading response: %w", err)
		}

		if resp.StatusCode == http.StatusOK {
			return body, nil
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			lastErr = fmt.Errorf("HTTP %d at %s (attempt %d/%d)", resp.StatusCode, url, attempt+1, maxRetries+1)
			if attempt < maxRetries {
				delay := baseDelay * time.Duration(1<<uint(attempt))
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(delay):
				}
				continue
			}
			return nil, lastErr
		}

		return nil, fmt.Errorf("HTTP %d from %s: %s", resp.StatusCode, url, string(body))
	}

	return nil, lastErr
}
