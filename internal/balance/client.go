// Package balance fetches wallet balances from the balances collaborator.
package balance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tokenfolio/swapdesk/internal/domain"
)

// Client is an HTTP client for the balances endpoint with retry on 429.
type Client struct {
	url        string
	httpClient *http.Client
	maxRetries int
	baseDelay  time.Duration
}

// NewClient creates a new balances client.
func NewClient(url string, maxRetries int, baseDelay time.Duration) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
	}
}

// FetchBalances retrieves the current wallet balance list. The wire format
// is a JSON array of {blockchain, currency, amount} tuples; amounts stay as
// strings and are parsed during ranking.
func (c *Client) FetchBalances(ctx context.Context) ([]domain.WalletBalance, error) {
	body, err := c.get(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching balances: %w", err)
	}

	var balances []domain.WalletBalance
	if err := json.Unmarshal(body, &balances); err != nil {
		return nil, fmt.Errorf("parsing balances: %w", err)
	}
	return balances, nil
}

func (c *Client) get(ctx context.Context) ([]byte, error) {
	var lastErr error
	for attempt := range c.maxRetries + 1 {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
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

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("HTTP 429 at %s (attempt %d/%d)", c.url, attempt+1, c.maxRetries+1)
			if attempt < c.maxRetries {
				delay := c.baseDelay * time.Duration(1<<uint(attempt))
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(delay):
				}
				continue
			}
			return nil, lastErr
		}

		return nil, fmt.Errorf("HTTP %d from %s: %s", resp.StatusCode, c.url, string(body))
	}

	return nil, lastErr
}
