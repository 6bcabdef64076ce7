package feed

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// Client fetches the raw feed document. A transient failure is retried a
// bounded number of times with exponential backoff; the transport timeout
// comes from the underlying http.Client.
type Client struct {
	URL     string
	HTTP    *http.Client
	Retries int           // total attempts, min 1
	Backoff time.Duration // backoff unit, doubled per attempt
}

func NewClient(url string) *Client {
	return &Client{
		URL:     url,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		Retries: 3,
		Backoff: time.Second,
	}
}

// Fetch downloads the feed body, wrapping any final failure as a
// transport-kind error.
func (c *Client) Fetch() ([]byte, error) {
	attempts := c.Retries
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		body, err := c.fetchOnce()
		if err == nil {
			return body, nil
		}
		lastErr = err
		if attempt < attempts {
			backoff := time.Duration(1<<uint(attempt-1)) * c.Backoff
			log.Printf("[feed] attempt %d/%d failed: %v (retrying in %v)", attempt, attempts, err, backoff)
			time.Sleep(backoff)
		}
	}
	return nil, &SyncError{Kind: KindTransport, Err: fmt.Errorf("after %d attempts: %w", attempts, lastErr)}
}

func (c *Client) fetchOnce() ([]byte, error) {
	resp, err := c.HTTP.Get(c.URL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("feed returned %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
