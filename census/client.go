// Package census fetches continent topology and territory ownership
// from the Daybreak Census API and converts the results into the
// types used by the analysis packages.
package census

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	ps2 "github.com/brhumphe/ps2-map-analyzer-sub000"
)

func init() {
	RateLimit(5, 2)
}

// RateLimiter throttles every request made through this package.
// Replace it to use a custom limiter.
var RateLimiter rateLimiter

const apiBase = "https://census.daybreakgames.com"

// Namespace returns the census namespace for an environment.
func Namespace(e ps2.Environment) string {
	switch e {
	case ps2.PC:
		return "ps2:v2"
	case ps2.PS4US:
		return "ps2ps4us:v2"
	case ps2.PS4EU:
		return "ps2ps4eu:v2"
	default:
		return ""
	}
}

// DefaultClient uses the "example" service ID,
// which census rate limits aggressively.
var DefaultClient = &Client{Key: "example"}

// Client is a census API client.
// The zero value is not usable; set Key to a registered service ID.
type Client struct {
	Key string

	// HTTPClient overrides http.DefaultClient when non-nil.
	HTTPClient *http.Client
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// Get runs a single census query and unmarshals the response into result.
// The query string is everything after the namespace,
// e.g. "zone?zone_id=2".
func (c *Client) Get(ctx context.Context, env ps2.Environment, query string, result any) error {
	select {
	case _, ok := <-RateLimiter.Ready():
		if !ok {
			return errors.New("rate limiter stopped")
		}
	case <-ctx.Done():
		return ctx.Err()
	}
	url := fmt.Sprintf("%s/s:%s/get/%s/%s", apiBase, c.Key, Namespace(env), query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	slog.Debug("census query", "url", url)
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return wrapRetryable(fmt.Errorf("census.Client.Get: client.Do: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("census.Client.Get: returned http %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return wrapRetryable(fmt.Errorf("census.Client.Get: read body: %w", err))
	}
	if err := checkErrorBody(body); err != nil {
		return fmt.Errorf("census.Client.Get: %w", err)
	}
	if err = json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("census.Client.Get: unmarshal json: %w", err)
	}
	return nil
}

// RateLimit sets the global rate limiter used by every Client.
// burst sets the number of requests that can be sent initially without
// throttling, and nPerSec defines how many requests can be made per
// second after that.
func RateLimit(burst, nPerSec int) {
	stopLastLimiter()
	if burst < 1 {
		burst = 1
	}
	limiter := make(rateLimit, burst-1)
	ticker := time.NewTicker(time.Second / time.Duration(nPerSec))
	stopLastLimiter = ticker.Stop
	RateLimiter = limiter
	for i := 0; i < burst-1; i++ {
		limiter <- struct{}{}
	}
	go func() {
		for range ticker.C {
			limiter <- struct{}{}
		}
	}()
}

var stopLastLimiter func() = func() {}

type rateLimiter interface {
	Ready() <-chan struct{}
}

type rateLimit chan struct{}

func (limit rateLimit) Ready() <-chan struct{} {
	return limit
}
