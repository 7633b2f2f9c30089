// Package search implements the client for the external suggestion
// collaborator: a single prompt endpoint that maps a free-text query to a
// list of candidate product names.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const maxResponseBytes = 1 << 20

// Config captures the settings for the suggestion endpoint.
type Config struct {
	URL        string
	APIKey     string
	Timeout    time.Duration
	RatePerSec float64
}

// Client calls the suggestion endpoint over HTTP. Calls are rate limited
// client-side so a burst of searches cannot flood the collaborator.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	url        string
	apiKey     string
	log        zerolog.Logger
}

// NewClient builds a suggestion client from config.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	perSec := cfg.RatePerSec
	if perSec <= 0 {
		perSec = 5
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(perSec), int(perSec)+1),
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		log:        log,
	}
}

type suggestRequest struct {
	Query string `json:"query"`
}

type suggestResponse struct {
	Products []string `json:"products"`
}

// Suggest posts the query and returns the candidate names the collaborator
// proposes. Transport and decoding failures bubble up; the caller decides
// how to degrade.
func (c *Client) Suggest(ctx context.Context, query string) ([]string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("suggest rate limit: %w", err)
	}

	body, err := json.Marshal(suggestRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("marshal suggest request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build suggest request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("suggest call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("suggest call: unexpected status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read suggest response: %w", err)
	}

	var out suggestResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode suggest response: %w", err)
	}

	c.log.Debug().Str("query", query).Int("count", len(out.Products)).Msg("suggestions received")
	return out.Products, nil
}

// Disabled is the suggester used when no endpoint is configured: it always
// returns an empty list, so search runs on query variants alone.
type Disabled struct{}

func (Disabled) Suggest(context.Context, string) ([]string, error) {
	return nil, nil
}
