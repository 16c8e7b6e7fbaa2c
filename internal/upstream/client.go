package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	errx "github.com/supplyline-web/server/internal/core/error"
	logx "github.com/supplyline-web/server/pkg/logger"
)

// Config describes how to reach the marketplace API that owns all business
// logic and persistence. This service never talks to a database directly.
type Config struct {
	BaseURL string `split_words:"true" default:"http://localhost:5000"`
	Timeout int    `split_words:"true" default:"10"`
}

// Client is a thin JSON request/response wrapper over the marketplace API.
// Every call is fire-and-forget with a single success/failure branch; there
// are no retries at this layer.
type Client struct {
	base string
	http *http.Client
}

func New(cfg Config) *Client {
	return &Client{
		base: cfg.BaseURL,
		http: &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Second},
	}
}

// Get issues a GET to path with optional query parameters and decodes the
// JSON response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST with a JSON body. out may be nil when the caller only
// cares about the status.
func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT with an optional JSON body.
func (c *Client) Put(ctx context.Context, path string, body any, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// Delete issues a DELETE to path.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.base + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logx.Error().Err(err).Str("method", method).Str("path", path).Msg("marketplace API request failed")
		return errx.WrapUpstream(err, 0)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, resp.Body)
		logx.Warn().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Msg("marketplace API returned non-2xx")
		return errx.WrapUpstream(nil, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			logx.Error().Err(err).Str("method", method).Str("path", path).Msg("failed to decode marketplace API response")
			return fmt.Errorf("decode %s %s response: %w", method, path, err)
		}
	}
	return nil
}
