// Package quiver is a thin client for the Quiver Quantitative
// financial-data API: congress trading, WallStreetBets sentiment,
// government contracts, lobbying, off-exchange volume and political beta.
package quiver

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/quantsignal-hq/quiver-feed/pkg/httpclient"
	"go.uber.org/zap"
)

// DefaultBaseURL is the Quiver Quantitative beta API root.
const DefaultBaseURL = "https://api.quiverquant.com/beta"

// defaultTimeout bounds a single request when the config leaves it unset.
const defaultTimeout = 15 * time.Second

// Config carries everything the client needs; callers build it from their
// own configuration layer. An empty AuthToken is not rejected here — the
// upstream answers such requests with 401, which surfaces as a request error.
type Config struct {
	BaseURL   string
	AuthToken string
	Timeout   time.Duration
}

// Params are URL query parameters for a single request.
type Params map[string]string

// Client is a thin client for the Quiver Quantitative API. It holds only
// immutable configuration, so a single instance is safe for concurrent use.
type Client struct {
	http    httpclient.Client
	baseURL string
	headers map[string]string
	log     *zap.SugaredLogger
}

// New builds a Client. A nil http client falls back to a resty client with a
// bounded timeout; a nil logger disables logging.
func New(cfg Config, client httpclient.Client, log *zap.SugaredLogger) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = httpclient.NewRestyClient(timeout)
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	return &Client{
		http:    client,
		baseURL: baseURL,
		headers: map[string]string{
			"Accept":        "application/json",
			"Authorization": "Bearer " + cfg.AuthToken,
		},
		log: log,
	}
}

// request issues one GET against {base}/{endpoint} and converts the JSON
// payload to a Table. Transport failures and non-2xx statuses return an
// error with a zero-value table; a successful call with an empty payload
// returns an empty table and no error, so callers can tell "no data" from
// "request failed".
func (c *Client) request(ctx context.Context, endpoint string, params Params) (Table, error) {
	url := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")

	resp, err := c.http.Get(ctx, url, c.headers, params)
	if err != nil {
		c.log.Errorw("quiver request failed", "url", url, "error", err)
		return Table{}, fmt.Errorf("fetch %s: %w", endpoint, err)
	}

	body := resp.Body()
	status := resp.StatusCode()
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		snippet := responseSnippet(body)
		c.log.Errorw("quiver request rejected", "url", url, "status", status, "body", snippet)
		return Table{}, fmt.Errorf("%s returned status %d body: %s", endpoint, status, snippet)
	}

	table := tableFromJSON(body)
	c.log.Debugw("quiver request completed", "url", url, "status", status, "rows", table.Len())
	if table.Empty() {
		c.log.Warnw("no data received", "endpoint", endpoint)
	}
	return table, nil
}

// responseSnippet trims an error body for logging and error messages.
func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
