package finnhub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"portfolio_backend/internal/platform/externalapi/finnhub/dto"
)

// Client calls Finnhub and decodes responses into typed DTOs.
type Client struct {
	cfg    Config
	client *http.Client
}

// NewClient creates a Client with the given configuration and HTTP client.
func NewClient(cfg Config, client *http.Client) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{cfg: cfg, client: client}
}

// Search calls /search.
func (c *Client) Search(ctx context.Context, query string) (*dto.SearchResponse, error) {
	var out dto.SearchResponse
	if err := c.get(ctx, "/search", url.Values{"q": {query}}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Quote calls /quote.
func (c *Client) Quote(ctx context.Context, symbol string) (*dto.QuoteResponse, error) {
	var out dto.QuoteResponse
	if err := c.get(ctx, "/quote", url.Values{"symbol": {symbol}}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Profile calls /stock/profile2.
func (c *Client) Profile(ctx context.Context, symbol string) (*dto.ProfileResponse, error) {
	var out dto.ProfileResponse
	if err := c.get(ctx, "/stock/profile2", url.Values{"symbol": {symbol}}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Metric calls /stock/metric with metric=all.
func (c *Client) Metric(ctx context.Context, symbol string) (*dto.MetricResponse, error) {
	var out dto.MetricResponse
	if err := c.get(ctx, "/stock/metric", url.Values{"symbol": {symbol}, "metric": {"all"}}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DailyCandles calls /stock/candle with daily resolution for [from, to].
func (c *Client) DailyCandles(ctx context.Context, symbol string, from, to time.Time) (*dto.CandleResponse, error) {
	q := url.Values{
		"symbol":     {symbol},
		"resolution": {"D"},
		"from":       {strconv.FormatInt(from.Unix(), 10)},
		"to":         {strconv.FormatInt(to.Unix(), 10)},
	}
	var out dto.CandleResponse
	if err := c.get(ctx, "/stock/candle", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	q.Set("token", c.cfg.APIKey)
	u := fmt.Sprintf("%s%s?%s", c.cfg.BaseURL, path, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("finnhub http %d", res.StatusCode)
	}

	dec := json.NewDecoder(res.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("finnhub %s: decode body: %w", path, err)
	}
	return nil
}
