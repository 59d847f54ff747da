package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// Function names of the query API.
const (
	FunctionSymbolSearch    = "SYMBOL_SEARCH"
	FunctionGlobalQuote     = "GLOBAL_QUOTE"
	FunctionOverview        = "OVERVIEW"
	FunctionTimeSeriesDaily = "TIME_SERIES_DAILY"
)

// Client calls Alpha Vantage. It returns bodies decoded as generic JSON and never
// interprets notices embedded in a 200 response.
type Client struct {
	cfg    Config
	client *http.Client
}

// NewClient creates a Client with the given configuration and HTTP client.
func NewClient(cfg Config, client *http.Client) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{cfg: cfg, client: client}
}

// SymbolSearch calls SYMBOL_SEARCH.
func (c *Client) SymbolSearch(ctx context.Context, keywords string) (any, error) {
	return c.query(ctx, FunctionSymbolSearch, url.Values{"keywords": {keywords}})
}

// GlobalQuote calls GLOBAL_QUOTE.
func (c *Client) GlobalQuote(ctx context.Context, symbol string) (any, error) {
	return c.query(ctx, FunctionGlobalQuote, url.Values{"symbol": {symbol}})
}

// Overview calls OVERVIEW.
func (c *Client) Overview(ctx context.Context, symbol string) (any, error) {
	return c.query(ctx, FunctionOverview, url.Values{"symbol": {symbol}})
}

// TimeSeriesDaily calls TIME_SERIES_DAILY. outputSize is "compact" or "full".
func (c *Client) TimeSeriesDaily(ctx context.Context, symbol, outputSize string) (any, error) {
	return c.query(ctx, FunctionTimeSeriesDaily, url.Values{"symbol": {symbol}, "outputsize": {outputSize}})
}

func (c *Client) query(ctx context.Context, function string, q url.Values) (any, error) {
	q.Set("function", function)
	q.Set("apikey", c.cfg.APIKey)
	u := fmt.Sprintf("%s/query?%s", c.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("alphavantage http %d", res.StatusCode)
	}

	var body any
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("alphavantage %s: decode body: %w", function, err)
	}
	return body, nil
}
