// Package gsheets is a minimal Google Sheets v4 REST client covering the
// two read operations the reporting pipeline needs: listing sheet titles
// and fetching a sheet's cell values.
package gsheets

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"context"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://sheets.googleapis.com/v4"
	readScope      = "https://www.googleapis.com/auth/spreadsheets.readonly"
)

// Client performs Google Sheets read operations against one spreadsheet.
type Client interface {
	// SheetTitles returns the titles of every sheet in the spreadsheet.
	SheetTitles(ctx context.Context) ([]string, error)

	// Values returns the cell grid of the named sheet. Numeric cells are
	// returned in their formatted string form; empty cells are "".
	Values(ctx context.Context, title string) ([][]string, error)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit caps outgoing requests per second. The Sheets API
// enforces per-minute read quotas; the default stays well under them.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithTokenSource overrides how access tokens are obtained. Tests use a
// static source; production uses the service-account JWT flow.
func WithTokenSource(ts TokenSource) Option {
	return func(c *httpClient) {
		c.tokens = ts
	}
}

type httpClient struct {
	spreadsheetID string
	baseURL       string
	http          *http.Client
	limiter       *rate.Limiter
	tokens        TokenSource
}

// NewClient creates a Sheets client for one spreadsheet, authenticating
// with the given service-account credentials.
func NewClient(spreadsheetID string, creds ServiceAccount, opts ...Option) Client {
	c := &httpClient{
		spreadsheetID: spreadsheetID,
		baseURL:       defaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(1), 1),
	}
	for _, o := range opts {
		o(c)
	}
	if c.tokens == nil {
		c.tokens = newJWTTokenSource(creds, readScope, c.http)
	}
	return c
}

type spreadsheetResponse struct {
	Sheets []struct {
		Properties struct {
			Title string `json:"title"`
		} `json:"properties"`
	} `json:"sheets"`
}

func (c *httpClient) SheetTitles(ctx context.Context) ([]string, error) {
	u := fmt.Sprintf("%s/spreadsheets/%s?fields=sheets.properties.title", c.baseURL, c.spreadsheetID)

	var resp spreadsheetResponse
	if err := c.get(ctx, u, &resp); err != nil {
		return nil, err
	}

	titles := make([]string, len(resp.Sheets))
	for i, s := range resp.Sheets {
		titles[i] = s.Properties.Title
	}
	return titles, nil
}

type valuesResponse struct {
	Values [][]json.RawMessage `json:"values"`
}

func (c *httpClient) Values(ctx context.Context, title string) ([][]string, error) {
	// Quoting the range selects the whole sheet by title.
	rng := url.PathEscape("'" + title + "'")
	u := fmt.Sprintf("%s/spreadsheets/%s/values/%s", c.baseURL, c.spreadsheetID, rng)

	var resp valuesResponse
	if err := c.get(ctx, u, &resp); err != nil {
		return nil, err
	}

	grid := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		cells := make([]string, len(row))
		for j, raw := range row {
			cells[j] = cellString(raw)
		}
		grid[i] = cells
	}
	return grid, nil
}

// cellString renders one API cell value as text. The API returns strings,
// numbers or booleans; anything unrecognized stringifies to "".
func cellString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		if b {
			return "TRUE"
		}
		return "FALSE"
	}
	return ""
}

func (c *httpClient) get(ctx context.Context, u string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return eris.Wrap(err, "gsheets: rate limiter")
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return eris.Wrap(err, "gsheets: create request")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "gsheets: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "gsheets: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return eris.Errorf("gsheets: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return eris.Wrap(err, "gsheets: unmarshal response")
	}
	return nil
}
