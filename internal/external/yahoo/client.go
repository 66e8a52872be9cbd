package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/wonny/finlens/internal/contracts"
	"github.com/wonny/finlens/pkg/config"
	"github.com/wonny/finlens/pkg/httputil"
	"github.com/wonny/finlens/pkg/logger"
)

// Client handles communication with Yahoo Finance
// ⭐ SSOT: Yahoo Finance API 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	cookieURL  string
	now        func() time.Time
}

// NewClient creates a new Yahoo Finance client
func NewClient(httpClient *httputil.Client, cfg config.YahooConfig, log *logger.Logger) *Client {
	httpClient.WithHeader("User-Agent", cfg.UserAgent).
		WithHeader("Accept", "application/json, text/plain, */*")

	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		cookieURL:  cfg.CookieURL,
		now:        time.Now,
	}
}

var _ contracts.FinancialsSource = (*Client)(nil)

// FetchFinancials resolves symbol to its profile and quarterly statements.
// The symbol is passed through untouched; Yahoo decides whether it exists.
func (c *Client) FetchFinancials(ctx context.Context, symbol string) (*contracts.Financials, error) {
	log := c.logger.WithSymbol(symbol)

	crumb, err := c.crumb(ctx)
	if err != nil {
		return nil, fmt.Errorf("crumb handshake failed: %w", err)
	}

	profile, err := c.FetchProfile(ctx, symbol, crumb)
	if err != nil {
		return nil, err
	}

	statements, err := c.FetchStatements(ctx, symbol, crumb)
	if err != nil {
		return nil, err
	}

	log.WithFields(map[string]interface{}{
		"name":             profile.Name,
		"income_quarters":  len(statements.Income.Periods),
		"balance_quarters": len(statements.BalanceSheet.Periods),
		"cash_quarters":    len(statements.CashFlow.Periods),
	}).Debug("Fetched financials")

	statements.Profile = *profile
	return statements, nil
}

// crumb performs the cookie + crumb handshake Yahoo requires for its JSON APIs
func (c *Client) crumb(ctx context.Context) (string, error) {
	// The cookie endpoint answers 404 but still sets the session cookie
	resp, err := c.httpClient.Get(ctx, c.cookieURL)
	if err != nil {
		return "", fmt.Errorf("cookie request failed: %w", err)
	}
	resp.Body.Close()

	crumb, err := c.httpClient.GetText(ctx, c.baseURL+"/v1/test/getcrumb")
	if err != nil {
		return "", fmt.Errorf("crumb request failed: %w", err)
	}

	crumb = strings.TrimSpace(crumb)
	if crumb == "" || strings.HasPrefix(crumb, "<") || strings.HasPrefix(crumb, "{") {
		return "", errors.New("empty crumb in response")
	}
	return crumb, nil
}

// FetchProfile fetches the company name, currency and share count
func (c *Client) FetchProfile(ctx context.Context, symbol, crumb string) (*contracts.CompanyProfile, error) {
	params := url.Values{}
	params.Set("modules", "price,defaultKeyStatistics")
	if crumb != "" {
		params.Set("crumb", crumb)
	}
	fullURL := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?%s", c.baseURL, url.PathEscape(symbol), params.Encode())

	var body quoteSummaryResponse
	if err := c.httpClient.GetJSON(ctx, fullURL, &body); err != nil {
		return nil, fmt.Errorf("quote summary request failed: %w", describeError(err))
	}

	if body.QuoteSummary.Error != nil {
		return nil, body.QuoteSummary.Error
	}
	if len(body.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("no quote summary for %s", symbol)
	}

	return body.QuoteSummary.Result[0].toProfile(symbol), nil
}

// FetchStatements fetches the quarterly income, balance sheet and cash flow tables
func (c *Client) FetchStatements(ctx context.Context, symbol, crumb string) (*contracts.Financials, error) {
	types := make([]string, 0, len(incomeKeys)+len(balanceSheetKeys)+len(cashFlowKeys))
	for _, keys := range [][]string{incomeKeys, balanceSheetKeys, cashFlowKeys} {
		for _, k := range keys {
			types = append(types, quarterlyPrefix+k)
		}
	}

	now := c.now()
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("type", strings.Join(types, ","))
	params.Set("period1", fmt.Sprintf("%d", now.AddDate(-historyYears, 0, 0).Unix()))
	params.Set("period2", fmt.Sprintf("%d", now.Unix()))
	if crumb != "" {
		params.Set("crumb", crumb)
	}
	fullURL := fmt.Sprintf("%s/ws/fundamentals-timeseries/v1/finance/timeseries/%s?%s",
		c.baseURL, url.PathEscape(symbol), params.Encode())

	var body timeseriesResponse
	if err := c.httpClient.GetJSON(ctx, fullURL, &body); err != nil {
		return nil, fmt.Errorf("timeseries request failed: %w", describeError(err))
	}
	if body.Timeseries.Error != nil {
		return nil, body.Timeseries.Error
	}

	return parseTimeseries(body.Timeseries.Result)
}

// describeError replaces an HTTP status error with Yahoo's own error
// description when the body carries one
func describeError(err error) error {
	var statusErr *httputil.StatusError
	if !errors.As(err, &statusErr) {
		return err
	}

	var envelope map[string]struct {
		Error *APIError `json:"error"`
	}
	if jsonErr := json.Unmarshal([]byte(statusErr.Body), &envelope); jsonErr != nil {
		return err
	}
	for _, v := range envelope {
		if v.Error != nil {
			return v.Error
		}
	}
	return err
}
