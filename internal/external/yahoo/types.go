package yahoo

import (
	"encoding/json"
	"fmt"

	"github.com/wonny/finlens/internal/contracts"
)

// APIError is the error object Yahoo embeds in its JSON envelopes
type APIError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("yahoo: %s: %s", e.Code, e.Description)
}

// rawValue is Yahoo's {raw, fmt} number wrapper
type rawValue struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}

// quoteSummaryResponse represents /v10/finance/quoteSummary
type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []quoteSummaryResult `json:"result"`
		Error  *APIError            `json:"error"`
	} `json:"quoteSummary"`
}

type quoteSummaryResult struct {
	Price *struct {
		Symbol    string `json:"symbol"`
		LongName  string `json:"longName"`
		ShortName string `json:"shortName"`
		Currency  string `json:"currency"`
	} `json:"price"`
	DefaultKeyStatistics *struct {
		SharesOutstanding *rawValue `json:"sharesOutstanding"`
	} `json:"defaultKeyStatistics"`
}

func (r quoteSummaryResult) toProfile(symbol string) *contracts.CompanyProfile {
	profile := &contracts.CompanyProfile{Symbol: symbol}

	if r.Price != nil {
		profile.Name = r.Price.LongName
		if profile.Name == "" {
			profile.Name = r.Price.ShortName
		}
		profile.Currency = r.Price.Currency
	}

	if r.DefaultKeyStatistics != nil && r.DefaultKeyStatistics.SharesOutstanding != nil {
		if raw := r.DefaultKeyStatistics.SharesOutstanding.Raw; raw != nil && *raw > 0 {
			shares := *raw
			profile.SharesOutstanding = &shares
		}
	}

	return profile
}

// timeseriesResponse represents /ws/fundamentals-timeseries/v1/finance/timeseries
type timeseriesResponse struct {
	Timeseries struct {
		Result []timeseriesResult `json:"result"`
		Error  *APIError          `json:"error"`
	} `json:"timeseries"`
}

// timeseriesResult holds one requested type. The data points live under a
// key named after the type (e.g. "quarterlyTotalRevenue"), so the result is
// kept as raw fields and decoded in parseTimeseries.
type timeseriesResult map[string]json.RawMessage

type timeseriesMeta struct {
	Symbol []string `json:"symbol"`
	Type   []string `json:"type"`
}

type timeseriesPoint struct {
	AsOfDate      string    `json:"asOfDate"`
	PeriodType    string    `json:"periodType"`
	CurrencyCode  string    `json:"currencyCode"`
	ReportedValue *rawValue `json:"reportedValue"`
}
