package contracts

import (
	"sort"
	"time"
)

// Line items read from the quarterly income statement
const (
	ItemTotalRevenue           = "Total Revenue"
	ItemOperatingIncome        = "Operating Income"
	ItemTotalOperatingExpenses = "Total Operating Expenses"
	ItemNetIncome              = "Net Income"
	ItemBasicEPS               = "Basic EPS"
)

// periodKeyLayout is the date layout used to key statement cells
const periodKeyLayout = "2006-01-02"

// PeriodKey returns the cell key for a period-end date
func PeriodKey(t time.Time) string {
	return t.Format(periodKeyLayout)
}

// QuarterlyStatement is one quarterly table (income, balance sheet or cash flow)
// as delivered by the data provider.
// ⭐ SSOT: 외부 재무제표 입력 형식
type QuarterlyStatement struct {
	// Periods are the statement columns, newest first
	Periods []time.Time `json:"periods"`

	// Items maps line item name -> period key -> value
	Items map[string]map[string]float64 `json:"items"`
}

// NewQuarterlyStatement creates an empty statement
func NewQuarterlyStatement() *QuarterlyStatement {
	return &QuarterlyStatement{
		Items: make(map[string]map[string]float64),
	}
}

// Set stores a cell, registering the period column if it is new.
// Periods stay ordered newest first.
func (s *QuarterlyStatement) Set(item string, period time.Time, value float64) {
	if s.Items == nil {
		s.Items = make(map[string]map[string]float64)
	}
	row, ok := s.Items[item]
	if !ok {
		row = make(map[string]float64)
		s.Items[item] = row
	}
	row[PeriodKey(period)] = value

	key := PeriodKey(period)
	for _, p := range s.Periods {
		if PeriodKey(p) == key {
			return
		}
	}
	s.Periods = append(s.Periods, period)
	sort.Slice(s.Periods, func(i, j int) bool {
		return s.Periods[i].After(s.Periods[j])
	})
}

// Has reports whether the line item row exists
func (s *QuarterlyStatement) Has(item string) bool {
	_, ok := s.Items[item]
	return ok
}

// Value returns the cell for item at period; missing cells read as 0
func (s *QuarterlyStatement) Value(item string, period time.Time) float64 {
	return s.Items[item][PeriodKey(period)]
}

// IsEmpty reports whether the statement has no period columns
func (s *QuarterlyStatement) IsEmpty() bool {
	return s == nil || len(s.Periods) == 0
}

// LineItems returns the row names in alphabetical order
func (s *QuarterlyStatement) LineItems() []string {
	items := make([]string, 0, len(s.Items))
	for name := range s.Items {
		items = append(items, name)
	}
	sort.Strings(items)
	return items
}

// CompanyProfile holds the scalar company fields used by the dashboard
type CompanyProfile struct {
	Symbol            string   `json:"symbol"`
	Name              string   `json:"name"`
	Currency          string   `json:"currency,omitempty"`
	SharesOutstanding *float64 `json:"shares_outstanding"` // nil when unknown
}

// DisplayName returns the company name, falling back to the ticker
func (p *CompanyProfile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Symbol
}

// HasShares reports whether a positive share count is known
func (p *CompanyProfile) HasShares() bool {
	return p.SharesOutstanding != nil && *p.SharesOutstanding > 0
}

// Financials bundles everything the provider returns for one ticker
type Financials struct {
	Profile      CompanyProfile      `json:"profile"`
	Income       *QuarterlyStatement `json:"income_statement"`
	BalanceSheet *QuarterlyStatement `json:"balance_sheet"`
	CashFlow     *QuarterlyStatement `json:"cash_flow"`
}
