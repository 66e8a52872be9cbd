package yahoo

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/wonny/finlens/internal/contracts"
)

const (
	quarterlyPrefix = "quarterly"

	// historyYears bounds the requested window; 10 quarters fit comfortably
	historyYears = 4
)

var (
	incomeKeys = []string{
		"TotalRevenue",
		"CostOfRevenue",
		"GrossProfit",
		"OperatingExpense",
		"TotalExpenses",
		"OperatingIncome",
		"EBITDA",
		"PretaxIncome",
		"TaxProvision",
		"NetIncome",
		"BasicEPS",
		"DilutedEPS",
	}

	balanceSheetKeys = []string{
		"TotalAssets",
		"TotalLiabilitiesNetMinorityInterest",
		"StockholdersEquity",
		"CashAndCashEquivalents",
		"TotalDebt",
		"OrdinarySharesNumber",
	}

	cashFlowKeys = []string{
		"OperatingCashFlow",
		"InvestingCashFlow",
		"FinancingCashFlow",
		"CapitalExpenditure",
		"FreeCashFlow",
	}

	// itemAliases lets one Yahoo key populate an additional line item.
	// Total expenses (cost of revenue + operating expense) is what the
	// revenue-minus-expenses operating profit fallback needs.
	itemAliases = map[string]string{
		"TotalExpenses": contracts.ItemTotalOperatingExpenses,
	}
)

// statementFor maps a Yahoo key to the statement it belongs to
func statementFor(fin *contracts.Financials, key string) *contracts.QuarterlyStatement {
	for _, k := range balanceSheetKeys {
		if k == key {
			return fin.BalanceSheet
		}
	}
	for _, k := range cashFlowKeys {
		if k == key {
			return fin.CashFlow
		}
	}
	for _, k := range incomeKeys {
		if k == key {
			return fin.Income
		}
	}
	return nil
}

// parseTimeseries folds the per-type results into three quarterly statements
func parseTimeseries(results []timeseriesResult) (*contracts.Financials, error) {
	fin := &contracts.Financials{
		Income:       contracts.NewQuarterlyStatement(),
		BalanceSheet: contracts.NewQuarterlyStatement(),
		CashFlow:     contracts.NewQuarterlyStatement(),
	}

	for _, result := range results {
		var meta timeseriesMeta
		if err := json.Unmarshal(result["meta"], &meta); err != nil {
			return nil, fmt.Errorf("decode timeseries meta: %w", err)
		}
		if len(meta.Type) == 0 {
			continue
		}

		fullType := meta.Type[0]
		key := strings.TrimPrefix(fullType, quarterlyPrefix)
		statement := statementFor(fin, key)
		if statement == nil {
			continue
		}

		raw, ok := result[fullType]
		if !ok {
			// type requested but no data reported
			continue
		}

		var points []*timeseriesPoint
		if err := json.Unmarshal(raw, &points); err != nil {
			return nil, fmt.Errorf("decode %s: %w", fullType, err)
		}

		items := []string{LineItemName(key)}
		if alias, ok := itemAliases[key]; ok {
			items = append(items, alias)
		}

		for _, p := range points {
			if p == nil || p.ReportedValue == nil || p.ReportedValue.Raw == nil {
				continue
			}
			period, err := time.Parse("2006-01-02", p.AsOfDate)
			if err != nil {
				return nil, fmt.Errorf("parse %s asOfDate %q: %w", fullType, p.AsOfDate, err)
			}
			for _, item := range items {
				statement.Set(item, period, *p.ReportedValue.Raw)
			}
		}
	}

	return fin, nil
}

// LineItemName converts a Yahoo key to a statement row name:
// "TotalRevenue" -> "Total Revenue", "BasicEPS" -> "Basic EPS"
func LineItemName(key string) string {
	runes := []rune(key)
	var b strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteRune(' ')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}
