package presentation

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/wonny/finlens/internal/contracts"
)

// NotAvailable is shown in place of an undefined growth value
const NotAvailable = "n/a"

// FormatCrores renders an amount in crores: "₹ 1,234.56 Cr"
func FormatCrores(v float64) string {
	return "₹ " + humanize.FormatFloat("#,###.##", v) + " Cr"
}

// FormatPercent renders a percentage with two decimals: "12.34%"
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// FormatEPS renders earnings per share: "₹ 12.34"
func FormatEPS(v float64) string {
	return fmt.Sprintf("₹ %.2f", v)
}

// FormatRate renders a growth value, or "n/a" when it is undefined
func FormatRate(r contracts.Rate) string {
	if r.IsUndefined() {
		return NotAvailable
	}
	return FormatPercent(float64(r))
}

// DisplayRow is one quarter of the financial data table, formatted for display
type DisplayRow struct {
	Quarter         string
	Sales           string
	OperatingProfit string
	OPM             string
	NetProfit       string
	EPS             string
}

// GrowthRow is one quarter of the growth metrics table, formatted for display
type GrowthRow struct {
	Quarter         string
	Sales           string
	OperatingProfit string
	OPMChange       string
	NetProfit       string
	EPS             string
}

// DisplayTable formats the normalized series, oldest quarter first
func DisplayTable(series contracts.NormalizedSeries) []DisplayRow {
	rows := make([]DisplayRow, len(series))
	for i, q := range series {
		rows[i] = DisplayRow{
			Quarter:         q.Quarter,
			Sales:           FormatCrores(q.Sales),
			OperatingProfit: FormatCrores(q.OperatingProfit),
			OPM:             FormatPercent(q.OPMPercent),
			NetProfit:       FormatCrores(q.NetProfit),
			EPS:             FormatEPS(q.EPS),
		}
	}
	return rows
}

// GrowthTable formats the growth series
func GrowthTable(growth contracts.GrowthSeries) []GrowthRow {
	rows := make([]GrowthRow, len(growth))
	for i, g := range growth {
		rows[i] = GrowthRow{
			Quarter:         g.Quarter,
			Sales:           FormatRate(g.SalesGrowth),
			OperatingProfit: FormatRate(g.OperatingProfitGrowth),
			OPMChange:       FormatRate(g.OPMChange),
			NetProfit:       FormatRate(g.NetProfitGrowth),
			EPS:             FormatRate(g.EPSGrowth),
		}
	}
	return rows
}
