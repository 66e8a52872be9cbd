package presentation

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/wonny/finlens/internal/contracts"
)

// WriteReport prints the financial data and growth tables for a terminal
func WriteReport(out io.Writer, report *contracts.Report) error {
	fmt.Fprintf(out, "%s (%s)\n\n", report.CompanyName(), report.Profile.Symbol)

	fmt.Fprintf(out, "Financial Data (Last %d Quarters)\n", len(report.Series))
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Quarter\tSales\tOperating Profit\tOPM%\tNet Profit\tEPS\t")
	for _, r := range DisplayTable(report.Series) {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			r.Quarter, r.Sales, r.OperatingProfit, r.OPM, r.NetProfit, r.EPS)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Growth Metrics")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Quarter\tSales QoQ\tOperating Profit QoQ\tOPM% Change\tNet Profit QoQ\tEPS QoQ\t")
	for _, r := range GrowthTable(report.Growth) {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			r.Quarter, r.Sales, r.OperatingProfit, r.OPMChange, r.NetProfit, r.EPS)
	}
	return w.Flush()
}

// WriteStatement prints a raw provider table, newest quarter first
func WriteStatement(out io.Writer, title string, s *contracts.QuarterlyStatement) error {
	fmt.Fprintln(out, title)
	if s.IsEmpty() {
		fmt.Fprintln(out, "  (no data)")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(w, "Line Item\t")
	for _, p := range s.Periods {
		fmt.Fprintf(w, "%s\t", contracts.PeriodKey(p))
	}
	fmt.Fprintln(w)

	for _, item := range s.LineItems() {
		fmt.Fprintf(w, "%s\t", item)
		row := s.Items[item]
		for _, p := range s.Periods {
			if v, ok := row[contracts.PeriodKey(p)]; ok {
				fmt.Fprintf(w, "%s\t", humanize.FormatFloat("#,###.##", v))
			} else {
				fmt.Fprint(w, "-\t")
			}
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}
