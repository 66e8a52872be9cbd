package commands

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/finlens/internal/contracts"
	"github.com/wonny/finlens/internal/presentation"
	"github.com/wonny/finlens/pkg/logger"
)

// statementsCmd represents the statements command
var statementsCmd = &cobra.Command{
	Use:   "statements SYMBOL",
	Short: "원본 분기 재무제표 조회",
	Long: `Prints the raw quarterly income statement, balance sheet and cash
flow tables as delivered by the provider, plus a coverage report for
the line items the metrics depend on.

Example:
  go run ./cmd/finlens statements TCS.NS`,
	Args: cobra.ExactArgs(1),
	RunE: runStatements,
}

func init() {
	rootCmd.AddCommand(statementsCmd)
}

func runStatements(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.NewWithWriter(cfg, os.Stderr)
	a := newApp(cfg, log)

	fin, err := a.analysis.Statements(context.Background(), args[0])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s (%s)\n", fin.Profile.DisplayName(), fin.Profile.Symbol)

	sections := []struct {
		title     string
		statement *contracts.QuarterlyStatement
	}{
		{"Income Statement", fin.Income},
		{"Balance Sheet", fin.BalanceSheet},
		{"Cash Flow", fin.CashFlow},
	}
	for _, section := range sections {
		PrintDoubleSeparator(w)
		if err := presentation.WriteStatement(w, section.title, section.statement); err != nil {
			return fmt.Errorf("print %s: %w", strings.ToLower(section.title), err)
		}
	}

	report := a.gate.Check(fin)
	PrintDoubleSeparator(w)
	fmt.Fprintf(w, "Coverage over %d quarters (score %.2f)\n", report.Quarters, report.Score)

	keys := make([]string, 0, len(report.Coverage))
	for k := range report.Coverage {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		PrintKeyValue(w, k, fmt.Sprintf("%.0f%%", report.Coverage[k]*100), 16)
	}
	if len(report.Missing) > 0 {
		PrintWarning(w, "missing: "+strings.Join(report.Missing, ", "))
	}
	return nil
}
