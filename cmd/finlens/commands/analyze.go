package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/finlens/internal/analysis"
	"github.com/wonny/finlens/internal/contracts"
	"github.com/wonny/finlens/internal/presentation"
	"github.com/wonny/finlens/pkg/logger"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze SYMBOL [SYMBOL...]",
	Short: "종목 분기 재무 분석",
	Long: `Fetches quarterly statements for one or more tickers and prints the
financial data and growth metrics tables.

With --narrative, Gemini is asked to interpret each series. The key comes
from --api-key or GEMINI_API_KEY.

Example:
  go run ./cmd/finlens analyze RELIANCE.NS
  go run ./cmd/finlens analyze TCS.NS INFY.NS --workers 2
  go run ./cmd/finlens analyze TCS.NS --narrative --api-key $KEY
  go run ./cmd/finlens analyze TCS.NS --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

var (
	analyzeNarrative bool
	analyzeAPIKey    string
	analyzeWorkers   int
	analyzeJSON      bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().BoolVar(&analyzeNarrative, "narrative", false, "generate an AI narrative for each ticker")
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API key (default from GEMINI_API_KEY)")
	analyzeCmd.Flags().IntVar(&analyzeWorkers, "workers", 4, "concurrent fetches when several tickers are given")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print reports as JSON")
}

// analyzeOutput is one ticker in --json mode
type analyzeOutput struct {
	Symbol    string            `json:"symbol"`
	Report    *contracts.Report `json:"report,omitempty"`
	Narrative string            `json:"narrative,omitempty"`
	Error     string            `json:"error,omitempty"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// logs go to stderr so tables and JSON stay clean on stdout
	log := logger.NewWithWriter(cfg, os.Stderr)
	a := newApp(cfg, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	apiKey := analyzeAPIKey
	if apiKey == "" {
		apiKey = cfg.Gemini.APIKey
	}

	start := time.Now()
	results := a.analysis.AnalyzeAll(ctx, args, analysis.BatchConfig{Workers: analyzeWorkers})

	outputs := make([]analyzeOutput, 0, len(results))
	failed := 0
	for _, r := range results {
		out := analyzeOutput{Symbol: r.Symbol, Report: r.Report}
		if r.Error != nil {
			out.Error = r.Error.Error()
			failed++
		} else if analyzeNarrative {
			text, err := a.analysis.Narrate(ctx, apiKey, r.Report)
			if err != nil {
				out.Error = err.Error()
			} else {
				out.Narrative = text
			}
		}
		outputs = append(outputs, out)
	}

	if analyzeJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(outputs); err != nil {
			return err
		}
	} else {
		printAnalyzeOutputs(cmd, outputs)
		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprintf(cmd.OutOrStdout(), "✅ %d of %d tickers analyzed in %.2fs\n",
			len(outputs)-failed, len(outputs), time.Since(start).Seconds())
	}

	if failed == len(outputs) {
		return fmt.Errorf("no ticker could be analyzed")
	}
	return nil
}

func printAnalyzeOutputs(cmd *cobra.Command, outputs []analyzeOutput) {
	w := cmd.OutOrStdout()
	for _, out := range outputs {
		PrintDoubleSeparator(w)
		if out.Report == nil {
			PrintError(w, out.Error)
			continue
		}

		if err := presentation.WriteReport(w, out.Report); err != nil {
			PrintError(w, err.Error())
			continue
		}

		if !analyzeNarrative {
			continue
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "AI-Powered Financial Analysis")
		PrintSeparator(w)
		if out.Error != "" {
			PrintError(w, out.Error)
		} else {
			fmt.Fprintln(w, out.Narrative)
		}
	}
}
