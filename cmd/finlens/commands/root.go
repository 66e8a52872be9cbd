package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/finlens/internal/analysis"
	"github.com/wonny/finlens/internal/external/yahoo"
	"github.com/wonny/finlens/internal/narrative"
	"github.com/wonny/finlens/internal/s0_data"
	"github.com/wonny/finlens/internal/s0_data/quality"
	"github.com/wonny/finlens/internal/s1_metrics"
	"github.com/wonny/finlens/pkg/config"
	"github.com/wonny/finlens/pkg/httputil"
	"github.com/wonny/finlens/pkg/logger"
)

var (
	// Global flags
	configFile string
	env        string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "finlens",
	Short: "finlens - quarterly financials dashboard for Indian stocks",
	Long: `finlens

Fetches the last 10 quarters of financial statements for a ticker,
derives Sales, Operating Profit, OPM%, Net Profit and EPS with
quarter-over-quarter growth, and optionally asks Gemini for a narrative.

Usage:
  go run ./cmd/finlens [command]

Examples:
  go run ./cmd/finlens serve
  go run ./cmd/finlens analyze RELIANCE.NS
  go run ./cmd/finlens analyze TCS.NS INFY.NS --narrative
  go run ./cmd/finlens statements TCS.NS`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "env file (default searches .env)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads configuration and applies the global flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if env != "" {
		cfg.Env = env
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// app holds the wired services shared by the commands
type app struct {
	cfg       *config.Config
	log       *logger.Logger
	analysis  *analysis.Service
	gate      *quality.Gate
	renderer  *narrative.Renderer
}

// newApp wires S0 (Yahoo) → S1 (metrics) → S2 (Gemini narrative)
func newApp(cfg *config.Config, log *logger.Logger) *app {
	httpClient := httputil.New(cfg, log)
	yahooClient := yahoo.NewClient(httpClient, cfg.Yahoo, log)

	gate := quality.NewGate(quality.Config{Window: s1_metrics.MaxQuarters})
	data := s0_data.NewService(yahooClient, gate, log)

	generator := narrative.NewGeminiGenerator(cfg.Gemini, log)

	return &app{
		cfg:       cfg,
		log:       log,
		analysis:  analysis.NewService(data, generator, log),
		gate:      gate,
		renderer:  narrative.NewRenderer(),
	}
}
