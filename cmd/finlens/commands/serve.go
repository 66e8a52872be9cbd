package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/finlens/internal/api"
	"github.com/wonny/finlens/internal/api/handlers"
	"github.com/wonny/finlens/internal/session"
	"github.com/wonny/finlens/pkg/logger"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "대시보드 서버 시작",
	Long: `Starts the web dashboard and the JSON API.

Endpoints:
  GET  /health                              - Health check
  GET  /                                    - Dashboard
  POST /analyze                             - Analyze a ticker (form: symbol)
  POST /narrative                           - AI analysis of the current report
  POST /credential                          - Store the Gemini API key for this session
  GET  /api/financials/{symbol}             - Normalized series + growth (JSON)
  GET  /api/financials/{symbol}/statements  - Raw quarterly statements (JSON)
  POST /api/narrative                       - AI analysis (JSON: symbol, api_key)

Example:
  go run ./cmd/finlens serve
  go run ./cmd/finlens serve --port 8080`,
	RunE: runServe,
}

var (
	servePort string
)

func init() {
	rootCmd.AddCommand(serveCmd)

	// Flags
	serveCmd.Flags().StringVar(&servePort, "port", "", "server port (default from PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Println("=== finlens dashboard ===")

	// 1. Load config
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Override port if flag is set
	if servePort != "" {
		cfg.Port = servePort
	}

	// Session cookies only travel over HTTPS in production
	if cfg.IsProduction() {
		cfg.Session.SecureCookie = true
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port":  cfg.Port,
		"env":   cfg.Env,
		"model": cfg.Gemini.Model,
	}).Info("Initializing dashboard server")

	// 3. Wire services
	a := newApp(cfg, log)
	sessions := session.NewStore(cfg.Session)

	// 4. Create handlers
	dashboard := handlers.NewDashboardHandler(a.analysis, sessions, a.renderer, cfg.Gemini.APIKey, log)
	financials := handlers.NewFinancialsHandler(a.analysis, a.renderer, cfg.Gemini.APIKey, log)

	// 5. Create router and server
	router := api.NewRouter(dashboard, financials, log)
	server := api.New(cfg, log, router)

	// 6. Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Infof("Dashboard server listening on :%s", cfg.Port)
	fmt.Printf("\n✅ Dashboard running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.WithField("sessions", sessions.Count()).Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
