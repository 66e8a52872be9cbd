package s0_data

import (
	"context"
	"strings"

	"github.com/wonny/finlens/internal/contracts"
	"github.com/wonny/finlens/internal/s0_data/quality"
	"github.com/wonny/finlens/pkg/logger"
)

// Service resolves a ticker to its profile and quarterly statements
// ⭐ SSOT: S0 재무 데이터 조회는 이 서비스에서만
type Service struct {
	source contracts.FinancialsSource
	gate   *quality.Gate
	logger *logger.Logger
}

// NewService creates a new financial data service
func NewService(source contracts.FinancialsSource, gate *quality.Gate, log *logger.Logger) *Service {
	return &Service{
		source: source,
		gate:   gate,
		logger: log.WithField("module", "s0_data"),
	}
}

// Fetch returns the financials for symbol. The symbol is only trimmed;
// whether it exists is the provider's call. Every provider failure is
// reported as *contracts.UpstreamFetchError.
func (s *Service) Fetch(ctx context.Context, symbol string) (*contracts.Financials, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, contracts.ErrMissingSymbol
	}

	log := s.logger.WithSymbol(symbol)

	fin, err := s.source.FetchFinancials(ctx, symbol)
	if err != nil {
		log.WithError(err).Warn("Failed to fetch financials")
		return nil, &contracts.UpstreamFetchError{Symbol: symbol, Err: err}
	}

	if s.gate != nil {
		report := s.gate.Check(fin)
		log.WithFields(map[string]interface{}{
			"quarters":      report.Quarters,
			"quality_score": report.Score,
			"missing":       report.Missing,
		}).Info("Fetched financials")
	}

	return fin, nil
}
