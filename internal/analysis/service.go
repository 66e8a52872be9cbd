package analysis

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/wonny/finlens/internal/contracts"
	"github.com/wonny/finlens/internal/s0_data"
	"github.com/wonny/finlens/internal/s1_metrics"
	"github.com/wonny/finlens/pkg/logger"
)

// Service runs the dashboard pipeline: fetch (S0) → normalize + growth (S1)
// → optional narrative (S2)
// ⭐ SSOT: 분석 파이프라인 오케스트레이션은 이 서비스에서만
type Service struct {
	data      *s0_data.Service
	narrative contracts.NarrativeGenerator
	logger    *logger.Logger
	now       func() time.Time
}

// NewService creates a new analysis service. narrative may be nil, in which
// case Narrate always fails with a NarrativeGenerationError.
func NewService(data *s0_data.Service, narrative contracts.NarrativeGenerator, log *logger.Logger) *Service {
	return &Service{
		data:      data,
		narrative: narrative,
		logger:    log.WithField("module", "analysis"),
		now:       time.Now,
	}
}

// Analyze fetches symbol and derives its normalized and growth series
func (s *Service) Analyze(ctx context.Context, symbol string) (*contracts.Report, error) {
	fin, err := s.data.Fetch(ctx, symbol)
	if err != nil {
		return nil, err
	}

	series, err := s1_metrics.Normalize(fin.Income, fin.Profile)
	if err != nil {
		s.logger.WithSymbol(fin.Profile.Symbol).WithError(err).Warn("Normalization failed")
		return nil, err
	}

	report := &contracts.Report{
		Profile:   fin.Profile,
		Series:    series,
		Growth:    s1_metrics.Growth(series),
		FetchedAt: s.now(),
	}

	s.logger.WithSymbol(fin.Profile.Symbol).WithFields(map[string]interface{}{
		"company":  report.CompanyName(),
		"quarters": len(series),
	}).Info("Analysis completed")

	return report, nil
}

// Statements returns the raw provider tables for symbol
func (s *Service) Statements(ctx context.Context, symbol string) (*contracts.Financials, error) {
	return s.data.Fetch(ctx, symbol)
}

// Narrate asks the narrative provider to interpret report.
// A blank apiKey fails with ErrMissingCredential before any provider call;
// every provider failure comes back as *contracts.NarrativeGenerationError.
func (s *Service) Narrate(ctx context.Context, apiKey string, report *contracts.Report) (string, error) {
	if strings.TrimSpace(apiKey) == "" {
		return "", contracts.ErrMissingCredential
	}
	if report == nil || len(report.Series) == 0 {
		return "", contracts.ErrNoData
	}
	if s.narrative == nil {
		return "", &contracts.NarrativeGenerationError{Err: errors.New("no narrative provider configured")}
	}

	log := s.logger.WithSymbol(report.Profile.Symbol)

	text, err := s.narrative.Generate(ctx, apiKey, report.CompanyName(), report.Series)
	if err != nil {
		log.WithError(err).Warn("Narrative generation failed")

		var genErr *contracts.NarrativeGenerationError
		if errors.As(err, &genErr) {
			return "", err
		}
		return "", &contracts.NarrativeGenerationError{Err: err}
	}

	log.WithField("length", len(text)).Info("Narrative generated")
	return text, nil
}
