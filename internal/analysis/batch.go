package analysis

import (
	"context"
	"sync"

	"github.com/wonny/finlens/internal/contracts"
)

// BatchConfig holds batch analysis configuration
type BatchConfig struct {
	Workers int // Number of concurrent workers
}

// BatchResult is the outcome for one symbol of a batch
type BatchResult struct {
	Symbol string
	Report *contracts.Report
	Error  error
}

// AnalyzeAll analyzes several symbols with a bounded worker pool.
// Results come back in the order of symbols; a failure for one symbol
// never aborts the others.
func (s *Service) AnalyzeAll(ctx context.Context, symbols []string, cfg BatchConfig) []BatchResult {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(symbols) {
		workers = len(symbols)
	}

	s.logger.WithFields(map[string]interface{}{
		"symbol_count": len(symbols),
		"workers":      workers,
	}).Info("Starting batch analysis")

	results := make([]BatchResult, len(symbols))
	jobs := make(chan int, len(symbols))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			s.batchWorker(ctx, workerID, symbols, jobs, results)
		}(i)
	}

	for i := range symbols {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	failCount := 0
	for _, r := range results {
		if r.Error != nil {
			failCount++
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"success": len(results) - failCount,
		"failed":  failCount,
		"total":   len(results),
	}).Info("Batch analysis completed")

	return results
}

// batchWorker analyzes symbols by index; each index is written by one worker only
func (s *Service) batchWorker(ctx context.Context, workerID int, symbols []string, jobs <-chan int, results []BatchResult) {
	for idx := range jobs {
		symbol := symbols[idx]

		select {
		case <-ctx.Done():
			results[idx] = BatchResult{Symbol: symbol, Error: ctx.Err()}
			continue
		default:
		}

		report, err := s.Analyze(ctx, symbol)
		if err != nil {
			s.logger.WithError(err).WithFields(map[string]interface{}{
				"worker": workerID,
				"symbol": symbol,
			}).Debug("Batch item failed")
		}
		results[idx] = BatchResult{Symbol: symbol, Report: report, Error: err}
	}
}
