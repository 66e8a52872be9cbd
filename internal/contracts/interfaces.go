package contracts

import (
	"context"
)

// FinancialsSource resolves a ticker to company metadata and quarterly statements (S0)
// ⭐ SSOT: 외부 시세/재무 데이터 소스 인터페이스
type FinancialsSource interface {
	FetchFinancials(ctx context.Context, symbol string) (*Financials, error)
}

// NarrativeGenerator turns a normalized series into prose (S2)
// ⭐ SSOT: AI 분석 생성 인터페이스
type NarrativeGenerator interface {
	Generate(ctx context.Context, apiKey string, companyName string, series NormalizedSeries) (string, error)
}
