package contracts

import (
	"encoding/json"
	"math"
	"time"
)

// QuarterRecord is one normalized quarter.
// Sales, OperatingProfit and NetProfit are in crores; EPS is per share.
type QuarterRecord struct {
	Quarter         string    `json:"quarter"` // YYYY-Q<n>
	PeriodEnd       time.Time `json:"period_end"`
	Sales           float64   `json:"sales"`
	OperatingProfit float64   `json:"operating_profit"`
	OPMPercent      float64   `json:"opm_percent"`
	NetProfit       float64   `json:"net_profit"`
	EPS             float64   `json:"eps"`
}

// NormalizedSeries holds up to 10 quarters, oldest first
// ⭐ SSOT: S1 정규화 결과
type NormalizedSeries []QuarterRecord

// Quarters returns the quarter labels in series order
func (s NormalizedSeries) Quarters() []string {
	labels := make([]string, len(s))
	for i, r := range s {
		labels[i] = r.Quarter
	}
	return labels
}

// Rate is a growth value that may be undefined (NaN).
// Undefined rates encode as JSON null.
type Rate float64

// Undefined returns the sentinel for a rate with no defined value
// (first quarter, or a zero baseline)
func Undefined() Rate {
	return Rate(math.NaN())
}

// IsUndefined reports whether r is the undefined sentinel
func (r Rate) IsUndefined() bool {
	return math.IsNaN(float64(r))
}

// MarshalJSON encodes undefined rates as null
func (r Rate) MarshalJSON() ([]byte, error) {
	if r.IsUndefined() || math.IsInf(float64(r), 0) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(r))
}

// UnmarshalJSON decodes null as the undefined sentinel
func (r *Rate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = Undefined()
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*r = Rate(f)
	return nil
}

// GrowthRecord holds quarter-over-quarter changes for one quarter.
// OPMChange is an absolute delta in percentage points; the rest are percent changes.
type GrowthRecord struct {
	Quarter               string `json:"quarter"`
	SalesGrowth           Rate   `json:"sales_qoq_growth"`
	OperatingProfitGrowth Rate   `json:"operating_profit_qoq_growth"`
	OPMChange             Rate   `json:"opm_change"`
	NetProfitGrowth       Rate   `json:"net_profit_qoq_growth"`
	EPSGrowth             Rate   `json:"eps_qoq_growth"`
}

// GrowthSeries has one record per quarter of the NormalizedSeries it was derived from
type GrowthSeries []GrowthRecord

// Report is the complete analysis result for one ticker
type Report struct {
	Profile   CompanyProfile   `json:"profile"`
	Series    NormalizedSeries `json:"series"`
	Growth    GrowthSeries     `json:"growth"`
	FetchedAt time.Time        `json:"fetched_at"`
}

// CompanyName returns the display name of the analysed company
func (r *Report) CompanyName() string {
	return r.Profile.DisplayName()
}
