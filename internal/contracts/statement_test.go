package contracts

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestQuarterlyStatement_SetKeepsNewestFirst(t *testing.T) {
	s := NewQuarterlyStatement()
	s.Set(ItemTotalRevenue, date(2024, 3, 31), 100)
	s.Set(ItemTotalRevenue, date(2024, 9, 30), 300)
	s.Set(ItemNetIncome, date(2024, 6, 30), 20)
	s.Set(ItemTotalRevenue, date(2024, 6, 30), 200)

	if len(s.Periods) != 3 {
		t.Fatalf("Expected 3 periods, got %d", len(s.Periods))
	}

	want := []time.Time{date(2024, 9, 30), date(2024, 6, 30), date(2024, 3, 31)}
	for i, p := range s.Periods {
		if !p.Equal(want[i]) {
			t.Errorf("Periods[%d] = %s, want %s", i, p, want[i])
		}
	}
}

func TestQuarterlyStatement_HasAndValue(t *testing.T) {
	s := NewQuarterlyStatement()
	s.Set(ItemTotalRevenue, date(2024, 3, 31), 100)
	s.Set(ItemNetIncome, date(2024, 6, 30), 20)

	if !s.Has(ItemTotalRevenue) {
		t.Error("Expected Total Revenue row to exist")
	}
	if s.Has(ItemBasicEPS) {
		t.Error("Expected Basic EPS row to be absent")
	}

	// present row, missing cell
	if got := s.Value(ItemNetIncome, date(2024, 3, 31)); got != 0 {
		t.Errorf("Expected missing cell to read 0, got %v", got)
	}
	// absent row
	if got := s.Value(ItemBasicEPS, date(2024, 3, 31)); got != 0 {
		t.Errorf("Expected absent row to read 0, got %v", got)
	}
	if got := s.Value(ItemTotalRevenue, date(2024, 3, 31)); got != 100 {
		t.Errorf("Expected 100, got %v", got)
	}
}

func TestQuarterlyStatement_IsEmpty(t *testing.T) {
	var nilStatement *QuarterlyStatement
	if !nilStatement.IsEmpty() {
		t.Error("nil statement should be empty")
	}
	if !NewQuarterlyStatement().IsEmpty() {
		t.Error("new statement should be empty")
	}
}

func TestCompanyProfile_DisplayName(t *testing.T) {
	p := CompanyProfile{Symbol: "INFY.NS"}
	if got := p.DisplayName(); got != "INFY.NS" {
		t.Errorf("DisplayName() = %q, want symbol fallback", got)
	}

	p.Name = "Infosys Limited"
	if got := p.DisplayName(); got != "Infosys Limited" {
		t.Errorf("DisplayName() = %q, want long name", got)
	}
}

func TestCompanyProfile_HasShares(t *testing.T) {
	zero := 0.0
	some := 4.15e9

	tests := []struct {
		name   string
		shares *float64
		want   bool
	}{
		{"unknown", nil, false},
		{"zero", &zero, false},
		{"positive", &some, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := CompanyProfile{SharesOutstanding: tt.shares}
			if got := p.HasShares(); got != tt.want {
				t.Errorf("HasShares() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRate_JSON(t *testing.T) {
	record := GrowthRecord{
		Quarter:     "2024-Q1",
		SalesGrowth: Undefined(),
		OPMChange:   Rate(2.5),
		EPSGrowth:   Rate(math.Inf(1)),
	}

	data, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if raw["sales_qoq_growth"] != nil {
		t.Errorf("Expected undefined growth to encode as null, got %v", raw["sales_qoq_growth"])
	}
	if raw["eps_qoq_growth"] != nil {
		t.Errorf("Expected infinite growth to encode as null, got %v", raw["eps_qoq_growth"])
	}
	if raw["opm_change"] != 2.5 {
		t.Errorf("Expected opm_change 2.5, got %v", raw["opm_change"])
	}

	var decoded GrowthRecord
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal into GrowthRecord failed: %v", err)
	}
	if !decoded.SalesGrowth.IsUndefined() {
		t.Errorf("Expected null to decode as undefined, got %v", decoded.SalesGrowth)
	}
}

func TestErrorTaxonomy(t *testing.T) {
	upstream := &UpstreamFetchError{Symbol: "XYZ.NS", Err: errors.New("Quote not found")}
	narrative := &NarrativeGenerationError{Err: errors.New("quota exceeded")}
	missing := &MissingFieldError{Field: "Sales", Item: ItemTotalRevenue}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"no data", fmt.Errorf("normalize: %w", ErrNoData), true},
		{"missing field", missing, true},
		{"upstream", upstream, true},
		{"narrative", narrative, true},
		{"credential", ErrMissingCredential, true},
		{"symbol", ErrMissingSymbol, true},
		{"other", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}

	if !errors.Is(upstream, upstream.Err) {
		t.Error("UpstreamFetchError should unwrap to its cause")
	}
}
