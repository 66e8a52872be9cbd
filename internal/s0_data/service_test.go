package s0_data

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/finlens/internal/contracts"
	"github.com/wonny/finlens/internal/s0_data/quality"
	"github.com/wonny/finlens/pkg/logger"
)

type fakeSource struct {
	fin       *contracts.Financials
	err       error
	requested []string
}

func (f *fakeSource) FetchFinancials(_ context.Context, symbol string) (*contracts.Financials, error) {
	f.requested = append(f.requested, symbol)
	return f.fin, f.err
}

func TestService_Fetch(t *testing.T) {
	income := contracts.NewQuarterlyStatement()
	income.Set(contracts.ItemTotalRevenue, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), 1e9)
	src := &fakeSource{fin: &contracts.Financials{
		Profile: contracts.CompanyProfile{Symbol: "TCS.NS", Name: "TCS"},
		Income:  income,
	}}

	svc := NewService(src, quality.NewGate(quality.Config{Window: 10}), logger.Nop())
	fin, err := svc.Fetch(context.Background(), "  TCS.NS ")
	require.NoError(t, err)

	assert.Equal(t, "TCS", fin.Profile.Name)
	assert.Equal(t, []string{"TCS.NS"}, src.requested)
}

func TestService_FetchWrapsProviderErrors(t *testing.T) {
	cause := errors.New("connection reset by peer")
	src := &fakeSource{err: cause}

	svc := NewService(src, nil, logger.Nop())
	_, err := svc.Fetch(context.Background(), "INVALID")
	require.Error(t, err)

	var upstream *contracts.UpstreamFetchError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, "INVALID", upstream.Symbol)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "error fetching data for INVALID")
}

func TestService_FetchBlankSymbol(t *testing.T) {
	src := &fakeSource{}
	svc := NewService(src, nil, logger.Nop())

	_, err := svc.Fetch(context.Background(), "   ")
	assert.ErrorIs(t, err, contracts.ErrMissingSymbol)
	assert.Empty(t, src.requested, "provider must not be called for a blank symbol")
}
