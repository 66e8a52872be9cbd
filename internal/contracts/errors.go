package contracts

import (
	"errors"
	"fmt"
)

// ErrNoData is returned when the income statement has no quarterly columns
var ErrNoData = errors.New("no quarterly financial data available for this stock")

// ErrMissingSymbol is returned when an analysis is requested with a blank ticker
var ErrMissingSymbol = errors.New("please enter a stock symbol")

// ErrMissingCredential is returned when narrative generation is requested without an API key
var ErrMissingCredential = errors.New("please enter your Gemini API key to generate analysis")

// MissingFieldError reports a mandatory line item that the statement lacks
type MissingFieldError struct {
	Field string // display name, e.g. "Sales"
	Item  string // statement line item, e.g. "Total Revenue"
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s data not available for this stock (missing %q)", e.Field, e.Item)
}

// UpstreamFetchError wraps any failure of the quote/financials provider
type UpstreamFetchError struct {
	Symbol string
	Err    error
}

func (e *UpstreamFetchError) Error() string {
	return fmt.Sprintf("error fetching data for %s: %v", e.Symbol, e.Err)
}

func (e *UpstreamFetchError) Unwrap() error {
	return e.Err
}

// NarrativeGenerationError wraps any failure of the narrative provider
type NarrativeGenerationError struct {
	Err error
}

func (e *NarrativeGenerationError) Error() string {
	return fmt.Sprintf("error generating analysis: %v. Please check your API key and try again", e.Err)
}

func (e *NarrativeGenerationError) Unwrap() error {
	return e.Err
}

// IsUserFacing reports whether err belongs to the dashboard's error taxonomy
// and can be shown to the user as-is
func IsUserFacing(err error) bool {
	var missing *MissingFieldError
	var upstream *UpstreamFetchError
	var narrative *NarrativeGenerationError
	return errors.Is(err, ErrNoData) ||
		errors.Is(err, ErrMissingSymbol) ||
		errors.Is(err, ErrMissingCredential) ||
		errors.As(err, &missing) ||
		errors.As(err, &upstream) ||
		errors.As(err, &narrative)
}
