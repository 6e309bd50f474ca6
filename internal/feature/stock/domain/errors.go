// Package domain defines domain-level errors for the stock feature.
package domain

import (
	"errors"
	"fmt"
)

// Domain errors for stock lookups.
// Only price resolution and the request handler turn these into an error response;
// every other stage degrades to default or null values instead.
var (
	// ErrNotFound indicates the ticker is unknown or the provider returned no usable price.
	ErrNotFound = errors.New("ticker not found")

	// ErrUpstreamProcessing indicates an upstream response could not be fetched or decoded.
	ErrUpstreamProcessing = errors.New("upstream processing failed")

	// ErrExtraction indicates the analyst-rating page could not be parsed.
	// It never reaches the caller: extraction falls back to an empty rating.
	ErrExtraction = errors.New("rating extraction failed")
)

// NotFoundError describes why a ticker was considered not found.
type NotFoundError struct {
	Symbol string
	Detail string // e.g. "No price data."
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Ticker '%s' not found. %s", e.Symbol, e.Detail)
}

// Is makes errors.Is(err, ErrNotFound) hold for every NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// UpstreamError wraps a failure while fetching or decoding upstream data for a ticker.
type UpstreamError struct {
	Symbol string
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("Error processing %s: %v", e.Symbol, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrUpstreamProcessing) hold for every UpstreamError.
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstreamProcessing
}
