package entity

import "time"

// RecommendationRow holds analyst buy/sell counts for one period.
// Counts are raw upstream values and may be nil.
type RecommendationRow struct {
	Period     string // e.g. "0m" for the current month
	StrongBuy  any
	Buy        any
	Hold       any
	Sell       any
	StrongSell any
}

// RecommendationTable lists recommendation rows, most recent first.
type RecommendationTable struct {
	Rows []RecommendationRow
}

// EarningsCalendar carries the upcoming earnings date(s).
// A single upstream date is stored as a one-element slice.
type EarningsCalendar struct {
	EarningsDate []time.Time
}

// PartErrors records which optional sub-fetches failed.
// A nil field means the corresponding data was fetched (possibly empty).
type PartErrors struct {
	BalanceSheet      error
	QuarterlyCashFlow error
	AnnualCashFlow    error
	Recommendations   error
	Calendar          error
}

// Financials is everything the provider returned for one ticker in one request.
type Financials struct {
	Quote             QuoteSnapshot
	BalanceSheet      StatementTable // annual
	QuarterlyCashFlow StatementTable
	AnnualCashFlow    StatementTable
	Recommendations   RecommendationTable
	Calendar          EarningsCalendar
	Errors            PartErrors
}
