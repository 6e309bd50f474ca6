// Package entity defines the domain models for the stock feature.
package entity

// QuoteSnapshot is the upstream quote record for one ticker.
//
// Numeric fields hold the raw upstream value: nil when the provider omitted
// the field, otherwise whatever type the payload decoded into. They are
// resolved through the numeric package, which decides per field whether a
// bad value becomes zero or null.
type QuoteSnapshot struct {
	Symbol string

	LongName            *string
	LongBusinessSummary *string
	Sector              *string
	Industry            *string

	CurrentPrice               any
	PreviousClose              any
	RegularMarketPrice         any
	RegularMarketPreviousClose any

	FiftyTwoWeekLow  any
	FiftyTwoWeekHigh any
	ProfitMargins    any
	DividendYield    any

	BookValue         any
	SharesOutstanding any
	DebtToEquity      any

	TargetLowPrice          any
	TargetMeanPrice         any
	TargetMedianPrice       any
	TargetHighPrice         any
	NumberOfAnalystOpinions any
}

// IsEmpty reports whether the provider returned no usable quote fields at all.
func (q QuoteSnapshot) IsEmpty() bool {
	for _, v := range []any{
		q.CurrentPrice, q.PreviousClose, q.RegularMarketPrice, q.RegularMarketPreviousClose,
		q.FiftyTwoWeekLow, q.FiftyTwoWeekHigh, q.ProfitMargins, q.DividendYield,
		q.BookValue, q.SharesOutstanding, q.DebtToEquity,
		q.TargetLowPrice, q.TargetMeanPrice, q.TargetMedianPrice, q.TargetHighPrice,
		q.NumberOfAnalystOpinions,
	} {
		if v != nil {
			return false
		}
	}
	return q.LongName == nil && q.LongBusinessSummary == nil && q.Sector == nil && q.Industry == nil
}
