package entity

// PriceMetrics is the resolved price and its change against the previous close.
type PriceMetrics struct {
	Price         float64
	Change        float64
	ChangePercent float64
}

// DebtRaw holds the balance-sheet inputs behind the debt ratios.
type DebtRaw struct {
	TotalDebt    float64
	LongTermDebt float64
	TotalEquity  float64
}

// DebtRatios are debt-to-equity percentages. Raw is nil when no balance sheet was available.
type DebtRatios struct {
	Total    *float64
	LongTerm *float64
	Raw      *DebtRaw
}

// FCFToFirm is trailing-twelve-month free cash flow to the firm, in millions.
// Exactly one of Value and Error is set. Note explains partial data and may be empty.
type FCFToFirm struct {
	Value *float64
	Note  string
	Error *string
}

// PriceTargets are analyst price targets.
type PriceTargets struct {
	Low    *float64
	Mean   *float64
	Median *float64
	High   *float64
}

// RecommendationCounts are the most recent analyst recommendation counts.
type RecommendationCounts struct {
	StrongBuy  int
	Buy        int
	Hold       int
	Sell       int
	StrongSell int
}

// SecondaryRating is what could be extracted from the analyst-rating page.
// StyleScores only contains the categories found on the page.
type SecondaryRating struct {
	ZacksRank    *int
	StyleScores  map[string]string
	EarningsDate *string
}

// EmptyRating returns the rating used when extraction fails.
func EmptyRating() SecondaryRating {
	return SecondaryRating{StyleScores: map[string]string{}}
}

// StockRecord is the normalized snapshot returned for a ticker.
type StockRecord struct {
	Symbol      string
	CompanyName *string
	Description *string
	Sector      *string
	Industry    *string

	Price              *float64
	PriceChange        *float64
	PriceChangePercent *float64
	FiftyTwoWeekLow    *float64
	FiftyTwoWeekHigh   *float64
	ProfitMargin       *float64
	DividendYield      *float64

	DebtRatios       DebtRatios
	FCFToFirm        FCFToFirm
	NextEarningsDate *string
	AnalystCount     *int
	PriceTargets     PriceTargets
	Recommendations  RecommendationCounts

	// Rating is non-nil only when the secondary source was requested.
	Rating *SecondaryRating
}
