// Package dto contains the wire types of the Yahoo Finance endpoints.
package dto

// APIError is the error object embedded in Yahoo responses.
type APIError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// QuoteSummaryResponse is the body of /v10/finance/quoteSummary/{symbol}.
type QuoteSummaryResponse struct {
	QuoteSummary struct {
		Result []QuoteSummaryResult `json:"result"`
		Error  *APIError            `json:"error"`
	} `json:"quoteSummary"`
}

// QuoteSummaryResult holds the requested modules; absent modules stay zero.
type QuoteSummaryResult struct {
	Price                PriceModule               `json:"price"`
	SummaryDetail        SummaryDetailModule       `json:"summaryDetail"`
	FinancialData        FinancialDataModule       `json:"financialData"`
	DefaultKeyStatistics KeyStatisticsModule       `json:"defaultKeyStatistics"`
	AssetProfile         AssetProfileModule        `json:"assetProfile"`
	CalendarEvents       CalendarEventsModule      `json:"calendarEvents"`
	RecommendationTrend  RecommendationTrendModule `json:"recommendationTrend"`
}

type PriceModule struct {
	Symbol                     string `json:"symbol"`
	LongName                   Value  `json:"longName"`
	ShortName                  Value  `json:"shortName"`
	RegularMarketPrice         Value  `json:"regularMarketPrice"`
	RegularMarketPreviousClose Value  `json:"regularMarketPreviousClose"`
}

type SummaryDetailModule struct {
	PreviousClose              Value `json:"previousClose"`
	RegularMarketPreviousClose Value `json:"regularMarketPreviousClose"`
	FiftyTwoWeekLow            Value `json:"fiftyTwoWeekLow"`
	FiftyTwoWeekHigh           Value `json:"fiftyTwoWeekHigh"`
	DividendYield              Value `json:"dividendYield"`
}

type FinancialDataModule struct {
	CurrentPrice            Value `json:"currentPrice"`
	DebtToEquity            Value `json:"debtToEquity"`
	ProfitMargins           Value `json:"profitMargins"`
	TargetLowPrice          Value `json:"targetLowPrice"`
	TargetMeanPrice         Value `json:"targetMeanPrice"`
	TargetMedianPrice       Value `json:"targetMedianPrice"`
	TargetHighPrice         Value `json:"targetHighPrice"`
	NumberOfAnalystOpinions Value `json:"numberOfAnalystOpinions"`
}

type KeyStatisticsModule struct {
	BookValue         Value `json:"bookValue"`
	SharesOutstanding Value `json:"sharesOutstanding"`
	ProfitMargins     Value `json:"profitMargins"`
}

type AssetProfileModule struct {
	LongBusinessSummary Value `json:"longBusinessSummary"`
	Sector              Value `json:"sector"`
	Industry            Value `json:"industry"`
}

type CalendarEventsModule struct {
	Earnings struct {
		EarningsDate ValueList `json:"earningsDate"`
	} `json:"earnings"`
}

type RecommendationTrendModule struct {
	Trend []RecommendationTrend `json:"trend"`
}

// RecommendationTrend is one month of analyst counts; period "0m" is the current month.
type RecommendationTrend struct {
	Period     string `json:"period"`
	StrongBuy  Value  `json:"strongBuy"`
	Buy        Value  `json:"buy"`
	Hold       Value  `json:"hold"`
	Sell       Value  `json:"sell"`
	StrongSell Value  `json:"strongSell"`
}
