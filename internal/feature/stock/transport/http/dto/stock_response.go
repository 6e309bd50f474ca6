// Package dto defines the JSON shapes of the stock HTTP API.
package dto

import (
	"fmt"
	"strings"

	"quikstox/internal/feature/stock/domain/entity"
)

// StockResponse is the success body of GET /stock/{ticker}.
// No field uses omitempty: every key is always present and missing data is null.
type StockResponse struct {
	Symbol             string                  `json:"symbol"`
	CompanyName        *string                 `json:"company_name"`
	Description        *string                 `json:"description"`
	Sector             *string                 `json:"sector"`
	Industry           *string                 `json:"industry"`
	Price              *float64                `json:"price"`
	PriceChange        *float64                `json:"price_change"`
	PriceChangePercent *float64                `json:"price_change_percent"`
	FiftyTwoWeekLow    *float64                `json:"fifty_two_week_low"`
	FiftyTwoWeekHigh   *float64                `json:"fifty_two_week_high"`
	ProfitMargin       *float64                `json:"profit_margin"`
	DividendYield      *float64                `json:"dividend_yield"`
	DebtRatios         DebtRatios              `json:"debt_ratios"`
	FCFToFirm          FCFToFirm               `json:"fcf_to_firm"`
	NextEarningsDate   *string                 `json:"next_earnings_date"`
	AnalystCount       *int                    `json:"analyst_count"`
	PriceTargets       PriceTargets            `json:"price_targets"`
	Recommendations    RecommendationsResponse `json:"recommendations"`
}

// StockWithRatingResponse is StockResponse plus the analyst-rating keys,
// returned when include_zacks=true.
type StockWithRatingResponse struct {
	StockResponse
	ZacksRank    *int              `json:"zacks_rank"`
	StyleScores  map[string]string `json:"style_scores"`
	EarningsDate *string           `json:"earnings_date"`
}

type DebtRatios struct {
	Total    *float64 `json:"total"`
	LongTerm *float64 `json:"long_term"`
	Raw      *DebtRaw `json:"raw"`
}

type DebtRaw struct {
	TotalDebt    float64 `json:"total_debt"`
	LongTermDebt float64 `json:"long_term_debt"`
	TotalEquity  float64 `json:"total_equity"`
}

// FCFToFirm carries either value or error. note is only sent when set.
type FCFToFirm struct {
	Value *float64 `json:"value"`
	Note  string   `json:"note,omitempty"`
	Error *string  `json:"error"`
}

type PriceTargets struct {
	Low    *float64 `json:"low"`
	Mean   *float64 `json:"mean"`
	Median *float64 `json:"median"`
	High   *float64 `json:"high"`
}

type RecommendationsResponse struct {
	StrongBuy  int `json:"strong_buy"`
	Buy        int `json:"buy"`
	Hold       int `json:"hold"`
	Sell       int `json:"sell"`
	StrongSell int `json:"strong_sell"`
}

// ErrorResponse is the in-band failure body. It is sent with HTTP 200.
type ErrorResponse struct {
	Error  string `json:"error"`
	Symbol string `json:"symbol"`
}

// StockQuery binds the query string of GET /stock/{ticker}.
type StockQuery struct {
	IncludeZacks QueryBool `form:"include_zacks"`
}

// QueryBool is a query-string boolean that also accepts yes/no, on/off and y/n.
// gin calls UnmarshalParam instead of strconv.ParseBool.
type QueryBool bool

// UnmarshalParam implements binding.BindUnmarshaler.
func (b *QueryBool) UnmarshalParam(param string) error {
	switch strings.ToLower(strings.TrimSpace(param)) {
	case "1", "t", "true", "y", "yes", "on":
		*b = true
	case "", "0", "f", "false", "n", "no", "off":
		*b = false
	default:
		return fmt.Errorf("invalid boolean %q", param)
	}
	return nil
}

// FromRecord converts a record to its response body. The result is a
// StockWithRatingResponse when the record carries a rating.
func FromRecord(r *entity.StockRecord) any {
	base := StockResponse{
		Symbol:             r.Symbol,
		CompanyName:        r.CompanyName,
		Description:        r.Description,
		Sector:             r.Sector,
		Industry:           r.Industry,
		Price:              r.Price,
		PriceChange:        r.PriceChange,
		PriceChangePercent: r.PriceChangePercent,
		FiftyTwoWeekLow:    r.FiftyTwoWeekLow,
		FiftyTwoWeekHigh:   r.FiftyTwoWeekHigh,
		ProfitMargin:       r.ProfitMargin,
		DividendYield:      r.DividendYield,
		DebtRatios: DebtRatios{
			Total:    r.DebtRatios.Total,
			LongTerm: r.DebtRatios.LongTerm,
		},
		FCFToFirm: FCFToFirm{
			Value: r.FCFToFirm.Value,
			Note:  r.FCFToFirm.Note,
			Error: r.FCFToFirm.Error,
		},
		NextEarningsDate: r.NextEarningsDate,
		AnalystCount:     r.AnalystCount,
		PriceTargets: PriceTargets{
			Low:    r.PriceTargets.Low,
			Mean:   r.PriceTargets.Mean,
			Median: r.PriceTargets.Median,
			High:   r.PriceTargets.High,
		},
		Recommendations: RecommendationsResponse{
			StrongBuy:  r.Recommendations.StrongBuy,
			Buy:        r.Recommendations.Buy,
			Hold:       r.Recommendations.Hold,
			Sell:       r.Recommendations.Sell,
			StrongSell: r.Recommendations.StrongSell,
		},
	}
	if raw := r.DebtRatios.Raw; raw != nil {
		base.DebtRatios.Raw = &DebtRaw{
			TotalDebt:    raw.TotalDebt,
			LongTermDebt: raw.LongTermDebt,
			TotalEquity:  raw.TotalEquity,
		}
	}

	if r.Rating == nil {
		return base
	}
	scores := r.Rating.StyleScores
	if scores == nil {
		scores = map[string]string{}
	}
	return StockWithRatingResponse{
		StockResponse: base,
		ZacksRank:     r.Rating.ZacksRank,
		StyleScores:   scores,
		EarningsDate:  r.Rating.EarningsDate,
	}
}
