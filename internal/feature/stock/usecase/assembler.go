package usecase

import (
	"quikstox/internal/feature/stock/domain/entity"
	"quikstox/internal/shared/numeric"
)

// earningsDateLayout renders dates like "Monday, January 05, 2026".
const earningsDateLayout = "Monday, January 02, 2006"

// assembleRecord merges quote fields and derived metrics into the output record.
// Price resolution is the only step that can fail; every other field degrades
// to a default or null value.
func assembleRecord(symbol string, fin *entity.Financials) (*entity.StockRecord, error) {
	q := fin.Quote
	if q.Symbol == "" {
		q.Symbol = symbol
	}

	pm, err := resolvePrice(q)
	if err != nil {
		return nil, err
	}

	places := numeric.DefaultPlaces
	return &entity.StockRecord{
		Symbol:      symbol,
		CompanyName: q.LongName,
		Description: q.LongBusinessSummary,
		Sector:      q.Sector,
		Industry:    q.Industry,

		Price:              numeric.RoundOrNull(pm.Price, places),
		PriceChange:        numeric.RoundOrNull(pm.Change, places),
		PriceChangePercent: numeric.RoundOrNull(pm.ChangePercent, places),
		FiftyTwoWeekLow:    numeric.RoundOrNull(q.FiftyTwoWeekLow, places),
		FiftyTwoWeekHigh:   numeric.RoundOrNull(q.FiftyTwoWeekHigh, places),
		ProfitMargin:       numeric.RoundOrNull(numeric.CoerceFinite(q.ProfitMargins, 0)*100, places),
		DividendYield:      numeric.RoundOrNull(numeric.CoerceFinite(q.DividendYield, 0)*100, places),

		DebtRatios:       resolveDebtRatios(q, fin.BalanceSheet, fin.Errors.BalanceSheet),
		FCFToFirm:        resolveFCF(fin.QuarterlyCashFlow, fin.AnnualCashFlow, fin.Errors.QuarterlyCashFlow, fin.Errors.AnnualCashFlow),
		NextEarningsDate: nextEarningsDate(fin.Calendar, fin.Errors.Calendar),
		AnalystCount:     numeric.IntOrNull(q.NumberOfAnalystOpinions),
		PriceTargets: entity.PriceTargets{
			Low:    numeric.RoundOrNull(q.TargetLowPrice, places),
			Mean:   numeric.RoundOrNull(q.TargetMeanPrice, places),
			Median: numeric.RoundOrNull(q.TargetMedianPrice, places),
			High:   numeric.RoundOrNull(q.TargetHighPrice, places),
		},
		Recommendations: recommendationCounts(fin.Recommendations, fin.Errors.Recommendations),
	}, nil
}

// nextEarningsDate formats the first upcoming earnings date, or returns nil.
func nextEarningsDate(cal entity.EarningsCalendar, calErr error) *string {
	if calErr != nil || len(cal.EarningsDate) == 0 {
		return nil
	}
	d := cal.EarningsDate[0]
	if d.IsZero() {
		return nil
	}
	s := d.Format(earningsDateLayout)
	return &s
}

// recommendationCounts reads the most recent row. Missing or malformed
// counts are zero; a failed fetch zeroes everything.
func recommendationCounts(t entity.RecommendationTable, recErr error) entity.RecommendationCounts {
	if recErr != nil || len(t.Rows) == 0 {
		return entity.RecommendationCounts{}
	}
	r := t.Rows[0]
	count := func(v any) int { return int(numeric.CoerceFinite(v, 0)) }
	return entity.RecommendationCounts{
		StrongBuy:  count(r.StrongBuy),
		Buy:        count(r.Buy),
		Hold:       count(r.Hold),
		Sell:       count(r.Sell),
		StrongSell: count(r.StrongSell),
	}
}
