package usecase

import (
	"fmt"

	"quikstox/internal/feature/stock/domain"
	"quikstox/internal/feature/stock/domain/entity"
	"quikstox/internal/shared/numeric"
)

// Statement line item names.
const (
	totalDebtRow    = "Total Debt"
	longTermDebtRow = "Long Term Debt"
	freeCashFlowRow = "Free Cash Flow"
)

// Issuers label the same concept differently; aliases are listed in order of preference.
var (
	operatingCashFlowAliases = []string{
		"Operating Cash Flow",
		"Total Cash From Operating Activities",
		"Cash Flow From Operating Activities",
	}
	capitalExpenditureAliases = []string{
		"Capital Expenditure",
		"Capital Expenditures",
		"Capital Expenditure Reported",
	}
)

const (
	// ttmQuarters is the number of quarters summed for trailing-twelve-month figures.
	ttmQuarters = 4

	fcfUnavailable = "Cash flow data not available"
	fcfAnnualNote  = "Annual data"
)

// resolvePrice picks the current price and its change.
// currentPrice/previousClose are preferred; when only one of them is set the
// regularMarket pair is used instead. A ticker with no usable pair is not found.
func resolvePrice(q entity.QuoteSnapshot) (entity.PriceMetrics, error) {
	price := numeric.CoerceFinite(q.CurrentPrice, 0)
	prev := numeric.CoerceFinite(q.PreviousClose, 0)

	if price == 0 && prev == 0 {
		return entity.PriceMetrics{}, &domain.NotFoundError{Symbol: q.Symbol, Detail: "No price data."}
	}
	if price != 0 && prev != 0 {
		return priceChange(price, prev), nil
	}

	price = numeric.CoerceFinite(q.RegularMarketPrice, 0)
	prev = numeric.CoerceFinite(q.RegularMarketPreviousClose, 0)
	if price == 0 || prev == 0 {
		return entity.PriceMetrics{}, &domain.NotFoundError{Symbol: q.Symbol, Detail: "No regularMarketPrice data."}
	}
	return priceChange(price, prev), nil
}

func priceChange(price, prev float64) entity.PriceMetrics {
	m := entity.PriceMetrics{Price: price, Change: price - prev}
	if prev != 0 {
		m.ChangePercent = m.Change / prev * 100
	}
	return m
}

// resolveDebtRatios derives debt-to-equity ratios.
// The total ratio is always the provider's precomputed debtToEquity; only the
// long-term ratio is computed from the balance sheet.
func resolveDebtRatios(q entity.QuoteSnapshot, bs entity.StatementTable, bsErr error) entity.DebtRatios {
	total := upstreamDebtToEquity(q)
	if bsErr != nil || bs.Empty() {
		return entity.DebtRatios{Total: total}
	}

	totalDebt := numeric.CoerceFinite(columnValue(bs, totalDebtRow, 0), 0)
	longTermDebt := numeric.CoerceFinite(columnValue(bs, longTermDebtRow, 0), 0)
	equity := numeric.CoerceFinite(q.BookValue, 0) * numeric.CoerceFinite(q.SharesOutstanding, 0)

	var longTerm *float64
	if equity != 0 && longTermDebt != 0 {
		longTerm = numeric.RoundOrNull(longTermDebt/equity*100, numeric.DefaultPlaces)
	}

	return entity.DebtRatios{
		Total:    total,
		LongTerm: longTerm,
		Raw: &entity.DebtRaw{
			TotalDebt:    totalDebt,
			LongTermDebt: longTermDebt,
			TotalEquity:  equity,
		},
	}
}

// upstreamDebtToEquity treats a missing field as 0 but a malformed one as unknown.
func upstreamDebtToEquity(q entity.QuoteSnapshot) *float64 {
	v := q.DebtToEquity
	if v == nil {
		v = 0
	}
	return numeric.RoundOrNull(v, numeric.DefaultPlaces)
}

// columnValue returns the value of row in column i, or nil when absent.
func columnValue(t entity.StatementTable, row string, i int) any {
	v, ok := t.Value(row, i)
	if !ok {
		return nil
	}
	return v
}

// resolveFCF computes trailing-twelve-month free cash flow to the firm.
// Tiers are tried in order and the first one with data wins:
// quarterly FCF, quarterly OCF+capex, annual FCF, annual OCF+capex.
// A failed annual fetch only matters once the quarterly tiers come up empty.
func resolveFCF(quarterly, annual entity.StatementTable, quarterlyErr, annualErr error) entity.FCFToFirm {
	if quarterlyErr != nil {
		return fcfError(quarterlyErr)
	}

	sum, note, ok := quarterlyFCF(quarterly)
	if !ok {
		if annualErr != nil {
			return fcfError(annualErr)
		}
		sum, ok = annualFCF(annual)
		note = fcfAnnualNote
	}
	if !ok {
		msg := fcfUnavailable
		return entity.FCFToFirm{Error: &msg}
	}

	v := numeric.Round(sum/1_000_000, numeric.DefaultPlaces)
	return entity.FCFToFirm{Value: &v, Note: note}
}

func fcfError(err error) entity.FCFToFirm {
	msg := fmt.Sprintf("Error calculating FCF: %v", err)
	return entity.FCFToFirm{Error: &msg}
}

// quarterlyFCF sums up to four recent quarters from the FCF row, or from
// OCF plus capex when no FCF row exists. Capex is reported negative, so the
// addition subtracts it.
func quarterlyFCF(t entity.StatementTable) (float64, string, bool) {
	var quarter func(i int) float64
	switch {
	case t.HasRow(freeCashFlowRow):
		quarter = func(i int) float64 {
			return numeric.CoerceFinite(columnValue(t, freeCashFlowRow, i), 0)
		}
	default:
		ocf, okOCF := t.FirstRow(operatingCashFlowAliases...)
		capex, okCapex := t.FirstRow(capitalExpenditureAliases...)
		if !okOCF || !okCapex {
			return 0, "", false
		}
		quarter = func(i int) float64 {
			return numeric.CoerceFinite(columnValue(t, ocf, i), 0) +
				numeric.CoerceFinite(columnValue(t, capex, i), 0)
		}
	}

	n := min(ttmQuarters, len(t.Columns))
	var sum float64
	used := 0
	for i := 0; i < n; i++ {
		v := quarter(i)
		// the latest quarter always counts, even when it is zero
		if v != 0 || i == 0 {
			sum += v
			used++
		}
	}
	if used == 0 {
		return 0, "", false
	}
	return sum, quarterNote(used), true
}

// annualFCF uses the most recent fiscal year, from the FCF row when it is
// non-zero, otherwise from OCF plus capex.
func annualFCF(t entity.StatementTable) (float64, bool) {
	if t.Empty() {
		return 0, false
	}
	if t.HasRow(freeCashFlowRow) {
		if v := numeric.CoerceFinite(columnValue(t, freeCashFlowRow, 0), 0); v != 0 {
			return v, true
		}
	}
	ocf, okOCF := t.FirstRow(operatingCashFlowAliases...)
	capex, okCapex := t.FirstRow(capitalExpenditureAliases...)
	if !okOCF || !okCapex {
		return 0, false
	}
	return numeric.CoerceFinite(columnValue(t, ocf, 0), 0) +
		numeric.CoerceFinite(columnValue(t, capex, 0), 0), true
}

func quarterNote(n int) string {
	switch {
	case n >= ttmQuarters:
		return ""
	case n == 1:
		return "Calculated from 1 quarter of data"
	default:
		return fmt.Sprintf("Calculated from %d quarters of data", n)
	}
}
