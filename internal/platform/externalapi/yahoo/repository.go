package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"quikstox/internal/feature/stock/domain"
	"quikstox/internal/feature/stock/domain/entity"
	"quikstox/internal/feature/stock/usecase"
	"quikstox/internal/platform/externalapi/yahoo/dto"
	platformhttp "quikstox/internal/platform/http"
)

var (
	quoteModules = []string{"price", "summaryDetail", "financialData", "defaultKeyStatistics", "assetProfile"}

	balanceSheetTypes = []string{"TotalDebt", "LongTermDebt", "StockholdersEquity"}
	cashFlowTypes     = []string{"FreeCashFlow", "OperatingCashFlow", "CapitalExpenditure"}
)

// Provider はYahoo Financeから銘柄データを取得するQuoteProvider実装です。
type Provider struct {
	cfg    Config
	client *http.Client
	now    func() time.Time
}

// ProviderがQuoteProviderを実装していることをコンパイル時に検証します。
var _ usecase.QuoteProvider = (*Provider)(nil)

// NewProvider creates a Provider. client supplies the transport; every Fetch
// runs in its own cookie session on top of it.
func NewProvider(cfg Config, client *http.Client) *Provider {
	return &Provider{cfg: cfg, client: client, now: time.Now}
}

// Fetch retrieves the quote and, concurrently, the statements, recommendations
// and earnings calendar for symbol. Only a failed quote fails the call; the
// other parts report their errors in Financials.Errors.
func (p *Provider) Fetch(ctx context.Context, symbol string) (*entity.Financials, error) {
	hc, err := platformhttp.NewSessionClient(p.client)
	if err != nil {
		return nil, err
	}
	s := newSession(p.cfg, hc)
	if err := s.refreshCrumb(ctx); err != nil {
		return nil, err
	}

	quote, err := p.quote(ctx, s, symbol)
	if err != nil {
		return nil, err
	}
	fin := &entity.Financials{Quote: quote}

	var g errgroup.Group
	now := p.now()
	g.Go(func() error {
		fin.BalanceSheet, fin.Errors.BalanceSheet = p.statements(ctx, s, symbol, "annual", balanceSheetTypes, now)
		return nil
	})
	g.Go(func() error {
		fin.QuarterlyCashFlow, fin.Errors.QuarterlyCashFlow = p.statements(ctx, s, symbol, "quarterly", cashFlowTypes, now)
		return nil
	})
	g.Go(func() error {
		fin.AnnualCashFlow, fin.Errors.AnnualCashFlow = p.statements(ctx, s, symbol, "annual", cashFlowTypes, now)
		return nil
	})
	g.Go(func() error {
		fin.Recommendations, fin.Errors.Recommendations = p.recommendations(ctx, s, symbol)
		return nil
	})
	g.Go(func() error {
		fin.Calendar, fin.Errors.Calendar = p.calendar(ctx, s, symbol)
		return nil
	})
	_ = g.Wait()

	return fin, nil
}

func (p *Provider) summary(ctx context.Context, s *session, symbol string, modules ...string) (dto.QuoteSummaryResult, error) {
	q := url.Values{}
	q.Set("modules", strings.Join(modules, ","))
	q.Set("formatted", "false")

	var body dto.QuoteSummaryResponse
	if err := s.getJSON(ctx, "/v10/finance/quoteSummary/"+url.PathEscape(symbol), q, &body); err != nil {
		return dto.QuoteSummaryResult{}, err
	}
	if e := body.QuoteSummary.Error; e != nil {
		if e.Code == "Not Found" {
			return dto.QuoteSummaryResult{}, fmt.Errorf("yahoo quoteSummary %s: %s: %w", symbol, e.Description, domain.ErrNotFound)
		}
		return dto.QuoteSummaryResult{}, fmt.Errorf("yahoo quoteSummary %s: %s", e.Code, e.Description)
	}
	if len(body.QuoteSummary.Result) == 0 {
		return dto.QuoteSummaryResult{}, fmt.Errorf("yahoo quoteSummary %s: empty result: %w", symbol, domain.ErrNotFound)
	}
	return body.QuoteSummary.Result[0], nil
}

func (p *Provider) quote(ctx context.Context, s *session, symbol string) (entity.QuoteSnapshot, error) {
	r, err := p.summary(ctx, s, symbol, quoteModules...)
	if err != nil {
		return entity.QuoteSnapshot{}, err
	}
	return toQuote(symbol, r), nil
}

func toQuote(symbol string, r dto.QuoteSummaryResult) entity.QuoteSnapshot {
	pr, sd, fd, ks, ap := r.Price, r.SummaryDetail, r.FinancialData, r.DefaultKeyStatistics, r.AssetProfile

	name := pr.LongName.Text()
	if name == nil {
		name = pr.ShortName.Text()
	}
	return entity.QuoteSnapshot{
		Symbol:              symbol,
		LongName:            name,
		LongBusinessSummary: ap.LongBusinessSummary.Text(),
		Sector:              ap.Sector.Text(),
		Industry:            ap.Industry.Text(),

		CurrentPrice:               fd.CurrentPrice.V,
		PreviousClose:              sd.PreviousClose.V,
		RegularMarketPrice:         pr.RegularMarketPrice.V,
		RegularMarketPreviousClose: pr.RegularMarketPreviousClose.Or(sd.RegularMarketPreviousClose),

		FiftyTwoWeekLow:  sd.FiftyTwoWeekLow.V,
		FiftyTwoWeekHigh: sd.FiftyTwoWeekHigh.V,
		ProfitMargins:    fd.ProfitMargins.Or(ks.ProfitMargins),
		DividendYield:    sd.DividendYield.V,

		BookValue:         ks.BookValue.V,
		SharesOutstanding: ks.SharesOutstanding.V,
		DebtToEquity:      fd.DebtToEquity.V,

		TargetLowPrice:          fd.TargetLowPrice.V,
		TargetMeanPrice:         fd.TargetMeanPrice.V,
		TargetMedianPrice:       fd.TargetMedianPrice.V,
		TargetHighPrice:         fd.TargetHighPrice.V,
		NumberOfAnalystOpinions: fd.NumberOfAnalystOpinions.V,
	}
}

func (p *Provider) statements(ctx context.Context, s *session, symbol, freq string, types []string, now time.Time) (entity.StatementTable, error) {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = freq + t
	}
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("type", strings.Join(names, ","))
	q.Set("period1", strconv.FormatInt(now.AddDate(-p.cfg.History, 0, 0).Unix(), 10))
	q.Set("period2", strconv.FormatInt(now.Unix(), 10))

	var body dto.TimeseriesResponse
	if err := s.getJSON(ctx, "/ws/fundamentals-timeseries/v1/finance/timeseries/"+url.PathEscape(symbol), q, &body); err != nil {
		return entity.StatementTable{}, err
	}
	if e := body.Timeseries.Error; e != nil {
		return entity.StatementTable{}, fmt.Errorf("yahoo timeseries %s: %s", e.Code, e.Description)
	}
	return parseTimeseries(body.Timeseries.Result, freq)
}

func (p *Provider) recommendations(ctx context.Context, s *session, symbol string) (entity.RecommendationTable, error) {
	r, err := p.summary(ctx, s, symbol, "recommendationTrend")
	if err != nil {
		return entity.RecommendationTable{}, err
	}
	rows := make([]entity.RecommendationRow, 0, len(r.RecommendationTrend.Trend))
	for _, t := range r.RecommendationTrend.Trend {
		rows = append(rows, entity.RecommendationRow{
			Period:     t.Period,
			StrongBuy:  t.StrongBuy.V,
			Buy:        t.Buy.V,
			Hold:       t.Hold.V,
			Sell:       t.Sell.V,
			StrongSell: t.StrongSell.V,
		})
	}
	return entity.RecommendationTable{Rows: rows}, nil
}

func (p *Provider) calendar(ctx context.Context, s *session, symbol string) (entity.EarningsCalendar, error) {
	r, err := p.summary(ctx, s, symbol, "calendarEvents")
	if err != nil {
		return entity.EarningsCalendar{}, err
	}
	var dates []time.Time
	for _, v := range r.CalendarEvents.Earnings.EarningsDate {
		sec, ok := v.V.(float64)
		if !ok {
			continue
		}
		dates = append(dates, time.Unix(int64(sec), 0).UTC())
	}
	return entity.EarningsCalendar{EarningsDate: dates}, nil
}
