package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quikstox/internal/feature/stock/domain"
	"quikstox/internal/feature/stock/usecase"
)

const quoteBody = `{"quoteSummary":{"result":[{
	"price":{"symbol":"AAPL","longName":"Apple Inc.","regularMarketPrice":{"raw":190.5,"fmt":"190.50"},"regularMarketPreviousClose":{"raw":188.0,"fmt":"188.00"}},
	"summaryDetail":{"previousClose":{"raw":188.0},"fiftyTwoWeekLow":{"raw":164.08},"fiftyTwoWeekHigh":{"raw":199.62},"dividendYield":{}},
	"financialData":{"currentPrice":{"raw":190.4},"debtToEquity":{"raw":145.8},"profitMargins":{"raw":0.253},"targetMeanPrice":{"raw":210.2},"numberOfAnalystOpinions":{"raw":38,"fmt":"38"}},
	"defaultKeyStatistics":{"bookValue":{"raw":4.0},"sharesOutstanding":{"raw":15000000000}},
	"assetProfile":{"sector":"Technology","industry":"Consumer Electronics","longBusinessSummary":""}
}],"error":null}}`

const recommendationBody = `{"quoteSummary":{"result":[{"recommendationTrend":{"trend":[
	{"period":"0m","strongBuy":11,"buy":21,"hold":6,"sell":0,"strongSell":1},
	{"period":"-1m","strongBuy":10,"buy":20,"hold":7,"sell":1,"strongSell":1}
]}}],"error":null}}`

const calendarBody = `{"quoteSummary":{"result":[{"calendarEvents":{"earnings":{"earningsDate":[{"raw":1769990400,"fmt":"2026-02-02"}]}}}],"error":null}}`

const balanceBody = `{"timeseries":{"result":[
	{"meta":{"symbol":["AAPL"],"type":["annualTotalDebt"]},"timestamp":[1],"annualTotalDebt":[
		{"asOfDate":"2024-09-30","periodType":"12M","reportedValue":{"raw":106629000000}},
		null,
		{"asOfDate":"2025-09-30","periodType":"12M","reportedValue":{"raw":98657000000}}
	]},
	{"meta":{"symbol":["AAPL"],"type":["annualLongTermDebt"]},"timestamp":[1],"annualLongTermDebt":[
		{"asOfDate":"2025-09-30","periodType":"12M","reportedValue":{"raw":85750000000}}
	]},
	{"meta":{"symbol":["AAPL"],"type":["annualStockholdersEquity"]}}
],"error":null}}`

const quarterlyCashFlowBody = `{"timeseries":{"result":[
	{"meta":{"symbol":["AAPL"],"type":["quarterlyFreeCashFlow"]},"quarterlyFreeCashFlow":[
		{"asOfDate":"2025-06-30","reportedValue":{"raw":24405000000}},
		{"asOfDate":"2025-09-30","reportedValue":{"raw":26485000000}}
	]}
],"error":null}}`

type fakeYahoo struct {
	crumbCalls   atomic.Int32
	unauthorized atomic.Int32 // number of quoteSummary calls to reject with 401
	quote        func(w http.ResponseWriter)
	timeseries   func(w http.ResponseWriter, types string)
}

func (f *fakeYahoo) server(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/seed", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "A3", Value: "session", Path: "/"})
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/v1/test/getcrumb", func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("A3"); err != nil {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		f.crumbCalls.Add(1)
		_, _ = w.Write([]byte("crumb-abc\n"))
	})
	mux.HandleFunc("/v10/finance/quoteSummary/AAPL", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "crumb-abc", r.URL.Query().Get("crumb"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		modules := r.URL.Query().Get("modules")
		switch {
		case modules == "recommendationTrend":
			_, _ = w.Write([]byte(recommendationBody))
		case modules == "calendarEvents":
			_, _ = w.Write([]byte(calendarBody))
		default:
			if f.unauthorized.Add(-1) >= 0 {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			if f.quote != nil {
				f.quote(w)
				return
			}
			_, _ = w.Write([]byte(quoteBody))
		}
	})
	mux.HandleFunc("/ws/fundamentals-timeseries/v1/finance/timeseries/AAPL", func(w http.ResponseWriter, r *http.Request) {
		types := r.URL.Query().Get("type")
		assert.NotEmpty(t, r.URL.Query().Get("period1"))
		if f.timeseries != nil {
			f.timeseries(w, types)
			return
		}
		switch {
		case strings.HasPrefix(types, "annualTotalDebt"):
			_, _ = w.Write([]byte(balanceBody))
		case strings.HasPrefix(types, "quarterly"):
			_, _ = w.Write([]byte(quarterlyCashFlowBody))
		default:
			_, _ = w.Write([]byte(`{"timeseries":{"result":[],"error":null}}`))
		}
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"quoteSummary":{"result":null,"error":{"code":"Not Found","description":"Quote not found for symbol: NOPE"}}}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestProvider(srv *httptest.Server) *Provider {
	p := NewProvider(Config{
		BaseURL:   srv.URL,
		CookieURL: srv.URL + "/seed",
		UserAgent: "test-agent",
		Timeout:   5 * time.Second,
		History:   5,
	}, srv.Client())
	p.now = func() time.Time { return time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC) }
	return p
}

func TestProvider_Fetch_Success(t *testing.T) {
	t.Parallel()

	f := &fakeYahoo{}
	p := newTestProvider(f.server(t))

	fin, err := p.Fetch(context.Background(), "AAPL")
	require.NoError(t, err)

	q := fin.Quote
	assert.Equal(t, "AAPL", q.Symbol)
	require.NotNil(t, q.LongName)
	assert.Equal(t, "Apple Inc.", *q.LongName)
	assert.Equal(t, "Technology", *q.Sector)
	assert.Nil(t, q.LongBusinessSummary)
	assert.Equal(t, 190.4, q.CurrentPrice)
	assert.Equal(t, 188.0, q.PreviousClose)
	assert.Equal(t, 190.5, q.RegularMarketPrice)
	assert.Equal(t, 188.0, q.RegularMarketPreviousClose)
	assert.Nil(t, q.DividendYield)
	assert.Nil(t, q.TargetMedianPrice)
	assert.Equal(t, 38.0, q.NumberOfAnalystOpinions)
	assert.Equal(t, 0.253, q.ProfitMargins)

	require.Len(t, fin.BalanceSheet.Columns, 2)
	assert.Equal(t, time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC), fin.BalanceSheet.Columns[0].Period)
	v, ok := fin.BalanceSheet.Value("Long Term Debt", 0)
	require.True(t, ok)
	assert.Equal(t, 85750000000.0, v)
	v, ok = fin.BalanceSheet.Value("Total Debt", 1)
	require.True(t, ok)
	assert.Equal(t, 106629000000.0, v)

	require.Len(t, fin.QuarterlyCashFlow.Columns, 2)
	v, _ = fin.QuarterlyCashFlow.Value("Free Cash Flow", 0)
	assert.Equal(t, 26485000000.0, v)
	assert.True(t, fin.AnnualCashFlow.Empty())

	require.Len(t, fin.Recommendations.Rows, 2)
	assert.Equal(t, "0m", fin.Recommendations.Rows[0].Period)
	assert.Equal(t, 11.0, fin.Recommendations.Rows[0].StrongBuy)

	require.Len(t, fin.Calendar.EarningsDate, 1)
	assert.Equal(t, time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC), fin.Calendar.EarningsDate[0])

	assert.NoError(t, fin.Errors.BalanceSheet)
	assert.NoError(t, fin.Errors.QuarterlyCashFlow)
	assert.NoError(t, fin.Errors.AnnualCashFlow)
	assert.NoError(t, fin.Errors.Recommendations)
	assert.NoError(t, fin.Errors.Calendar)
	assert.Equal(t, int32(1), f.crumbCalls.Load())
}

func TestProvider_Fetch_RefreshesCrumbOnce(t *testing.T) {
	t.Parallel()

	f := &fakeYahoo{}
	f.unauthorized.Store(1)
	p := newTestProvider(f.server(t))

	_, err := p.Fetch(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, int32(2), f.crumbCalls.Load())
}

func TestProvider_Fetch_PersistentUnauthorized(t *testing.T) {
	t.Parallel()

	f := &fakeYahoo{}
	f.unauthorized.Store(10)
	p := newTestProvider(f.server(t))

	_, err := p.Fetch(context.Background(), "AAPL")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 401")
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestProvider_Fetch_NotFound(t *testing.T) {
	t.Parallel()

	p := newTestProvider((&fakeYahoo{}).server(t))

	_, err := p.Fetch(context.Background(), "NOPE")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProvider_Fetch_EmptyResultIsNotFound(t *testing.T) {
	t.Parallel()

	f := &fakeYahoo{quote: func(w http.ResponseWriter) {
		_, _ = w.Write([]byte(`{"quoteSummary":{"result":[],"error":null}}`))
	}}
	p := newTestProvider(f.server(t))

	_, err := p.Fetch(context.Background(), "AAPL")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProvider_Fetch_QuoteServerError(t *testing.T) {
	t.Parallel()

	f := &fakeYahoo{quote: func(w http.ResponseWriter) {
		w.WriteHeader(http.StatusBadGateway)
	}}
	p := newTestProvider(f.server(t))

	_, err := p.Fetch(context.Background(), "AAPL")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "http 502")
}

func TestProvider_Fetch_StatementFailuresArePartial(t *testing.T) {
	t.Parallel()

	f := &fakeYahoo{timeseries: func(w http.ResponseWriter, types string) {
		w.WriteHeader(http.StatusInternalServerError)
	}}
	p := newTestProvider(f.server(t))

	fin, err := p.Fetch(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Error(t, fin.Errors.BalanceSheet)
	assert.Error(t, fin.Errors.QuarterlyCashFlow)
	assert.Error(t, fin.Errors.AnnualCashFlow)
	assert.NoError(t, fin.Errors.Recommendations)
	assert.True(t, fin.BalanceSheet.Empty())
}

func TestProvider_Fetch_AnnualCashFlowFailureKeepsQuarterlyFCF(t *testing.T) {
	t.Parallel()

	f := &fakeYahoo{timeseries: func(w http.ResponseWriter, types string) {
		switch {
		case strings.HasPrefix(types, "annualFreeCashFlow"):
			w.WriteHeader(http.StatusInternalServerError)
		case strings.HasPrefix(types, "quarterly"):
			_, _ = w.Write([]byte(quarterlyCashFlowBody))
		default:
			_, _ = w.Write([]byte(balanceBody))
		}
	}}
	p := newTestProvider(f.server(t))

	fin, err := p.Fetch(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.NoError(t, fin.Errors.QuarterlyCashFlow)
	assert.Error(t, fin.Errors.AnnualCashFlow)

	rec, err := usecase.NewStockUsecase(p, nil, nil).GetStock(context.Background(), "AAPL", false)
	require.NoError(t, err)
	assert.Nil(t, rec.FCFToFirm.Error)
	require.NotNil(t, rec.FCFToFirm.Value)
	assert.InDelta(t, 50890.0, *rec.FCFToFirm.Value, 1e-9)
	assert.Equal(t, "Calculated from 2 quarters of data", rec.FCFToFirm.Note)
}

func TestProvider_Fetch_CrumbFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)
	p := newTestProvider(srv)

	_, err := p.Fetch(context.Background(), "AAPL")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "crumb http 429")
}

func TestLineItemName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"FreeCashFlow":       "Free Cash Flow",
		"TotalDebt":          "Total Debt",
		"StockholdersEquity": "Stockholders Equity",
		"EBITDAMargin":       "EBITDA Margin",
		"capitalExpenditure": "Capital Expenditure",
		"":                   "",
	}
	for in, want := range tests {
		assert.Equal(t, want, lineItemName(in), in)
	}
}
