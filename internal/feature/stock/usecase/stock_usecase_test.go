package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quikstox/internal/feature/stock/domain"
	"quikstox/internal/feature/stock/domain/entity"
	"quikstox/internal/feature/stock/usecase"
)

// mockQuoteProvider はQuoteProviderインターフェースのモック実装です。
type mockQuoteProvider struct {
	FetchFunc func(ctx context.Context, symbol string) (*entity.Financials, error)
}

func (m *mockQuoteProvider) Fetch(ctx context.Context, symbol string) (*entity.Financials, error) {
	return m.FetchFunc(ctx, symbol)
}

// mockRatingSource はRatingSourceインターフェースのモック実装です。
type mockRatingSource struct {
	RatingFunc func(ctx context.Context, symbol string) (entity.SecondaryRating, error)
}

func (m *mockRatingSource) Rating(ctx context.Context, symbol string) (entity.SecondaryRating, error) {
	return m.RatingFunc(ctx, symbol)
}

// chanNotifier forwards events to a channel so tests can wait for the async dispatch.
type chanNotifier struct {
	events chan entity.LookupEvent
	err    error
}

func newChanNotifier(err error) *chanNotifier {
	return &chanNotifier{events: make(chan entity.LookupEvent, 1), err: err}
}

func (n *chanNotifier) Notify(ctx context.Context, ev entity.LookupEvent) error {
	n.events <- ev
	return n.err
}

func (n *chanNotifier) wait(t *testing.T) entity.LookupEvent {
	t.Helper()
	select {
	case ev := <-n.events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not dispatched")
		return entity.LookupEvent{}
	}
}

func pricedFinancials() *entity.Financials {
	return &entity.Financials{
		Quote: entity.QuoteSnapshot{CurrentPrice: 110.0, PreviousClose: 100.0, DebtToEquity: 55.4},
	}
}

func TestStockUsecase_GetStock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		symbol      string
		fetch       func(ctx context.Context, symbol string) (*entity.Financials, error)
		wantErr     error
		wantMessage string
	}{
		{
			name:   "success: symbol is upper-cased for the provider",
			symbol: " msft ",
			fetch: func(ctx context.Context, symbol string) (*entity.Financials, error) {
				assert.Equal(t, "MSFT", symbol)
				return pricedFinancials(), nil
			},
		},
		{
			name:   "failure: provider reports unknown ticker",
			symbol: "NOPE",
			fetch: func(ctx context.Context, symbol string) (*entity.Financials, error) {
				return nil, fmt.Errorf("yahoo quoteSummary: %w", domain.ErrNotFound)
			},
			wantErr:     domain.ErrNotFound,
			wantMessage: "Ticker 'NOPE' not found. No valid data.",
		},
		{
			name:   "failure: empty quote",
			symbol: "EMPTY",
			fetch: func(ctx context.Context, symbol string) (*entity.Financials, error) {
				return &entity.Financials{}, nil
			},
			wantErr:     domain.ErrNotFound,
			wantMessage: "Ticker 'EMPTY' not found. No valid data.",
		},
		{
			name:   "failure: upstream transport error",
			symbol: "AAPL",
			fetch: func(ctx context.Context, symbol string) (*entity.Financials, error) {
				return nil, errors.New("connection reset")
			},
			wantErr:     domain.ErrUpstreamProcessing,
			wantMessage: "Error processing AAPL: connection reset",
		},
		{
			name:   "failure: no price fields",
			symbol: "ZERO",
			fetch: func(ctx context.Context, symbol string) (*entity.Financials, error) {
				return &entity.Financials{Quote: entity.QuoteSnapshot{Symbol: symbol, Industry: new(string)}}, nil
			},
			wantErr:     domain.ErrNotFound,
			wantMessage: "Ticker 'ZERO' not found. No price data.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			uc := usecase.NewStockUsecase(&mockQuoteProvider{FetchFunc: tt.fetch}, nil, nil)
			rec, err := uc.GetStock(context.Background(), tt.symbol, false)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.wantMessage, err.Error())
				assert.Nil(t, rec)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.symbol, rec.Symbol)
			assert.Nil(t, rec.Rating)
		})
	}
}

func TestStockUsecase_GetStock_WithRating(t *testing.T) {
	t.Parallel()

	rank := 2
	provider := &mockQuoteProvider{FetchFunc: func(ctx context.Context, symbol string) (*entity.Financials, error) {
		return pricedFinancials(), nil
	}}
	rating := &mockRatingSource{RatingFunc: func(ctx context.Context, symbol string) (entity.SecondaryRating, error) {
		assert.Equal(t, "AAPL", symbol)
		return entity.SecondaryRating{ZacksRank: &rank, StyleScores: map[string]string{"Value": "B"}}, nil
	}}

	uc := usecase.NewStockUsecase(provider, rating, nil)
	rec, err := uc.GetStock(context.Background(), "aapl", true)
	require.NoError(t, err)
	require.NotNil(t, rec.Rating)
	assert.Equal(t, 2, *rec.Rating.ZacksRank)
	assert.Equal(t, map[string]string{"Value": "B"}, rec.Rating.StyleScores)
}

func TestStockUsecase_GetStock_RatingFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	provider := &mockQuoteProvider{FetchFunc: func(ctx context.Context, symbol string) (*entity.Financials, error) {
		return pricedFinancials(), nil
	}}
	rating := &mockRatingSource{RatingFunc: func(ctx context.Context, symbol string) (entity.SecondaryRating, error) {
		return entity.SecondaryRating{}, errors.New("chrome not found")
	}}

	uc := usecase.NewStockUsecase(provider, rating, nil)
	rec, err := uc.GetStock(context.Background(), "AAPL", true)
	require.NoError(t, err)
	require.NotNil(t, rec.Rating)
	assert.Nil(t, rec.Rating.ZacksRank)
	assert.Nil(t, rec.Rating.EarningsDate)
	assert.NotNil(t, rec.Rating.StyleScores)
	assert.Empty(t, rec.Rating.StyleScores)
}

func TestStockUsecase_GetStock_NoRatingSource(t *testing.T) {
	t.Parallel()

	provider := &mockQuoteProvider{FetchFunc: func(ctx context.Context, symbol string) (*entity.Financials, error) {
		return pricedFinancials(), nil
	}}

	uc := usecase.NewStockUsecase(provider, nil, nil)
	rec, err := uc.GetStock(context.Background(), "AAPL", true)
	require.NoError(t, err)
	require.NotNil(t, rec.Rating)
	assert.Empty(t, rec.Rating.StyleScores)
}

func TestStockUsecase_GetStock_PrimaryFailureCancelsRating(t *testing.T) {
	t.Parallel()

	provider := &mockQuoteProvider{FetchFunc: func(ctx context.Context, symbol string) (*entity.Financials, error) {
		return nil, domain.ErrNotFound
	}}
	rating := &mockRatingSource{RatingFunc: func(ctx context.Context, symbol string) (entity.SecondaryRating, error) {
		<-ctx.Done()
		return entity.SecondaryRating{}, ctx.Err()
	}}

	uc := usecase.NewStockUsecase(provider, rating, nil)
	_, err := uc.GetStock(context.Background(), "GONE", true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStockUsecase_GetStock_Notifies(t *testing.T) {
	t.Parallel()

	t.Run("success event", func(t *testing.T) {
		t.Parallel()

		n := newChanNotifier(nil)
		provider := &mockQuoteProvider{FetchFunc: func(ctx context.Context, symbol string) (*entity.Financials, error) {
			return pricedFinancials(), nil
		}}

		uc := usecase.NewStockUsecase(provider, nil, n)
		_, err := uc.GetStock(context.Background(), "AAPL", false)
		require.NoError(t, err)

		ev := n.wait(t)
		assert.Equal(t, entity.LookupEvent{Symbol: "AAPL", Success: true}, ev)
	})

	t.Run("failure event, notifier error does not affect result", func(t *testing.T) {
		t.Parallel()

		n := newChanNotifier(errors.New("redis down"))
		provider := &mockQuoteProvider{FetchFunc: func(ctx context.Context, symbol string) (*entity.Financials, error) {
			return nil, domain.ErrNotFound
		}}

		uc := usecase.NewStockUsecase(provider, nil, n)
		_, err := uc.GetStock(context.Background(), "NOPE", true)
		require.Error(t, err)

		ev := n.wait(t)
		assert.False(t, ev.Success)
		assert.True(t, ev.IncludeRating)
		assert.Equal(t, "Ticker 'NOPE' not found. No valid data.", ev.Error)
	})
}
