// Package usecase implements stock snapshot lookups: fetching upstream data,
// normalizing it into a flat record and merging the optional analyst rating.
package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"quikstox/internal/feature/stock/domain"
	"quikstox/internal/feature/stock/domain/entity"
)

// DefaultNotifyTimeout bounds a single notification attempt.
const DefaultNotifyTimeout = 5 * time.Second

// QuoteProvider fetches quote, statements, recommendations and calendar for a ticker.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type QuoteProvider interface {
	// Fetch returns ErrNotFound (possibly wrapped) for unknown tickers.
	// Failures of optional parts are reported in Financials.Errors, not as err.
	Fetch(ctx context.Context, symbol string) (*entity.Financials, error)
}

// RatingSource fetches the secondary analyst rating for a ticker.
type RatingSource interface {
	Rating(ctx context.Context, symbol string) (entity.SecondaryRating, error)
}

// Notifier receives one best-effort event per lookup.
type Notifier interface {
	Notify(ctx context.Context, ev entity.LookupEvent) error
}

// StockUsecase builds stock snapshots.
type StockUsecase struct {
	provider      QuoteProvider
	rating        RatingSource
	notifier      Notifier
	notifyTimeout time.Duration
}

// NewStockUsecase creates a StockUsecase. rating and notifier may be nil:
// without a rating source requested ratings come back empty, and without a
// notifier no events are sent.
func NewStockUsecase(provider QuoteProvider, rating RatingSource, notifier Notifier) *StockUsecase {
	return &StockUsecase{
		provider:      provider,
		rating:        rating,
		notifier:      notifier,
		notifyTimeout: DefaultNotifyTimeout,
	}
}

// GetStock returns the normalized snapshot for symbol.
// When includeRating is set the analyst rating is fetched concurrently with
// the primary data and attached to the record; it never causes a failure.
func (u *StockUsecase) GetStock(ctx context.Context, symbol string, includeRating bool) (*entity.StockRecord, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		g      errgroup.Group
		rating entity.SecondaryRating
	)
	if includeRating {
		g.Go(func() error {
			rating = u.fetchRating(ctx, symbol)
			return nil
		})
	}

	rec, err := u.lookup(ctx, symbol)
	if err != nil {
		// the rating is useless without a record
		cancel()
	}
	_ = g.Wait()

	if err == nil && includeRating {
		rec.Rating = &rating
	}
	u.notify(ctx, symbol, includeRating, err)

	if err != nil {
		slog.Error("stock lookup failed", "symbol", symbol, "error", err)
		return nil, err
	}
	slog.Info("stock lookup completed", "symbol", symbol, "include_rating", includeRating)
	return rec, nil
}

func (u *StockUsecase) lookup(ctx context.Context, symbol string) (*entity.StockRecord, error) {
	upstream := strings.ToUpper(strings.TrimSpace(symbol))
	if upstream == "" {
		return nil, &domain.NotFoundError{Symbol: symbol, Detail: "No valid data."}
	}

	fin, err := u.provider.Fetch(ctx, upstream)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.NotFoundError{Symbol: symbol, Detail: "No valid data."}
		}
		return nil, &domain.UpstreamError{Symbol: symbol, Err: err}
	}
	if fin == nil || fin.Quote.IsEmpty() {
		return nil, &domain.NotFoundError{Symbol: symbol, Detail: "No valid data."}
	}
	logPartErrors(symbol, fin.Errors)

	return assembleRecord(symbol, fin)
}

func (u *StockUsecase) fetchRating(ctx context.Context, symbol string) entity.SecondaryRating {
	if u.rating == nil {
		return entity.EmptyRating()
	}
	r, err := u.rating.Rating(ctx, strings.ToUpper(strings.TrimSpace(symbol)))
	if err != nil {
		slog.Warn("analyst rating unavailable", "symbol", symbol, "error", err)
		return entity.EmptyRating()
	}
	if r.StyleScores == nil {
		r.StyleScores = map[string]string{}
	}
	return r
}

// notify dispatches the lookup event without blocking the response.
// The event outlives the request context, so it is detached from cancellation.
func (u *StockUsecase) notify(ctx context.Context, symbol string, includeRating bool, lookupErr error) {
	if u.notifier == nil {
		return
	}
	ev := entity.LookupEvent{Symbol: symbol, Success: lookupErr == nil, IncludeRating: includeRating}
	if lookupErr != nil {
		ev.Error = lookupErr.Error()
	}

	ctx = context.WithoutCancel(ctx)
	go func() {
		ctx, cancel := context.WithTimeout(ctx, u.notifyTimeout)
		defer cancel()
		if err := u.notifier.Notify(ctx, ev); err != nil {
			slog.Warn("lookup notification failed", "symbol", symbol, "error", err)
		}
	}()
}

func logPartErrors(symbol string, pe entity.PartErrors) {
	for part, err := range map[string]error{
		"balance_sheet":       pe.BalanceSheet,
		"quarterly_cash_flow": pe.QuarterlyCashFlow,
		"annual_cash_flow":    pe.AnnualCashFlow,
		"recommendations":     pe.Recommendations,
		"calendar":            pe.Calendar,
	} {
		if err != nil {
			slog.Warn("partial upstream data", "symbol", symbol, "part", part, "error", err)
		}
	}
}
