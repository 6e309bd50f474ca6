// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/redis/go-redis/v9"

	"quikstox/internal/feature/stock/adapters/zacks"
	"quikstox/internal/feature/stock/transport/handler"
	"quikstox/internal/feature/stock/usecase"
	"quikstox/internal/platform/browser"
	"quikstox/internal/platform/externalapi/yahoo"
	infrahttp "quikstox/internal/platform/http"
	"quikstox/internal/platform/notify"
)

// NewQuoteProvider creates a fully configured Yahoo provider with HTTP client.
func NewQuoteProvider() *yahoo.Provider {
	cfg := yahoo.LoadConfig()
	return yahoo.NewProvider(cfg, infrahttp.NewHTTPClient(cfg.Timeout))
}

// NewRatingSource creates the Zacks rating source on top of headless Chrome.
// The returned func releases the browser allocator.
func NewRatingSource() (*zacks.Source, func()) {
	chrome := browser.NewChrome(browser.LoadConfig())
	return zacks.NewSource(zacks.LoadConfig(), chrome), chrome.Close
}

// NewNotifier builds the lookup notifier. rdb may be nil, in which case
// events are only logged unless a webhook is configured.
func NewNotifier(rdb *redis.Client) usecase.Notifier {
	cfg := notify.LoadConfig()
	sinks := notify.Fanout{notify.NewRedisNotifier(rdb, cfg.Channel)}
	if cfg.WebhookURL != "" {
		sinks = append(sinks, notify.NewWebhookNotifier(cfg.WebhookURL, infrahttp.NewHTTPClient(cfg.Timeout)))
	}
	return sinks
}

// NewStockUsecase wires provider, rating source and notifier.
// The returned func must be called on shutdown.
func NewStockUsecase(rdb *redis.Client) (*usecase.StockUsecase, func()) {
	rating, closeRating := NewRatingSource()
	return usecase.NewStockUsecase(NewQuoteProvider(), rating, NewNotifier(rdb)), closeRating
}

// NewStockHandler is NewStockUsecase behind the HTTP handler.
func NewStockHandler(rdb *redis.Client) (*handler.StockHandler, func()) {
	uc, cleanup := NewStockUsecase(rdb)
	return handler.NewStockHandler(uc), cleanup
}
