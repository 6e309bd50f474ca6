// Package browser renders JavaScript-driven pages with headless Chrome.
package browser

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/chromedp/chromedp"
)

// Config holds headless Chrome settings.
type Config struct {
	Headless  bool          // CHROME_HEADLESS, default true
	Wait      time.Duration // settle time after navigation for client-side rendering
	Timeout   time.Duration // upper bound for one render
	UserAgent string
}

// LoadConfig loads browser configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		Headless: true,
		Wait:     2 * time.Second,
		Timeout:  30 * time.Second,
	}
	if v, err := strconv.ParseBool(os.Getenv("CHROME_HEADLESS")); err == nil {
		cfg.Headless = v
	}
	if v, err := time.ParseDuration(os.Getenv("BROWSER_WAIT")); err == nil && v >= 0 {
		cfg.Wait = v
	}
	if v := os.Getenv("CHROME_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	return cfg
}

// Chrome launches a fresh browser per render from a shared allocator.
// Chrome itself is only started on the first Render.
type Chrome struct {
	cfg      Config
	allocCtx context.Context
	cancel   context.CancelFunc
}

// NewChrome prepares the allocator. Call Close on shutdown.
func NewChrome(cfg Config) *Chrome {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
	)
	if cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cfg.UserAgent))
	}
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
	return &Chrome{cfg: cfg, allocCtx: allocCtx, cancel: cancel}
}

// Render navigates to url, waits for scripts to settle and returns the
// document's outer HTML. The browser is torn down before Render returns.
func (c *Chrome) Render(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	browserCtx, cancelBrowser := chromedp.NewContext(c.allocCtx)
	defer cancelBrowser()

	// chromedp contexts derive from the allocator, not from ctx
	stop := context.AfterFunc(ctx, cancelBrowser)
	defer stop()

	runCtx, cancelRun := context.WithTimeout(browserCtx, c.cfg.Timeout)
	defer cancelRun()

	start := time.Now()
	var html string
	if err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.Sleep(c.cfg.Wait),
		chromedp.OuterHTML("html", &html),
	); err != nil {
		return "", fmt.Errorf("chromedp render %s: %w", url, err)
	}
	slog.Debug("page rendered", "url", url, "bytes", len(html), "elapsed", time.Since(start))
	return html, nil
}

// Close stops the allocator and any browser still running.
func (c *Chrome) Close() {
	c.cancel()
}
