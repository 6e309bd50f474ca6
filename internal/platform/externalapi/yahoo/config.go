// Package yahoo provides a client for the Yahoo Finance quoteSummary and
// fundamentals-timeseries endpoints.
package yahoo

import (
	"os"
	"time"
)

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// Config holds configuration for the Yahoo Finance client.
type Config struct {
	BaseURL   string        // API host, e.g. "https://query2.finance.yahoo.com"
	CookieURL string        // page visited to obtain session cookies before the crumb
	UserAgent string        // Yahoo rejects requests without a browser-like agent
	Timeout   time.Duration // HTTP request timeout
	History   int           // years of statements requested from the timeseries endpoint
}

// LoadConfig loads Yahoo configuration from environment variables.
func LoadConfig() Config {
	return Config{
		BaseURL:   getenv("YAHOO_BASE_URL", "https://query2.finance.yahoo.com"),
		CookieURL: getenv("YAHOO_COOKIE_URL", "https://fc.yahoo.com"),
		UserAgent: getenv("YAHOO_USER_AGENT", defaultUserAgent),
		Timeout:   10 * time.Second,
		History:   5,
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
