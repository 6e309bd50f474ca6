package zacks

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"quikstox/internal/feature/stock/domain/entity"
	"quikstox/internal/feature/stock/usecase"
)

// Config holds configuration for the Zacks rating source.
type Config struct {
	BaseURL string // e.g. "https://www.zacks.com"
}

// LoadConfig loads Zacks configuration from environment variables.
func LoadConfig() Config {
	base := os.Getenv("ZACKS_BASE_URL")
	if base == "" {
		base = "https://www.zacks.com"
	}
	return Config{BaseURL: strings.TrimRight(base, "/")}
}

// Renderer returns the HTML of a page after its scripts have run.
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// Source is a RatingSource backed by the rendered Zacks quote page.
type Source struct {
	cfg      Config
	renderer Renderer
}

var _ usecase.RatingSource = (*Source)(nil)

func NewSource(cfg Config, renderer Renderer) *Source {
	return &Source{cfg: cfg, renderer: renderer}
}

// Rating renders the quote page for symbol and extracts the rating from it.
func (s *Source) Rating(ctx context.Context, symbol string) (entity.SecondaryRating, error) {
	page := fmt.Sprintf("%s/stock/quote/%s", s.cfg.BaseURL, url.PathEscape(symbol))
	html, err := s.renderer.Render(ctx, page)
	if err != nil {
		return entity.EmptyRating(), fmt.Errorf("render %s: %w", page, err)
	}
	return Extract(html), nil
}
