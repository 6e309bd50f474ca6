package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"quikstox/internal/feature/stock/domain"
)

// session is one cookie jar plus the crumb bound to it.
// Yahoo ties the crumb to the cookies it was issued with, so both live and
// die together. A session is safe for concurrent use.
type session struct {
	cfg Config
	rc  *resty.Client

	mu    sync.Mutex
	crumb string
}

func newSession(cfg Config, hc *http.Client) *session {
	rc := resty.NewWithClient(hc).
		SetBaseURL(cfg.BaseURL).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "application/json")
	return &session{cfg: cfg, rc: rc}
}

// refreshCrumb visits the cookie page and then asks for a crumb.
func (s *session) refreshCrumb(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// only the cookies matter; the seed page answers 404 more often than not
	if _, err := s.rc.R().SetContext(ctx).Get(s.cfg.CookieURL); err != nil {
		return fmt.Errorf("yahoo cookie request: %w", err)
	}

	resp, err := s.rc.R().SetContext(ctx).Get("/v1/test/getcrumb")
	if err != nil {
		return fmt.Errorf("yahoo crumb request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("yahoo crumb http %d: %s", resp.StatusCode(), resp.String())
	}
	crumb := strings.TrimSpace(resp.String())
	if crumb == "" {
		return errors.New("yahoo returned an empty crumb")
	}
	s.crumb = crumb
	return nil
}

func (s *session) currentCrumb() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.crumb
}

// getJSON performs an authenticated GET and decodes the body into out.
// An expired crumb (401) is refreshed once. 404 maps to domain.ErrNotFound.
func (s *session) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	for attempt := 0; ; attempt++ {
		resp, err := s.rc.R().
			SetContext(ctx).
			SetQueryParamsFromValues(query).
			SetQueryParam("crumb", s.currentCrumb()).
			Get(path)
		if err != nil {
			return fmt.Errorf("yahoo %s: %w", path, err)
		}

		switch code := resp.StatusCode(); {
		case code == http.StatusUnauthorized && attempt == 0:
			if err := s.refreshCrumb(ctx); err != nil {
				return err
			}
			continue
		case code == http.StatusNotFound:
			return fmt.Errorf("yahoo %s: %w", path, domain.ErrNotFound)
		case code >= 400:
			return fmt.Errorf("yahoo %s: http %d", path, code)
		}

		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return fmt.Errorf("decode yahoo %s: %w", path, err)
		}
		return nil
	}
}
