package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"quikstox/internal/feature/stock/domain/entity"
	stockhandler "quikstox/internal/feature/stock/transport/handler"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type stubUsecase struct{}

func (stubUsecase) GetStock(ctx context.Context, symbol string, includeRating bool) (*entity.StockRecord, error) {
	return &entity.StockRecord{Symbol: symbol}, nil
}

func newTestRouter() *gin.Engine {
	return NewRouter(
		Config{AllowedOrigins: []string{"http://localhost:3000"}},
		stockhandler.NewStockHandler(stubUsecase{}),
	)
}

func TestRouter_Routes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodHead, "/healthz", http.StatusOK},
		{http.MethodGet, "/stock/AAPL", http.StatusOK},
		{http.MethodGet, "/stock/AAPL?include_zacks=bogus", http.StatusOK},
		{http.MethodGet, "/nope", http.StatusNotFound},
	}

	r := newTestRouter()
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRouter_CORS(t *testing.T) {
	t.Parallel()

	r := newTestRouter()

	t.Run("allowed origin preflight", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodOptions, "/stock/AAPL", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("unknown origin is rejected", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/stock/AAPL", nil)
		req.Header.Set("Origin", "https://evil.example")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	assert.Equal(t, []string{"http://localhost:3000", "https://quikstox.netlify.app"}, LoadConfig().AllowedOrigins)

	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.test , ,https://b.test")
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, LoadConfig().AllowedOrigins)
}
