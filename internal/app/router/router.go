package router

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	stockhandler "quikstox/internal/feature/stock/transport/handler"
	"quikstox/internal/platform/http/handler"
)

const defaultAllowedOrigins = "http://localhost:3000,https://quikstox.netlify.app"

// Config holds router-level settings.
type Config struct {
	AllowedOrigins []string
}

// LoadConfig reads CORS_ALLOWED_ORIGINS, a comma separated origin list.
func LoadConfig() Config {
	raw := os.Getenv("CORS_ALLOWED_ORIGINS")
	if strings.TrimSpace(raw) == "" {
		raw = defaultAllowedOrigins
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return Config{AllowedOrigins: origins}
}

func NewRouter(cfg Config, stock *stockhandler.StockHandler) *gin.Engine {
	r := gin.New()
	// gin.Default() と同じLoggerに、エラー形式を揃えたRecoveryを組み合わせる
	r.Use(gin.Logger(), stockhandler.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 導通確認用
	r.GET("/", handler.Ready)
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.OPTIONS("/healthz", handler.Health)

	r.GET("/stock/:ticker", stock.GetStock)

	return r
}
