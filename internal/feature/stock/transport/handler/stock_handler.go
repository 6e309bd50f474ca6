// Package handler はstockフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"quikstox/internal/feature/stock/domain/entity"
	"quikstox/internal/feature/stock/transport/http/dto"
)

// StockUsecase は銘柄スナップショット取得のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type StockUsecase interface {
	GetStock(ctx context.Context, symbol string, includeRating bool) (*entity.StockRecord, error)
}

// StockHandler serves stock snapshots. Every response, including failures,
// is sent with HTTP 200; clients check for the "error" key.
type StockHandler struct {
	uc StockUsecase
}

// NewStockHandler は指定されたusecaseでStockHandlerの新しいインスタンスを生成します。
func NewStockHandler(uc StockUsecase) *StockHandler {
	return &StockHandler{uc: uc}
}

// GetStock handles GET /stock/:ticker?include_zacks=<bool>.
func (h *StockHandler) GetStock(c *gin.Context) {
	symbol := c.Param("ticker")

	var q dto.StockQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		slog.Warn("invalid stock query", "symbol", symbol, "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusOK, dto.ErrorResponse{
			Error:  fmt.Sprintf("Invalid include_zacks value: %q", c.Query("include_zacks")),
			Symbol: symbol,
		})
		return
	}

	rec, err := h.uc.GetStock(c.Request.Context(), symbol, bool(q.IncludeZacks))
	if err != nil {
		c.JSON(http.StatusOK, dto.ErrorResponse{Error: err.Error(), Symbol: symbol})
		return
	}
	c.JSON(http.StatusOK, dto.FromRecord(rec))
}

// Recovery turns a panic anywhere in the chain into the in-band error body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		slog.Error("panic recovered", "path", c.Request.URL.Path, "panic", recovered)
		c.AbortWithStatusJSON(http.StatusOK, dto.ErrorResponse{
			Error:  fmt.Sprint(recovered),
			Symbol: c.Param("ticker"),
		})
	})
}
