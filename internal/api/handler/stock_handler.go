package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aiqb/preorder-system/internal/core/domain"
	"github.com/aiqb/preorder-system/internal/core/ports"
)

// StockHandler serves per-size availability for the size picker.
type StockHandler struct {
	stock ports.StockService
}

func NewStockHandler(stock ports.StockService) *StockHandler {
	return &StockHandler{stock: stock}
}

type stockResponse struct {
	Sizes  []domain.StockLevel `json:"sizes"`
	Totals domain.StockTotals  `json:"totals"`
}

// Levels handles GET /v1/stock.
//
// @Summary      Per-size stock levels
// @Tags         stock
// @Produce      json
// @Success      200  {object}  stockResponse
// @Failure      502  {object}  errorResponse
// @Router       /v1/stock [get]
func (h *StockHandler) Levels(c echo.Context) error {
	levels, err := h.stock.Levels(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "stock levels unavailable")
	}

	// One fetch serves both halves so the totals always match the sizes.
	return c.JSON(http.StatusOK, stockResponse{Sizes: levels, Totals: domain.SumStock(levels)})
}
