package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/aiqb/preorder-system/internal/core/domain"
)

type stubStock struct {
	levels []domain.StockLevel
	err    error
	calls  int
}

func (s *stubStock) Levels(_ context.Context) ([]domain.StockLevel, error) {
	s.calls++
	return s.levels, s.err
}

func TestStockLevels_OneFetchServesSizesAndTotals(t *testing.T) {
	stock := &stubStock{levels: []domain.StockLevel{
		{Size: "M", TotalStock: 40, ReservedStock: 12, AvailableStock: 28},
		{Size: "L", TotalStock: 30, ReservedStock: 5, AvailableStock: 25},
	}}
	h := NewStockHandler(stock)

	c, rec := newAuthContext(t, http.MethodGet, "/v1/stock", "")
	if err := h.Levels(c); err != nil {
		t.Fatalf("levels: %v", err)
	}
	if stock.calls != 1 {
		t.Fatalf("sizes and totals must come from one fetch, got %d", stock.calls)
	}

	var resp stockResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Sizes) != 2 {
		t.Fatalf("unexpected sizes: %+v", resp.Sizes)
	}
	if resp.Totals.Total != 70 || resp.Totals.Reserved != 17 || resp.Totals.Available != 53 {
		t.Fatalf("totals disagree with sizes: %+v", resp.Totals)
	}
}

func TestStockLevels_RemoteFailureIsBadGateway(t *testing.T) {
	h := NewStockHandler(&stubStock{err: errors.New("remote down")})

	c, _ := newAuthContext(t, http.MethodGet, "/v1/stock", "")
	err := h.Levels(c)

	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %v", err)
	}
}
