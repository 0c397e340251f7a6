package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aiqb/preorder-system/internal/core/domain"
	"github.com/aiqb/preorder-system/internal/core/ports"
)

type stubOrders struct {
	submitFn func(in ports.SubmitOrderInput) (*ports.OrderConfirmation, error)
	getFn    func(clientID, orderID string) (*ports.OrderConfirmation, error)
	listFn   func(in ports.ListOrdersInput) (*ports.ListOrdersResult, error)
}

func (s *stubOrders) Submit(_ context.Context, in ports.SubmitOrderInput) (*ports.OrderConfirmation, error) {
	return s.submitFn(in)
}

func (s *stubOrders) GetConfirmation(_ context.Context, clientID, orderID string) (*ports.OrderConfirmation, error) {
	return s.getFn(clientID, orderID)
}

func (s *stubOrders) ListOrders(_ context.Context, in ports.ListOrdersInput) (*ports.ListOrdersResult, error) {
	return s.listFn(in)
}

func sampleConfirmation() *ports.OrderConfirmation {
	return &ports.OrderConfirmation{
		OrderID:       "AIQB-MB3K2XYZ",
		FullName:      "Ram Shrestha",
		Size:          "M",
		AmountNPR:     domain.AmountNPR,
		PaymentMethod: "COD",
		Email:         "a@b.com",
		Phone:         "9812345678",
		CreatedAt:     time.Now().UTC(),
	}
}

func TestSubmitOrder_PassesFormAndIdentity(t *testing.T) {
	orders := &stubOrders{
		submitFn: func(in ports.SubmitOrderInput) (*ports.OrderConfirmation, error) {
			if in.ClientID != "client_1" {
				t.Fatalf("client id not forwarded: %s", in.ClientID)
			}
			if in.FullName != "Ram Shrestha" || in.Phone != "9812345678" || in.PaymentMethod != "cod" {
				t.Fatalf("form not forwarded: %+v", in)
			}
			if in.IdempotencyKey != "key-1" {
				t.Fatalf("idempotency key not forwarded: %s", in.IdempotencyKey)
			}
			return sampleConfirmation(), nil
		},
	}
	h := NewOrderHandler(orders, &stubSessions{})

	body := `{"full_name":"Ram Shrestha","phone":"9812345678","email":"a@b.com","size":"M","lining":"black","payment":"cod"}`
	c, rec := newAuthContext(t, http.MethodPost, "/v1/orders", body)
	c.Request().Header.Set("Idempotency-Key", "key-1")

	if err := h.Submit(c); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !strings.HasPrefix(resp["order_id"].(string), "AIQB-") {
		t.Fatalf("unexpected order id: %v", resp["order_id"])
	}
	if resp["amount_npr"].(float64) != float64(domain.AmountNPR) {
		t.Fatalf("unexpected amount: %v", resp["amount_npr"])
	}
}

func TestSubmitOrder_SignedInUserAttached(t *testing.T) {
	orders := &stubOrders{
		submitFn: func(in ports.SubmitOrderInput) (*ports.OrderConfirmation, error) {
			if in.UserID != "u1" {
				t.Fatalf("user id not attached: %q", in.UserID)
			}
			return sampleConfirmation(), nil
		},
	}
	sessions := &stubSessions{
		current: ports.AuthState{User: &domain.Customer{ID: "u1"}},
	}
	h := NewOrderHandler(orders, sessions)

	c, _ := newAuthContext(t, http.MethodPost, "/v1/orders", `{"full_name":"Ram Shrestha"}`)
	c.Request().AddCookie(&http.Cookie{Name: "aiqb_sid", Value: "sess-1"})

	if err := h.Submit(c); err != nil {
		t.Fatalf("submit: %v", err)
	}
}

func TestSubmitOrder_ReplayReturns200(t *testing.T) {
	orders := &stubOrders{
		submitFn: func(_ ports.SubmitOrderInput) (*ports.OrderConfirmation, error) {
			conf := sampleConfirmation()
			conf.AlreadyExisted = true
			return conf, nil
		},
	}
	h := NewOrderHandler(orders, &stubSessions{})

	c, rec := newAuthContext(t, http.MethodPost, "/v1/orders", `{"full_name":"Ram Shrestha"}`)
	if err := h.Submit(c); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("replay should be 200, got %d", rec.Code)
	}
}

func TestSubmitOrder_ValidationErrorPropagates(t *testing.T) {
	orders := &stubOrders{
		submitFn: func(_ ports.SubmitOrderInput) (*ports.OrderConfirmation, error) {
			return nil, &domain.ValidationError{Field: "phone", Message: "Please enter a valid Nepali phone number"}
		},
	}
	h := NewOrderHandler(orders, &stubSessions{})

	c, _ := newAuthContext(t, http.MethodPost, "/v1/orders", `{"phone":"123"}`)
	err := h.Submit(c)

	var verr *domain.ValidationError
	if !errors.As(err, &verr) || verr.Field != "phone" {
		t.Fatalf("expected validation error to propagate, got %v", err)
	}
}

func TestGetOrder_ScopedToClient(t *testing.T) {
	orders := &stubOrders{
		getFn: func(clientID, orderID string) (*ports.OrderConfirmation, error) {
			if clientID != "client_1" || orderID != "AIQB-MB3K2XYZ" {
				t.Fatalf("unexpected lookup: %s %s", clientID, orderID)
			}
			return sampleConfirmation(), nil
		},
	}
	h := NewOrderHandler(orders, &stubSessions{})

	c, rec := newAuthContext(t, http.MethodGet, "/v1/orders/AIQB-MB3K2XYZ", "")
	c.SetParamNames("order_id")
	c.SetParamValues("AIQB-MB3K2XYZ")

	if err := h.Get(c); err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAdminList_RequiresStaffClaims(t *testing.T) {
	h := NewOrderHandler(&stubOrders{}, &stubSessions{})

	c, _ := newAuthContext(t, http.MethodGet, "/v1/admin/orders", "")
	err := h.AdminList(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without claims, got %v", err)
	}
}

func TestAdminList_ForwardsFilters(t *testing.T) {
	orders := &stubOrders{
		listFn: func(in ports.ListOrdersInput) (*ports.ListOrdersResult, error) {
			if in.SyncStatus != "captured" || in.Size != "M" || in.Page != 2 || in.Limit != 10 {
				t.Fatalf("filters not forwarded: %+v", in)
			}
			return &ports.ListOrdersResult{Page: 2, Limit: 10}, nil
		},
	}
	h := NewOrderHandler(orders, &stubSessions{})

	c, rec := newAuthContext(t, http.MethodGet, "/v1/admin/orders?sync_status=captured&size=M&page=2&limit=10", "")
	c.Set("role", domain.RoleAdmin)

	if err := h.AdminList(c); err != nil {
		t.Fatalf("list: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if _, ok := resp["pagination"]; !ok {
		t.Fatalf("missing pagination envelope: %+v", resp)
	}
}
