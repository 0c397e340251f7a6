package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aiqb/preorder-system/internal/core/ports"
)

// OrderHandler handles preorder submission and lookups.
type OrderHandler struct {
	orders   ports.OrderService
	sessions ports.SessionService
}

func NewOrderHandler(orders ports.OrderService, sessions ports.SessionService) *OrderHandler {
	return &OrderHandler{orders: orders, sessions: sessions}
}

// Submit handles POST /v1/orders.
//
// The request body is handed to the service as-is: the submission pipeline
// owns the validation rules and their ordering, so a pre-screen here would
// change which failure the buyer sees first.
//
// @Summary      Submit a preorder
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string              false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      submitOrderRequest  true   "Preorder form values"
// @Success      201              {object}  orderConfirmationResponse
// @Failure      400              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /v1/orders [post]
func (h *OrderHandler) Submit(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}

	var req submitOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	var userID string
	if sessionID := ctxSessionID(c); sessionID != "" {
		if state := h.sessions.Current(sessionID); state.SignedIn() {
			userID = state.User.ID
		}
	}

	result, err := h.orders.Submit(c.Request().Context(), ports.SubmitOrderInput{
		FullName:       req.FullName,
		Phone:          req.Phone,
		Email:          req.Email,
		Size:           req.Size,
		LiningColor:    req.Lining,
		Address:        req.Address,
		City:           req.City,
		Landmark:       req.Landmark,
		PaymentMethod:  req.Payment,
		ClientID:       clientID,
		UserID:         userID,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	}
	return c.JSON(status, confirmationResponse(result))
}

// Get handles GET /v1/orders/:order_id — the confirmation view, scoped to
// the submitting client.
//
// @Summary      Get a submitted order
// @Tags         orders
// @Produce      json
// @Param        order_id  path      string  true  "Order id (e.g. AIQB-MB3K2XYZ)"
// @Success      200       {object}  orderConfirmationResponse
// @Failure      404       {object}  errorResponse
// @Router       /v1/orders/{order_id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}

	result, err := h.orders.GetConfirmation(c.Request().Context(), clientID, c.Param("order_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, confirmationResponse(result))
}

// AdminList handles GET /v1/admin/orders — the staff view over the local
// tier, including sync status.
//
// @Summary      List captured orders
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        sync_status  query     string  false  "captured or synced"
// @Param        size         query     string  false  "Size filter"
// @Param        payment      query     string  false  "Payment method filter"
// @Param        search       query     string  false  "Partial match on order id or name"
// @Param        page         query     int     false  "Page (1-based)"
// @Param        limit        query     int     false  "Rows per page"
// @Success      200          {object}  listOrdersResponse
// @Failure      401          {object}  errorResponse
// @Failure      403          {object}  errorResponse
// @Router       /v1/admin/orders [get]
func (h *OrderHandler) AdminList(c echo.Context) error {
	if _, err := ctxStaffRole(c); err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	input := ports.ListOrdersInput{
		SyncStatus:    c.QueryParam("sync_status"),
		Size:          c.QueryParam("size"),
		PaymentMethod: c.QueryParam("payment"),
		Search:        c.QueryParam("search"),
		Page:          page,
		Limit:         limit,
	}
	if from := c.QueryParam("date_from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			input.DateFrom = t
		}
	}
	if to := c.QueryParam("date_to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			input.DateTo = t
		}
	}

	result, err := h.orders.ListOrders(c.Request().Context(), input)
	if err != nil {
		return err
	}

	items := make([]orderSummaryResponse, 0, len(result.Items))
	for _, o := range result.Items {
		items = append(items, orderSummaryResponse{
			OrderID:       o.OrderID,
			FullName:      o.FullName,
			Email:         o.Email,
			Phone:         o.Phone,
			Size:          o.Size,
			LiningColor:   o.LiningColor,
			PaymentMethod: o.PaymentMethod,
			AmountNPR:     o.AmountNPR,
			SyncStatus:    o.SyncStatus,
			CreatedAt:     o.CreatedAt,
		})
	}

	return c.JSON(http.StatusOK, listOrdersResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// AdminGet handles GET /v1/admin/orders/:order_id — unscoped staff detail.
//
// @Summary      Get one captured order
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        order_id  path      string  true  "Order id"
// @Success      200       {object}  orderConfirmationResponse
// @Failure      404       {object}  errorResponse
// @Router       /v1/admin/orders/{order_id} [get]
func (h *OrderHandler) AdminGet(c echo.Context) error {
	if _, err := ctxStaffRole(c); err != nil {
		return err
	}

	result, err := h.orders.GetConfirmation(c.Request().Context(), "", c.Param("order_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, confirmationResponse(result))
}

func confirmationResponse(r *ports.OrderConfirmation) orderConfirmationResponse {
	return orderConfirmationResponse{
		OrderID:       r.OrderID,
		FullName:      r.FullName,
		Size:          r.Size,
		AmountNPR:     r.AmountNPR,
		PaymentMethod: r.PaymentMethod,
		Email:         r.Email,
		Phone:         r.Phone,
		CreatedAt:     r.CreatedAt,
	}
}
