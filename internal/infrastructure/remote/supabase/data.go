package supabase

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/aiqb/preorder-system/internal/core/domain"
	"github.com/aiqb/preorder-system/internal/core/ports"
)

// orderRow is the remote orders table row. Column names follow the remote
// schema, which predates this service.
type orderRow struct {
	ID            string    `json:"id,omitempty"`
	OrderID       string    `json:"order_id"`
	UserID        *string   `json:"user_id,omitempty"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Size          string    `json:"size"`
	LiningColor   string    `json:"lining_color"`
	Address       *string   `json:"address,omitempty"`
	City          *string   `json:"city,omitempty"`
	Landmark      *string   `json:"landmark,omitempty"`
	PaymentMethod string    `json:"payment_method"`
	AmountNPR     int       `json:"amount_npr"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
}

func orderToRow(o *domain.Order) orderRow {
	row := orderRow{
		OrderID:       o.OrderID,
		FullName:      o.FullName,
		Email:         o.Email,
		Phone:         o.Phone,
		Size:          o.Size,
		LiningColor:   o.LiningColor,
		PaymentMethod: o.PaymentMethod,
		AmountNPR:     o.AmountNPR,
	}
	if o.UserID != "" {
		row.UserID = &o.UserID
	}
	if o.Address != "" {
		row.Address = &o.Address
	}
	if o.City != "" {
		row.City = &o.City
	}
	if o.Landmark != "" {
		row.Landmark = &o.Landmark
	}
	return row
}

// CreateOrder inserts into the remote orders table and returns the stored
// representation.
func (c *Client) CreateOrder(ctx context.Context, order *domain.Order) (*ports.RemoteOrderRecord, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/rest/v1/orders", orderToRow(order), "")
	if err != nil {
		return nil, err
	}
	req.Header.Set("Prefer", "return=representation")

	var rows []orderRow
	if err := c.do(req, &rows, false); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &ports.RemoteOrderRecord{OrderID: order.OrderID}, nil
	}
	return &ports.RemoteOrderRecord{
		ID:        rows[0].ID,
		OrderID:   rows[0].OrderID,
		CreatedAt: rows[0].CreatedAt,
	}, nil
}

func (c *Client) OrderExists(ctx context.Context, orderID string) (bool, error) {
	path := "/rest/v1/orders?select=order_id&limit=1&order_id=eq." + url.QueryEscape(orderID)
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return false, err
	}

	var rows []orderRow
	if err := c.do(req, &rows, false); err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/rest/v1/orders?select=*&order=created_at.desc", nil, "")
	if err != nil {
		return nil, err
	}

	var rows []orderRow
	if err := c.do(req, &rows, false); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(rows))
	for _, r := range rows {
		o := domain.Order{
			OrderID:       r.OrderID,
			FullName:      r.FullName,
			Email:         r.Email,
			Phone:         r.Phone,
			Size:          r.Size,
			LiningColor:   r.LiningColor,
			PaymentMethod: r.PaymentMethod,
			AmountNPR:     r.AmountNPR,
			CreatedAt:     r.CreatedAt,
			SyncStatus:    domain.SyncSynced,
			RemoteID:      r.ID,
		}
		if r.UserID != nil {
			o.UserID = *r.UserID
		}
		if r.Address != nil {
			o.Address = *r.Address
		}
		if r.City != nil {
			o.City = *r.City
		}
		if r.Landmark != nil {
			o.Landmark = *r.Landmark
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (c *Client) StockLevels(ctx context.Context) ([]domain.StockLevel, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/rest/v1/product_sizes?select=*", nil, "")
	if err != nil {
		return nil, err
	}

	var levels []domain.StockLevel
	if err := c.do(req, &levels, false); err != nil {
		return nil, err
	}
	return levels, nil
}

// GetProfile reads the caller's profile row using the caller's own token so
// the backend's row-level security applies.
func (c *Client) GetProfile(ctx context.Context, accessToken, userID string) (*domain.Profile, error) {
	path := "/rest/v1/profiles?select=*&id=eq." + url.QueryEscape(userID)
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, accessToken)
	if err != nil {
		return nil, err
	}

	var profiles []domain.Profile
	if err := c.do(req, &profiles, false); err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, domain.ErrUserNotFound
	}
	return &profiles[0], nil
}

func (c *Client) UpdateProfile(ctx context.Context, accessToken, userID string, patch map[string]string) (*domain.Profile, error) {
	path := "/rest/v1/profiles?id=eq." + url.QueryEscape(userID)
	req, err := c.newRequest(ctx, http.MethodPatch, path, patch, accessToken)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Prefer", "return=representation")

	var profiles []domain.Profile
	if err := c.do(req, &profiles, false); err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, domain.ErrUserNotFound
	}
	return &profiles[0], nil
}
