package ports

import (
	"context"
	"time"
)

// SubmitOrderInput carries the raw preorder form values, exactly as typed.
// Validation happens inside the service; handlers do not pre-screen fields.
type SubmitOrderInput struct {
	FullName      string
	Phone         string
	Email         string
	Size          string
	LiningColor   string
	Address       string
	City          string
	Landmark      string
	PaymentMethod string
	// ClientID identifies the anonymous browser; snapshots and toasts hang
	// off the same id.
	ClientID string
	// UserID is set when the submitting session is signed in.
	UserID string
	// IdempotencyKey, when non-empty, makes resubmission replay the
	// originally created order.
	IdempotencyKey string
}

// OrderConfirmation is the confirmation view rendered after a successful
// submission.
type OrderConfirmation struct {
	OrderID       string
	FullName      string
	Size          string
	AmountNPR     int
	PaymentMethod string
	Email         string
	Phone         string
	CreatedAt     time.Time
	// AlreadyExisted is true when the idempotency key matched a previous
	// submission and no new order was created.
	AlreadyExisted bool
}

// ListOrdersInput carries the admin list parameters.
type ListOrdersInput struct {
	SyncStatus    string
	Size          string
	PaymentMethod string
	Search        string
	DateFrom      time.Time
	DateTo        time.Time
	Page          int
	Limit         int
}

// OrderSummary is the lightweight admin list item.
type OrderSummary struct {
	OrderID       string
	FullName      string
	Email         string
	Phone         string
	Size          string
	LiningColor   string
	PaymentMethod string
	AmountNPR     int
	SyncStatus    string
	CreatedAt     time.Time
}

// ListOrdersResult is returned by ListOrders.
type ListOrdersResult struct {
	Items      []OrderSummary
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// OrderService defines the submission use cases.
type OrderService interface {
	// Submit validates the form, constructs the order, attempts the remote
	// write best-effort, always writes the local fallback record, and clears
	// the form snapshot. Validation failures return *domain.ValidationError.
	Submit(ctx context.Context, input SubmitOrderInput) (*OrderConfirmation, error)
	// GetConfirmation looks a submitted order up by order id, scoped to the
	// submitting client.
	GetConfirmation(ctx context.Context, clientID, orderID string) (*OrderConfirmation, error)
	// ListOrders is the staff view over the local tier.
	ListOrders(ctx context.Context, input ListOrdersInput) (*ListOrdersResult, error)
}
