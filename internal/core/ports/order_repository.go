package ports

import (
	"context"
	"time"

	"github.com/aiqb/preorder-system/internal/core/domain"
)

// ListOrdersFilter carries the query parameters for listing fallback orders.
type ListOrdersFilter struct {
	SyncStatus    string    // optional: "captured" or "synced"
	Size          string    // optional
	PaymentMethod string    // optional
	Search        string    // optional: partial match on order_id or full_name
	DateFrom      time.Time // optional: created_at >= DateFrom
	DateTo        time.Time // optional: created_at <= DateTo
	Page          int       // 1-based
	Limit         int       // rows per page (capped by the service)
}

// OrderRepository is the local durable tier. Every submitted order lands
// here unconditionally, whatever the remote backend did.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	// FindByOrderID retrieves an order. When clientID is non-empty the query
	// is additionally scoped to that client.
	FindByOrderID(ctx context.Context, orderID, clientID string) (*domain.Order, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error)
	// ListCaptured returns orders still waiting for a remote write, oldest
	// first, up to limit.
	ListCaptured(ctx context.Context, limit int) ([]*domain.Order, error)
	// MarkSynced records a successful remote write.
	MarkSynced(ctx context.Context, orderID, remoteID string, at time.Time) error
	// List returns a page of orders matching filter and the total count.
	List(ctx context.Context, filter ListOrdersFilter) ([]*domain.Order, int64, error)
}

// SnapshotRepository stores form snapshots keyed by client id. Get returns
// domain.ErrSnapshotNotFound when no snapshot exists and
// domain.ErrSnapshotCorrupt when the stored data fails to decode.
type SnapshotRepository interface {
	Get(ctx context.Context, clientID string) (*domain.FormSnapshot, error)
	// Put fully replaces any prior snapshot for the client.
	Put(ctx context.Context, snapshot *domain.FormSnapshot) error
	// Delete removes the snapshot; deleting a missing snapshot is not an error.
	Delete(ctx context.Context, clientID string) error
}

// StaffRepository persists operator accounts for the admin surface.
type StaffRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.StaffAccount, error)
	Create(ctx context.Context, account *domain.StaffAccount) (*domain.StaffAccount, error)
}
