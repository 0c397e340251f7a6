package ports

import (
	"context"
	"time"

	"github.com/aiqb/preorder-system/internal/core/domain"
)

// RemoteSession is the token pair issued by the remote backend on sign-in or
// refresh. The service holds it per browser session; it is never persisted.
type RemoteSession struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	User         *domain.Customer
}

// RemoteAuth is the authentication surface of the hosted backend. Every call
// is remote and may fail; rejections surface as *domain.AuthError carrying
// the backend's own message.
type RemoteAuth interface {
	// SignUp creates the account. It does not sign the user in: the
	// verification-email flow is external.
	SignUp(ctx context.Context, email, password, fullName, phone string) (*domain.Customer, error)
	// SignIn exchanges credentials for a session.
	SignIn(ctx context.Context, email, password string) (*RemoteSession, error)
	// Refresh exchanges a refresh token for a new session.
	Refresh(ctx context.Context, refreshToken string) (*RemoteSession, error)
	// SignOut revokes the session behind accessToken.
	SignOut(ctx context.Context, accessToken string) error
	// GetUser resolves the identity behind accessToken, or nil when the
	// token no longer maps to a user.
	GetUser(ctx context.Context, accessToken string) (*domain.Customer, error)
	// ResetPassword asks the backend to send a password-recovery email. The
	// backend answers uniformly whether or not the address has an account.
	ResetPassword(ctx context.Context, email string) error
}

// RemoteOrderRecord is the representation returned by the remote backend
// after inserting an order row.
type RemoteOrderRecord struct {
	ID        string
	OrderID   string
	CreatedAt time.Time
}

// RemoteData is the database surface of the hosted backend.
type RemoteData interface {
	// CreateOrder inserts the order into the remote orders table and returns
	// the stored representation.
	CreateOrder(ctx context.Context, order *domain.Order) (*RemoteOrderRecord, error)
	// OrderExists reports whether an order with this order_id is already
	// present remotely. Used by the reconciler before re-pushing.
	OrderExists(ctx context.Context, orderID string) (bool, error)
	// ListOrders returns remote orders, newest first.
	ListOrders(ctx context.Context) ([]domain.Order, error)
	// StockLevels reads the product_sizes table.
	StockLevels(ctx context.Context) ([]domain.StockLevel, error)
	// GetProfile reads the caller's profile row. Requires the caller's
	// access token: the remote backend enforces row-level access.
	GetProfile(ctx context.Context, accessToken, userID string) (*domain.Profile, error)
	// UpdateProfile patches the caller's profile row and returns the result.
	UpdateProfile(ctx context.Context, accessToken, userID string, patch map[string]string) (*domain.Profile, error)
}
