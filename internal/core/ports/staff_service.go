package ports

import (
	"context"

	"github.com/aiqb/preorder-system/internal/core/domain"
)

// StaffService implements registration and login for the admin dashboard.
// Customer authentication is delegated to the remote backend; staff accounts
// are the one locally-credentialed surface.
type StaffService interface {
	Register(ctx context.Context, email, password, role string) (*domain.StaffAccount, error)
	Login(ctx context.Context, email, password string) (string, *domain.StaffAccount, error)
}

// StockService serves stock levels with a short-lived cache in front of the
// remote backend.
type StockService interface {
	Levels(ctx context.Context) ([]domain.StockLevel, error)
}

// ProfileService proxies the customer's remote profile row.
type ProfileService interface {
	Get(ctx context.Context, sessionID string) (*domain.Profile, error)
	Update(ctx context.Context, sessionID string, patch map[string]string) (*domain.Profile, error)
}
