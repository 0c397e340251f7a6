package supabase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aiqb/preorder-system/internal/core/domain"
	"github.com/aiqb/preorder-system/internal/core/ports"
)

// gotrueUser is the user object GoTrue returns. The profile attributes the
// page collects at signup live under user_metadata.
type gotrueUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	UserMetadata struct {
		FullName string `json:"full_name"`
		Phone    string `json:"phone"`
	} `json:"user_metadata"`
}

type gotrueSession struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	ExpiresIn    int64      `json:"expires_in"`
	User         gotrueUser `json:"user"`
}

func (u gotrueUser) toCustomer() *domain.Customer {
	if u.ID == "" {
		return nil
	}
	return &domain.Customer{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.UserMetadata.FullName,
		Phone:    u.UserMetadata.Phone,
	}
}

func (s gotrueSession) toRemoteSession() *ports.RemoteSession {
	return &ports.RemoteSession{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(s.ExpiresIn) * time.Second),
		User:         s.User.toCustomer(),
	}
}

// SignUp creates the account with the profile attributes attached as user
// metadata. The verification email flow is the backend's; the user is not
// signed in here.
func (c *Client) SignUp(ctx context.Context, email, password, fullName, phone string) (*domain.Customer, error) {
	body := map[string]any{
		"email":    email,
		"password": password,
		"data": map[string]string{
			"full_name": fullName,
			"phone":     phone,
		},
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/v1/signup", body, "")
	if err != nil {
		return nil, err
	}

	var user gotrueUser
	if err := c.do(req, &user, true); err != nil {
		return nil, err
	}
	return user.toCustomer(), nil
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*ports.RemoteSession, error) {
	body := map[string]string{"email": email, "password": password}

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", body, "")
	if err != nil {
		return nil, err
	}

	var session gotrueSession
	if err := c.do(req, &session, true); err != nil {
		return nil, err
	}
	return session.toRemoteSession(), nil
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (*ports.RemoteSession, error) {
	body := map[string]string{"refresh_token": refreshToken}

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/v1/token?grant_type=refresh_token", body, "")
	if err != nil {
		return nil, err
	}

	var session gotrueSession
	if err := c.do(req, &session, true); err != nil {
		return nil, err
	}
	return session.toRemoteSession(), nil
}

func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/v1/logout", nil, accessToken)
	if err != nil {
		return err
	}
	return c.do(req, nil, true)
}

// ResetPassword triggers the recovery-email flow for the address. GoTrue
// responds the same way for known and unknown addresses.
func (c *Client) ResetPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/v1/recover", body, "")
	if err != nil {
		return err
	}
	return c.do(req, nil, true)
}

// GetUser resolves the identity behind an access token. A rejected token
// returns nil rather than an error: the page simply starts signed out.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*domain.Customer, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/auth/v1/user", nil, accessToken)
	if err != nil {
		return nil, err
	}

	var user gotrueUser
	if err := c.do(req, &user, true); err != nil {
		var authErr *domain.AuthError
		if errors.As(err, &authErr) && authErr.Status == http.StatusUnauthorized {
			return nil, nil
		}
		return nil, err
	}
	return user.toCustomer(), nil
}
