package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin   = "admin"
	RoleSupport = "support"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrNotAuthenticated = errors.New("not authenticated")

// Customer is the identity owned by the remote backend. The service caches
// at most one Customer per browser session; it never stores credentials.
type Customer struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// StaffAccount is a locally-managed operator account for the admin surface.
type StaffAccount struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AuthError carries the remote backend's rejection verbatim so the caller can
// surface the backend-supplied message.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "authentication failed"
	}
	return e.Message
}
