package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aiqb/preorder-system/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubStaffRepo struct {
	byEmail map[string]*domain.StaffAccount
}

func newStubStaffRepo() *stubStaffRepo {
	return &stubStaffRepo{byEmail: make(map[string]*domain.StaffAccount)}
}

func (r *stubStaffRepo) FindByEmail(_ context.Context, email string) (*domain.StaffAccount, error) {
	a, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubStaffRepo) Create(_ context.Context, account *domain.StaffAccount) (*domain.StaffAccount, error) {
	if _, exists := r.byEmail[account.Email]; exists {
		return nil, domain.ErrUserExists
	}
	clone := *account
	clone.ID = "staff-1"
	r.byEmail[account.Email] = &clone
	out := clone
	return &out, nil
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestStaffRegister_HashesPassword(t *testing.T) {
	repo := newStubStaffRepo()
	svc := NewStaffService(repo, "secret", time.Hour)

	account, err := svc.Register(context.Background(), "ops@aiqb.com", "hunter2!", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if account.PasswordHash == "hunter2!" || account.PasswordHash == "" {
		t.Fatalf("password must be stored hashed")
	}
	if account.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role: %s", account.Role)
	}
}

func TestStaffRegister_RejectsUnknownRole(t *testing.T) {
	svc := NewStaffService(newStubStaffRepo(), "secret", time.Hour)

	if _, err := svc.Register(context.Background(), "ops@aiqb.com", "hunter2!", "superuser"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestStaffLogin_IssuesValidToken(t *testing.T) {
	repo := newStubStaffRepo()
	svc := NewStaffService(repo, "secret", time.Hour)

	if _, err := svc.Register(context.Background(), "ops@aiqb.com", "hunter2!", domain.RoleSupport); err != nil {
		t.Fatalf("register: %v", err)
	}

	token, account, err := svc.Login(context.Background(), "ops@aiqb.com", "hunter2!")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if account.Email != "ops@aiqb.com" {
		t.Fatalf("unexpected account: %+v", account)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims["email"] != "ops@aiqb.com" || claims["role"] != domain.RoleSupport {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestStaffLogin_WrongPassword(t *testing.T) {
	repo := newStubStaffRepo()
	svc := NewStaffService(repo, "secret", time.Hour)

	if _, err := svc.Register(context.Background(), "ops@aiqb.com", "hunter2!", domain.RoleAdmin); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "ops@aiqb.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestStaffLogin_UnknownEmail(t *testing.T) {
	svc := NewStaffService(newStubStaffRepo(), "secret", time.Hour)

	if _, _, err := svc.Login(context.Background(), "nobody@aiqb.com", "whatever"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
}
