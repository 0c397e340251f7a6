package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/aiqb/preorder-system/internal/core/domain"
	"github.com/aiqb/preorder-system/internal/core/ports"
)

// StaffService implements registration and login for the ops dashboard.
// These are the only locally-credentialed accounts; buyers authenticate
// against the remote backend instead.
type StaffService struct {
	repo      ports.StaffRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewStaffService(repo ports.StaffRepository, jwtSecret string, tokenTTL time.Duration) *StaffService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &StaffService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *StaffService) Register(ctx context.Context, email, password, role string) (*domain.StaffAccount, error) {
	if email == "" || password == "" || role == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if role != domain.RoleAdmin && role != domain.RoleSupport {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.StaffAccount{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, account)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *StaffService) Login(ctx context.Context, email, password string) (string, *domain.StaffAccount, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(account)
	if err != nil {
		return "", nil, err
	}

	return token, account, nil
}

func (s *StaffService) generateToken(account *domain.StaffAccount) (string, error) {
	claims := jwt.MapClaims{
		"email": account.Email,
		"role":  account.Role,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
