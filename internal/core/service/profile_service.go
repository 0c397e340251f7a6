package service

import (
	"context"

	"github.com/aiqb/preorder-system/internal/core/domain"
	"github.com/aiqb/preorder-system/internal/core/ports"
)

// ProfileService proxies the signed-in customer's remote profile row. The
// remote backend enforces row-level access through the session's own token.
type ProfileService struct {
	sessions ports.SessionService
	remote   ports.RemoteData
}

func NewProfileService(sessions ports.SessionService, remote ports.RemoteData) *ProfileService {
	return &ProfileService{sessions: sessions, remote: remote}
}

func (s *ProfileService) Get(ctx context.Context, sessionID string) (*domain.Profile, error) {
	state := s.sessions.Current(sessionID)
	if !state.SignedIn() {
		return nil, domain.ErrNotAuthenticated
	}
	return s.remote.GetProfile(ctx, s.sessions.AccessToken(sessionID), state.User.ID)
}

func (s *ProfileService) Update(ctx context.Context, sessionID string, patch map[string]string) (*domain.Profile, error) {
	state := s.sessions.Current(sessionID)
	if !state.SignedIn() {
		return nil, domain.ErrNotAuthenticated
	}
	return s.remote.UpdateProfile(ctx, s.sessions.AccessToken(sessionID), state.User.ID, patch)
}
