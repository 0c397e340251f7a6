package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aiqb/preorder-system/internal/core/domain"
	"github.com/aiqb/preorder-system/internal/core/ports"
)

const (
	defaultRefreshMargin = 2 * time.Minute
	defaultIdleTTL       = 30 * time.Minute
)

// sessionEntry is the authoritative state of one browser session.
type sessionEntry struct {
	state   ports.AuthState
	remote  *ports.RemoteSession
	nextSeq uint64
	subs    []func(ports.AuthState)
	touched time.Time
}

// SessionService implements ports.SessionService on top of the remote
// backend's auth surface.
//
// Every state transition carries a logical sequence number allocated when the
// producing operation starts. apply drops any update whose number is not
// strictly greater than the last applied one, so a notification that was
// generated before a direct sign-in or sign-out but delivered after it can
// never overwrite the newer result.
type SessionService struct {
	auth          ports.RemoteAuth
	logger        zerolog.Logger
	refreshMargin time.Duration
	idleTTL       time.Duration

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

func NewSessionService(auth ports.RemoteAuth, logger zerolog.Logger) *SessionService {
	return &SessionService{
		auth:          auth,
		logger:        logger,
		refreshMargin: defaultRefreshMargin,
		idleTTL:       defaultIdleTTL,
		sessions:      make(map[string]*sessionEntry),
	}
}

// Begin registers a new session. A non-empty accessToken resumes an existing
// remote session: when the token still maps to a user, that user becomes the
// session's current user.
func (s *SessionService) Begin(ctx context.Context, accessToken string) (string, ports.AuthState, error) {
	id := uuid.NewString()

	s.mu.Lock()
	s.sessions[id] = &sessionEntry{touched: time.Now()}
	s.mu.Unlock()

	if accessToken == "" {
		return id, ports.AuthState{}, nil
	}

	seq := s.allocSeq(id)
	user, err := s.auth.GetUser(ctx, accessToken)
	if err != nil {
		// A dead token is not an error for page load: start signed out.
		s.logger.Debug().Err(err).Msg("session resume failed")
		return id, s.Current(id), nil
	}
	if user != nil {
		s.apply(id, seq, user, &ports.RemoteSession{AccessToken: accessToken, User: user})
	}
	return id, s.Current(id), nil
}

func (s *SessionService) SignIn(ctx context.Context, sessionID, email, password string) (*domain.Customer, error) {
	seq := s.allocSeq(sessionID)

	remote, err := s.auth.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	s.apply(sessionID, seq, remote.User, remote)
	s.logger.Info().Str("session_id", sessionID).Str("user_id", remote.User.ID).Msg("signed in")
	return remote.User, nil
}

func (s *SessionService) SignUp(ctx context.Context, email, password, fullName, phone string) (*domain.Customer, error) {
	user, err := s.auth.SignUp(ctx, email, password, fullName, phone)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("email", email).Msg("signup accepted, awaiting verification")
	return user, nil
}

// ResetPassword triggers the remote recovery-email flow. No session state is
// involved: the user completes the reset on the backend's hosted page.
func (s *SessionService) ResetPassword(ctx context.Context, email string) error {
	if err := s.auth.ResetPassword(ctx, email); err != nil {
		return err
	}
	s.logger.Info().Str("email", email).Msg("password reset requested")
	return nil
}

// SignOut clears the session's user before the remote call completes: the
// local state must not stay signed in behind a hung or failing backend.
func (s *SessionService) SignOut(ctx context.Context, sessionID string) error {
	seq := s.allocSeq(sessionID)

	s.mu.Lock()
	var accessToken string
	if e, ok := s.sessions[sessionID]; ok && e.remote != nil {
		accessToken = e.remote.AccessToken
	}
	s.mu.Unlock()

	s.apply(sessionID, seq, nil, nil)

	if accessToken != "" {
		if err := s.auth.SignOut(ctx, accessToken); err != nil {
			s.logger.Warn().Err(err).Str("session_id", sessionID).Msg("remote sign-out failed")
		}
	}
	return nil
}

func (s *SessionService) Current(sessionID string) ports.AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.sessions[sessionID]; ok {
		e.touched = time.Now()
		return e.state
	}
	return ports.AuthState{}
}

func (s *SessionService) AccessToken(sessionID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.sessions[sessionID]; ok && e.remote != nil {
		e.touched = time.Now()
		return e.remote.AccessToken
	}
	return ""
}

func (s *SessionService) Subscribe(sessionID string, fn func(ports.AuthState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.sessions[sessionID]; ok {
		e.subs = append(e.subs, fn)
	}
}

// Run drives the token refresh loop until ctx is cancelled. Refresh outcomes
// are delivered through the same sequence-numbered apply path as direct
// calls: this is the server-side auth-state-change feed.
func (s *SessionService) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refreshExpiring(ctx)
		}
	}
}

type refreshCandidate struct {
	sessionID    string
	seq          uint64
	refreshToken string
}

func (s *SessionService) refreshExpiring(ctx context.Context) {
	now := time.Now()
	deadline := now.Add(s.refreshMargin)

	s.mu.Lock()
	var candidates []refreshCandidate
	for id, e := range s.sessions {
		// Signed-out entries that nothing has touched for a while are
		// abandoned browser sessions; drop them so the map cannot grow
		// without bound.
		if e.state.User == nil && e.remote == nil && now.Sub(e.touched) > s.idleTTL {
			delete(s.sessions, id)
			continue
		}
		if e.remote == nil || e.remote.RefreshToken == "" {
			continue
		}
		if e.remote.ExpiresAt.IsZero() || e.remote.ExpiresAt.After(deadline) {
			continue
		}
		e.nextSeq++
		candidates = append(candidates, refreshCandidate{
			sessionID:    id,
			seq:          e.nextSeq,
			refreshToken: e.remote.RefreshToken,
		})
	}
	s.mu.Unlock()

	for _, c := range candidates {
		remote, err := s.auth.Refresh(ctx, c.refreshToken)
		if err != nil {
			// The refresh token is dead: the backend has signed us out.
			s.logger.Info().Err(err).Str("session_id", c.sessionID).Msg("token refresh failed, signing out")
			s.apply(c.sessionID, c.seq, nil, nil)
			continue
		}
		s.apply(c.sessionID, c.seq, remote.User, remote)
	}
}

// allocSeq reserves the next sequence number for a session. Callers reserve
// before starting the remote operation whose outcome they will apply.
func (s *SessionService) allocSeq(sessionID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[sessionID]
	if !ok {
		e = &sessionEntry{}
		s.sessions[sessionID] = e
	}
	e.touched = time.Now()
	e.nextSeq++
	return e.nextSeq
}

// apply installs a state update if and only if seq is newer than the last
// applied update. Subscribers run after the lock is released.
func (s *SessionService) apply(sessionID string, seq uint64, user *domain.Customer, remote *ports.RemoteSession) bool {
	s.mu.Lock()
	e, ok := s.sessions[sessionID]
	if !ok || seq <= e.state.Seq {
		s.mu.Unlock()
		return false
	}
	e.state = ports.AuthState{User: user, Seq: seq}
	e.remote = remote
	e.touched = time.Now()
	state := e.state
	subs := make([]func(ports.AuthState), len(e.subs))
	copy(subs, e.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
	return true
}
