package ports

import (
	"context"

	"github.com/aiqb/preorder-system/internal/core/domain"
)

// AuthState is the visible authentication state of one browser session:
// at most one current user, stamped with the logical sequence number of the
// update that produced it.
type AuthState struct {
	User *domain.Customer `json:"user"`
	Seq  uint64           `json:"-"`
}

// SignedIn reports whether the session currently has a user.
func (s AuthState) SignedIn() bool { return s.User != nil }

// SessionService owns per-session authentication state. State transitions
// are monotonic by sequence number: an asynchronously delivered notification
// that raced with a newer direct sign-in or sign-out is dropped rather than
// applied, so the visible state never moves backwards.
type SessionService interface {
	// Begin registers a new session and returns its id. When accessToken is
	// non-empty an existing remote session is resumed: the identity behind
	// the token becomes the session's current user.
	Begin(ctx context.Context, accessToken string) (string, AuthState, error)
	// SignIn delegates to the remote backend. On success the session's
	// current user is set; on failure a *domain.AuthError propagates and the
	// state is untouched. There is no retry.
	SignIn(ctx context.Context, sessionID, email, password string) (*domain.Customer, error)
	// SignUp delegates to the remote backend. It never signs the user in.
	SignUp(ctx context.Context, email, password, fullName, phone string) (*domain.Customer, error)
	// ResetPassword asks the remote backend to email a recovery link. It
	// touches no session state.
	ResetPassword(ctx context.Context, email string) error
	// SignOut clears the session's current user optimistically; the remote
	// revocation outcome is logged only. Idempotent.
	SignOut(ctx context.Context, sessionID string) error
	// Current returns the session's state; a zero AuthState for unknown ids.
	Current(sessionID string) AuthState
	// AccessToken returns the session's live remote access token, or empty.
	AccessToken(sessionID string) string
	// Subscribe registers fn to run after every applied state transition of
	// the given session, for the lifetime of the session.
	Subscribe(sessionID string, fn func(AuthState))
}
