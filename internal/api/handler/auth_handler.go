package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aiqb/preorder-system/internal/core/domain"
	"github.com/aiqb/preorder-system/internal/core/ports"
)

const defaultToastDuration = 5 * time.Second

// AuthHandler exposes the customer-facing auth flow. All credential checks
// happen on the remote backend; this layer owns the session cookie and the
// outcome toasts.
type AuthHandler struct {
	sessions ports.SessionService
	notifier ports.Notifier
}

func NewAuthHandler(sessions ports.SessionService, notifier ports.Notifier) *AuthHandler {
	return &AuthHandler{sessions: sessions, notifier: notifier}
}

type signupRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required,min=2"`
	Phone    string `json:"phone"     validate:"required,npmobile"`
}

type signinRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type resetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type authStateResponse struct {
	User *domain.Customer `json:"user"`
}

// Signup creates a new customer account on the remote backend.
//
// @Summary      Register a new customer
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Signup details"
// @Success      201   {object}  authStateResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}

	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.sessions.SignUp(c.Request().Context(), req.Email, req.Password, req.FullName, req.Phone)
	if err != nil {
		h.notifier.Push(clientID, domain.ToastError, "Signup Failed", err.Error(), defaultToastDuration)
		return err
	}

	// The user signs in only after verifying their email; the toast says so.
	h.notifier.Push(clientID, domain.ToastSuccess, "Welcome to AIQB",
		"Account created! Please check your email to verify your account.", 8*time.Second)

	return c.JSON(http.StatusCreated, authStateResponse{User: user})
}

// Signin exchanges credentials for a session.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signinRequest  true  "Credentials"
// @Success      200   {object}  authStateResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/auth/signin [post]
func (h *AuthHandler) Signin(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}

	var req signinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	sessionID := ctxSessionID(c)
	if sessionID == "" {
		sessionID, _, err = h.sessions.Begin(c.Request().Context(), "")
		if err != nil {
			return err
		}
	}

	user, err := h.sessions.SignIn(c.Request().Context(), sessionID, req.Email, req.Password)
	if err != nil {
		h.notifier.Push(clientID, domain.ToastError, "Login Failed", err.Error(), defaultToastDuration)
		return err
	}

	setSessionCookie(c, sessionID)
	h.notifier.Push(clientID, domain.ToastSuccess, "Signed In", "Welcome back!", defaultToastDuration)

	return c.JSON(http.StatusOK, authStateResponse{User: user})
}

// Reset asks the remote backend to email a password-recovery link. The
// response does not reveal whether the address has an account.
//
// @Summary      Request a password reset email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  resetPasswordRequest  true  "Account email"
// @Success      202
// @Failure      422   {object}  errorResponse
// @Router       /v1/auth/reset [post]
func (h *AuthHandler) Reset(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}

	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.sessions.ResetPassword(c.Request().Context(), req.Email); err != nil {
		return err
	}

	h.notifier.Push(clientID, domain.ToastInfo, "Reset Link Sent",
		"If that email has an account, a reset link is on its way.", 8*time.Second)
	return c.NoContent(http.StatusAccepted)
}

// Signout clears the session. The local state clears whatever the remote
// backend says; the endpoint never fails on a backend error.
//
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  authStateResponse
// @Router       /v1/auth/signout [post]
func (h *AuthHandler) Signout(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}

	if sessionID := ctxSessionID(c); sessionID != "" {
		_ = h.sessions.SignOut(c.Request().Context(), sessionID)
	}

	h.notifier.Push(clientID, domain.ToastInfo, "Signed Out", "You have been signed out.", defaultToastDuration)
	return c.JSON(http.StatusOK, authStateResponse{User: nil})
}

// Me reports the session's current auth state. Without a session cookie, a
// bearer access token from a previous visit resumes that remote session
// instead of starting signed out.
//
// @Summary      Current auth state
// @Tags         auth
// @Produce      json
// @Success      200  {object}  authStateResponse
// @Router       /v1/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	sessionID := ctxSessionID(c)
	if sessionID == "" {
		token := bearerToken(c)
		if token == "" {
			return c.JSON(http.StatusOK, authStateResponse{User: nil})
		}
		id, state, err := h.sessions.Begin(c.Request().Context(), token)
		if err != nil {
			return err
		}
		setSessionCookie(c, id)
		return c.JSON(http.StatusOK, authStateResponse{User: state.User})
	}
	state := h.sessions.Current(sessionID)
	return c.JSON(http.StatusOK, authStateResponse{User: state.User})
}

// Events streams auth-state transitions for the session as server-sent
// events. Every applied transition (sign-in, sign-out, refresh outcome)
// emits one event, and the stream opens with the current state so a
// reconnecting client resyncs immediately.
//
// @Summary      Auth state event stream
// @Tags         auth
// @Produce      text/event-stream
// @Success      200
// @Failure      401  {object}  errorResponse
// @Router       /v1/auth/events [get]
func (h *AuthHandler) Events(c echo.Context) error {
	sessionID := ctxSessionID(c)
	if sessionID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "no session")
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)

	updates := make(chan ports.AuthState, 8)
	h.sessions.Subscribe(sessionID, func(state ports.AuthState) {
		// Drop rather than block: a slow consumer resyncs on the next event.
		select {
		case updates <- state:
		default:
		}
	})

	if err := writeAuthEvent(res, h.sessions.Current(sessionID)); err != nil {
		return nil
	}

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case state := <-updates:
			if err := writeAuthEvent(res, state); err != nil {
				return nil
			}
		}
	}
}

func writeAuthEvent(res *echo.Response, state ports.AuthState) error {
	payload, err := json.Marshal(authStateResponse{User: state.User})
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(res, "data: %s\n\n", payload); err != nil {
		return err
	}
	res.Flush()
	return nil
}
