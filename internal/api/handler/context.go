package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/aiqb/preorder-system/internal/api/middleware"
)

// ctxClientID extracts the anonymous client identity injected by the
// ClientID middleware. Every browser-facing endpoint needs it; its absence
// means the middleware did not run.
func ctxClientID(c echo.Context) (string, error) {
	id, _ := c.Get("client_id").(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusInternalServerError, "missing client identity")
	}
	return id, nil
}

// ctxSessionID reads the auth session cookie. Empty means the browser has
// never signed in (or the cookie expired); callers decide whether that is an
// error.
func ctxSessionID(c echo.Context) string {
	cookie, err := c.Cookie(middleware.SessionCookie)
	if err != nil || cookie == nil {
		return ""
	}
	return cookie.Value
}

// setSessionCookie installs the auth session cookie for the browser.
func setSessionCookie(c echo.Context, sessionID string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// bearerToken reads a remote access token from the Authorization header. The
// browser sends one when it kept a backend session across visits and wants
// the server session resumed from it.
func bearerToken(c echo.Context) string {
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if len(auth) > len(prefix) && strings.EqualFold(auth[:len(prefix)], prefix) {
		return auth[len(prefix):]
	}
	return ""
}

// ctxStaffRole extracts the staff claims injected by the Auth middleware and
// fast-fails before any service call: a present role proves the middleware
// ran.
func ctxStaffRole(c echo.Context) (string, error) {
	role, _ := c.Get("role").(string)
	if role == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return role, nil
}
