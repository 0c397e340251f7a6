package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// ClientCookie carries the anonymous browser identity. Form snapshots,
	// fallback orders, and toasts all hang off it.
	ClientCookie = "aiqb_cid"
	// SessionCookie carries the auth session id issued at sign-in.
	SessionCookie = "aiqb_sid"

	clientCookieTTL = 180 * 24 * time.Hour
)

// ClientID ensures every request carries a stable anonymous client identity,
// issuing the cookie on first contact. The id lands in context under
// "client_id".
func ClientID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var id string
			if cookie, err := c.Cookie(ClientCookie); err == nil && cookie.Value != "" {
				id = cookie.Value
			} else {
				id = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     ClientCookie,
					Value:    id,
					Path:     "/",
					Expires:  time.Now().Add(clientCookieTTL),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			c.Set("client_id", id)
			return next(c)
		}
	}
}
