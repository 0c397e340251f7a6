package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestClientID_IssuesCookieOnFirstContact(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var fromCtx string
	err := ClientID()(func(c echo.Context) error {
		fromCtx, _ = c.Get("client_id").(string)
		return c.NoContent(http.StatusOK)
	})(c)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if fromCtx == "" {
		t.Fatalf("client_id not set in context")
	}

	var cookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == ClientCookie {
			cookie = ck
		}
	}
	if cookie == nil || cookie.Value != fromCtx {
		t.Fatalf("cookie not issued or mismatched: %+v", cookie)
	}
	if !cookie.HttpOnly {
		t.Fatalf("cookie must be http-only")
	}
}

func TestClientID_ReusesExistingCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: ClientCookie, Value: "client_known"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := ClientID()(func(c echo.Context) error {
		if c.Get("client_id") != "client_known" {
			t.Fatalf("existing identity not reused: %v", c.Get("client_id"))
		}
		return c.NoContent(http.StatusOK)
	})(c)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}

	for _, ck := range rec.Result().Cookies() {
		if ck.Name == ClientCookie {
			t.Fatalf("cookie must not be reissued")
		}
	}
}
