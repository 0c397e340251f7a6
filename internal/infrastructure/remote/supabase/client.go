// Package supabase is the adapter for the hosted backend: GoTrue for
// authentication and PostgREST for table access. Only the operations the
// preorder page needs are covered; everything else the project offers is out
// of scope.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aiqb/preorder-system/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// Config captures the settings for reaching a Supabase project.
type Config struct {
	// URL is the project base URL, e.g. https://xyzcompany.supabase.co.
	URL string
	// AnonKey is the public client key sent as apikey on every request.
	AnonKey string
	Timeout time.Duration
}

// Client talks to one Supabase project. It implements both ports.RemoteAuth
// and ports.RemoteData.
type Client struct {
	baseURL string
	anonKey string
	http    *http.Client
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		anonKey: cfg.AnonKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// newRequest builds a request with the project headers applied. bearer falls
// back to the anon key when empty, matching the JS client's behaviour.
func (c *Client) newRequest(ctx context.Context, method, path string, body any, bearer string) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("supabase: encode body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("supabase: build request: %w", err)
	}

	req.Header.Set("apikey", c.anonKey)
	if bearer == "" {
		bearer = c.anonKey
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// do executes the request and decodes a 2xx body into out (when non-nil).
// Non-2xx responses become errors; authErr controls whether the body is
// decoded into a *domain.AuthError carrying the backend's message.
func (c *Client) do(req *http.Request, out any, authErr bool) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("supabase: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := decodeErrorMessage(resp.Body)
		if authErr {
			return &domain.AuthError{Status: resp.StatusCode, Message: msg}
		}
		return fmt.Errorf("supabase: %s %s: status %d: %s", req.Method, req.URL.Path, resp.StatusCode, msg)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("supabase: decode response: %w", err)
	}
	return nil
}

// decodeErrorMessage pulls the human-readable message out of an error body.
// GoTrue and PostgREST use different field names across versions.
func decodeErrorMessage(r io.Reader) string {
	var payload struct {
		ErrorDescription string `json:"error_description"`
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		Error            string `json:"error"`
	}
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return "request failed"
	}
	for _, m := range []string{payload.ErrorDescription, payload.Msg, payload.Message, payload.Error} {
		if m != "" {
			return m
		}
	}
	return "request failed"
}
