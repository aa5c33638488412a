package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
)

// envelope is the backend's uniform response shape.
type envelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	User    *domain.Identity `json:"user"`
}

// client speaks cookie-credentialed JSON to the remote backend. The
// jar carries the backend's session cookie across calls.
type client struct {
	base *url.URL
	http *http.Client
}

func newClient(baseURL string, timeout time.Duration) (*client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("url.Parse[%s]: %w", baseURL, err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookiejar.New: %w", err)
	}

	return &client{
		base: base,
		http: &http.Client{Jar: jar, Timeout: timeout},
	}, nil
}

// do issues one request and decodes the envelope. A non-2xx status is
// an error, but the envelope is still returned when the body parsed,
// so callers can surface the backend's message.
func (c *client) do(ctx context.Context, method, path string, body any) (envelope, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return envelope{}, fmt.Errorf("json.Marshal: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.JoinPath(path).String(), reader)
	if err != nil {
		return envelope{}, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return envelope{}, fmt.Errorf("http.Do: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	if decodeErr := json.NewDecoder(resp.Body).Decode(&env); decodeErr != nil {
		return envelope{}, fmt.Errorf("decode response[status %d]: %w", resp.StatusCode, decodeErr)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return env, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return env, nil
}
