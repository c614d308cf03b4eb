package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrUpstream is returned for any failed upstream call: transport errors,
// non-2xx statuses, and undecodable response bodies all wrap it.
var ErrUpstream = errors.New("upstream call failed")

// maxErrorBody bounds how much of an upstream error response is read when
// extracting a message.
const maxErrorBody = 64 << 10

// Client is the shared HTTP transport for one upstream base URL.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient builds a client for baseURL. timeout bounds every call including
// body read; log receives one debug event per outbound request.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: loggingTransport{base: http.DefaultTransport, log: log},
		},
		log: log,
	}
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do performs one JSON call. token, when non-empty, is attached as the
// X-Authorization bearer header. body is marshaled when non-nil; out is
// unmarshaled from a 2xx response when non-nil.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("X-Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrUpstream, method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("%w: %s %s: status %d: %s",
			ErrUpstream, method, path, res.StatusCode, errorMessage(res.Body))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: decode response: %v", ErrUpstream, method, path, err)
	}

	return nil
}

// errorMessage pulls a human-readable message out of an upstream error body.
// Services answer with {"error": ...} or {"message": ...}; anything else
// falls back to the raw body.
func errorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return "no response body"
	}

	var parsed struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &parsed); err == nil {
		if parsed.Error != "" {
			return parsed.Error
		}
		if parsed.Message != "" {
			return parsed.Message
		}
	}

	return strings.TrimSpace(string(raw))
}

type loggingTransport struct {
	base http.RoundTripper
	log  zerolog.Logger
}

func (t loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	res, err := t.base.RoundTrip(req)

	status := 0
	if res != nil {
		status = res.StatusCode
	}
	t.log.Debug().
		Str("method", req.Method).
		Str("authority", req.URL.Host).
		Str("path", req.URL.Path).
		Dur("duration", time.Since(start)).
		Int("response-code", status).
		Msg("outbound http-request")

	return res, err
}
