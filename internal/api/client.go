// Package api is the HTTP client for the remote LanaApp backend. It builds
// requests against the configured base URL, attaches the session token and
// normalizes error responses into a single error type.
//
// The backend has two token conventions and honors different ones per
// endpoint family. Every authenticated request carries
// "Authorization: Bearer <token>" (and a bare "token" header); the endpoint
// families that demand it additionally get the token as a "?token=" query
// parameter. Which endpoints need the query form is a fixed contract of
// this specific backend, so each endpoint method in this package states its
// own rule instead of inferring a pattern.
//
// The layer never retries and adds no timeout beyond the injected
// http.Client's own; failures surface immediately to the caller.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"lana/internal/core"
	"lana/internal/log"
	"lana/internal/session"
)

type Client struct {
	baseURL string
	httpc   *http.Client
	session *session.Store
	logger  *log.Logger
}

type Option func(*Client)

// WithHTTPClient overrides the underlying transport, mainly for tests.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

func WithLogger(logger *log.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func New(baseURL string, sess *session.Store, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   http.DefaultClient,
		session: sess,
		logger:  log.New(log.DefaultConfig()).WithComponent(log.ComponentAPI),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// request performs one HTTP call and returns the raw JSON payload.
//
// A nil, nil return means "no data": HTTP 204, an empty body, or a success
// body that is not valid JSON. withQueryToken appends the "?token=" query
// parameter the way the backend expects it, empty value included when no
// token is stored.
func (c *Client) request(ctx context.Context, method, path string, body any, withQueryToken bool) (json.RawMessage, error) {
	start := time.Now()
	token := c.session.Token(ctx)

	full := c.baseURL + path
	if withQueryToken {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		full += sep + "token=" + url.QueryEscape(token)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, full, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
		// Legacy header form, kept alongside the standard one.
		req.Header.Set("token", token)
	}

	res, err := c.httpc.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := &Error{Status: res.StatusCode, Message: errorMessage(raw, res.StatusCode)}
		c.logger.WarnContext(ctx, "Request failed",
			log.FieldMethod, method,
			log.FieldPath, path,
			log.FieldStatusCode, res.StatusCode,
			log.FieldError, apiErr.Message)
		return nil, apiErr
	}

	c.logger.DebugContext(ctx, "Request completed",
		log.FieldMethod, method,
		log.FieldPath, path,
		log.FieldStatusCode, res.StatusCode,
		log.FieldDuration, time.Since(start).Milliseconds())

	if res.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	if !json.Valid(raw) {
		// Success with an unparsable body reads as "no data".
		return nil, nil
	}
	return json.RawMessage(raw), nil
}

// errorMessage extracts a human-readable message from a JSON error body,
// checking the field names the backend is known to use.
func errorMessage(raw []byte, status int) string {
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err == nil {
		for _, key := range []string{"detail", "message"} {
			if msg := core.Stringify(body[key]); msg != "" {
				return msg
			}
		}
	}
	return "Error " + strconv.Itoa(status)
}

// decodeRecords unmarshals a JSON array into loose records for the
// normalizers. A nil payload decodes to an empty list.
func decodeRecords(raw json.RawMessage) []map[string]any {
	if raw == nil {
		return nil
	}
	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil
	}
	return records
}

// idValue renders a category id for a request payload: the backend wants
// numeric ids as JSON numbers, so numeric strings convert back.
func idValue(id core.CategoryID) any {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return n
	}
	return string(id)
}
