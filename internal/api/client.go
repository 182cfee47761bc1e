// Package api is the HTTP client for the resume-screening backend. It attaches
// the session's bearer token, converts failures into typed errors and applies
// the unauthorized policy: a 401 or 403 on an authenticated call clears the
// session.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-screener/internal/schemas"
	"github.com/jonathan/resume-screener/internal/session"
	"go.uber.org/zap"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "resume-screener/1.0"

// RequestIDHeader carries a per-request id for log correlation.
const RequestIDHeader = "X-Request-ID"

// Client talks to the backend on behalf of one session.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	session    *session.Session
	logger     *zap.SugaredLogger
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient = &http.Client{Timeout: d}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New creates a client for the backend at baseURL.
func New(baseURL string, sess *session.Session, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid backend URL %q", baseURL)
	}
	if sess == nil {
		return nil, fmt.Errorf("session is required")
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		session:    sess,
		logger:     zap.NewNop().Sugar(),
		userAgent:  DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Session returns the session the client authenticates with.
func (c *Client) Session() *session.Session {
	return c.session
}

type request struct {
	method      string
	path        string
	query       url.Values
	body        []byte
	contentType string
	public      bool
}

func jsonRequest(method, path string, payload any) (request, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return request{}, fmt.Errorf("failed to encode request body: %w", err)
	}
	return request{method: method, path: path, body: data, contentType: "application/json"}, nil
}

// multipartForm is a form with plain fields and at most one file.
type multipartForm struct {
	fields   [][2]string
	fileName string
	file     io.Reader
}

func (f multipartForm) encode(method, path string) (request, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, kv := range f.fields {
		if err := w.WriteField(kv[0], kv[1]); err != nil {
			return request{}, fmt.Errorf("failed to write form field %s: %w", kv[0], err)
		}
	}
	if f.file != nil {
		part, err := w.CreateFormFile("file", f.fileName)
		if err != nil {
			return request{}, fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := io.Copy(part, f.file); err != nil {
			return request{}, fmt.Errorf("failed to read %s: %w", f.fileName, err)
		}
	}
	if err := w.Close(); err != nil {
		return request{}, fmt.Errorf("failed to finish multipart body: %w", err)
	}
	return request{method: method, path: path, body: buf.Bytes(), contentType: w.FormDataContentType()}, nil
}

// roundTrip sends r and returns the live response for 2xx statuses. Any other
// outcome is returned as an *Error with the body already consumed.
func (c *Client) roundTrip(ctx context.Context, r request) (*http.Response, error) {
	target := c.baseURL.JoinPath(r.path)
	if len(r.query) > 0 {
		target.RawQuery = r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target.String(), body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Method: r.method, Path: r.path, Cause: err}
	}

	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}

	authenticated := false
	if !r.public {
		if token := c.session.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
			authenticated = true
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warnw("Backend request failed",
			"request_id", requestID, "method", r.method, "path", r.path, "error", err)
		return nil, &Error{Kind: KindTransport, Method: r.method, Path: r.path, Cause: err}
	}

	c.logger.Debugw("Backend request",
		"request_id", requestID,
		"method", r.method,
		"path", r.path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	defer func() { _ = resp.Body.Close() }()
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	apiErr := &Error{
		Kind:    kindForStatus(resp.StatusCode),
		Status:  resp.StatusCode,
		Method:  r.method,
		Path:    r.path,
		Message: extractMessage(raw, resp.Header.Get("Content-Type")),
	}

	if apiErr.Kind == KindUnauthorized && authenticated {
		if err := c.session.Invalidate(); err != nil {
			c.logger.Warnw("Failed to clear rejected session", "error", err)
		}
		apiErr.Cause = ErrSessionExpired
		c.logger.Infow("Session rejected by backend, logged out",
			"request_id", requestID, "status", resp.StatusCode)
	} else {
		c.logger.Debugw("Backend returned error",
			"request_id", requestID, "status", resp.StatusCode, "message", apiErr.Message)
	}

	return nil, apiErr
}

// send performs r and returns the full response body.
func (c *Client) send(ctx context.Context, r request) ([]byte, error) {
	resp, err := c.roundTrip(ctx, r)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Status: resp.StatusCode, Method: r.method, Path: r.path,
			Cause: fmt.Errorf("failed to read response body: %w", err)}
	}
	return data, nil
}

// decode checks data against a schema (when enabled) and unmarshals it.
// list selects the array form of the schema; schemaName may be empty.
func (c *Client) decode(r request, data []byte, schemaName string, list bool, out any) error {
	if schemaName != "" {
		var err error
		if list {
			err = schemas.ValidateList(schemaName, data)
		} else {
			err = schemas.ValidateBytes(schemaName, data)
		}
		if err != nil {
			c.logger.Warnw("Backend payload failed schema check", "path", r.path, "error", err)
			return &Error{Kind: KindDecode, Method: r.method, Path: r.path, Cause: err}
		}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Kind: KindDecode, Method: r.method, Path: r.path,
			Cause: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path, schemaName string, list bool, out any) error {
	r := request{method: http.MethodGet, path: path}
	data, err := c.send(ctx, r)
	if err != nil {
		return err
	}
	return c.decode(r, data, schemaName, list, out)
}
