// Package remote is the HTTP client for the agency backend that owns work
// items and services.
package remote

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

	"go.uber.org/zap"

	"github.com/webark/webark/content"
)

// DefaultBaseURL is the production backend.
const DefaultBaseURL = "https://webark-backend.onrender.com/api"

const maxErrorBody = 4 << 10

// APIError is returned when the backend answers with a non-2xx status.
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("remote: %s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Client talks to the backend's work and services endpoints. It holds no
// cache; each call is one HTTP request bound to the caller's context.
type Client struct {
	base    *url.URL
	http    *http.Client
	log     *zap.Logger
	metrics *Metrics
}

var _ content.RemoteAPI = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the client's logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithMetrics records request counts and latencies into m.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New returns a client for the API rooted at baseURL, e.g.
// "https://host/api". The default HTTP client times out after 10 seconds.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("remote: parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("remote: base url %q must be http or https", baseURL)
	}
	c := &Client{
		base: u,
		http: &http.Client{Timeout: 10 * time.Second},
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type workEnvelope struct {
	Works []content.WorkItem `json:"works"`
}

type servicesEnvelope struct {
	Services []content.Service `json:"services"`
}

// ListWork fetches GET /work.
func (c *Client) ListWork(ctx context.Context) ([]content.WorkItem, error) {
	var env workEnvelope
	if err := c.do(ctx, "work", http.MethodGet, "/work", nil, &env); err != nil {
		return nil, err
	}
	return env.Works, nil
}

// CreateWork sends POST /work.
func (c *Client) CreateWork(ctx context.Context, item content.WorkItem) (content.WorkItem, error) {
	var out content.WorkItem
	err := c.do(ctx, "work", http.MethodPost, "/work", item, &out)
	return out, err
}

// UpdateWork sends PUT /work/{id}.
func (c *Client) UpdateWork(ctx context.Context, item content.WorkItem) (content.WorkItem, error) {
	var out content.WorkItem
	err := c.do(ctx, "work", http.MethodPut, "/work/"+url.PathEscape(item.ID), item, &out)
	return out, err
}

// DeleteWork sends DELETE /work/{id}.
func (c *Client) DeleteWork(ctx context.Context, id string) error {
	return c.do(ctx, "work", http.MethodDelete, "/work/"+url.PathEscape(id), nil, nil)
}

// ListServices fetches GET /services.
func (c *Client) ListServices(ctx context.Context) ([]content.Service, error) {
	var env servicesEnvelope
	if err := c.do(ctx, "services", http.MethodGet, "/services", nil, &env); err != nil {
		return nil, err
	}
	return env.Services, nil
}

// CreateService sends POST /services.
func (c *Client) CreateService(ctx context.Context, s content.Service) (content.Service, error) {
	var out content.Service
	err := c.do(ctx, "services", http.MethodPost, "/services", s, &out)
	return out, err
}

// UpdateService sends PUT /services/{id}.
func (c *Client) UpdateService(ctx context.Context, s content.Service) (content.Service, error) {
	var out content.Service
	err := c.do(ctx, "services", http.MethodPut, "/services/"+url.PathEscape(s.ID), s, &out)
	return out, err
}

func (c *Client) endpoint(path string) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawPath = ""
	return u.String()
}

// do performs one JSON request. in is encoded as the body when non-nil and
// a 2xx response body is decoded into out when out is non-nil.
func (c *Client) do(ctx context.Context, resource, method, path string, in, out any) (err error) {
	start := time.Now()
	status := 0
	defer func() {
		c.metrics.observe(resource, method, status, time.Since(start))
		if err != nil {
			c.log.Debug("remote request failed",
				zap.String("method", method), zap.String("path", path), zap.Error(err))
		}
	}()

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("remote: encode %s body: %w", resource, err)
		}
		body = bytes.NewReader(b)
	}

	target := c.endpoint(path)
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("remote: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("remote: %s %s: %w", method, target, err)
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("remote: decode %s response: %w", resource, err)
	}
	return nil
}

func statusLabel(code int) string {
	if code == 0 {
		return "error"
	}
	return strconv.Itoa(code)
}
