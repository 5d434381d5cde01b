package restapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/njprem/thirdplace_finder_web/internal/repository/ports"
)

const (
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 256
)

var ErrMissingBaseURL = errors.New("restapi: missing base url")

// Client talks to the places REST backend. It holds no cache and never
// retries; every call maps to exactly one HTTP request.
type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

// WithTimeout overrides the per-request timeout. Defaults to 10 seconds.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, ErrMissingBaseURL
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, fmt.Errorf("restapi: invalid base url: %w", err)
	}
	c := &Client{
		baseURL: trimmed,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) Places() *PlaceRepository        { return &PlaceRepository{client: c} }
func (c *Client) Events() *EventRepository        { return &EventRepository{client: c} }
func (c *Client) Categories() *CategoryRepository { return &CategoryRepository{client: c} }
func (c *Client) Regions() *RegionRepository      { return &RegionRepository{client: c} }

// StatusError reports a non-2xx answer. It matches ports.ErrUpstream, and
// ports.ErrNotFound as well when the status is 404.
type StatusError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("restapi: %s %s: status %d", e.Method, e.Path, e.Status)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func (e *StatusError) Unwrap() []error {
	if e.Status == http.StatusNotFound {
		return []error{ports.ErrUpstream, ports.ErrNotFound}
	}
	return []error{ports.ErrUpstream}
}

func (c *Client) do(ctx context.Context, method string, segments []string, in any, out any) error {
	endpoint, err := url.JoinPath(c.baseURL, segments...)
	if err != nil {
		return err
	}

	var body io.Reader
	if in != nil {
		payload, err := sonic.Marshal(in)
		if err != nil {
			return fmt.Errorf("restapi: encode %s body: %w", method, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	path := "/" + strings.Join(segments, "/")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ports.ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Method: method,
			Path:   path,
			Status: resp.StatusCode,
			Body:   drainError(resp.Body),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %s %s: read body: %w", ports.ErrUnavailable, method, path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s %s: decode body: %w", ports.ErrUpstream, method, path, err)
	}
	return nil
}

func drainError(r io.Reader) string {
	if r == nil {
		return ""
	}
	b, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	return strings.TrimSpace(string(b))
}
