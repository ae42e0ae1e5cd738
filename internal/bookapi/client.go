package bookapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Store defines the remote catalog operations the application consumes.
// This interface is implemented by *Client and can be used for testing.
type Store interface {
	List(ctx context.Context) ([]Book, error)
	Create(ctx context.Context, draft Draft) (Book, error)
	Update(ctx context.Context, id int64, patch Patch) error
	Delete(ctx context.Context, id int64) error
}

// Ensure Client implements Store at compile time.
var _ Store = (*Client)(nil)

// Client talks to the bookstore HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
}

const (
	defaultAPIBind   = "127.0.0.1:8017"
	defaultUserAgent = "bookstore-ui/0.1"
	requestTimeout   = 5 * time.Second
)

// The limiter smooths bursts from hold-down keys and the seeder without
// getting in the way of interactive use.
const (
	requestsPerSecond = 10
	requestBurst      = 5
)

// NewClient builds a Client using the provided api bind host:port value.
func NewClient(apiBind string) (*Client, error) {
	base, err := parseBaseURL(apiBind)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		limiter:   rate.NewLimiter(rate.Limit(requestsPerSecond), requestBurst),
		userAgent: defaultUserAgent,
	}, nil
}

// BaseURL reports the normalized URL the client sends requests to.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// List retrieves the full catalog.
func (c *Client) List(ctx context.Context) ([]Book, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []Book
	if err := c.do(ctx, http.MethodGet, "/api/books", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Create stores a new book and returns the record with its assigned id.
func (c *Client) Create(ctx context.Context, draft Draft) (Book, error) {
	if c == nil {
		return Book{}, fmt.Errorf("client is nil")
	}
	var payload Book
	if err := c.do(ctx, http.MethodPost, "/api/books", draft, &payload); err != nil {
		return Book{}, err
	}
	return payload, nil
}

// Update applies a partial edit to the book with the given id.
func (c *Client) Update(ctx context.Context, id int64, patch Patch) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/books/%d", id), patch, nil)
}

// Delete removes the book with the given id from the store.
func (c *Client) Delete(ctx context.Context, id int64) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/books/%d", id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("wait for request slot: %w", err)
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	rel := &url.URL{Path: path}
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return &StatusError{
			Code:      resp.StatusCode,
			Message:   readAPIError(resp.Body),
			RequestID: requestID,
		}
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// readAPIError extracts the {"error": "..."} body servers attach to failed
// requests. A missing or malformed body yields an empty message.
func readAPIError(body io.Reader) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(body, 4096)).Decode(&payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Error)
}

func parseBaseURL(apiBind string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBind)
	if trimmed == "" {
		trimmed = defaultAPIBind
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_bind %q: %w", apiBind, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
