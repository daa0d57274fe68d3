package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cinedex/internal/api"
	"cinedex/internal/media"
	"cinedex/internal/production"
)

const defaultTimeout = 15 * time.Second

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// ErrUnreachable wraps transport failures; the request may be retried manually.
var ErrUnreachable = errors.New("server unreachable")

// Client provides typed access to the cinedexd HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures optional Client behavior.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// New creates a client for the API rooted at baseURL, e.g. http://localhost:3000/api.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("api url required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListAll fetches every production.
func (c *Client) ListAll(ctx context.Context) ([]production.Production, error) {
	var out []production.Production
	if err := c.do(ctx, http.MethodGet, "/productions", nil, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []production.Production{}
	}
	return out, nil
}

// Search fetches one page of productions matching filter.
func (c *Client) Search(ctx context.Context, filter production.Filter) (production.Page, error) {
	params := url.Values{}
	if q := strings.TrimSpace(filter.Query); q != "" {
		params.Set("query", q)
	}
	if t := strings.TrimSpace(filter.Type); t != "" {
		params.Set("type", t)
	}
	if filter.Page > 0 {
		params.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.Limit > 0 {
		params.Set("limit", strconv.Itoa(filter.Limit))
	}
	var page production.Page
	if err := c.do(ctx, http.MethodGet, "/productions/search", params, nil, &page); err != nil {
		return production.Page{}, err
	}
	if page.Productions == nil {
		page.Productions = []production.Production{}
	}
	return page, nil
}

// Create posts p and returns the stored record with its id.
func (c *Client) Create(ctx context.Context, p production.Production) (production.Production, error) {
	p.ID = 0
	var created production.Production
	if err := c.do(ctx, http.MethodPost, "/productions", nil, p, &created); err != nil {
		return production.Production{}, err
	}
	return created, nil
}

// Update sends p as the patch for id and returns the merged record.
func (c *Client) Update(ctx context.Context, id int64, p production.Production) (production.Production, error) {
	p.ID = id
	var updated production.Production
	if err := c.do(ctx, http.MethodPut, "/productions/"+strconv.FormatInt(id, 10), nil, p, &updated); err != nil {
		return production.Production{}, err
	}
	return updated, nil
}

// Delete removes id and returns the server's confirmation message.
func (c *Client) Delete(ctx context.Context, id int64) (string, error) {
	var msg api.Message
	if err := c.do(ctx, http.MethodDelete, "/productions/"+strconv.FormatInt(id, 10), nil, nil, &msg); err != nil {
		return "", err
	}
	return msg.Message, nil
}

// SearchMedia queries the media collaborator through the server.
func (c *Client) SearchMedia(ctx context.Context, query, language string) ([]media.Result, error) {
	params := url.Values{}
	params.Set("query", query)
	if lang := strings.TrimSpace(language); lang != "" {
		params.Set("language", lang)
	}
	var out []media.Result
	if err := c.do(ctx, http.MethodGet, "/search-media", params, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []media.Result{}
	}
	return out, nil
}

// Hello calls the health endpoint.
func (c *Client) Hello(ctx context.Context) (string, error) {
	var msg api.Message
	if err := c.do(ctx, http.MethodGet, "/hello", nil, nil, &msg); err != nil {
		return "", err
	}
	return msg.Message, nil
}

// Status fetches server runtime details.
func (c *Client) Status(ctx context.Context) (api.Status, error) {
	var status api.Status
	if err := c.do(ctx, http.MethodGet, "/status", nil, nil, &status); err != nil {
		return api.Status{}, err
	}
	return status, nil
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrUnreachable, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return apiErr
	}
	var msg api.Message
	if json.Unmarshal(data, &msg) == nil && msg.Message != "" {
		apiErr.Message = msg.Message
	} else {
		apiErr.Message = strings.TrimSpace(string(data))
	}
	return apiErr
}
