// Package api provides a typed HTTP gateway to the café/employee resource
// service. It owns base-URL configuration and error classification and does
// no caching of its own.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// maxResponseSize limits response bodies to prevent memory exhaustion.
const maxResponseSize = 10 * 1024 * 1024 // 10MB

// Gateway issues requests against the remote resource service.
type Gateway struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) {
		g.httpClient = c
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) {
		g.httpClient.Timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) {
		g.logger = logger
	}
}

// NewGateway creates a gateway rooted at baseURL.
func NewGateway(baseURL string, opts ...Option) *Gateway {
	g := &Gateway{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// ListCafes fetches cafés, optionally filtered by location. An empty
// location returns all cafés.
func (g *Gateway) ListCafes(ctx context.Context, location string) ([]Cafe, error) {
	params := url.Values{}
	if location != "" {
		params.Set("location", location)
	}

	var cafes []Cafe
	if err := g.do(ctx, http.MethodGet, "/cafes", params, nil, &cafes); err != nil {
		return nil, err
	}
	return cafes, nil
}

// CreateCafe creates a café and returns the canonical server record.
func (g *Gateway) CreateCafe(ctx context.Context, payload CafePayload) (*Cafe, error) {
	var cafe Cafe
	if err := g.do(ctx, http.MethodPost, "/cafes", nil, payload, &cafe); err != nil {
		return nil, err
	}
	return &cafe, nil
}

// UpdateCafe updates the café with the given id and returns the canonical
// server record.
func (g *Gateway) UpdateCafe(ctx context.Context, id string, payload CafePayload) (*Cafe, error) {
	var cafe Cafe
	if err := g.do(ctx, http.MethodPut, "/cafes/"+id, nil, payload, &cafe); err != nil {
		return nil, err
	}
	return &cafe, nil
}

// DeleteCafe deletes the café with the given id. The service cascades the
// delete to the café's employees.
func (g *Gateway) DeleteCafe(ctx context.Context, id string) error {
	return g.do(ctx, http.MethodDelete, "/cafes/"+id, nil, nil, nil)
}

// ListEmployees fetches employees, optionally filtered by café name. An
// empty cafeName returns all employees.
func (g *Gateway) ListEmployees(ctx context.Context, cafeName string) ([]Employee, error) {
	params := url.Values{}
	if cafeName != "" {
		params.Set("cafe", cafeName)
	}

	var employees []Employee
	if err := g.do(ctx, http.MethodGet, "/employees", params, nil, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

// CreateEmployee creates an employee and returns the canonical server record.
func (g *Gateway) CreateEmployee(ctx context.Context, payload EmployeePayload) (*Employee, error) {
	var employee Employee
	if err := g.do(ctx, http.MethodPost, "/employees", nil, payload, &employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

// UpdateEmployee updates the employee with the given id and returns the
// canonical server record.
func (g *Gateway) UpdateEmployee(ctx context.Context, id string, payload EmployeePayload) (*Employee, error) {
	var employee Employee
	if err := g.do(ctx, http.MethodPut, "/employees/"+id, nil, payload, &employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

// DeleteEmployee deletes the employee with the given id.
func (g *Gateway) DeleteEmployee(ctx context.Context, id string) error {
	return g.do(ctx, http.MethodDelete, "/employees/"+id, nil, nil, nil)
}

// do executes a single request and decodes the response into out when out
// is non-nil. Non-2xx responses become NetworkErrors carrying the server's
// structured error message.
func (g *Gateway) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	reqURL := g.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	g.logger.Debug("Sending request", "method", method, "url", reqURL)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return NewNetworkError(0, genericErrorMessage, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return NewNetworkError(resp.StatusCode, genericErrorMessage, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return NewNetworkError(resp.StatusCode, serverMessage(respBody), nil)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
