// Package sheets talks to a spreadsheet-backed script endpoint: one URL accepts
// form-encoded rows, another returns every stored row as JSON.
package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

// GetAllDataAction is the action value the fetch script expects for a full dump.
const GetAllDataAction = "getAllData"

// StatusError reports a response that arrived with a non-2xx status.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	// URL is left out: script URLs embed the deployment key.
	if e.Body == "" {
		return fmt.Sprintf("%s: status %d", e.Method, e.Code)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Method, e.Code, e.Body)
}

// Endpoints holds the two deployment-specific script URLs.
type Endpoints struct {
	SubmitURL    string
	FetchURL     string
	AttachAction bool
}

type Client struct {
	httpClient *http.Client

	mu        sync.RWMutex
	endpoints Endpoints
}

// NewClient returns a Client for the given endpoints. A nil httpClient means a
// plain &http.Client{} with no timeout; callers bound requests through ctx.
func NewClient(httpClient *http.Client, endpoints Endpoints) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{httpClient: httpClient, endpoints: endpoints}
}

// SetEndpoints swaps the endpoint URLs used by subsequent requests.
func (c *Client) SetEndpoints(endpoints Endpoints) {
	c.mu.Lock()
	c.endpoints = endpoints
	c.mu.Unlock()
}

func (c *Client) Endpoints() Endpoints {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.endpoints
}

// PostForm sends values as an application/x-www-form-urlencoded body to the
// submit URL. The response body is drained and ignored; a non-2xx status comes
// back as *StatusError alongside the code.
func (c *Client) PostForm(ctx context.Context, values url.Values) (int, error) {
	target := strings.TrimSpace(c.Endpoints().SubmitURL)
	if target == "" {
		return 0, fmt.Errorf("submit url is not configured")
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(values.Encode()))
	if err != nil {
		return 0, fmt.Errorf("build submit request: %w", err)
	}
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return 0, fmt.Errorf("submit request: %w", err)
	}
	defer response.Body.Close()

	if !ok(response.StatusCode) {
		return response.StatusCode, statusError(http.MethodPost, target, response)
	}
	_, _ = io.Copy(io.Discard, response.Body)
	return response.StatusCode, nil
}

// FetchAll issues a GET to the fetch URL and decodes the body as untyped JSON.
func (c *Client) FetchAll(ctx context.Context) (any, error) {
	target, err := c.fetchTarget()
	if err != nil {
		return nil, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build fetch request: %w", err)
	}
	request.Header.Set("Accept", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("fetch request: %w", err)
	}
	defer response.Body.Close()

	if !ok(response.StatusCode) {
		return nil, statusError(http.MethodGet, target, response)
	}

	var data any
	if err := json.NewDecoder(response.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode fetch response: %w", err)
	}
	return data, nil
}

func (c *Client) fetchTarget() (string, error) {
	endpoints := c.Endpoints()
	raw := strings.TrimSpace(endpoints.FetchURL)
	if raw == "" {
		return "", fmt.Errorf("fetch url is not configured")
	}
	if !endpoints.AttachAction {
		return raw, nil
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse fetch url: %w", err)
	}
	query := parsed.Query()
	query.Set("action", GetAllDataAction)
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

func ok(code int) bool {
	return code >= 200 && code < 300
}

func statusError(method, target string, response *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(response.Body, 1<<10))
	return &StatusError{
		Method: method,
		URL:    target,
		Code:   response.StatusCode,
		Body:   strings.TrimSpace(string(body)),
	}
}
