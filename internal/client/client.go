// Package client provides an HTTP client for the listings REST API.
package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/evcraddock/listings/internal/property"
)

var jsonCodec = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrNotFound is returned when the server reports a missing property.
var ErrNotFound = errors.New("property not found")

// Client is an HTTP client for the listings API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// BaseURL returns the server URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// envelope is the response wrapper used by every endpoint.
type envelope struct {
	Success    bool                 `json:"success"`
	Message    string               `json:"message"`
	Error      string               `json:"error"`
	Data       json.RawMessage      `json:"data"`
	Pagination *property.Pagination `json:"pagination"`
	Errors     []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

// ListOptions controls filtering and paging for ListProperties.
type ListOptions struct {
	Status string // available, sold, pending (empty = all)
	Limit  *int   // nil = not sent
	Offset *int   // nil = not sent
}

// ListResponse is the response from GET /api/properties.
type ListResponse struct {
	Properties []property.Property
	Pagination property.Pagination
}

// ListProperties returns properties, optionally filtered and paged.
func (c *Client) ListProperties(opts ListOptions) (*ListResponse, error) {
	params := url.Values{}
	if opts.Status != "" {
		params.Set("status", opts.Status)
	}
	if opts.Limit != nil {
		params.Set("limit", strconv.Itoa(*opts.Limit))
	}
	if opts.Offset != nil {
		params.Set("offset", strconv.Itoa(*opts.Offset))
	}

	path := "/api/properties"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var props []property.Property
	env, err := c.get(path, &props)
	if err != nil {
		return nil, err
	}

	resp := &ListResponse{Properties: props}
	if env.Pagination != nil {
		resp.Pagination = *env.Pagination
	}
	return resp, nil
}

// GetProperty returns a single property.
func (c *Client) GetProperty(id int64) (*property.Property, error) {
	var p property.Property
	if _, err := c.get(fmt.Sprintf("/api/properties/%d", id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProperty adds a new property.
func (c *Client) CreateProperty(np property.NewProperty) (*property.Property, error) {
	var p property.Property
	if err := c.send(http.MethodPost, "/api/properties", np, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProperty applies a partial update to a property.
func (c *Client) UpdateProperty(id int64, patch property.Patch) (*property.Property, error) {
	var p property.Property
	if err := c.send(http.MethodPut, fmt.Sprintf("/api/properties/%d", id), patch, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProperty removes a property.
func (c *Client) DeleteProperty(id int64) error {
	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/api/properties/%d", c.baseURL, id), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	_, err = c.do(req, nil)
	return err
}

// Health is the response from GET /health.
type Health struct {
	Status     string `json:"status"`
	Properties int    `json:"properties"`
}

// Health checks that the server is reachable.
func (c *Client) Health() (*Health, error) {
	resp, err := c.httpClient.Get(c.baseURL + "/health")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			fmt.Printf("warning: closing response body: %v\n", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var h Health
	if err := jsonCodec.NewDecoder(resp.Body).Decode(&h); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &h, nil
}

// get performs a GET request and decodes the response data.
func (c *Client) get(path string, result interface{}) (*envelope, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

// send performs a request with a JSON body and decodes the response data.
func (c *Client) send(method, path string, body interface{}, result interface{}) error {
	data, err := jsonCodec.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	_, err = c.do(req, result)
	return err
}

// do executes an HTTP request and unwraps the response envelope.
func (c *Client) do(req *http.Request, result interface{}) (*envelope, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			fmt.Printf("warning: closing response body: %v\n", cerr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var env envelope
	if len(respBody) > 0 {
		if err := jsonCodec.Unmarshal(respBody, &env); err != nil && resp.StatusCode < 400 {
			return nil, fmt.Errorf("decoding response: %w", err)
		}
	}

	if resp.StatusCode >= 400 {
		return nil, responseError(resp.StatusCode, &env)
	}

	if result != nil && len(env.Data) > 0 {
		if err := jsonCodec.Unmarshal(env.Data, result); err != nil {
			return nil, fmt.Errorf("decoding data: %w", err)
		}
	}

	return &env, nil
}

// responseError builds an error from a failure envelope.
func responseError(code int, env *envelope) error {
	if code == http.StatusNotFound && env.Error != "" {
		return fmt.Errorf("%w: %s", ErrNotFound, env.Message)
	}
	if len(env.Errors) > 0 {
		msgs := make([]string, 0, len(env.Errors))
		for _, fe := range env.Errors {
			msgs = append(msgs, fe.Message)
		}
		return fmt.Errorf("%s: %s", env.Error, strings.Join(msgs, "; "))
	}
	if env.Error != "" && env.Message != "" {
		return fmt.Errorf("%s: %s", env.Error, env.Message)
	}
	if env.Error != "" {
		return fmt.Errorf("%s", env.Error)
	}
	return fmt.Errorf("server error: %s", http.StatusText(code))
}
