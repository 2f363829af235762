package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Gravitalia/feed/helpers"
)

// DefaultURL is the JSON server the feed reads from when API_URL is unset
const DefaultURL = "https://my-json-server.typicode.com/airick94/faceit-feed-test-server"

// Resources exposed by the API
const (
	Posts = "posts"
	Users = "users"
)

// Pagination is fixed, only the first page is ever read
const pageQuery = "?page=1&per_page=10"

// Doer sends HTTP requests. *http.Client and the zipkin traced client
// both satisfy it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Result is the normalised answer of the API
type Result struct {
	Resource string
	Status   int
	Data     json.RawMessage
}

// OK reports whether the API answered with a 2xx status
func (r Result) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Decode unmarshals the body into v
func (r Result) Decode(v any) error {
	if err := json.Unmarshal(r.Data, v); err != nil {
		return &DecodeError{Resource: r.Resource, Err: err}
	}
	return nil
}

// Client reads and creates resources on the feed API
type Client struct {
	baseURL string
	doer    Doer
	timeout time.Duration
}

// New creates a client for baseURL. A nil doer falls back to
// http.DefaultClient, a zero timeout disables the per-request deadline.
func New(baseURL string, doer Doer, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if doer == nil {
		doer = http.DefaultClient
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		doer:    doer,
		timeout: timeout,
	}
}

// makeRequest sends the request and reads the whole body
func (c *Client) makeRequest(ctx context.Context, method, resource, url string, reqBody []byte) (int, []byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if reqBody != nil {
		body = bytes.NewReader(reqBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return 0, nil, &NetworkError{Op: method, Resource: resource, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	response, err := c.doer.Do(req)
	if err != nil {
		helpers.ObserveAPIRequest(resource, method, 0, time.Since(start))
		return 0, nil, &NetworkError{Op: method, Resource: resource, Err: err}
	}
	defer response.Body.Close()

	data, err := io.ReadAll(response.Body)
	helpers.ObserveAPIRequest(resource, method, response.StatusCode, time.Since(start))
	if err != nil {
		return response.StatusCode, nil, &NetworkError{Op: method, Resource: resource, Err: err}
	}

	return response.StatusCode, data, nil
}

// FetchCollection reads the first page of resource.
// A status outside 2xx is not an error, the caller must check Result.Status.
func (c *Client) FetchCollection(ctx context.Context, resource string) (Result, error) {
	status, data, err := c.makeRequest(ctx, http.MethodGet, resource, c.baseURL+"/"+resource+pageQuery, nil)
	if err != nil {
		return Result{Resource: resource, Status: status}, err
	}

	result := Result{Resource: resource, Status: status}
	if !json.Valid(data) {
		if result.OK() {
			return result, &DecodeError{Resource: resource, Err: errInvalidJSON}
		}
		// error pages are often HTML, the status is what matters
		return result, nil
	}
	result.Data = data

	return result, nil
}

// CreateResource posts payload as JSON and returns the record created by the API
func (c *Client) CreateResource(ctx context.Context, resource string, payload any) (Result, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return Result{Resource: resource}, &EncodeError{Resource: resource, Err: err}
	}

	status, data, err := c.makeRequest(ctx, http.MethodPost, resource, c.baseURL+"/"+resource, reqBody)
	if err != nil {
		return Result{Resource: resource, Status: status}, err
	}

	result := Result{Resource: resource, Status: status}
	if !result.OK() {
		helpers.Warn("resource was not created", "resource", resource, "status", status)
		return result, &StatusError{Op: http.MethodPost, Resource: resource, Status: status}
	}
	if !json.Valid(data) {
		return result, &DecodeError{Resource: resource, Err: errInvalidJSON}
	}
	result.Data = data

	helpers.Debug("resource created", "resource", resource, "status", status, "body", string(data))

	return result, nil
}
