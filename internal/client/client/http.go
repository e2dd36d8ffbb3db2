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
	"strings"
	"time"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 1 << 20

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	timeout time.Duration
}

// NewHTTPClient builds a client for the API rooted at baseURL. A zero
// timeout leaves requests bounded only by the caller's context.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid server url %q: scheme and host are required", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return &HTTPClient{baseURL: u, http: &http.Client{}, timeout: timeout}, nil
}

func (c *HTTPClient) Do(ctx context.Context, req *Request) (*Response, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	fail := func(status int, data []byte, err error) (*Response, error) {
		return nil, &RequestError{Method: req.Method, Path: req.Path, Status: status, Data: data, Err: err}
	}

	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fail(0, nil, fmt.Errorf("%w: %v", ErrNetwork, err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fail(resp.StatusCode, nil, fmt.Errorf("%w: %v", ErrNetwork, err))
	}

	data := rawJSON(body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(resp.StatusCode, data, errorForStatus(resp.StatusCode))
	}
	if len(body) > 0 && !json.Valid(body) {
		return fail(resp.StatusCode, data, ErrMalformedResponse)
	}

	return &Response{Status: resp.StatusCode, Data: data}, nil
}

func (c *HTTPClient) newRequest(ctx context.Context, req *Request) (*http.Request, error) {
	ref, err := url.Parse(strings.TrimPrefix(req.Path, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", req.Path, err)
	}

	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.baseURL.ResolveReference(ref).String(), body)
	if err != nil {
		return nil, err
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	httpReq.Header.Set("X-Requested-With", "XMLHttpRequest")
	httpReq.Header.Set("Accept", "application/json")

	return httpReq, nil
}

// rawJSON returns body as JSON. Non-JSON bodies (an HTML error page, plain
// text) are wrapped as a JSON string so they can still be displayed.
func rawJSON(body []byte) json.RawMessage {
	if len(body) == 0 {
		return nil
	}
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	b, _ := json.Marshal(string(body))
	return json.RawMessage(b)
}

// IsRequestError reports whether err carries a *RequestError and returns it.
func IsRequestError(err error) (*RequestError, bool) {
	var re *RequestError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
