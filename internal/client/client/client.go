package client

import (
	"context"
	"encoding/json"
	"net/http"
)

type Client interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// Request is one API call. Path is relative to the API base URL
// (for example "auth/login"). Body, when non-nil, is sent as JSON.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   any
}

// Response is a successful (2xx) answer.
type Response struct {
	Status int
	Data   json.RawMessage
}

// Decode unmarshals the payload into v. An undecodable payload yields
// ErrMalformedResponse.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Data, v); err != nil {
		return ErrMalformedResponse
	}
	return nil
}
