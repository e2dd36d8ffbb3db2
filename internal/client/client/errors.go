package client

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrNetwork           = errors.New("server unreachable")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrServer            = errors.New("server error")
	ErrUnexpectedStatus  = errors.New("unexpected status")
	ErrMalformedResponse = errors.New("malformed response")
)

// RequestError describes one failed request. Status is 0 when no response
// arrived.
type RequestError struct {
	Method string
	Path   string
	Status int
	Data   json.RawMessage
	Err    error
}

func (e *RequestError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s: %d: %v", e.Method, e.Path, e.Status, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// errorForStatus maps a non-2xx status to its sentinel.
func errorForStatus(status int) error {
	switch {
	case status == 401 || status == 403:
		return ErrUnauthorized
	case status >= 500:
		return ErrServer
	default:
		return ErrUnexpectedStatus
	}
}
