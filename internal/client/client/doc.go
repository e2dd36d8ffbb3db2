// Package client is the transport between jwtdash and its backend API.
//
// # Overview
//
// Client is a transport-agnostic contract: a Request names a method, a
// path relative to the API base URL, headers and an optional JSON body,
// and a Response carries the status and the raw JSON payload. HTTPClient
// implements it over net/http.
//
// # Error Handling
//
// Every failed call returns a *RequestError that unwraps to one of the
// sentinels below, so callers match with errors.Is:
//
//   - ErrNetwork: no response at all (dial failure, timeout, cancellation)
//   - ErrUnauthorized: 401 or 403
//   - ErrServer: any 5xx
//   - ErrUnexpectedStatus: other non-2xx answers
//   - ErrMalformedResponse: the body is not the expected JSON
//
// The RequestError keeps the status and payload so a view can display
// exactly what the backend said. Nothing is retried.
package client
