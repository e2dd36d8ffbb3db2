package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*HTTPClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewHTTPClient(srv.URL, time.Second)
	require.NoError(t, err)
	return c, srv
}

func TestNewHTTPClient_RejectsBadURL(t *testing.T) {
	_, err := NewHTTPClient("127.0.0.1:8080", 0)
	require.Error(t, err)

	_, err = NewHTTPClient("://", 0)
	require.Error(t, err)
}

func TestDo_SendsMethodPathHeadersAndBody(t *testing.T) {
	var (
		gotMethod string
		gotPath   string
		gotHeader http.Header
		gotBody   map[string]string
	)
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath, gotHeader = r.Method, r.URL.Path, r.Header.Clone()
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"t"}`))
	})

	h := http.Header{}
	h.Set("Authorization", "Bearer abc")
	h.Set("Content-Type", "application/json")

	resp, err := c.Do(context.Background(), &Request{
		Method: http.MethodPost,
		Path:   "auth/login",
		Header: h,
		Body:   map[string]string{"username": "bob"},
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.Status)
	assert.JSONEq(t, `{"access_token":"t"}`, string(resp.Data))
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/auth/login", gotPath)
	assert.Equal(t, "Bearer abc", gotHeader.Get("Authorization"))
	assert.Equal(t, "application/json", gotHeader.Get("Content-Type"))
	assert.Equal(t, "XMLHttpRequest", gotHeader.Get("X-Requested-With"))
	assert.Equal(t, "bob", gotBody["username"])
}

func TestDo_ResolvesAgainstBasePath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c, err := NewHTTPClient(srv.URL+"/app", time.Second)
	require.NoError(t, err)

	_, err = c.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/api/whoami"})
	require.NoError(t, err)
	assert.Equal(t, "/app/api/whoami", gotPath)
}

func TestDo_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{name: "401", status: http.StatusUnauthorized, body: `{"error":"bad credentials"}`, want: ErrUnauthorized},
		{name: "403", status: http.StatusForbidden, body: `{"error":"forbidden"}`, want: ErrUnauthorized},
		{name: "500", status: http.StatusInternalServerError, body: `{"error":"boom"}`, want: ErrServer},
		{name: "503 text", status: http.StatusServiceUnavailable, body: `down`, want: ErrServer},
		{name: "404", status: http.StatusNotFound, body: ``, want: ErrUnexpectedStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			resp, err := c.Do(context.Background(), &Request{Method: http.MethodGet, Path: "api/whoami"})
			require.Nil(t, resp)
			require.ErrorIs(t, err, tt.want)

			re, ok := IsRequestError(err)
			require.True(t, ok)
			assert.Equal(t, tt.status, re.Status)
			if tt.body != "" {
				assert.True(t, json.Valid(re.Data), "payload must stay displayable as JSON")
			}
		})
	}
}

func TestDo_MalformedBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	})

	_, err := c.Do(context.Background(), &Request{Method: http.MethodGet, Path: "api/whoami"})
	require.ErrorIs(t, err, ErrMalformedResponse)

	re, ok := IsRequestError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, re.Status)
	assert.JSONEq(t, `"<html>oops</html>"`, string(re.Data))
}

func TestDo_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := NewHTTPClient(url, time.Second)
	require.NoError(t, err)

	_, err = c.Do(context.Background(), &Request{Method: http.MethodGet, Path: "api/whoami"})
	require.ErrorIs(t, err, ErrNetwork)

	re, ok := IsRequestError(err)
	require.True(t, ok)
	assert.Zero(t, re.Status)
}

func TestDo_TimeoutIsNetworkError(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c, err := NewHTTPClient(srv.URL, 50*time.Millisecond)
	require.NoError(t, err)

	_, err = c.Do(context.Background(), &Request{Method: http.MethodGet, Path: "api/whoami"})
	require.ErrorIs(t, err, ErrNetwork)
}

func TestResponse_Decode(t *testing.T) {
	var v struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, (&Response{Data: []byte(`{"access_token":"x"}`)}).Decode(&v))
	assert.Equal(t, "x", v.AccessToken)

	err := (&Response{Data: []byte(`[1,2]`)}).Decode(&v)
	assert.True(t, errors.Is(err, ErrMalformedResponse))
}

func TestRequestError_Message(t *testing.T) {
	e := &RequestError{Method: "GET", Path: "api/whoami", Status: 401, Err: ErrUnauthorized}
	assert.Equal(t, "GET api/whoami: 401: unauthorized", e.Error())

	e = &RequestError{Method: "POST", Path: "auth/refresh", Err: ErrNetwork}
	assert.Equal(t, "POST auth/refresh: server unreachable", e.Error())
}
