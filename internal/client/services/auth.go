// Package services contains the client's application services. This file
// defines the authentication service: login, token refresh, logout and the
// authenticated user queries, together with the header construction that
// attaches the stored bearer token to requests.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/jwtdash/internal/client/client"
	"github.com/dmitrijs2005/jwtdash/internal/client/tokenstore"
	"github.com/dmitrijs2005/jwtdash/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

const (
	pathLogin    = "auth/login"
	pathRefresh  = "auth/refresh"
	pathWhoAmI   = "api/whoami"
	pathAllUsers = "api/user/all"
)

// Credentials is a login submission. It is never persisted.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenInfo is what the stored token says about itself. The signature is
// not checked; the values are for display only.
type TokenInfo struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// AuthService defines the authentication operations.
//
// Contract:
//   - BuildAuthHeader: headers for the next request, derived from the store.
//   - Login: exchange credentials for a token and store it.
//   - Refresh: renew the stored token; the boolean result is a route gate.
//   - Logout: drop the stored token.
//   - GetCurrentUser / GetAllUsers: authenticated queries whose errors are
//     returned unchanged for display.
//   - TokenInfo: decoded claims of the stored token.
//
// Only AuthService writes the token store.
type AuthService interface {
	BuildAuthHeader(ctx context.Context) http.Header
	Login(ctx context.Context, creds Credentials) (string, error)
	Refresh(ctx context.Context) bool
	Logout(ctx context.Context) error
	GetCurrentUser(ctx context.Context) (*client.Response, error)
	GetAllUsers(ctx context.Context) (*client.Response, error)
	TokenInfo(ctx context.Context) (*TokenInfo, bool)
}

type authService struct {
	client client.Client
	store  tokenstore.Store
	logger logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client
// and token store.
func NewAuthService(c client.Client, store tokenstore.Store, logger logging.Logger) AuthService {
	return &authService{client: c, store: store, logger: logger.With("component", "auth")}
}

type tokenResponse struct {
	AccessToken *string `json:"access_token"`
}

// BuildAuthHeader returns Content-Type: application/json, plus
// Authorization: Bearer <token> when a token is stored.
func (a *authService) BuildAuthHeader(ctx context.Context) http.Header {
	h := http.Header{}
	if token, ok := a.store.Get(ctx); ok {
		h.Set("Authorization", "Bearer "+token)
	}
	h.Set("Content-Type", "application/json")
	return h
}

// Login posts the credentials and stores the returned token. On any
// failure the stored token is cleared and the error is returned.
func (a *authService) Login(ctx context.Context, creds Credentials) (string, error) {
	token, err := a.requestToken(ctx, pathLogin, creds)
	if err != nil {
		a.clear(ctx)
		a.logger.Info(ctx, "login failed", "user", creds.Username, "error", err)
		return "", err
	}

	if err := a.store.Set(ctx, token); err != nil {
		return "", fmt.Errorf("store token: %w", err)
	}
	a.logger.Info(ctx, "login successful", "user", creds.Username)
	return token, nil
}

// Refresh renews the stored token. Without a token it returns false and
// issues no request. Any failure clears the token and returns false; the
// failure kind is only logged.
func (a *authService) Refresh(ctx context.Context) bool {
	if _, ok := a.store.Get(ctx); !ok {
		a.logger.Debug(ctx, "refresh skipped, no token")
		return false
	}

	token, err := a.requestToken(ctx, pathRefresh, nil)
	if err != nil {
		a.clear(ctx)
		a.logger.Warn(ctx, "refresh failed", "reason", failureReason(err), "error", err)
		return false
	}

	if err := a.store.Set(ctx, token); err != nil {
		a.logger.Error(ctx, "refreshed token not stored", "error", err)
		return false
	}
	a.logger.Debug(ctx, "token refreshed")
	return true
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	a.logger.Info(ctx, "logged out")
	return nil
}

func (a *authService) GetCurrentUser(ctx context.Context) (*client.Response, error) {
	return a.get(ctx, pathWhoAmI)
}

func (a *authService) GetAllUsers(ctx context.Context) (*client.Response, error) {
	return a.get(ctx, pathAllUsers)
}

func (a *authService) TokenInfo(ctx context.Context) (*TokenInfo, bool) {
	token, ok := a.store.Get(ctx)
	if !ok {
		return nil, false
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, false
	}

	info := &TokenInfo{Subject: claims.Subject}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, true
}

func (a *authService) get(ctx context.Context, path string) (*client.Response, error) {
	return a.client.Do(ctx, &client.Request{
		Method: http.MethodGet,
		Path:   path,
		Header: a.BuildAuthHeader(ctx),
	})
}

// requestToken posts to a token endpoint and extracts a non-empty
// access_token from the answer.
func (a *authService) requestToken(ctx context.Context, path string, body any) (string, error) {
	resp, err := a.client.Do(ctx, &client.Request{
		Method: http.MethodPost,
		Path:   path,
		Header: a.BuildAuthHeader(ctx),
		Body:   body,
	})
	if err != nil {
		return "", err
	}

	var tr tokenResponse
	if err := resp.Decode(&tr); err != nil || tr.AccessToken == nil || *tr.AccessToken == "" {
		return "", &client.RequestError{
			Method: http.MethodPost,
			Path:   path,
			Status: resp.Status,
			Data:   resp.Data,
			Err:    client.ErrMalformedResponse,
		}
	}
	return *tr.AccessToken, nil
}

func (a *authService) clear(ctx context.Context) {
	if err := a.store.Clear(ctx); err != nil {
		a.logger.Error(ctx, "token not cleared", "error", err)
	}
}

// failureReason names the failure kind so an expired session and an
// unreachable server can be told apart in logs.
func failureReason(err error) string {
	switch {
	case errors.Is(err, client.ErrNetwork):
		return "unreachable"
	case errors.Is(err, client.ErrUnauthorized):
		return "rejected"
	case errors.Is(err, client.ErrServer):
		return "server error"
	case errors.Is(err, client.ErrMalformedResponse):
		return "no token issued"
	default:
		return "unexpected status"
	}
}
