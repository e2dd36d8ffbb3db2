// Package tokenstore persists the client's single bearer token.
//
// At most one token exists at a time. It is written after a successful
// login or refresh and removed on logout or a failed refresh. Only the auth
// service writes it.
package tokenstore

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/jwtdash/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/jwtdash/internal/logging"
)

// TokenKey is the storage key the token lives under.
const TokenKey = "jwtToken"

// Store holds at most one token.
//
// Get never fails: a missing key and an unreadable store both report
// ok=false. Set overwrites unconditionally. Clear is idempotent.
type Store interface {
	Get(ctx context.Context) (token string, ok bool)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// SQLiteStore keeps the token in the metadata table so it survives restarts.
type SQLiteStore struct {
	repo   metadata.Repository
	logger logging.Logger
}

func NewSQLiteStore(repo metadata.Repository, logger logging.Logger) *SQLiteStore {
	return &SQLiteStore{repo: repo, logger: logger}
}

func (s *SQLiteStore) Get(ctx context.Context) (string, bool) {
	token, ok, err := s.repo.Get(ctx, TokenKey)
	if err != nil {
		s.logger.Warn(ctx, "token read failed, treating as absent", "error", err)
		return "", false
	}
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

func (s *SQLiteStore) Set(ctx context.Context, token string) error {
	return s.repo.Set(ctx, TokenKey, token)
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, TokenKey)
}

// MemoryStore keeps the token in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Get(context.Context) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token != ""
}

func (m *MemoryStore) Set(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
