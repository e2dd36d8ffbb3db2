package cli

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/jwtdash/internal/client/client"
	"github.com/dmitrijs2005/jwtdash/internal/client/config"
	"github.com/dmitrijs2005/jwtdash/internal/client/tokenstore"
	"github.com/dmitrijs2005/jwtdash/internal/fakeapi"
	"github.com/dmitrijs2005/jwtdash/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	api   *fakeapi.Server
	url   string
	store *tokenstore.MemoryStore
	out   *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	api := fakeapi.New()
	api.AddUser("bob", "secret")
	api.AddUser("admin", "admin", fakeapi.RoleAdmin)

	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)

	// Passwords come from the piped input, not a terminal.
	stubTerminal(t, false, nil, nil)
	capturePrint(t)

	return &harness{api: api, url: srv.URL, store: tokenstore.NewMemoryStore(), out: &bytes.Buffer{}}
}

func (h *harness) app(t *testing.T, input ...string) *App {
	t.Helper()
	c, err := client.NewHTTPClient(h.url, time.Second)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.ServerBaseURL = h.url

	return newApp(cfg, logging.Discard(), c, h.store, strings.NewReader(strings.Join(input, "\n")+"\n"), h.out)
}

func TestApp_LoginSessionLogout(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	a := h.app(t,
		"me",
		"login", "bob", "wrong",
		"login", "bob", "secret",
		"me",
		"users",
		"logout",
		"exit",
	)
	a.Run(ctx)

	out := h.out.String()
	assert.Contains(t, out, "Please log in")
	assert.Contains(t, out, "Open the dashboard first")
	assert.Contains(t, out, "Invalid username and/or password!")
	assert.Contains(t, out, "Login successful")
	assert.Contains(t, out, "== Dashboard ==")
	assert.Contains(t, out, `"username": "bob"`)
	assert.Contains(t, out, "[OK] 200 OK")
	assert.Contains(t, out, "[ERROR] 403 Forbidden")
	assert.Contains(t, out, "Access is denied")
	assert.Contains(t, out, "Logged out")

	_, ok := h.store.Get(ctx)
	assert.False(t, ok)
	assert.False(t, a.isAuthenticated())
	assert.Nil(t, a.dashboard)
	assert.NotNil(t, a.login)
}

func TestApp_FailedLoginSetsErrorFlag(t *testing.T) {
	h := newHarness(t)

	a := h.app(t, "login", "bob", "wrong", "exit")
	a.Run(context.Background())

	require.NotNil(t, a.login)
	assert.True(t, a.login.Error)
	assert.Equal(t, "[/login] (guest)", a.getStatus())
	_, ok := h.store.Get(context.Background())
	assert.False(t, ok)
}

func TestApp_StoredTokenOpensDashboard(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	old := h.api.IssueToken("bob", time.Minute)
	require.NoError(t, h.store.Set(ctx, old))

	a := h.app(t, "tabs", "token", "exit")
	a.Run(ctx)

	out := h.out.String()
	assert.Contains(t, out, "== Dashboard ==")
	assert.Contains(t, out, "* /\n")
	assert.Contains(t, out, "Subject:    bob")
	assert.NotContains(t, out, "Please log in")
	assert.Equal(t, "[/] (authenticated)", a.getStatus())

	tok, ok := h.store.Get(ctx)
	require.True(t, ok)
	assert.NotEqual(t, old, tok, "the guard must have refreshed the token")
}

func TestApp_ExpiredTokenRedirectsToLogin(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.store.Set(ctx, h.api.IssueToken("bob", -time.Minute)))

	a := h.app(t, "token", "exit")
	a.Run(ctx)

	out := h.out.String()
	assert.Contains(t, out, "Please log in")
	assert.Contains(t, out, "No readable token stored")
	_, ok := h.store.Get(ctx)
	assert.False(t, ok)
}

func TestApp_GoToLoginAndBack(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.store.Set(ctx, h.api.IssueToken("admin", time.Minute)))

	a := h.app(t, "go /login", "tabs", "go /nowhere", "users", "exit")
	a.Run(ctx)

	out := h.out.String()
	assert.Contains(t, out, "* /login\n")
	assert.Contains(t, out, "[OK] 200 OK")
	assert.Equal(t, "/", a.state.SelectedTab)
	assert.NotNil(t, a.dashboard)
}

func TestNewApp(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabasePath = filepath.Join(t.TempDir(), "jwtdash.db")

	a, err := NewApp(cfg)
	require.NoError(t, err)
	require.NotNil(t, a.db)
	a.Close()
	assert.Nil(t, a.db)
	a.Close()
}

func TestNewApp_BadServerURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabasePath = filepath.Join(t.TempDir(), "jwtdash.db")
	cfg.ServerBaseURL = "no-scheme"

	_, err := NewApp(cfg)
	require.Error(t, err)
}
