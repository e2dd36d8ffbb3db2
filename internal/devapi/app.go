// Package devapi runs the fake backend as a real HTTP server so the client
// can be tried out without the production API.
package devapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/jwtdash/internal/devapi/config"
	"github.com/dmitrijs2005/jwtdash/internal/fakeapi"
	"github.com/dmitrijs2005/jwtdash/internal/logging"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	api    *fakeapi.Server
}

func NewApp(c *config.Config) (*App, error) {
	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	api := fakeapi.New(fakeapi.WithSecret(c.SecretKey), fakeapi.WithTokenTTL(c.AccessTokenValidityDuration))
	for _, spec := range c.Users {
		name, password, roles, err := parseUser(spec)
		if err != nil {
			return nil, err
		}
		api.AddUser(name, password, roles...)
	}

	return &App{config: c, logger: logger, api: api}, nil
}

// parseUser splits "name:password[:admin]".
func parseUser(spec string) (name, password string, roles []string, err error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 2 || len(parts) > 3 || parts[0] == "" || parts[1] == "" {
		return "", "", nil, fmt.Errorf("invalid user %q, want name:password[:admin]", spec)
	}
	if len(parts) == 3 {
		if parts[2] != "admin" {
			return "", "", nil, fmt.Errorf("invalid role %q for user %q", parts[2], parts[0])
		}
		roles = append(roles, fakeapi.RoleAdmin)
	}
	return parts[0], parts[1], roles, nil
}

// Run listens on the configured address and serves until ctx is done,
// then shuts the server down gracefully.
func (app *App) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", app.config.EndpointAddr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	return app.serve(ctx, lis)
}

func (app *App) serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           app.api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "dev API listening", "addr", lis.Addr().String())
		errCh <- srv.Serve(lis)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	app.logger.Info(context.Background(), "shutting down dev API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
