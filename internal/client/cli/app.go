package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/jwtdash/internal/client/client"
	"github.com/dmitrijs2005/jwtdash/internal/client/config"
	"github.com/dmitrijs2005/jwtdash/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/jwtdash/internal/client/router"
	"github.com/dmitrijs2005/jwtdash/internal/client/services"
	"github.com/dmitrijs2005/jwtdash/internal/client/session"
	"github.com/dmitrijs2005/jwtdash/internal/client/storage"
	"github.com/dmitrijs2005/jwtdash/internal/client/tokenstore"
	"github.com/dmitrijs2005/jwtdash/internal/client/views"
	"github.com/dmitrijs2005/jwtdash/internal/logging"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB

	auth   services.AuthService
	state  *session.State
	router *router.Router

	nav       *views.NavigationController
	login     *views.LoginController
	dashboard *views.DashboardController

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the local database, builds the API client and wires the
// services and controllers. Logs go to stderr, everything meant for the
// user goes to stdout.
func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	logger := logging.NewTextLogger(os.Stderr, c.Verbose)

	db, err := storage.Open(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	apiClient, err := client.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	store := tokenstore.NewSQLiteStore(metadata.NewSQLiteRepository(db), logger)

	app := newApp(c, logger, apiClient, store, os.Stdin, os.Stdout)
	app.db = db
	return app, nil
}

func newApp(c *config.Config, logger logging.Logger, apiClient client.Client, store tokenstore.Store, in io.Reader, out io.Writer) *App {
	auth := services.NewAuthService(apiClient, store, logger)
	state := session.New()
	r := router.New(auth, state, logger)

	return &App{
		config: c,
		logger: logger,
		auth:   auth,
		state:  state,
		router: r,
		nav:    views.NewNavigationController(auth, r, state),
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Run shows the start route and then serves commands until the user exits
// or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "Welcome to jwtdash (type 'help' for commands)")
	a.show(ctx, a.router.Navigate(ctx, router.PathDashboard))

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close() {
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error(context.Background(), "database not closed", "error", err)
	}
	a.db = nil
}

func (a *App) isAuthenticated() bool {
	return a.state.Authenticated
}

func (a *App) getStatus() string {
	s := "guest"
	if a.state.Authenticated {
		s = "authenticated"
	}
	return fmt.Sprintf("[%s] (%s)", a.state.SelectedTab, s)
}

// show builds the view for the route a navigation settled on. The guard
// has already run, so the dashboard is only built for a valid session.
func (a *App) show(ctx context.Context, res router.Result) {
	if res.Redirected {
		a.logger.Debug(ctx, "redirected", "from", res.Requested, "to", res.Route.Path)
	}

	switch res.Route.Path {
	case router.PathDashboard:
		a.login = nil
		a.dashboard = views.NewDashboardController(ctx, a.auth, a.state, a.logger)
		a.nav.SetSelectedTab(res.Route.Path)
		a.renderDashboard()
	case router.PathLogin:
		a.dashboard = nil
		a.login = views.NewLoginController(a.auth, a.router, a.state)
		fmt.Fprintln(a.out, "Please log in (type 'login').")
	}
}
