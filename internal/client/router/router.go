package router

import (
	"context"
	"path"
	"strings"

	"github.com/dmitrijs2005/jwtdash/internal/client/session"
	"github.com/dmitrijs2005/jwtdash/internal/logging"
)

const (
	PathDashboard = "/"
	PathLogin     = "/login"
)

// Route is a navigable view.
type Route struct {
	Path    string
	Name    string
	Guarded bool
}

// Result is the outcome of a navigation. Route is the route that ended up
// active, which differs from Requested after a redirect.
type Result struct {
	Requested  string
	Route      Route
	Redirected bool
}

type Router struct {
	routes    map[string]Route
	fallback  string
	refresher Refresher
	state     *session.State
	logger    logging.Logger
	current   Route
}

// New builds the router with the dashboard at "/" (guarded) and the login
// view at "/login". Unknown paths go to "/".
func New(refresher Refresher, state *session.State, logger logging.Logger) *Router {
	r := &Router{
		routes:    make(map[string]Route),
		fallback:  PathDashboard,
		refresher: refresher,
		state:     state,
		logger:    logger.With("component", "router"),
	}
	r.add(Route{Path: PathDashboard, Name: "dashboard", Guarded: true})
	r.add(Route{Path: PathLogin, Name: "login"})
	return r
}

func (r *Router) add(route Route) {
	r.routes[route.Path] = route
}

// Current is the last route Navigate settled on.
func (r *Router) Current() Route {
	return r.current
}

// Navigate resolves p to a route. A guarded route is entered only after a
// fresh Guard resolves true; otherwise the navigation is redirected to the
// login route and the session is reset (not authenticated, default tab).
func (r *Router) Navigate(ctx context.Context, p string) Result {
	res := Result{Requested: p}

	route, ok := r.routes[normalize(p)]
	if !ok {
		route = r.routes[r.fallback]
		res.Redirected = true
	}

	if route.Guarded {
		g := NewGuard(r.refresher)
		if g.Resolve(ctx) {
			r.state.Authenticated = true
		} else {
			r.logger.Info(ctx, "session invalid, redirecting", "from", route.Path, "to", PathLogin)
			r.state.Reset()
			route = r.routes[PathLogin]
			res.Redirected = true
		}
	}

	res.Route = route
	r.current = route
	return res
}

func normalize(p string) string {
	p = strings.TrimSpace(p)
	p = strings.TrimPrefix(p, "#")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}
