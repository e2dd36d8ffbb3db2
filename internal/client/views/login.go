package views

import (
	"context"

	"github.com/dmitrijs2005/jwtdash/internal/client/router"
	"github.com/dmitrijs2005/jwtdash/internal/client/services"
	"github.com/dmitrijs2005/jwtdash/internal/client/session"
)

type LoginController struct {
	auth  services.AuthService
	nav   Navigator
	state *session.State

	// Error is set when the last submission failed.
	Error bool
}

func NewLoginController(auth services.AuthService, nav Navigator, state *session.State) *LoginController {
	tab := nav.Current().Path
	if tab == "" {
		tab = session.DefaultTab
	}
	state.SelectedTab = tab
	return &LoginController{auth: auth, nav: nav, state: state}
}

// Submit logs in with creds. On success the session becomes authenticated
// and the front end moves to the dashboard. On failure Error is set, the
// session is marked unauthenticated and no navigation happens; the error
// is returned for display.
func (c *LoginController) Submit(ctx context.Context, creds services.Credentials) (router.Result, error) {
	if _, err := c.auth.Login(ctx, creds); err != nil {
		c.state.Authenticated = false
		c.Error = true
		return router.Result{Requested: router.PathDashboard, Route: c.nav.Current()}, err
	}

	c.state.Authenticated = true
	res := c.nav.Navigate(ctx, router.PathDashboard)
	c.state.SelectedTab = session.DefaultTab
	c.Error = false
	return res, nil
}
