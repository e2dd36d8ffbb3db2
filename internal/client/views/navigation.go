package views

import (
	"context"

	"github.com/dmitrijs2005/jwtdash/internal/client/router"
	"github.com/dmitrijs2005/jwtdash/internal/client/services"
	"github.com/dmitrijs2005/jwtdash/internal/client/session"
)

type NavigationController struct {
	auth  services.AuthService
	nav   Navigator
	state *session.State
}

func NewNavigationController(auth services.AuthService, nav Navigator, state *session.State) *NavigationController {
	if p := nav.Current().Path; p != "" {
		state.SelectedTab = p
	}
	return &NavigationController{auth: auth, nav: nav, state: state}
}

func (c *NavigationController) SetSelectedTab(tab string) {
	c.state.SelectedTab = tab
}

func (c *NavigationController) IsActive(tab string) bool {
	return c.state.SelectedTab == tab
}

// TabClass is the CSS-style class of a tab: "active" for the selected one.
func (c *NavigationController) TabClass(tab string) string {
	if c.IsActive(tab) {
		return "active"
	}
	return ""
}

// Logout drops the token, resets the session and navigates home, where the
// guard sends the user to the login view.
func (c *NavigationController) Logout(ctx context.Context) (router.Result, error) {
	err := c.auth.Logout(ctx)
	c.state.Reset()
	res := c.nav.Navigate(ctx, router.PathDashboard)
	c.state.SelectedTab = session.DefaultTab
	return res, err
}
