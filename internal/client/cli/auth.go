package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/jwtdash/internal/client/router"
	"github.com/dmitrijs2005/jwtdash/internal/client/services"
	"github.com/dmitrijs2005/jwtdash/internal/client/views"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for a username and password and submits them through the
// login view. On success the dashboard is shown. On failure the error flag
// of the view is reported and the current route stays as it is.
func (a *App) Login(ctx context.Context) error {
	if a.login == nil {
		a.login = views.NewLoginController(a.auth, a.router, a.state)
	}

	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	res, err := a.login.Submit(ctx, services.Credentials{Username: userName, Password: string(password)})
	if err != nil {
		a.logger.Debug(ctx, "login failed", "error", err)
		fmt.Fprintln(a.out, "Invalid username and/or password!")
		return err
	}

	fmt.Fprintln(a.out, "Login successful")
	a.show(ctx, res)
	return nil
}

// Logout drops the stored token and returns to the start route, where the
// guard redirects to the login view.
func (a *App) Logout(ctx context.Context) error {
	res, err := a.nav.Logout(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Logout failed:", err)
	} else {
		fmt.Fprintln(a.out, "Logged out")
	}
	a.show(ctx, res)
	return err
}

// Go navigates to path. Unknown paths land on the start route.
func (a *App) Go(ctx context.Context, path string) error {
	a.show(ctx, a.router.Navigate(ctx, path))
	return nil
}

// Token prints what the stored token says about itself.
func (a *App) Token(ctx context.Context) error {
	info, ok := a.auth.TokenInfo(ctx)
	if !ok {
		fmt.Fprintln(a.out, "No readable token stored")
		return nil
	}

	fmt.Fprintf(a.out, "Subject:    %s\n", info.Subject)
	if !info.IssuedAt.IsZero() {
		fmt.Fprintf(a.out, "Issued at:  %s\n", info.IssuedAt.Format(timeLayout))
	}
	if !info.ExpiresAt.IsZero() {
		fmt.Fprintf(a.out, "Expires at: %s\n", info.ExpiresAt.Format(timeLayout))
	}
	return nil
}

// Tabs prints the navigation bar with the selected tab marked.
func (a *App) Tabs(context.Context) error {
	for _, tab := range []string{router.PathDashboard, router.PathLogin} {
		mark := " "
		if a.nav.TabClass(tab) == "active" {
			mark = "*"
		}
		fmt.Fprintf(a.out, "%s %s\n", mark, tab)
	}
	return nil
}
