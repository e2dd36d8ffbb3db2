package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/jwtdash/internal/client/views"
)

const timeLayout = time.RFC3339

var errNoDashboard = errors.New("dashboard is not open")

// Me shows the raw answer of the "who am I" endpoint.
func (a *App) Me(ctx context.Context) error {
	if a.dashboard == nil {
		fmt.Fprintln(a.out, "Open the dashboard first (go /)")
		return errNoDashboard
	}
	a.renderResponse(a.dashboard.GetUserInfo(ctx))
	return nil
}

// Users shows the raw answer of the "all users" endpoint.
func (a *App) Users(ctx context.Context) error {
	if a.dashboard == nil {
		fmt.Fprintln(a.out, "Open the dashboard first (go /)")
		return errNoDashboard
	}
	a.renderResponse(a.dashboard.GetAllUserInfo(ctx))
	return nil
}

func (a *App) renderDashboard() {
	fmt.Fprintln(a.out, "== Dashboard ==")
	if a.dashboard.User == nil {
		fmt.Fprintln(a.out, "User info unavailable")
		return
	}
	fmt.Fprintln(a.out, "Logged in as:")
	fmt.Fprintln(a.out, views.PrettyJSON(a.dashboard.User))
}

func (a *App) renderResponse(r *views.ServerResponse) {
	label := "OK"
	if !r.Success() {
		label = "ERROR"
	}
	fmt.Fprintf(a.out, "[%s] %d %s\n%s\n", label, r.Status, views.StatusText(r.Status), r.Data)
}
