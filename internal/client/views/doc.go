// Package views holds the controllers behind the client's screens: login,
// dashboard and the navigation bar. Controllers translate user actions
// into AuthService calls and keep the results (error flags, rendered
// server responses) for the front end to display. They share one
// *session.State.
package views

import (
	"context"

	"github.com/dmitrijs2005/jwtdash/internal/client/router"
)

// Navigator moves the front end to another route.
type Navigator interface {
	Navigate(ctx context.Context, path string) router.Result
	Current() router.Route
}
