// Package router maps client paths to views and runs the authentication
// guard before a protected view is built.
package router

import (
	"context"
	"fmt"
)

// Refresher renews the session. It must always return; failure is false.
type Refresher interface {
	Refresh(ctx context.Context) bool
}

type GuardState int

const (
	Unresolved GuardState = iota
	Resolved
)

func (s GuardState) String() string {
	switch s {
	case Unresolved:
		return "unresolved"
	case Resolved:
		return "resolved"
	default:
		return fmt.Sprintf("GuardState(%d)", int(s))
	}
}

// Guard decides whether a protected route may be entered. It starts
// Unresolved and moves to Resolved(authenticated) once Resolve returns.
// Each navigation uses a fresh Guard.
type Guard struct {
	refresher     Refresher
	state         GuardState
	authenticated bool
}

func NewGuard(r Refresher) *Guard {
	return &Guard{refresher: r}
}

// Resolve runs the refresh and records its result. Calling it again on a
// resolved guard returns the recorded result without a new refresh.
func (g *Guard) Resolve(ctx context.Context) bool {
	if g.state == Resolved {
		return g.authenticated
	}
	g.authenticated = g.refresher.Refresh(ctx)
	g.state = Resolved
	return g.authenticated
}

func (g *Guard) State() GuardState {
	return g.state
}

// Authenticated reports the result; it is false while Unresolved.
func (g *Guard) Authenticated() bool {
	return g.state == Resolved && g.authenticated
}
