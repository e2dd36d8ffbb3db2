// Package cli provides the interactive jwtdash command-line client.
//
// It wires configuration, the local token database, the API client, the
// auth service, the router and the view controllers, and drives them from a
// REPL. Each command runs to completion before the next line is read, so
// the shared session state has a single writer at any time.
//
// On start the app navigates to the dashboard route. The route guard
// refreshes the stored token first; without a valid session the user lands
// on the login view instead.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
