// Package session holds the UI state shared by the controllers.
package session

// DefaultTab is the tab selected when nothing else is.
const DefaultTab = "/"

// State is shared by pointer between the router and the controllers.
//
// Writers: the router (guard outcomes), LoginController (login result) and
// NavigationController (tab selection, logout). Everything runs on the
// REPL goroutine, so State is not safe for concurrent use.
type State struct {
	Authenticated bool
	SelectedTab   string
}

// New returns a State with the default tab selected.
func New() *State {
	return &State{SelectedTab: DefaultTab}
}

// Reset restores defaults: not authenticated, default tab.
func (s *State) Reset() {
	s.Authenticated = false
	s.SelectedTab = DefaultTab
}
