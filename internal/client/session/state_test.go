package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	s := New()
	assert.False(t, s.Authenticated)
	assert.Equal(t, "/", s.SelectedTab)
}

func TestReset(t *testing.T) {
	s := &State{Authenticated: true, SelectedTab: "/login"}
	s.Reset()
	assert.Equal(t, &State{SelectedTab: DefaultTab}, s)
}
