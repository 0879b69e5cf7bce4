package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuBarHidesAfterPointerLeaves(t *testing.T) {
	mb := NewMenuBar(2 * time.Second)
	assert.False(t, mb.IsVisible())
	assert.Equal(t, 0, mb.Height())

	// Moving below the bar while hidden does nothing.
	assert.Nil(t, mb.PointerAt(10))

	assert.Nil(t, mb.PointerAt(0))
	assert.True(t, mb.IsVisible())
	assert.Equal(t, 1, mb.Height())

	cmd := mb.PointerAt(5)
	require.NotNil(t, cmd)
	// A second move while the timer runs does not restart it.
	assert.Nil(t, mb.PointerAt(6))

	assert.True(t, mb.HandleHide(MenuHideMsg{Gen: mb.gen}))
	assert.False(t, mb.IsVisible())
}

func TestMenuBarStaysWhilePointerReturns(t *testing.T) {
	mb := NewMenuBar(time.Second)
	mb.PointerAt(0)
	require.NotNil(t, mb.PointerAt(3))
	stale := MenuHideMsg{Gen: mb.gen}

	// Pointer back on the bar cancels the pending hide.
	mb.PointerAt(0)
	assert.False(t, mb.HandleHide(stale))
	assert.True(t, mb.IsVisible())
}

func TestMenuBarReveal(t *testing.T) {
	mb := NewMenuBar(time.Second)
	first := mb.Reveal()
	require.NotNil(t, first)
	oldGen := mb.gen

	require.NotNil(t, mb.Reveal())
	assert.False(t, mb.HandleHide(MenuHideMsg{Gen: oldGen}))
	assert.True(t, mb.IsVisible())

	assert.True(t, mb.HandleHide(MenuHideMsg{Gen: mb.gen}))
	assert.False(t, mb.IsVisible())
}

func TestMenuBarHide(t *testing.T) {
	mb := NewMenuBar(time.Second)
	mb.Reveal()
	gen := mb.gen
	mb.Hide()
	assert.False(t, mb.IsVisible())
	assert.False(t, mb.HandleHide(MenuHideMsg{Gen: gen}))
	assert.Empty(t, mb.View())
}

func TestMenuBarView(t *testing.T) {
	mb := NewMenuBar(time.Second)
	mb.SetWidth(120)
	mb.Reveal()
	out := mb.View()
	assert.Contains(t, out, "Open")
	assert.Contains(t, out, "Bookmark")
}
