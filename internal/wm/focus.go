package wm

import (
	"github.com/howl-wm/howl/internal/client"
	"github.com/howl-wm/howl/internal/workspace"
)

// updateFocus selects the current client, recomputes borders and the
// global stacking order, publishes the active window and re-arranges.
//
// Focus history: focusing the previous-focus client toggles between the
// two most recently focused clients; focusing anything else pushes the
// old current into previous-focus. After every call exactly one client
// is current and previous-focus never equals current.
func (m *Manager) updateFocus(target *client.Client) {
	ws := m.store.Active()
	head := ws.Clients.Head()

	if head == nil {
		ws.Current = nil
		ws.PrevFocus = nil
		m.display.ClearActiveWindow()
		return
	}

	switch {
	case target == ws.PrevFocus:
		cur := ws.PrevFocus
		if cur == nil {
			cur = head
		}
		ws.Current = cur
		ws.PrevFocus = ws.Clients.Predecessor(cur)
	case target != ws.Current:
		ws.PrevFocus = ws.Current
		ws.Current = target
	}

	if ws.Current == nil {
		ws.Current = head
	}
	if ws.PrevFocus == ws.Current {
		ws.PrevFocus = nil
	}

	m.applyBorders(ws)
	m.restack(ws)
	m.display.SetActiveWindow(ws.Current.Win)
	m.display.SetInputFocus(ws.Current.Win)
	m.arrange()
}

// applyBorders recomputes border width and colour for every client on
// the workspace. Fullscreen clients and a sole client draw no border.
func (m *Manager) applyBorders(ws *workspace.Workspace) {
	sole := ws.Clients.Len() == 1
	ws.Clients.ForEach(func(c *client.Client) {
		width := m.cfg.BorderWidth
		if c.Fullscreen || sole {
			width = 0
		}
		m.display.SetBorderWidth(c.Win, width)

		pixel := m.unfocusPixel
		if c == ws.Current {
			pixel = m.focusPixel
		}
		m.display.SetBorderColor(c.Win, pixel)
	})
}

// restack rebuilds the global stacking order: fullscreen clients at the
// bottom, tiled clients above them, floating and transient clients on
// top. Within each tier the current client is raised above its mates.
// Raises are issued bottom-to-top so the final order is exactly this.
func (m *Manager) restack(ws *workspace.Workspace) {
	var fullscreen, tiled, floating []*client.Client
	ws.Clients.ForEach(func(c *client.Client) {
		switch {
		case c.Fullscreen:
			fullscreen = append(fullscreen, c)
		case c.Floating || c.Transient:
			floating = append(floating, c)
		default:
			tiled = append(tiled, c)
		}
	})

	for _, tier := range [][]*client.Client{fullscreen, tiled, floating} {
		for _, c := range tier {
			if c != ws.Current {
				m.display.Raise(c.Win)
			}
		}
		for _, c := range tier {
			if c == ws.Current {
				m.display.Raise(c.Win)
			}
		}
	}
}
