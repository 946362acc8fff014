package wm

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/howl-wm/howl/internal/layout"
)

// Display is the set of display-server operations the manager consumes.
// The X11 backend implements it; tests substitute a recording fake.
// Requests are buffered by the backend and flushed once per handled
// event, after all state mutations for that event are applied.
type Display interface {
	// ScreenGeometry returns the root screen size in pixels.
	ScreenGeometry() (width, height int)

	// AllocColor resolves a #rrggbb string to a pixel value.
	AllocColor(hex string) (uint32, error)

	MoveResize(win xproto.Window, r layout.Rect)
	SetBorderWidth(win xproto.Window, px int)
	SetBorderColor(win xproto.Window, pixel uint32)

	// Raise stacks win above its current siblings. Issuing raises in
	// bottom-to-top order therefore realizes a full stacking order.
	Raise(win xproto.Window)

	MapWindow(win xproto.Window)
	UnmapWindow(win xproto.Window)
	SetInputFocus(win xproto.Window)

	// SetActiveWindow publishes win as _NET_ACTIVE_WINDOW on the root.
	SetActiveWindow(win xproto.Window)
	ClearActiveWindow()

	// WatchClient subscribes to property changes for win, plus pointer
	// enter events when focus-follows-pointer is configured.
	WatchClient(win xproto.Window, enterNotify bool)

	// ManageableWindow reports whether win should be managed at all.
	// Override-redirect windows and failed attribute queries say no.
	ManageableWindow(win xproto.Window) bool

	// TransientFor returns the window win is transient for, if any.
	TransientFor(win xproto.Window) (xproto.Window, bool)

	// Spawn launches an external command, fire-and-forget.
	Spawn(argv []string)

	// Flush forces out all buffered requests.
	Flush()
}
