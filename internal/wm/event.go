package wm

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/howl-wm/howl/internal/layout"
	"github.com/howl-wm/howl/internal/status"
)

// Event is a protocol or control event delivered to the manager. X11
// events and IPC commands share one channel so handlers always run
// strictly sequentially, one event to completion at a time.
type Event interface {
	isEvent()
}

// MapRequest reports a window asking to be shown.
type MapRequest struct {
	Win xproto.Window
}

// DestroyNotify reports a window going away.
type DestroyNotify struct {
	Win xproto.Window
}

// EnterNotify reports the pointer entering a window.
type EnterNotify struct {
	Win xproto.Window
}

// KeyPress is a grabbed key chord, with the keysym already resolved to
// its string name and lock modifiers stripped from the state mask.
type KeyPress struct {
	Mods uint16
	Key  string
}

// ButtonPress is a grabbed pointer button chord.
type ButtonPress struct {
	Mods   uint16
	Button uint8
}

// SwitchWorkspace asks the manager to activate workspace Index.
type SwitchWorkspace struct {
	Index int
}

// SetLayout asks the manager to apply a layout to the active workspace.
type SetLayout struct {
	Mode layout.Mode
}

// StatusRequest asks for a snapshot of all workspace summaries.
type StatusRequest struct {
	Reply chan []status.Summary
}

// Quit asks the manager to stop its event loop.
type Quit struct{}

func (MapRequest) isEvent()      {}
func (DestroyNotify) isEvent()   {}
func (EnterNotify) isEvent()     {}
func (KeyPress) isEvent()        {}
func (ButtonPress) isEvent()     {}
func (SwitchWorkspace) isEvent() {}
func (SetLayout) isEvent()       {}
func (StatusRequest) isEvent()   {}
func (Quit) isEvent()            {}
