package x11

import (
	"log"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/keybind"

	"github.com/howl-wm/howl/internal/wm"
)

// Forward reads protocol events from the X connection and translates
// them onto the manager's event channel. It returns when the connection
// drops, after delivering a final quit event. Run it on its own
// goroutine; the manager consumes the channel sequentially.
func (c *Conn) Forward(events chan<- wm.Event) {
	for {
		ev, err := c.xu.Conn().WaitForEvent()
		if ev == nil && err == nil {
			log.Printf("X connection closed")
			events <- wm.Quit{}
			return
		}
		if err != nil {
			// Protocol errors are expected during client teardown, for
			// example configuring a window that just went away.
			log.Printf("X error: %v", err)
			continue
		}

		switch e := ev.(type) {
		case xproto.MapRequestEvent:
			events <- wm.MapRequest{Win: e.Window}
		case xproto.DestroyNotifyEvent:
			// Workspace switches unmap windows without destroying them,
			// so only destruction unmanages a client.
			events <- wm.DestroyNotify{Win: e.Window}
		case xproto.EnterNotifyEvent:
			if e.Mode == xproto.NotifyModeNormal {
				events <- wm.EnterNotify{Win: e.Event}
			}
		case xproto.KeyPressEvent:
			events <- wm.KeyPress{
				Mods: c.cleanMods(e.State),
				Key:  keybind.LookupString(c.xu, e.State, e.Detail),
			}
		case xproto.ButtonPressEvent:
			events <- wm.ButtonPress{
				Mods:   c.cleanMods(e.State),
				Button: uint8(e.Detail),
			}
		case xproto.MappingNotifyEvent:
			// Keyboard layout changed under us; rebuild the keymap so
			// keysym lookups stay accurate.
			keybind.Initialize(c.xu)
		}
	}
}

// cleanMods strips lock-key and pointer-button bits from an event state
// mask, leaving only the modifiers bindings are matched against.
func (c *Conn) cleanMods(state uint16) uint16 {
	return state &^ c.lockMods & 0x00ff
}
